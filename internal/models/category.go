package models

// Category is a user-owned label with display metadata, referenced by
// focus sessions and used to group time records.
type Category struct {
	ID     string `json:"id"`
	UserID string `json:"-"`
	Name   string `json:"name"`
	Color  string `json:"color"`
	Icon   string `json:"icon"`
}
