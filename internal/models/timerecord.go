package models

import "time"

// TimeRecord is a fixed block on a user's daily timeline. StartTime is
// minutes since midnight on RecordDate; Duration is in minutes.
type TimeRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	HabitID    *string   `json:"habitId,omitempty"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	StartTime  int       `json:"startTime"`
	Duration   int       `json:"duration"`
	Category   string    `json:"category"`
	Color      string    `json:"color"`
	RecordDate string    `json:"recordDate"`
	CreatedAt  time.Time `json:"createdAt"`
}
