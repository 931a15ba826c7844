package models

import "time"

// GoalType distinguishes count-based goals from duration-based ones.
type GoalType string

const (
	GoalQuantitative GoalType = "QUANTITATIVE"
	GoalDuration     GoalType = "DURATION"
)

// Frequency is the bucketing window a habit's goal applies to.
type Frequency string

const (
	FrequencyDaily   Frequency = "DAILY"
	FrequencyWeekly  Frequency = "WEEKLY"
	FrequencyMonthly Frequency = "MONTHLY"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	}
	return false
}

// Valid reports whether g is one of the known goal types.
func (g GoalType) Valid() bool {
	switch g {
	case GoalQuantitative, GoalDuration:
		return true
	}
	return false
}

// Habit is a recurring goal tracked against a numeric threshold per
// daily/weekly/monthly bucket.
type Habit struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	GoalType  GoalType  `json:"goalType"`
	Frequency Frequency `json:"frequency"`
	GoalValue int       `json:"goalValue"`
	Unit      string    `json:"unit"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HabitLog is one day's accumulated progress for a habit. Day is a
// YYYY-MM-DD string; there is at most one log per habit per day.
type HabitLog struct {
	ID           string    `json:"id"`
	HabitID      string    `json:"habitId"`
	Day          string    `json:"date"`
	CurrentValue int       `json:"currentValue"`
	IsCompleted  bool      `json:"isCompleted"`
	CreatedAt    time.Time `json:"createdAt"`
}
