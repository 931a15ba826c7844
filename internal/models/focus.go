package models

import "time"

// SessionStatus is the terminal state of a focus session.
type SessionStatus string

const (
	SessionCompleted   SessionStatus = "COMPLETED"
	SessionInterrupted SessionStatus = "INTERRUPTED"
)

// Valid reports whether s is one of the known session states.
func (s SessionStatus) Valid() bool {
	return s == SessionCompleted || s == SessionInterrupted
}

// FocusSession is a timed concentration interval. A completed session
// with positive duration is projected onto the timeline as a TimeRecord
// at creation time; later edits are not re-propagated.
type FocusSession struct {
	ID         string        `json:"id"`
	UserID     string        `json:"userId"`
	CategoryID *string       `json:"categoryId,omitempty"`
	HabitID    *string       `json:"habitId,omitempty"`
	StartTime  time.Time     `json:"startTime"`
	EndTime    time.Time     `json:"endTime"`
	Duration   int           `json:"duration"`
	Status     SessionStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}
