package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/constants"
	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
	"github.com/flowstate/api/internal/utils"
)

// FocusService manages focus sessions and their one-way projection onto
// the timeline.
type FocusService struct {
	store *storage.Store
}

// NewFocusService creates a new FocusService.
func NewFocusService(store *storage.Store) *FocusService {
	return &FocusService{store: store}
}

// FocusSessionInput is the create-session payload.
type FocusSessionInput struct {
	CategoryID *string              `json:"categoryId"`
	HabitID    *string              `json:"habitId"`
	StartTime  time.Time            `json:"startTime"`
	EndTime    time.Time            `json:"endTime"`
	Duration   int                  `json:"duration"`
	Status     models.SessionStatus `json:"status"`
}

// FocusSessionView is the shaped response for a session, with category
// and habit display fields resolved.
type FocusSessionView struct {
	ID            string               `json:"id"`
	UserID        string               `json:"userId"`
	CategoryID    *string              `json:"categoryId,omitempty"`
	CategoryName  string               `json:"categoryName,omitempty"`
	CategoryColor string               `json:"categoryColor,omitempty"`
	HabitID       *string              `json:"habitId,omitempty"`
	HabitName     string               `json:"habitName,omitempty"`
	StartTime     time.Time            `json:"startTime"`
	EndTime       time.Time            `json:"endTime"`
	Duration      int                  `json:"duration"`
	Status        models.SessionStatus `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// TodayStats is the focus summary for the current day.
type TodayStats struct {
	TotalMinutes      int `json:"totalMinutes"`
	CompletedSessions int `json:"completedSessions"`
}

// Create persists a focus session. When the session completed with a
// positive duration, it is projected onto the timeline as a TimeRecord
// — a one-time copy, never kept in sync afterwards.
func (s *FocusService) Create(userID string, input FocusSessionInput) (FocusSessionView, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FocusSessionView{}, apperr.NotFound("user not found")
		}
		return FocusSessionView{}, fmt.Errorf("failed to load user: %w", err)
	}

	if !input.Status.Valid() {
		return FocusSessionView{}, apperr.Invalid("unknown session status %q", input.Status)
	}

	var category *models.Category
	if input.CategoryID != nil && *input.CategoryID != "" {
		if c, err := s.store.GetCategory(*input.CategoryID); err == nil {
			category = &c
		}
	}

	var habit *models.Habit
	if input.HabitID != nil && *input.HabitID != "" {
		if h, err := s.store.GetHabit(*input.HabitID); err == nil {
			habit = &h
		}
	}

	session := models.FocusSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Duration:  input.Duration,
		Status:    input.Status,
		CreatedAt: time.Now(),
	}
	if category != nil {
		session.CategoryID = &category.ID
	}
	if habit != nil {
		session.HabitID = &habit.ID
	}

	if err := s.store.CreateFocusSession(session); err != nil {
		return FocusSessionView{}, err
	}

	if session.Status == models.SessionCompleted && session.Duration > 0 {
		if err := s.archiveToTimeline(session, category, habit); err != nil {
			return FocusSessionView{}, err
		}
	}

	return s.viewFor(session, category, habit), nil
}

// GetForUser returns the user's sessions, newest first.
func (s *FocusService) GetForUser(userID string) ([]FocusSessionView, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	sessions, err := s.store.GetFocusSessionsByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]FocusSessionView, 0, len(sessions))
	for _, session := range sessions {
		var category *models.Category
		if session.CategoryID != nil {
			if c, err := s.store.GetCategory(*session.CategoryID); err == nil {
				category = &c
			}
		}
		var habit *models.Habit
		if session.HabitID != nil {
			if h, err := s.store.GetHabit(*session.HabitID); err == nil {
				habit = &h
			}
		}
		views = append(views, s.viewFor(session, category, habit))
	}
	return views, nil
}

// GetTodayStats sums today's focus minutes and counts completed
// sessions.
func (s *FocusService) GetTodayStats(userID string) (TodayStats, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TodayStats{}, apperr.NotFound("user not found")
		}
		return TodayStats{}, fmt.Errorf("failed to load user: %w", err)
	}

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.AddDate(0, 0, 1)

	sessions, err := s.store.GetFocusSessionsBetween(userID, startOfDay, endOfDay)
	if err != nil {
		return TodayStats{}, err
	}

	var stats TodayStats
	for _, session := range sessions {
		stats.TotalMinutes += session.Duration
		if session.Status == models.SessionCompleted {
			stats.CompletedSessions++
		}
	}
	return stats, nil
}

// archiveToTimeline projects a completed session onto the timeline.
func (s *FocusService) archiveToTimeline(session models.FocusSession, category *models.Category, habit *models.Habit) error {
	title := constants.DefaultFocusTitle
	if habit != nil {
		title = constants.FocusTitlePrefix + habit.Name
	}
	categoryName := constants.DefaultFocusCategory
	color := constants.DefaultFocusColor
	if category != nil {
		categoryName = category.Name
		color = category.Color
	}

	record := models.TimeRecord{
		ID:         uuid.New().String(),
		UserID:     session.UserID,
		HabitID:    session.HabitID,
		Title:      title,
		Subtitle:   constants.FocusRecordSubtitle,
		StartTime:  utils.MinutesFromMidnight(session.StartTime),
		Duration:   session.Duration,
		Category:   categoryName,
		Color:      color,
		RecordDate: utils.FormatDay(session.StartTime),
		CreatedAt:  time.Now(),
	}

	if err := s.store.CreateTimeRecord(record); err != nil {
		return fmt.Errorf("failed to archive session to timeline: %w", err)
	}
	logger.Debug("focus session archived", "session", session.ID, "record", record.ID)
	return nil
}

func (s *FocusService) viewFor(session models.FocusSession, category *models.Category, habit *models.Habit) FocusSessionView {
	view := FocusSessionView{
		ID:        session.ID,
		UserID:    session.UserID,
		StartTime: session.StartTime,
		EndTime:   session.EndTime,
		Duration:  session.Duration,
		Status:    session.Status,
		CreatedAt: session.CreatedAt,
	}
	if category != nil {
		view.CategoryID = &category.ID
		view.CategoryName = category.Name
		view.CategoryColor = category.Color
	}
	if habit != nil {
		view.HabitID = &habit.ID
		view.HabitName = habit.Name
	}
	return view
}
