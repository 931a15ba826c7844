package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
	"github.com/flowstate/api/internal/utils"
)

// TimeRecordService manages fixed blocks on the user's daily timeline.
type TimeRecordService struct {
	store *storage.Store
}

// NewTimeRecordService creates a new TimeRecordService.
func NewTimeRecordService(store *storage.Store) *TimeRecordService {
	return &TimeRecordService{store: store}
}

// TimeRecordInput carries the mutable fields of a time record.
type TimeRecordInput struct {
	HabitID    *string `json:"habitId"`
	Title      string  `json:"title"`
	Subtitle   string  `json:"subtitle"`
	StartTime  int     `json:"startTime"`
	Duration   int     `json:"duration"`
	Category   string  `json:"category"`
	Color      string  `json:"color"`
	RecordDate string  `json:"recordDate"`
}

// GetForUser returns all of the user's time records.
func (s *TimeRecordService) GetForUser(userID string) ([]models.TimeRecord, error) {
	return s.store.GetTimeRecordsByUser(userID)
}

// GetForUserByDate returns the user's time records for a single day.
func (s *TimeRecordService) GetForUserByDate(userID, day string) ([]models.TimeRecord, error) {
	return s.store.GetTimeRecordsByUserAndDate(userID, day)
}

// Create persists a new time record. A habit reference that does not
// resolve is dropped rather than treated as an error.
func (s *TimeRecordService) Create(userID string, input TimeRecordInput) (models.TimeRecord, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TimeRecord{}, apperr.NotFound("user not found")
		}
		return models.TimeRecord{}, fmt.Errorf("failed to load user: %w", err)
	}

	record := models.TimeRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		HabitID:    s.resolveHabit(input.HabitID),
		Title:      input.Title,
		Subtitle:   input.Subtitle,
		StartTime:  input.StartTime,
		Duration:   input.Duration,
		Category:   input.Category,
		Color:      input.Color,
		RecordDate: input.RecordDate,
		CreatedAt:  time.Now(),
	}
	if record.RecordDate == "" {
		record.RecordDate = utils.Today()
	}

	if err := s.store.CreateTimeRecord(record); err != nil {
		return models.TimeRecord{}, err
	}
	return record, nil
}

// Update overwrites the record's mutable fields.
func (s *TimeRecordService) Update(recordID string, input TimeRecordInput) (models.TimeRecord, error) {
	record, err := s.store.GetTimeRecord(recordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TimeRecord{}, apperr.NotFound("time record not found")
		}
		return models.TimeRecord{}, fmt.Errorf("failed to load time record: %w", err)
	}

	record.HabitID = s.resolveHabit(input.HabitID)
	record.Title = input.Title
	record.Subtitle = input.Subtitle
	record.StartTime = input.StartTime
	record.Duration = input.Duration
	record.Category = input.Category
	record.Color = input.Color
	if input.RecordDate != "" {
		record.RecordDate = input.RecordDate
	}

	if err := s.store.UpdateTimeRecord(record); err != nil {
		return models.TimeRecord{}, err
	}
	return record, nil
}

// Delete removes the record.
func (s *TimeRecordService) Delete(recordID string) error {
	err := s.store.DeleteTimeRecord(recordID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("time record not found")
	}
	return err
}

// resolveHabit keeps a habit reference only when the habit exists.
func (s *TimeRecordService) resolveHabit(habitID *string) *string {
	if habitID == nil || *habitID == "" {
		return nil
	}
	habit, err := s.store.GetHabit(*habitID)
	if err != nil {
		return nil
	}
	return &habit.ID
}
