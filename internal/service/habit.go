package service

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/apperr"
	"github.com/flowstate/api/internal/constants"
	"github.com/flowstate/api/internal/logger"
	"github.com/flowstate/api/internal/models"
	"github.com/flowstate/api/internal/storage"
	"github.com/flowstate/api/internal/utils"
)

// HabitService implements habit creation, progress logging, and the
// derived progress view (bucket rollup, streak, trailing-week status).
type HabitService struct {
	store *storage.Store
}

// NewHabitService creates a new HabitService.
func NewHabitService(store *storage.Store) *HabitService {
	return &HabitService{store: store}
}

// HabitProgress is the shaped response record for one habit on one date.
type HabitProgress struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	GoalType      models.GoalType  `json:"goalType"`
	Frequency     models.Frequency `json:"frequency"`
	GoalValue     int              `json:"goalValue"`
	Unit          string           `json:"unit"`
	Icon          string           `json:"icon"`
	Color         string           `json:"color"`
	CurrentValue  int              `json:"currentValue"`
	IsCompleted   bool             `json:"isCompleted"`
	CurrentStreak int              `json:"currentStreak"`
	LastSevenDays []bool           `json:"lastSevenDays"`
}

// CreateHabitInput carries the optional fields of a create-habit
// request; zero values fall back to defaults.
type CreateHabitInput struct {
	Name      string           `json:"name"`
	Category  string           `json:"category"`
	GoalType  models.GoalType  `json:"goalType"`
	Frequency models.Frequency `json:"frequency"`
	GoalValue int              `json:"goalValue"`
	Unit      string           `json:"unit"`
	Icon      string           `json:"icon"`
	Color     string           `json:"color"`
}

// GetHabitsForDate returns the progress views of the user's active
// habits for the given day (YYYY-MM-DD).
func (s *HabitService) GetHabitsForDate(userID, day string) ([]HabitProgress, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	habits, err := s.store.GetActiveHabits(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load habits: %w", err)
	}

	views := make([]HabitProgress, 0, len(habits))
	for _, habit := range habits {
		view, err := s.progressFor(habit, day)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// CreateHabit validates and persists a new active habit for the user,
// applying defaults for omitted fields. Fails with Conflict when an
// active habit with the same name (case-insensitive) already exists.
func (s *HabitService) CreateHabit(userID string, input CreateHabitInput) (HabitProgress, error) {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HabitProgress{}, apperr.NotFound("user not found")
		}
		return HabitProgress{}, fmt.Errorf("failed to load user: %w", err)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return HabitProgress{}, apperr.Invalid("习惯名称不能为空")
	}

	exists, err := s.store.ActiveHabitNameExists(userID, name)
	if err != nil {
		return HabitProgress{}, err
	}
	if exists {
		logger.Warn("duplicate habit name", "user", userID, "name", name)
		return HabitProgress{}, apperr.Conflict("同名习惯已存在")
	}

	now := time.Now()
	habit := models.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Category:  input.Category,
		GoalType:  input.GoalType,
		Frequency: input.Frequency,
		GoalValue: input.GoalValue,
		Unit:      input.Unit,
		Icon:      input.Icon,
		Color:     input.Color,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if habit.Category == "" {
		habit.Category = constants.DefaultHabitCategory
	}
	if habit.GoalType == "" {
		habit.GoalType = models.GoalQuantitative
	}
	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}
	if habit.GoalValue <= 0 {
		habit.GoalValue = constants.DefaultHabitGoal
	}
	if habit.Unit == "" {
		habit.Unit = constants.DefaultHabitUnit
	}
	if habit.Icon == "" {
		habit.Icon = constants.DefaultHabitIcon
	}
	if habit.Color == "" {
		habit.Color = constants.DefaultHabitColor
	}

	if !habit.GoalType.Valid() {
		return HabitProgress{}, apperr.Invalid("unknown goal type %q", habit.GoalType)
	}
	if !habit.Frequency.Valid() {
		return HabitProgress{}, apperr.Invalid("unknown frequency %q", habit.Frequency)
	}

	if err := s.store.CreateHabit(habit); err != nil {
		return HabitProgress{}, err
	}
	return s.progressFor(habit, utils.Today())
}

// LogProgress adds increment to today's log row for the habit, creating
// it when absent, and returns the refreshed progress view. The increment
// happens inside the store in a single statement, so concurrent calls
// do not lose updates.
func (s *HabitService) LogProgress(habitID string, increment int) (HabitProgress, error) {
	if increment <= 0 {
		return HabitProgress{}, apperr.Invalid("increment must be positive")
	}

	habit, err := s.store.GetHabit(habitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return HabitProgress{}, apperr.NotFound("habit not found")
		}
		return HabitProgress{}, fmt.Errorf("failed to load habit: %w", err)
	}

	today := utils.Today()
	if err := s.store.IncrementHabitLog(habit.ID, today, increment, habit.GoalValue); err != nil {
		return HabitProgress{}, err
	}

	logger.Debug("habit progress logged", "habit", habit.ID, "increment", increment)
	return s.progressFor(habit, today)
}

// SeedHistory generates roughly a month of demo log history for each of
// the user's active habits. Days already logged keep their values.
func (s *HabitService) SeedHistory(userID string) error {
	if _, err := s.store.GetUser(userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	habits, err := s.store.GetActiveHabits(userID)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, habit := range habits {
		for i := 1; i <= 30; i++ {
			// 70% chance of some activity on a given day.
			if rand.Float64() <= 0.3 {
				continue
			}
			val := rand.Intn(habit.GoalValue*3/2 + 1)
			if val == 0 {
				continue
			}
			log := models.HabitLog{
				ID:           uuid.New().String(),
				HabitID:      habit.ID,
				Day:          utils.FormatDay(now.AddDate(0, 0, -i)),
				CurrentValue: val,
				IsCompleted:  val >= habit.GoalValue,
				CreatedAt:    now,
			}
			if err := s.store.InsertHabitLog(log); err != nil {
				return err
			}
		}
	}
	return nil
}

// progressFor assembles the habit's progress view for the given day.
func (s *HabitService) progressFor(habit models.Habit, day string) (HabitProgress, error) {
	current, err := s.currentValue(habit, day)
	if err != nil {
		return HabitProgress{}, err
	}

	streak, err := s.currentStreak(habit)
	if err != nil {
		return HabitProgress{}, err
	}

	lastSeven, err := s.lastSevenDays(habit)
	if err != nil {
		return HabitProgress{}, err
	}

	return HabitProgress{
		ID:            habit.ID,
		Name:          habit.Name,
		Category:      habit.Category,
		GoalType:      habit.GoalType,
		Frequency:     habit.Frequency,
		GoalValue:     habit.GoalValue,
		Unit:          habit.Unit,
		Icon:          habit.Icon,
		Color:         habit.Color,
		CurrentValue:  current,
		IsCompleted:   current >= habit.GoalValue,
		CurrentStreak: streak,
		LastSevenDays: lastSeven,
	}, nil
}

// currentValue sums the habit's logged values within the frequency
// bucket containing day. Absent logs mean zero.
func (s *HabitService) currentValue(habit models.Habit, day string) (int, error) {
	target, err := utils.ParseDay(day)
	if err != nil {
		return 0, apperr.Invalid("invalid date %q", day)
	}

	var from, to time.Time
	var inBucket func(time.Time) bool
	switch habit.Frequency {
	case models.FrequencyDaily:
		from, to = target, target
	case models.FrequencyWeekly:
		// The target's ISO week fits inside this window; the filter
		// below trims the neighboring weeks.
		from, to = target.AddDate(0, 0, -6), target.AddDate(0, 0, 6)
		inBucket = func(d time.Time) bool { return utils.SameISOWeek(d, target) }
	case models.FrequencyMonthly:
		from = time.Date(target.Year(), target.Month(), 1, 0, 0, 0, 0, target.Location())
		to = from.AddDate(0, 1, -1)
		inBucket = func(d time.Time) bool { return utils.SameMonth(d, target) }
	default:
		return 0, fmt.Errorf("unhandled frequency %q", habit.Frequency)
	}

	logs, err := s.store.GetHabitLogsInRange(habit.ID, utils.FormatDay(from), utils.FormatDay(to))
	if err != nil {
		return 0, err
	}

	total := 0
	for _, log := range logs {
		if inBucket != nil {
			d, err := utils.ParseDay(log.Day)
			if err != nil {
				return 0, err
			}
			if !inBucket(d) {
				continue
			}
		}
		total += log.CurrentValue
	}
	return total, nil
}

// currentStreak counts consecutive completed days ending at today or
// yesterday. A most-recent completion before yesterday means the chain
// is already broken and the streak is zero.
func (s *HabitService) currentStreak(habit models.Habit) (int, error) {
	today := time.Now()
	lookback := today.AddDate(0, -constants.StreakLookbackMonths, 0)

	logs, err := s.store.GetHabitLogsSince(habit.ID, utils.FormatDay(lookback))
	if err != nil {
		return 0, err
	}

	var completed []string
	for _, log := range logs {
		if log.IsCompleted {
			completed = append(completed, log.Day)
		}
	}
	if len(completed) == 0 {
		return 0, nil
	}

	todayDay := utils.FormatDay(today)
	yesterday := utils.FormatDay(today.AddDate(0, 0, -1))
	last := completed[0]
	if last != todayDay && last != yesterday {
		return 0, nil
	}

	streak := 0
	expected, err := utils.ParseDay(last)
	if err != nil {
		return 0, err
	}
	for _, day := range completed {
		if day != utils.FormatDay(expected) {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak, nil
}

// lastSevenDays builds the completion flags for [today-6 .. today],
// oldest first. Days without a completed log are false.
func (s *HabitService) lastSevenDays(habit models.Habit) ([]bool, error) {
	today := time.Now()
	from := utils.FormatDay(today.AddDate(0, 0, -(constants.LastSevenDays - 1)))

	logs, err := s.store.GetHabitLogsInRange(habit.ID, from, utils.FormatDay(today))
	if err != nil {
		return nil, err
	}

	completedByDay := make(map[string]bool, len(logs))
	for _, log := range logs {
		completedByDay[log.Day] = log.IsCompleted
	}

	status := make([]bool, constants.LastSevenDays)
	for i := 0; i < constants.LastSevenDays; i++ {
		day := utils.FormatDay(today.AddDate(0, 0, -(constants.LastSevenDays - 1 - i)))
		status[i] = completedByDay[day]
	}
	return status, nil
}
