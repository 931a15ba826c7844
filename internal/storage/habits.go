package storage

import (
	"fmt"
	"time"

	"github.com/flowstate/api/internal/models"
)

func (s *Store) CreateHabit(habit models.Habit) error {
	active := 0
	if habit.IsActive {
		active = 1
	}
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO habits (id, user_id, name, category, goal_type, frequency, goal_value,
			unit, icon, color, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		habit.ID, habit.UserID, habit.Name, habit.Category, string(habit.GoalType),
		string(habit.Frequency), habit.GoalValue, habit.Unit, habit.Icon, habit.Color,
		active, habit.CreatedAt.Format(time.RFC3339), habit.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	rows, err := s.db.Query(s.rebind(habitColumns+" FROM habits WHERE id = ?"), id)
	if err != nil {
		return models.Habit{}, err
	}
	defer rows.Close()

	habits, err := scanHabits(rows)
	if err != nil {
		return models.Habit{}, err
	}
	if len(habits) == 0 {
		return models.Habit{}, errNoRows("habit", id)
	}
	return habits[0], nil
}

// GetActiveHabits returns the user's active habits ordered by creation
// time.
func (s *Store) GetActiveHabits(userID string) ([]models.Habit, error) {
	rows, err := s.db.Query(s.rebind(
		habitColumns+" FROM habits WHERE user_id = ? AND is_active = 1 ORDER BY created_at"), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHabits(rows)
}

// ActiveHabitNameExists reports whether the user already has an active
// habit with the given name, compared case-insensitively.
func (s *Store) ActiveHabitNameExists(userID, name string) (bool, error) {
	var count int
	err := s.db.QueryRow(s.rebind(`
		SELECT COUNT(*) FROM habits
		WHERE user_id = ? AND is_active = 1 AND LOWER(name) = LOWER(?)`),
		userID, name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check habit name: %w", err)
	}
	return count > 0, nil
}

const habitColumns = `SELECT id, user_id, name, category, goal_type, frequency, goal_value,
	unit, icon, color, is_active, created_at, updated_at`

func scanHabits(rows rowScanner) ([]models.Habit, error) {
	var habits []models.Habit
	for rows.Next() {
		var h models.Habit
		var goalType, frequency, createdAt, updatedAt string
		var active int

		err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.Category, &goalType, &frequency,
			&h.GoalValue, &h.Unit, &h.Icon, &h.Color, &active, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}

		h.GoalType = models.GoalType(goalType)
		h.Frequency = models.Frequency(frequency)
		h.IsActive = active != 0

		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		h.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for habit %s: %w", h.ID, err)
		}

		habits = append(habits, h)
	}
	return habits, rows.Err()
}
