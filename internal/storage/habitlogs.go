package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/flowstate/api/internal/models"
)

// IncrementHabitLog adds increment to the log row for (habitID, day),
// creating the row when absent, and recomputes the completed flag
// against goalValue — all in a single statement, so concurrent
// increments serialize in the database and none are lost.
func (s *Store) IncrementHabitLog(habitID, day string, increment, goalValue int) error {
	completed := 0
	if increment >= goalValue {
		completed = 1
	}
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO habit_logs (id, habit_id, day, current_value, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, day) DO UPDATE SET
			current_value = habit_logs.current_value + excluded.current_value,
			is_completed = CASE
				WHEN habit_logs.current_value + excluded.current_value >= ? THEN 1
				ELSE 0
			END`),
		uuid.New().String(), habitID, day, increment, completed,
		time.Now().Format(time.RFC3339), goalValue)
	if err != nil {
		return fmt.Errorf("failed to upsert habit log: %w", err)
	}
	return nil
}

// InsertHabitLog inserts a fully specified log row. Used by the demo
// history seeder; regular progress logging goes through
// IncrementHabitLog.
func (s *Store) InsertHabitLog(log models.HabitLog) error {
	completed := 0
	if log.IsCompleted {
		completed = 1
	}
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO habit_logs (id, habit_id, day, current_value, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (habit_id, day) DO NOTHING`),
		log.ID, log.HabitID, log.Day, log.CurrentValue, completed,
		log.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert habit log: %w", err)
	}
	return nil
}

// GetHabitLogsSince returns the habit's logs with day > afterDay,
// newest first.
func (s *Store) GetHabitLogsSince(habitID, afterDay string) ([]models.HabitLog, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, habit_id, day, current_value, is_completed, created_at
		FROM habit_logs
		WHERE habit_id = ? AND day > ?
		ORDER BY day DESC`), habitID, afterDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHabitLogs(rows)
}

// GetHabitLogsInRange returns the habit's logs with fromDay <= day <=
// toDay, oldest first.
func (s *Store) GetHabitLogsInRange(habitID, fromDay, toDay string) ([]models.HabitLog, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, habit_id, day, current_value, is_completed, created_at
		FROM habit_logs
		WHERE habit_id = ? AND day >= ? AND day <= ?
		ORDER BY day`), habitID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanHabitLogs(rows)
}

// DailyHabitStats is one day's completed-vs-total habit counts for a
// user.
type DailyHabitStats struct {
	Day             string
	TotalHabits     int
	CompletedHabits int
}

// GetDailyHabitStats groups the user's habit logs by day over
// [fromDay, toDay], counting distinct habits logged and habits
// completed, ordered by day ascending.
func (s *Store) GetDailyHabitStats(userID, fromDay, toDay string) ([]DailyHabitStats, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT l.day, COUNT(DISTINCT l.habit_id), SUM(l.is_completed)
		FROM habit_logs l
		JOIN habits h ON h.id = l.habit_id
		WHERE h.user_id = ? AND l.day >= ? AND l.day <= ?
		GROUP BY l.day
		ORDER BY l.day`), userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []DailyHabitStats
	for rows.Next() {
		var st DailyHabitStats
		if err := rows.Scan(&st.Day, &st.TotalHabits, &st.CompletedHabits); err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func scanHabitLogs(rows rowScanner) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	for rows.Next() {
		var l models.HabitLog
		var completed int
		var createdAt string

		err := rows.Scan(&l.ID, &l.HabitID, &l.Day, &l.CurrentValue, &completed, &createdAt)
		if err != nil {
			return nil, err
		}

		l.IsCompleted = completed != 0
		l.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for log %s: %w", l.ID, err)
		}

		logs = append(logs, l)
	}
	return logs, rows.Err()
}
