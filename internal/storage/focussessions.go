package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/flowstate/api/internal/models"
)

func (s *Store) CreateFocusSession(session models.FocusSession) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO focus_sessions (id, user_id, category_id, habit_id, start_time,
			end_time, duration, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		session.ID, session.UserID, nullable(session.CategoryID), nullable(session.HabitID),
		session.StartTime.Format(time.RFC3339), session.EndTime.Format(time.RFC3339),
		session.Duration, string(session.Status), session.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert focus session: %w", err)
	}
	return nil
}

// GetFocusSessionsByUser returns the user's sessions, newest first.
func (s *Store) GetFocusSessionsByUser(userID string) ([]models.FocusSession, error) {
	rows, err := s.db.Query(s.rebind(
		focusSessionColumns+" FROM focus_sessions WHERE user_id = ? ORDER BY start_time DESC"), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFocusSessions(rows)
}

// GetFocusSessionsBetween returns the user's sessions whose start time
// falls in [start, end).
func (s *Store) GetFocusSessionsBetween(userID string, start, end time.Time) ([]models.FocusSession, error) {
	rows, err := s.db.Query(s.rebind(
		focusSessionColumns+` FROM focus_sessions
		WHERE user_id = ? AND start_time >= ? AND start_time < ?
		ORDER BY start_time`),
		userID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFocusSessions(rows)
}

// SumFocusByCategory sums focus-session minutes per category name for
// sessions starting within [fromDay, toDay]. Sessions without a category
// are excluded, matching the grouped query this mirrors.
func (s *Store) SumFocusByCategory(userID, fromDay, toDay string) ([]CategoryMinutes, error) {
	// start_time is RFC3339 text, so its first ten characters are the
	// calendar date in both backends.
	rows, err := s.db.Query(s.rebind(`
		SELECT c.name, SUM(f.duration)
		FROM focus_sessions f
		JOIN categories c ON c.id = f.category_id
		WHERE f.user_id = ? AND substr(f.start_time, 1, 10) >= ? AND substr(f.start_time, 1, 10) <= ?
		GROUP BY c.name`), userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []CategoryMinutes
	for rows.Next() {
		var cm CategoryMinutes
		if err := rows.Scan(&cm.Category, &cm.Minutes); err != nil {
			return nil, err
		}
		sums = append(sums, cm)
	}
	return sums, rows.Err()
}

const focusSessionColumns = `SELECT id, user_id, category_id, habit_id, start_time,
	end_time, duration, status, created_at`

func scanFocusSessions(rows rowScanner) ([]models.FocusSession, error) {
	var sessions []models.FocusSession
	for rows.Next() {
		var fs models.FocusSession
		var categoryID, habitID sql.NullString
		var startTime, endTime, status, createdAt string

		err := rows.Scan(&fs.ID, &fs.UserID, &categoryID, &habitID, &startTime,
			&endTime, &fs.Duration, &status, &createdAt)
		if err != nil {
			return nil, err
		}

		if categoryID.Valid {
			fs.CategoryID = &categoryID.String
		}
		if habitID.Valid {
			fs.HabitID = &habitID.String
		}
		fs.Status = models.SessionStatus(status)

		fs.StartTime, err = time.Parse(time.RFC3339, startTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse start_time for session %s: %w", fs.ID, err)
		}
		fs.EndTime, err = time.Parse(time.RFC3339, endTime)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end_time for session %s: %w", fs.ID, err)
		}
		fs.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for session %s: %w", fs.ID, err)
		}

		sessions = append(sessions, fs)
	}
	return sessions, rows.Err()
}
