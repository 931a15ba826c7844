package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/flowstate/api/internal/models"
)

func (s *Store) CreateTimeRecord(record models.TimeRecord) error {
	_, err := s.db.Exec(s.rebind(`
		INSERT INTO time_records (id, user_id, habit_id, title, subtitle, start_time,
			duration, category, color, record_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		record.ID, record.UserID, nullable(record.HabitID), record.Title, record.Subtitle,
		record.StartTime, record.Duration, record.Category, record.Color,
		record.RecordDate, record.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert time record: %w", err)
	}
	return nil
}

func (s *Store) GetTimeRecord(id string) (models.TimeRecord, error) {
	rows, err := s.db.Query(s.rebind(timeRecordColumns+" FROM time_records WHERE id = ?"), id)
	if err != nil {
		return models.TimeRecord{}, err
	}
	defer rows.Close()

	records, err := scanTimeRecords(rows)
	if err != nil {
		return models.TimeRecord{}, err
	}
	if len(records) == 0 {
		return models.TimeRecord{}, errNoRows("time record", id)
	}
	return records[0], nil
}

func (s *Store) UpdateTimeRecord(record models.TimeRecord) error {
	result, err := s.db.Exec(s.rebind(`
		UPDATE time_records SET habit_id = ?, title = ?, subtitle = ?, start_time = ?,
			duration = ?, category = ?, color = ?, record_date = ?
		WHERE id = ?`),
		nullable(record.HabitID), record.Title, record.Subtitle, record.StartTime,
		record.Duration, record.Category, record.Color, record.RecordDate, record.ID)
	if err != nil {
		return fmt.Errorf("failed to update time record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errNoRows("time record", record.ID)
	}
	return nil
}

func (s *Store) DeleteTimeRecord(id string) error {
	result, err := s.db.Exec(s.rebind("DELETE FROM time_records WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete time record: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errNoRows("time record", id)
	}
	return nil
}

func (s *Store) GetTimeRecordsByUser(userID string) ([]models.TimeRecord, error) {
	rows, err := s.db.Query(s.rebind(
		timeRecordColumns+" FROM time_records WHERE user_id = ? ORDER BY record_date, start_time"), userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeRecords(rows)
}

func (s *Store) GetTimeRecordsByUserAndDate(userID, day string) ([]models.TimeRecord, error) {
	rows, err := s.db.Query(s.rebind(
		timeRecordColumns+" FROM time_records WHERE user_id = ? AND record_date = ? ORDER BY start_time"),
		userID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTimeRecords(rows)
}

// CategoryMinutes is a category's summed minutes over a date range.
type CategoryMinutes struct {
	Category string
	Minutes  int64
}

// SumTimeByCategory sums time-record minutes per category for the user
// over [fromDay, toDay].
func (s *Store) SumTimeByCategory(userID, fromDay, toDay string) ([]CategoryMinutes, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT category, SUM(duration)
		FROM time_records
		WHERE user_id = ? AND record_date >= ? AND record_date <= ?
		GROUP BY category
		ORDER BY SUM(duration) DESC`), userID, fromDay, toDay)
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

// DailyCategoryMinutes is one (day, category) cell of the per-day
// breakdown.
type DailyCategoryMinutes struct {
	Day      string
	Category string
	Minutes  int64
}

// SumTimeByDateAndCategory sums time-record minutes per (day, category)
// for the user over [fromDay, toDay], ordered by day.
func (s *Store) SumTimeByDateAndCategory(userID, fromDay, toDay string) ([]DailyCategoryMinutes, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT record_date, category, SUM(duration)
		FROM time_records
		WHERE user_id = ? AND record_date >= ? AND record_date <= ?
		GROUP BY record_date, category
		ORDER BY record_date`), userID, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sums []DailyCategoryMinutes
	for rows.Next() {
		var dm DailyCategoryMinutes
		if err := rows.Scan(&dm.Day, &dm.Category, &dm.Minutes); err != nil {
			return nil, err
		}
		sums = append(sums, dm)
	}
	return sums, rows.Err()
}

const timeRecordColumns = `SELECT id, user_id, habit_id, title, subtitle, start_time,
	duration, category, color, record_date, created_at`

func scanTimeRecords(rows rowScanner) ([]models.TimeRecord, error) {
	var records []models.TimeRecord
	for rows.Next() {
		var r models.TimeRecord
		var habitID sql.NullString
		var createdAt string

		err := rows.Scan(&r.ID, &r.UserID, &habitID, &r.Title, &r.Subtitle, &r.StartTime,
			&r.Duration, &r.Category, &r.Color, &r.RecordDate, &createdAt)
		if err != nil {
			return nil, err
		}

		if habitID.Valid {
			r.HabitID = &habitID.String
		}
		r.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for record %s: %w", r.ID, err)
		}

		records = append(records, r)
	}
	return records, rows.Err()
}

// nullable converts an optional string reference into a driver-friendly
// NULL when absent.
func nullable(v *string) sql.NullString {
	if v == nil || *v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
