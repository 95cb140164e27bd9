package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/dietplan/internal/models"
)

func (s *Store) AddWeekSnapshot(snap models.WeekSnapshot) error {
	return s.withTx(func(tx *sql.Tx) error {
		return addWeekSnapshot(tx, snap)
	})
}

func addWeekSnapshot(tx *sql.Tx, snap models.WeekSnapshot) error {
	daily, err := json.Marshal(snap.DailyPercentages)
	if err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO week_history (week_start, daily_percentages, weekly_percentage, recorded_at)
		VALUES (?, ?, ?, ?)`,
		snap.WeekStart, string(daily), snap.WeeklyPercentage, snap.RecordedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save week %s: %w", snap.WeekStart, err)
	}
	return nil
}

// GetHistory returns snapshots in the order they were recorded.
func (s *Store) GetHistory() ([]models.WeekSnapshot, error) {
	rows, err := s.db.Query("SELECT week_start, daily_percentages, weekly_percentage, recorded_at FROM week_history ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []models.WeekSnapshot
	for rows.Next() {
		var snap models.WeekSnapshot
		var daily, recordedAt string
		if err := rows.Scan(&snap.WeekStart, &daily, &snap.WeeklyPercentage, &recordedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(daily), &snap.DailyPercentages); err != nil {
			return nil, fmt.Errorf("week %s: invalid daily percentages: %w", snap.WeekStart, err)
		}
		snap.RecordedAt, err = time.Parse(time.RFC3339, recordedAt)
		if err != nil {
			return nil, fmt.Errorf("week %s: failed to parse recorded_at: %w", snap.WeekStart, err)
		}
		history = append(history, snap)
	}
	return history, rows.Err()
}

func (s *Store) GetPrepTasks(day string) ([]models.PrepTask, error) {
	day, err := models.ParsePrepDay(day)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT task, icon, done FROM prep_tasks WHERE day = ? ORDER BY position", day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.PrepTask{}
	for rows.Next() {
		var t models.PrepTask
		var done int
		if err := rows.Scan(&t.Task, &t.Icon, &done); err != nil {
			return nil, err
		}
		t.Done = done != 0
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SavePrepTasks replaces the task list for day.
func (s *Store) SavePrepTasks(day string, tasks []models.PrepTask) error {
	day, err := models.ParsePrepDay(day)
	if err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		return savePrepTasks(tx, day, tasks)
	})
}

func savePrepTasks(tx *sql.Tx, day string, tasks []models.PrepTask) error {
	if _, err := tx.Exec("DELETE FROM prep_tasks WHERE day = ?", day); err != nil {
		return err
	}
	for pos, t := range tasks {
		if _, err := tx.Exec("INSERT INTO prep_tasks (day, position, task, icon, done) VALUES (?, ?, ?, ?, ?)",
			day, pos, t.Task, t.Icon, boolToInt(t.Done)); err != nil {
			return fmt.Errorf("failed to save %s prep task %q: %w", day, t.Task, err)
		}
	}
	return nil
}
