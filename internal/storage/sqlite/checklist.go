package sqlite

import (
	"database/sql"
	"fmt"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

const (
	kindItem  = "item"
	kindHabit = "habit"
)

func (s *Store) GetChecklistDay(date string) (models.DayChecklistRecord, error) {
	if !utils.ValidateDateFormat(date) {
		return models.DayChecklistRecord{}, apperrors.InvalidDate(date)
	}
	days, err := s.queryChecklistDays("WHERE date = ?", date)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	if len(days) == 0 {
		return models.NewDayChecklistRecord(date), nil
	}
	return days[0], nil
}

func (s *Store) SaveChecklistDay(rec models.DayChecklistRecord) error {
	if !utils.ValidateDateFormat(rec.Date) {
		return apperrors.InvalidDate(rec.Date)
	}
	return s.withTx(func(tx *sql.Tx) error {
		return saveChecklistDay(tx, rec)
	})
}

func saveChecklistDay(tx *sql.Tx, rec models.DayChecklistRecord) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO checklist_days (date) VALUES (?)", rec.Date); err != nil {
		return fmt.Errorf("failed to save checklist day %s: %w", rec.Date, err)
	}
	if _, err := tx.Exec("DELETE FROM checklist_values WHERE date = ?", rec.Date); err != nil {
		return fmt.Errorf("failed to clear checklist day %s: %w", rec.Date, err)
	}

	stmt, err := tx.Prepare("INSERT INTO checklist_values (date, kind, key, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range rec.Items {
		if _, err := stmt.Exec(rec.Date, kindItem, key, value); err != nil {
			return fmt.Errorf("failed to save item %s on %s: %w", key, rec.Date, err)
		}
	}
	for key, value := range rec.Habits {
		if _, err := stmt.Exec(rec.Date, kindHabit, key, value); err != nil {
			return fmt.Errorf("failed to save habit %s on %s: %w", key, rec.Date, err)
		}
	}
	return nil
}

// GetChecklistDays returns the stored days between start and end inclusive,
// ordered by date.
func (s *Store) GetChecklistDays(start, end string) ([]models.DayChecklistRecord, error) {
	return s.queryChecklistDays("WHERE date BETWEEN ? AND ?", start, end)
}

func (s *Store) GetAllChecklistDays() ([]models.DayChecklistRecord, error) {
	return s.queryChecklistDays("")
}

func (s *Store) queryChecklistDays(where string, args ...any) ([]models.DayChecklistRecord, error) {
	rows, err := s.db.Query("SELECT date FROM checklist_days "+where+" ORDER BY date", args...)
	if err != nil {
		return nil, err
	}
	var days []models.DayChecklistRecord
	index := make(map[string]int)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			rows.Close()
			return nil, err
		}
		index[date] = len(days)
		days = append(days, models.NewDayChecklistRecord(date))
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return days, nil
	}

	rows, err = s.db.Query("SELECT date, kind, key, value FROM checklist_values "+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var date, kind, key string
		var value float64
		if err := rows.Scan(&date, &kind, &key, &value); err != nil {
			return nil, err
		}
		i, ok := index[date]
		if !ok {
			continue
		}
		if kind == kindHabit {
			days[i].Habits[key] = value
		} else {
			days[i].Items[key] = value
		}
	}
	return days, rows.Err()
}

func (s *Store) ResetChecklistHistory() error {
	return s.withTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM checklist_values"); err != nil {
			return err
		}
		_, err := tx.Exec("DELETE FROM checklist_days")
		return err
	})
}

func (s *Store) GetChecklistItems() ([]models.ChecklistItemDefinition, error) {
	rows, err := s.db.Query("SELECT key, label, icon, max_value, sort_order FROM checklist_items ORDER BY sort_order, key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ChecklistItemDefinition
	for rows.Next() {
		var d models.ChecklistItemDefinition
		if err := rows.Scan(&d.Key, &d.Label, &d.Icon, &d.Max, &d.Order); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (s *Store) SaveChecklistItem(item models.ChecklistItemDefinition) error {
	if err := item.Validate(); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		return saveChecklistItem(tx, item)
	})
}

func saveChecklistItem(tx *sql.Tx, item models.ChecklistItemDefinition) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO checklist_items (key, label, icon, max_value, sort_order)
		VALUES (?, ?, ?, ?, ?)`,
		item.Key, item.Label, item.Icon, item.Max, item.Order)
	if err != nil {
		return fmt.Errorf("failed to save checklist item %s: %w", item.Key, err)
	}
	return nil
}

func (s *Store) DeleteChecklistItem(key string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM checklist_items WHERE key = ?", key)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("checklist item", key)
		}
		_, err = tx.Exec("DELETE FROM checklist_values WHERE kind = ? AND key = ?", kindItem, key)
		return err
	})
}
