package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
)

func (s *Store) GetHabits() ([]models.HabitDefinition, error) {
	rows, err := s.db.Query("SELECT id, name, icon, type, target FROM habits ORDER BY created_at, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.HabitDefinition
	for rows.Next() {
		var h models.HabitDefinition
		if err := rows.Scan(&h.ID, &h.Name, &h.Icon, &h.Type, &h.Target); err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *Store) GetHabit(id string) (models.HabitDefinition, error) {
	row := s.db.QueryRow("SELECT id, name, icon, type, target FROM habits WHERE id = ?", id)

	var h models.HabitDefinition
	err := row.Scan(&h.ID, &h.Name, &h.Icon, &h.Type, &h.Target)
	if errors.Is(err, sql.ErrNoRows) {
		return models.HabitDefinition{}, apperrors.NotFound("habit", id)
	}
	if err != nil {
		return models.HabitDefinition{}, err
	}
	return h, nil
}

// SaveHabit inserts or updates a habit. An existing habit keeps its
// creation time so list order is stable.
func (s *Store) SaveHabit(habit models.HabitDefinition) error {
	if err := habit.Validate(); err != nil {
		return err
	}
	createdAt := s.now().UTC().Format(time.RFC3339Nano)
	return s.withTx(func(tx *sql.Tx) error {
		return saveHabit(tx, habit, createdAt)
	})
}

func saveHabit(tx *sql.Tx, habit models.HabitDefinition, createdAt string) error {
	_, err := tx.Exec(`
		INSERT INTO habits (id, name, icon, type, target, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			icon = excluded.icon,
			type = excluded.type,
			target = excluded.target`,
		habit.ID, habit.Name, habit.Icon, string(habit.Type), habit.Target, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save habit %s: %w", habit.ID, err)
	}
	return nil
}

func (s *Store) DeleteHabit(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM habits WHERE id = ?", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("habit", id)
		}
		_, err = tx.Exec("DELETE FROM checklist_values WHERE kind = ? AND key = ?", kindHabit, id)
		return err
	})
}
