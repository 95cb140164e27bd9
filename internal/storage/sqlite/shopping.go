package sqlite

import (
	"database/sql"
	"fmt"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
)

func (s *Store) GetShoppingItems() ([]models.ShoppingItem, error) {
	rows, err := s.db.Query("SELECT name, quantity, unit, category, checked FROM shopping_items ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ShoppingItem
	for rows.Next() {
		var item models.ShoppingItem
		var category string
		var checked int
		if err := rows.Scan(&item.Name, &item.Quantity, &item.Unit, &category, &checked); err != nil {
			return nil, err
		}
		item.Category = models.IngredientCategory(category)
		item.Checked = checked != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) AddShoppingItem(item models.ShoppingItem) (bool, error) {
	if item.Name == "" {
		return false, fmt.Errorf("shopping item name cannot be empty")
	}
	var added bool
	err := s.withTx(func(tx *sql.Tx) error {
		var err error
		added, err = addShoppingItem(tx, item)
		return err
	})
	return added, err
}

func addShoppingItem(tx *sql.Tx, item models.ShoppingItem) (bool, error) {
	res, err := tx.Exec(`
		INSERT OR IGNORE INTO shopping_items (name, quantity, unit, category, checked, position)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM shopping_items))`,
		item.Name, item.Quantity, item.Unit, string(item.Category), boolToInt(item.Checked))
	if err != nil {
		return false, fmt.Errorf("failed to add shopping item %s: %w", item.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) SetShoppingItemChecked(name string, checked bool) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("UPDATE shopping_items SET checked = ? WHERE name = ?", boolToInt(checked), name)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("shopping item", name)
		}
		return nil
	})
}

func (s *Store) RemoveShoppingItem(name string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM shopping_items WHERE name = ?", name)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("shopping item", name)
		}
		return nil
	})
}

func (s *Store) ClearCheckedShoppingItems() (int, error) {
	var removed int64
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM shopping_items WHERE checked = 1")
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	return int(removed), err
}
