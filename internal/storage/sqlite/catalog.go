package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
)

// Recipes

func (s *Store) GetRecipes() ([]models.Recipe, error) {
	rows, err := s.db.Query(`
		SELECT id, name, category, prep_time_min, portion, protein, carbs, fat, kcal, instructions
		FROM recipes ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	var recipes []models.Recipe
	index := make(map[string]int)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		index[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query("SELECT recipe_id, ingredient_id, quantity, unit FROM recipe_ingredients ORDER BY recipe_id, position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var recipeID string
		var ref models.StructuredRef
		if err := rows.Scan(&recipeID, &ref.IngredientID, &ref.Quantity, &ref.Unit); err != nil {
			return nil, err
		}
		if i, ok := index[recipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, ref)
		}
	}
	return recipes, rows.Err()
}

func (s *Store) GetRecipe(id string) (models.Recipe, error) {
	row := s.db.QueryRow(`
		SELECT id, name, category, prep_time_min, portion, protein, carbs, fat, kcal, instructions
		FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recipe{}, apperrors.NotFound("recipe", id)
	}
	if err != nil {
		return models.Recipe{}, err
	}

	rows, err := s.db.Query("SELECT ingredient_id, quantity, unit FROM recipe_ingredients WHERE recipe_id = ? ORDER BY position", id)
	if err != nil {
		return models.Recipe{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var ref models.StructuredRef
		if err := rows.Scan(&ref.IngredientID, &ref.Quantity, &ref.Unit); err != nil {
			return models.Recipe{}, err
		}
		r.Ingredients = append(r.Ingredients, ref)
	}
	return r, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (models.Recipe, error) {
	var r models.Recipe
	err := row.Scan(&r.ID, &r.Name, &r.Category, &r.PrepTimeMin, &r.Portion,
		&r.Macros.Protein, &r.Macros.Carbs, &r.Macros.Fat, &r.Macros.Kcal, &r.Instructions)
	return r, err
}

func (s *Store) SaveRecipe(recipe models.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		return saveRecipe(tx, recipe)
	})
}

func saveRecipe(tx *sql.Tx, r models.Recipe) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO recipes (id, name, category, prep_time_min, portion, protein, carbs, fat, kcal, instructions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Name, r.Category, r.PrepTimeMin, r.Portion,
		r.Macros.Protein, r.Macros.Carbs, r.Macros.Fat, r.Macros.Kcal, r.Instructions)
	if err != nil {
		return fmt.Errorf("failed to save recipe %s: %w", r.ID, err)
	}
	if _, err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", r.ID); err != nil {
		return err
	}
	for pos, ing := range r.Ingredients {
		if _, err := tx.Exec(`
			INSERT INTO recipe_ingredients (recipe_id, position, ingredient_id, quantity, unit)
			VALUES (?, ?, ?, ?, ?)`,
			r.ID, pos, ing.IngredientID, ing.Quantity, ing.Unit); err != nil {
			return fmt.Errorf("failed to save ingredient %s of recipe %s: %w", ing.IngredientID, r.ID, err)
		}
	}
	return nil
}

func (s *Store) DeleteRecipe(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM recipes WHERE id = ?", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("recipe", id)
		}
		_, err = tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", id)
		return err
	})
}

// Ingredients

func (s *Store) GetIngredients() ([]models.Ingredient, error) {
	rows, err := s.db.Query("SELECT id, name, icon, unit, category, base_quantity FROM ingredients ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}
	return ingredients, rows.Err()
}

func (s *Store) GetIngredient(id string) (models.Ingredient, error) {
	row := s.db.QueryRow("SELECT id, name, icon, unit, category, base_quantity FROM ingredients WHERE id = ?", id)
	ing, err := scanIngredient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Ingredient{}, apperrors.NotFound("ingredient", id)
	}
	return ing, err
}

func scanIngredient(row scanner) (models.Ingredient, error) {
	var ing models.Ingredient
	var category string
	var base sql.NullFloat64
	if err := row.Scan(&ing.ID, &ing.Name, &ing.Icon, &ing.Unit, &category, &base); err != nil {
		return models.Ingredient{}, err
	}
	ing.Category = models.NormalizeCategory(category)
	if base.Valid {
		q := base.Float64
		ing.BaseQuantity = &q
	}
	return ing, nil
}

func (s *Store) SaveIngredient(ing models.Ingredient) error {
	if err := ing.Validate(); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		return saveIngredient(tx, ing)
	})
}

func saveIngredient(tx *sql.Tx, ing models.Ingredient) error {
	var base sql.NullFloat64
	if ing.BaseQuantity != nil {
		base = sql.NullFloat64{Float64: *ing.BaseQuantity, Valid: true}
	}
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO ingredients (id, name, icon, unit, category, base_quantity)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ing.ID, ing.Name, ing.Icon, ing.Unit, string(models.NormalizeCategory(string(ing.Category))), base)
	if err != nil {
		return fmt.Errorf("failed to save ingredient %s: %w", ing.ID, err)
	}
	return nil
}

func (s *Store) DeleteIngredient(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM ingredients WHERE id = ?", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("ingredient", id)
		}
		return nil
	})
}

// Activities

func (s *Store) GetActivities() ([]models.Activity, error) {
	rows, err := s.db.Query("SELECT id, name, icon, time, days_of_week FROM activities ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		var days string
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon, &a.Time, &days); err != nil {
			return nil, err
		}
		a.DaysOfWeek, err = decodeWeekdays(days)
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Store) SaveActivity(a models.Activity) error {
	if err := a.Validate(); err != nil {
		return err
	}
	return s.withTx(func(tx *sql.Tx) error {
		return saveActivity(tx, a)
	})
}

func saveActivity(tx *sql.Tx, a models.Activity) error {
	_, err := tx.Exec(`
		INSERT OR REPLACE INTO activities (id, name, icon, time, days_of_week)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Icon, a.Time, encodeWeekdays(a.DaysOfWeek))
	if err != nil {
		return fmt.Errorf("failed to save activity %s: %w", a.ID, err)
	}
	return nil
}

func (s *Store) DeleteActivity(id string) error {
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM activities WHERE id = ?", id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.NotFound("activity", id)
		}
		return nil
	})
}

// encodeWeekdays stores weekdays as a comma separated list of 0-6.
func encodeWeekdays(days []time.Weekday) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) ([]time.Weekday, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q", p)
		}
		days = append(days, time.Weekday(n))
	}
	return days, nil
}
