package sqlite

import (
	"database/sql"
	"fmt"

	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/utils"
)

func (s *Store) GetPlannerDay(date string) (models.PlannerDayRecord, error) {
	if !utils.ValidateDateFormat(date) {
		return models.PlannerDayRecord{}, apperrors.InvalidDate(date)
	}
	days, err := s.queryPlannerDays("WHERE date = ?", date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	if len(days) > 0 {
		return days[0], nil
	}

	activities, err := s.GetActivities()
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	return models.PlannerDayFor(date, activities)
}

func (s *Store) GetPlannerDays(start, end string) ([]models.PlannerDayRecord, error) {
	return s.queryPlannerDays("WHERE date BETWEEN ? AND ?", start, end)
}

func (s *Store) getAllPlannerDays() ([]models.PlannerDayRecord, error) {
	return s.queryPlannerDays("")
}

func (s *Store) SavePlannerDay(rec models.PlannerDayRecord) error {
	if !utils.ValidateDateFormat(rec.Date) {
		return apperrors.InvalidDate(rec.Date)
	}
	return s.withTx(func(tx *sql.Tx) error {
		return savePlannerDay(tx, rec)
	})
}

func savePlannerDay(tx *sql.Tx, rec models.PlannerDayRecord) error {
	if _, err := tx.Exec("INSERT OR IGNORE INTO planner_days (date) VALUES (?)", rec.Date); err != nil {
		return fmt.Errorf("failed to save planner day %s: %w", rec.Date, err)
	}
	for _, table := range []string{"planner_meals", "planner_meal_items", "planner_activities"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE date = ?", rec.Date); err != nil {
			return fmt.Errorf("failed to clear %s for %s: %w", table, rec.Date, err)
		}
	}

	for slot, meal := range rec.Meals {
		var recipeID sql.NullString
		if meal.Kind() == models.MealRecipe {
			recipeID = sql.NullString{String: meal.RecipeID, Valid: true}
		}
		if _, err := tx.Exec("INSERT INTO planner_meals (date, slot, time, recipe_id) VALUES (?, ?, ?, ?)",
			rec.Date, string(slot), meal.Time, recipeID); err != nil {
			return fmt.Errorf("failed to save %s meal on %s: %w", slot, rec.Date, err)
		}
		if meal.Kind() != models.MealItems {
			continue
		}
		for pos, item := range meal.Items {
			if _, err := tx.Exec(`
				INSERT INTO planner_meal_items (date, slot, position, ingredient_id, quantity, unit)
				VALUES (?, ?, ?, ?, ?, ?)`,
				rec.Date, string(slot), pos, item.IngredientID, item.Quantity, item.Unit); err != nil {
				return fmt.Errorf("failed to save %s item on %s: %w", slot, rec.Date, err)
			}
		}
	}

	for pos, id := range rec.Activities {
		if _, err := tx.Exec("INSERT OR IGNORE INTO planner_activities (date, position, activity_id) VALUES (?, ?, ?)",
			rec.Date, pos, id); err != nil {
			return fmt.Errorf("failed to save activity %s on %s: %w", id, rec.Date, err)
		}
	}
	return nil
}

func (s *Store) queryPlannerDays(where string, args ...any) ([]models.PlannerDayRecord, error) {
	rows, err := s.db.Query("SELECT date FROM planner_days "+where+" ORDER BY date", args...)
	if err != nil {
		return nil, err
	}
	var days []models.PlannerDayRecord
	index := make(map[string]int)
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			rows.Close()
			return nil, err
		}
		index[date] = len(days)
		days = append(days, models.PlannerDayRecord{
			Date:       date,
			Meals:      make(map[models.MealSlot]models.MealSelection),
			Activities: []string{},
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return days, nil
	}

	if err := s.loadMeals(days, index, where, args); err != nil {
		return nil, err
	}
	if err := s.loadMealItems(days, index, where, args); err != nil {
		return nil, err
	}
	if err := s.loadPlannedActivities(days, index, where, args); err != nil {
		return nil, err
	}
	return days, nil
}

func (s *Store) loadMeals(days []models.PlannerDayRecord, index map[string]int, where string, args []any) error {
	rows, err := s.db.Query("SELECT date, slot, time, recipe_id FROM planner_meals "+where, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var date, slot, mealTime string
		var recipeID sql.NullString
		if err := rows.Scan(&date, &slot, &mealTime, &recipeID); err != nil {
			return err
		}
		i, ok := index[date]
		if !ok {
			continue
		}
		days[i].Meals[models.MealSlot(slot)] = models.MealSelection{Time: mealTime, RecipeID: recipeID.String}
	}
	return rows.Err()
}

func (s *Store) loadMealItems(days []models.PlannerDayRecord, index map[string]int, where string, args []any) error {
	rows, err := s.db.Query("SELECT date, slot, ingredient_id, quantity, unit FROM planner_meal_items "+where+" ORDER BY date, slot, position", args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var date, slot string
		var ref models.StructuredRef
		if err := rows.Scan(&date, &slot, &ref.IngredientID, &ref.Quantity, &ref.Unit); err != nil {
			return err
		}
		i, ok := index[date]
		if !ok {
			continue
		}
		meal := days[i].Meals[models.MealSlot(slot)]
		meal.Items = append(meal.Items, ref)
		days[i].Meals[models.MealSlot(slot)] = meal
	}
	return rows.Err()
}

func (s *Store) loadPlannedActivities(days []models.PlannerDayRecord, index map[string]int, where string, args []any) error {
	rows, err := s.db.Query("SELECT date, activity_id FROM planner_activities "+where+" ORDER BY date, position", args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var date, id string
		if err := rows.Scan(&date, &id); err != nil {
			return err
		}
		if i, ok := index[date]; ok {
			days[i].Activities = append(days[i].Activities, id)
		}
	}
	return rows.Err()
}
