package sqlite

import (
	"fmt"
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
)

// dataTables are emptied by Import before the new document is written.
var dataTables = []string{
	"checklist_items",
	"checklist_days",
	"checklist_values",
	"habits",
	"ingredients",
	"recipes",
	"recipe_ingredients",
	"activities",
	"planner_days",
	"planner_meals",
	"planner_meal_items",
	"planner_activities",
	"shopping_items",
	"week_history",
	"prep_tasks",
}

// Export reads every collection into a single document. LastUpdated is the
// time of the last local write.
func (s *Store) Export() (models.Data, error) {
	var data models.Data
	var err error

	if data.Checklist, err = s.GetAllChecklistDays(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export checklist: %w", err)
	}
	if data.Planner, err = s.getAllPlannerDays(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export planner: %w", err)
	}
	if data.Recipes, err = s.GetRecipes(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export recipes: %w", err)
	}
	if data.Ingredients, err = s.GetIngredients(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export ingredients: %w", err)
	}
	if data.Activities, err = s.GetActivities(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export activities: %w", err)
	}
	if data.Habits, err = s.GetHabits(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export habits: %w", err)
	}
	if data.ChecklistItems, err = s.GetChecklistItems(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export checklist items: %w", err)
	}
	if data.ShoppingList, err = s.GetShoppingItems(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export shopping list: %w", err)
	}
	if data.History, err = s.GetHistory(); err != nil {
		return models.Data{}, fmt.Errorf("failed to export history: %w", err)
	}

	data.WeeklyPrep = make(map[string][]models.PrepTask, len(models.PrepDays))
	for _, day := range models.PrepDays {
		if data.WeeklyPrep[day], err = s.GetPrepTasks(day); err != nil {
			return models.Data{}, fmt.Errorf("failed to export %s prep: %w", day, err)
		}
	}

	settings, err := s.GetSettings()
	if err != nil {
		return models.Data{}, fmt.Errorf("failed to read settings: %w", err)
	}
	if settings.LastModifiedAt != "" {
		data.LastUpdated, err = time.Parse(time.RFC3339Nano, settings.LastModifiedAt)
		if err != nil {
			return models.Data{}, fmt.Errorf("invalid %s setting: %w", constants.SettingLastModifiedAt, err)
		}
	}
	return data, nil
}

// Import replaces every collection with the contents of data in one
// transaction. The modification time becomes data.LastUpdated when set, so a
// pulled document is not mistaken for a newer local edit.
func (s *Store) Import(data models.Data) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range dataTables {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, item := range data.ChecklistItems {
		if err := item.Validate(); err != nil {
			return err
		}
		if err := saveChecklistItem(tx, item); err != nil {
			return err
		}
	}
	for _, rec := range data.Checklist {
		if err := saveChecklistDay(tx, rec); err != nil {
			return err
		}
	}

	// Habits are listed by creation time, so keep the document order.
	base := s.now().UTC()
	for i, h := range data.Habits {
		if err := h.Validate(); err != nil {
			return err
		}
		createdAt := base.Add(time.Duration(i) * time.Millisecond).Format(time.RFC3339Nano)
		if err := saveHabit(tx, h, createdAt); err != nil {
			return err
		}
	}

	for _, ing := range data.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
		if err := saveIngredient(tx, ing); err != nil {
			return err
		}
	}
	for _, r := range data.Recipes {
		if err := r.Validate(); err != nil {
			return err
		}
		if err := saveRecipe(tx, r); err != nil {
			return err
		}
	}
	for _, a := range data.Activities {
		if err := a.Validate(); err != nil {
			return err
		}
		if err := saveActivity(tx, a); err != nil {
			return err
		}
	}
	for _, rec := range data.Planner {
		if err := savePlannerDay(tx, rec); err != nil {
			return err
		}
	}
	for _, item := range data.ShoppingList {
		if _, err := addShoppingItem(tx, item); err != nil {
			return err
		}
	}
	for _, snap := range data.History {
		if err := addWeekSnapshot(tx, snap); err != nil {
			return err
		}
	}
	for day, tasks := range data.WeeklyPrep {
		day, err := models.ParsePrepDay(day)
		if err != nil {
			return err
		}
		if err := savePrepTasks(tx, day, tasks); err != nil {
			return err
		}
	}

	modified := data.LastUpdated
	if modified.IsZero() {
		modified = s.now()
	}
	if err := setSetting(tx, constants.SettingLastModifiedAt, modified.UTC().Format(time.RFC3339Nano)); err != nil {
		return err
	}
	return tx.Commit()
}
