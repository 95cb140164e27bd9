// Package tracker applies day-level edits to the store: ticking checklist
// items, logging water and habits, and planning meals and activities.
package tracker

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/julianstephens/dietplan/internal/constants"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/storage"
	"github.com/julianstephens/dietplan/internal/utils"
)

type Tracker struct {
	store storage.Provider
}

func New(store storage.Provider) *Tracker {
	return &Tracker{store: store}
}

func (t *Tracker) itemDefinition(key string) (models.ChecklistItemDefinition, error) {
	items, err := t.store.GetChecklistItems()
	if err != nil {
		return models.ChecklistItemDefinition{}, err
	}
	key = models.NormalizeKey(key)
	for _, item := range items {
		if item.Key == key {
			return item, nil
		}
	}
	return models.ChecklistItemDefinition{}, apperrors.NotFound("checklist item", key)
}

// ToggleItem flips a boolean checklist item and returns the updated day.
func (t *Tracker) ToggleItem(date, key string) (models.DayChecklistRecord, error) {
	def, err := t.itemDefinition(key)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	if !def.IsBoolean() {
		return models.DayChecklistRecord{}, fmt.Errorf("%s is a counted item (max %v), set a value instead", def.Key, def.Max)
	}
	rec, err := t.store.GetChecklistDay(date)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	if rec.Items[def.Key] >= 1 {
		rec.Items[def.Key] = 0
	} else {
		rec.Items[def.Key] = 1
	}
	return rec, t.store.SaveChecklistDay(rec)
}

// SetItem stores value for a checklist item, clamped to [0, max].
func (t *Tracker) SetItem(date, key string, value float64) (models.DayChecklistRecord, error) {
	def, err := t.itemDefinition(key)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	rec, err := t.store.GetChecklistDay(date)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	rec.Items[def.Key] = clamp(value, 0, def.Max)
	return rec, t.store.SaveChecklistDay(rec)
}

// AddWater adds delta millilitres (negative to remove) to the water item.
func (t *Tracker) AddWater(date string, delta float64) (models.DayChecklistRecord, error) {
	def, err := t.itemDefinition(constants.WaterItemKey)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	rec, err := t.store.GetChecklistDay(date)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	rec.Items[def.Key] = clamp(rec.Items[def.Key]+delta, 0, def.Max)
	return rec, t.store.SaveChecklistDay(rec)
}

// ToggleHabit flips a boolean habit for the day.
func (t *Tracker) ToggleHabit(date, id string) (models.DayChecklistRecord, error) {
	habit, err := t.store.GetHabit(id)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	if habit.Type != models.HabitBoolean {
		return models.DayChecklistRecord{}, fmt.Errorf("habit %q is a %s habit, log a value instead", habit.Name, habit.Type)
	}
	rec, err := t.store.GetChecklistDay(date)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	if rec.Habits[id] == 1 {
		rec.Habits[id] = 0
	} else {
		rec.Habits[id] = 1
	}
	return rec, t.store.SaveChecklistDay(rec)
}

// LogHabit adds delta to a counted habit's value for the day, never going
// below zero. Boolean habits are set to 1 for a positive delta and 0 otherwise.
func (t *Tracker) LogHabit(date, id string, delta float64) (models.DayChecklistRecord, error) {
	habit, err := t.store.GetHabit(id)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	rec, err := t.store.GetChecklistDay(date)
	if err != nil {
		return models.DayChecklistRecord{}, err
	}
	if habit.Type == models.HabitBoolean {
		if delta > 0 {
			rec.Habits[id] = 1
		} else {
			rec.Habits[id] = 0
		}
	} else {
		rec.Habits[id] = math.Max(rec.Habits[id]+delta, 0)
	}
	return rec, t.store.SaveChecklistDay(rec)
}

// ActivityHabitID is the id of the boolean habit tracking activityID.
func ActivityHabitID(activityID string) string {
	return constants.ActivityHabitPrefix + activityID
}

// SetActivityPlanned adds or removes an activity from the day's plan.
// Planning creates the activity's habit when missing; unplanning clears that
// habit's value for the day.
func (t *Tracker) SetActivityPlanned(date, activityID string, planned bool) (models.PlannerDayRecord, error) {
	activities, err := t.store.GetActivities()
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	idx := slices.IndexFunc(activities, func(a models.Activity) bool { return a.ID == activityID })
	if idx < 0 {
		return models.PlannerDayRecord{}, apperrors.NotFound("activity", activityID)
	}
	activity := activities[idx]

	day, err := t.store.GetPlannerDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}

	habitID := ActivityHabitID(activityID)
	if planned {
		if !day.HasActivity(activityID) {
			day.Activities = append(day.Activities, activityID)
		}
		_, err := t.store.GetHabit(habitID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return models.PlannerDayRecord{}, err
		}
		if err != nil {
			habit := models.HabitDefinition{
				ID:   habitID,
				Name: activity.Name,
				Icon: activity.Icon,
				Type: models.HabitBoolean,
			}
			if err := t.store.SaveHabit(habit); err != nil {
				return models.PlannerDayRecord{}, fmt.Errorf("failed to create habit for %s: %w", activityID, err)
			}
		}
		return day, t.store.SavePlannerDay(day)
	}

	day.Activities = slices.DeleteFunc(day.Activities, func(id string) bool { return id == activityID })
	if err := t.store.SavePlannerDay(day); err != nil {
		return models.PlannerDayRecord{}, err
	}
	rec, err := t.store.GetChecklistDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	if _, ok := rec.Habits[habitID]; ok {
		delete(rec.Habits, habitID)
		if err := t.store.SaveChecklistDay(rec); err != nil {
			return models.PlannerDayRecord{}, err
		}
	}
	return day, nil
}

// SetMealRecipe makes slot recipe-backed, dropping any items.
func (t *Tracker) SetMealRecipe(date string, slot models.MealSlot, recipeID string) (models.PlannerDayRecord, error) {
	if _, err := t.store.GetRecipe(recipeID); err != nil {
		return models.PlannerDayRecord{}, err
	}
	day, err := t.store.GetPlannerDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	day.Meals[slot] = models.RecipeMeal(day.Meals[slot].Time, recipeID)
	return day, t.store.SavePlannerDay(day)
}

// AddMealItem appends an ingredient to slot, turning a recipe-backed meal
// into an item-backed one. A nil quantity uses the ingredient's base quantity,
// and an empty unit uses its catalog unit.
func (t *Tracker) AddMealItem(date string, slot models.MealSlot, ingredientID string, quantity *float64, unit string) (models.PlannerDayRecord, error) {
	ing, err := t.store.GetIngredient(ingredientID)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	day, err := t.store.GetPlannerDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}

	qty := ing.DefaultQuantity()
	if quantity != nil {
		if *quantity <= 0 {
			return models.PlannerDayRecord{}, fmt.Errorf("quantity must be positive (got %v)", *quantity)
		}
		qty = *quantity
	}
	if unit == "" {
		unit = ing.Unit
	}

	meal := day.Meals[slot]
	var items []models.StructuredRef
	if meal.Kind() == models.MealItems {
		items = meal.Items
	}
	items = append(items, models.StructuredRef{IngredientID: ing.ID, Quantity: qty, Unit: unit})
	day.Meals[slot] = models.ItemsMeal(meal.Time, items)
	return day, t.store.SavePlannerDay(day)
}

// RemoveMealItem drops the item at index from slot.
func (t *Tracker) RemoveMealItem(date string, slot models.MealSlot, index int) (models.PlannerDayRecord, error) {
	day, err := t.store.GetPlannerDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	meal := day.Meals[slot]
	if meal.Kind() != models.MealItems || index < 0 || index >= len(meal.Items) {
		return models.PlannerDayRecord{}, fmt.Errorf("%s has no item #%d", slot.Label(), index+1)
	}
	meal.Items = slices.Delete(slices.Clone(meal.Items), index, index+1)
	day.Meals[slot] = meal
	return day, t.store.SavePlannerDay(day)
}

// ClearMeal empties slot, keeping its time.
func (t *Tracker) ClearMeal(date string, slot models.MealSlot) (models.PlannerDayRecord, error) {
	day, err := t.store.GetPlannerDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	day.Meals[slot] = models.MealSelection{Time: day.Meals[slot].Time}
	return day, t.store.SavePlannerDay(day)
}

// SetMealTime changes the time of slot.
func (t *Tracker) SetMealTime(date string, slot models.MealSlot, hhmm string) (models.PlannerDayRecord, error) {
	if !utils.ValidateTimeFormat(hhmm) {
		return models.PlannerDayRecord{}, fmt.Errorf("invalid time format: %s (expected HH:MM)", hhmm)
	}
	day, err := t.store.GetPlannerDay(date)
	if err != nil {
		return models.PlannerDayRecord{}, err
	}
	meal := day.Meals[slot]
	meal.Time = hhmm
	day.Meals[slot] = meal
	return day, t.store.SavePlannerDay(day)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
