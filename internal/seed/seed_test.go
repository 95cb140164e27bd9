package seed

import (
	"testing"

	"github.com/julianstephens/dietplan/internal/constants"
)

func TestSeedDataIsValid(t *testing.T) {
	for _, item := range ChecklistItems() {
		if err := item.Validate(); err != nil {
			t.Errorf("checklist item %s: %v", item.Key, err)
		}
	}
	for _, ing := range Ingredients() {
		if err := ing.Validate(); err != nil {
			t.Errorf("ingredient %s: %v", ing.ID, err)
		}
	}
	for _, a := range Activities() {
		if err := a.Validate(); err != nil {
			t.Errorf("activity %s: %v", a.ID, err)
		}
	}
}

func TestRecipesReferenceCatalog(t *testing.T) {
	catalog := make(map[string]bool)
	for _, ing := range Ingredients() {
		if catalog[ing.ID] {
			t.Errorf("duplicate ingredient id %s", ing.ID)
		}
		catalog[ing.ID] = true
	}
	for _, r := range Recipes() {
		if err := r.Validate(); err != nil {
			t.Errorf("recipe %s: %v", r.ID, err)
		}
		for _, ref := range r.Ingredients {
			if !catalog[ref.IngredientID] {
				t.Errorf("recipe %s references unknown ingredient %s", r.ID, ref.IngredientID)
			}
		}
	}
}

func TestWaterItemUsesMillilitres(t *testing.T) {
	var found bool
	for _, item := range ChecklistItems() {
		if item.Key == constants.WaterItemKey {
			found = true
			if item.Max != constants.DefaultWaterGoalMl {
				t.Errorf("water max = %v, want %v", item.Max, constants.DefaultWaterGoalMl)
			}
		}
	}
	if !found {
		t.Error("water item missing from defaults")
	}
}

func TestPrepTasksCoverBothDays(t *testing.T) {
	tasks := PrepTasks()
	for _, d := range []string{constants.PrepDaySunday, constants.PrepDayWednesday} {
		if len(tasks[d]) == 0 {
			t.Errorf("no prep tasks for %s", d)
		}
	}
}
