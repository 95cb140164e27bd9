package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/dietplan/internal/models"
)

func validData() models.Data {
	return models.Data{
		Ingredients: []models.Ingredient{
			{ID: "rice", Name: "Rice", Category: models.CategoryCarbs},
			{ID: "banana", Name: "Banana", Category: models.CategoryFruits},
		},
		Recipes: []models.Recipe{
			{ID: "bowl", Name: "Rice bowl", Ingredients: []models.StructuredRef{{IngredientID: "rice", Quantity: 100}}},
		},
		Activities: []models.Activity{{ID: "gym", Name: "Gym", Time: "07:00"}},
		Habits: []models.HabitDefinition{
			{ID: "read", Name: "Read", Type: models.HabitBoolean},
			{ID: "pushups", Name: "Push-ups", Type: models.HabitTimesPerDay, Target: 3},
		},
		ChecklistItems: []models.ChecklistItemDefinition{
			{Key: "lunch", Label: "Lunch", Max: 1},
			{Key: "water", Label: "Water", Max: 3000},
		},
		Checklist: []models.DayChecklistRecord{models.NewDayChecklistRecord("2026-03-02")},
		Planner: []models.PlannerDayRecord{{
			Date: "2026-03-02",
			Meals: map[models.MealSlot]models.MealSelection{
				models.MealLunch:     models.RecipeMeal("12:30", "bowl"),
				models.MealBreakfast: models.ItemsMeal("07:00", []models.StructuredRef{{IngredientID: "banana", Quantity: 1}}),
			},
			Activities: []string{"gym"},
		}},
	}
}

func conflictTypes(result ValidationResult) []ConflictType {
	var types []ConflictType
	for _, c := range result.Conflicts {
		types = append(types, c.Type)
	}
	return types
}

func TestValidateData_Clean(t *testing.T) {
	result := New().ValidateData(validData())
	if result.HasConflicts() {
		t.Errorf("expected no conflicts, got:\n%s", result.FormatReport())
	}
	if got := result.FormatReport(); got != "No problems detected." {
		t.Errorf("FormatReport() = %q", got)
	}
}

func TestValidateData(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.Data)
		want   []ConflictType
	}{
		{
			name: "recipe with unknown ingredient",
			mutate: func(d *models.Data) {
				d.Recipes[0].Ingredients = append(d.Recipes[0].Ingredients, models.StructuredRef{IngredientID: "saffron"})
			},
			want: []ConflictType{ConflictUnknownIngredient},
		},
		{
			name: "duplicate ingredient id",
			mutate: func(d *models.Data) {
				d.Ingredients = append(d.Ingredients, models.Ingredient{ID: "rice", Name: "Brown rice"})
			},
			want: []ConflictType{ConflictDuplicateID},
		},
		{
			name: "counted habit without target",
			mutate: func(d *models.Data) {
				d.Habits[1].Target = 0
			},
			want: []ConflictType{ConflictInvalidTarget},
		},
		{
			name: "checklist item with zero max",
			mutate: func(d *models.Data) {
				d.ChecklistItems[0].Max = 0
			},
			want: []ConflictType{ConflictInvalidTarget},
		},
		{
			name: "activity with invalid time",
			mutate: func(d *models.Data) {
				d.Activities[0].Time = "25:00"
			},
			want: []ConflictType{ConflictInvalidTime},
		},
		{
			name: "malformed checklist date",
			mutate: func(d *models.Data) {
				d.Checklist = append(d.Checklist, models.NewDayChecklistRecord("03/02/2026"))
			},
			want: []ConflictType{ConflictInvalidDate},
		},
		{
			name: "duplicate checklist date",
			mutate: func(d *models.Data) {
				d.Checklist = append(d.Checklist, models.NewDayChecklistRecord("2026-03-02"))
			},
			want: []ConflictType{ConflictDuplicateDate},
		},
		{
			name: "planner references missing catalog entries",
			mutate: func(d *models.Data) {
				d.Recipes = nil
				d.Activities = nil
			},
			want: []ConflictType{ConflictUnknownRecipe, ConflictUnknownActivity},
		},
		{
			name: "meal item with unknown ingredient",
			mutate: func(d *models.Data) {
				d.Planner[0].Meals[models.MealBreakfast] = models.ItemsMeal("07:00", []models.StructuredRef{{IngredientID: "kiwi", Quantity: 2}})
			},
			want: []ConflictType{ConflictUnknownIngredient},
		},
		{
			name: "bad meal time",
			mutate: func(d *models.Data) {
				d.Planner[0].Meals[models.MealLunch] = models.RecipeMeal("noon", "bowl")
			},
			want: []ConflictType{ConflictInvalidTime},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := validData()
			tt.mutate(&data)
			result := New().ValidateData(data)
			if diff := cmp.Diff(tt.want, conflictTypes(result)); diff != "" {
				t.Errorf("conflict types mismatch (-want +got):\n%s", diff)
			}
			if !strings.HasPrefix(result.FormatReport(), "Problems detected:") {
				t.Errorf("unexpected report:\n%s", result.FormatReport())
			}
		})
	}
}

func TestAutoFix(t *testing.T) {
	data := validData()
	data.Recipes = nil
	data.Activities = nil
	data.Planner[0].Meals[models.MealBreakfast] = models.ItemsMeal("07:00", []models.StructuredRef{
		{IngredientID: "banana", Quantity: 1},
		{IngredientID: "kiwi", Quantity: 2},
	})
	first := models.NewDayChecklistRecord("2026-03-02")
	first.Items["lunch"] = 1
	second := models.NewDayChecklistRecord("2026-03-02")
	second.Items["lunch"] = 0
	data.Checklist = []models.DayChecklistRecord{first, models.NewDayChecklistRecord("2026-03-03"), second}

	result := New().ValidateData(data)
	if !result.Fixable() {
		t.Fatalf("expected fixable conflicts, got:\n%s", result.FormatReport())
	}

	actions := AutoFix(result.Conflicts, &data)
	if len(actions) != 4 {
		t.Errorf("got %d actions, want 4: %+v", len(actions), actions)
	}

	day := data.Planner[0]
	if day.Meals[models.MealLunch].Kind() != models.MealEmpty || day.Meals[models.MealLunch].Time != "12:30" {
		t.Errorf("lunch = %+v, want an empty meal keeping its time", day.Meals[models.MealLunch])
	}
	wantBreakfast := []models.StructuredRef{{IngredientID: "banana", Quantity: 1}}
	if diff := cmp.Diff(wantBreakfast, day.Meals[models.MealBreakfast].Items); diff != "" {
		t.Errorf("breakfast items mismatch (-want +got):\n%s", diff)
	}
	if len(day.Activities) != 0 {
		t.Errorf("activities = %v, want none", day.Activities)
	}

	if len(data.Checklist) != 2 {
		t.Fatalf("checklist has %d records, want 2", len(data.Checklist))
	}
	for _, rec := range data.Checklist {
		if rec.Date == "2026-03-02" && rec.Items["lunch"] != 0 {
			t.Errorf("kept record lunch = %v, want the last record's 0", rec.Items["lunch"])
		}
	}

	if after := New().ValidateData(data); after.HasConflicts() {
		t.Errorf("conflicts remain after AutoFix:\n%s", after.FormatReport())
	}
}

func TestAutoFix_LeavesRecipesAlone(t *testing.T) {
	data := validData()
	data.Ingredients = data.Ingredients[1:]

	result := New().ValidateData(data)
	if result.Fixable() {
		t.Errorf("recipe ingredient problems should not be fixable:\n%s", result.FormatReport())
	}
	if actions := AutoFix(result.Conflicts, &data); len(actions) != 0 {
		t.Errorf("AutoFix actions = %+v, want none", actions)
	}
	if len(data.Recipes[0].Ingredients) != 1 {
		t.Error("recipe ingredients should be untouched")
	}
}
