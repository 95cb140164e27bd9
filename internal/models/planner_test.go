package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestPlannerDayRecord_UnmarshalLegacy(t *testing.T) {
	raw := `{
		"date": "2026-03-02",
		"workout": "volley",
		"meals": {
			"cafe": {"time": "07:00", "recipeId": null, "recipeName": null, "items": ["ovos", {"id": "bread", "quantity": 2}]},
			"almoco": {"time": "12:30", "recipeId": "chicken-1", "items": ["rice"]},
			"jantar": {"time": "18:00", "recipeId": null, "items": []}
		}
	}`

	var rec PlannerDayRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	want := PlannerDayRecord{
		Date: "2026-03-02",
		Meals: map[MealSlot]MealSelection{
			MealBreakfast: ItemsMeal("07:00", []StructuredRef{
				{IngredientID: "ovos", Quantity: 1},
				{IngredientID: "bread", Quantity: 2},
			}),
			MealLunch:  RecipeMeal("12:30", "chicken-1"),
			MealDinner: {Time: "18:00"},
		},
		Activities: []string{"volley"},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestPlannerDayRecord_ActivitiesWinOverWorkout(t *testing.T) {
	var rec PlannerDayRecord
	raw := `{"date":"2026-03-02","workout":"gym","activities":["volley"]}`
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff([]string{"volley"}, rec.Activities); diff != "" {
		t.Errorf("activities mismatch (-want +got):\n%s", diff)
	}
}

func TestPlannerDayRecord_RoundTripStable(t *testing.T) {
	rec := NewPlannerDayRecord("2026-03-04", DefaultMealTimes(time.Wednesday))
	rec.Meals[MealLunch] = RecipeMeal("12:30", "beef-1")
	rec.Activities = append(rec.Activities, "volley")

	first, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded PlannerDayRecord
	if err := json.Unmarshal(first, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	second, err := json.Marshal(decoded)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("decoding is not idempotent:\n%s\n%s", first, second)
	}
}

func TestMealSelection_Kind(t *testing.T) {
	tests := []struct {
		name string
		meal MealSelection
		want MealKind
	}{
		{"empty", MealSelection{Time: "07:00"}, MealEmpty},
		{"recipe", RecipeMeal("07:00", "r1"), MealRecipe},
		{"items", ItemsMeal("07:00", []StructuredRef{{IngredientID: "eggs", Quantity: 2}}), MealItems},
		{"recipe wins", MealSelection{RecipeID: "r1", Items: []StructuredRef{{IngredientID: "eggs", Quantity: 2}}}, MealRecipe},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meal.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultMealTimes(t *testing.T) {
	monday := DefaultMealTimes(time.Monday)
	if monday[MealDinner] != "18:00" || monday[MealPostWorkout] != "22:00" {
		t.Errorf("Monday times = %v", monday)
	}
	friday := DefaultMealTimes(time.Friday)
	if friday[MealDinner] != "18:30" {
		t.Errorf("Friday dinner = %q, want 18:30", friday[MealDinner])
	}
	if _, ok := friday[MealPostWorkout]; ok {
		t.Errorf("Friday should have no post-workout time")
	}
}

func TestParseMealSlot(t *testing.T) {
	tests := map[string]MealSlot{
		"breakfast":       MealBreakfast,
		"almoco":          MealLunch,
		"morning-snack":   MealMorningSnack,
		"afternoonSnack":  MealAfternoonSnack,
		" post_workout  ": MealPostWorkout,
	}
	for in, want := range tests {
		got, err := ParseMealSlot(in)
		if err != nil {
			t.Errorf("ParseMealSlot(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseMealSlot(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseMealSlot("brunch"); err == nil {
		t.Error("ParseMealSlot(brunch) expected error")
	}
}

func TestPlannerDayFor(t *testing.T) {
	activities := []Activity{
		{ID: "volleyball", Name: "Volleyball", DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday}},
		{ID: "gym", Name: "Gym", DaysOfWeek: []time.Weekday{time.Tuesday}},
	}

	// 2026-03-02 is a Monday.
	rec, err := PlannerDayFor("2026-03-02", activities)
	if err != nil {
		t.Fatalf("PlannerDayFor() error: %v", err)
	}
	if diff := cmp.Diff([]string{"volleyball"}, rec.Activities); diff != "" {
		t.Errorf("activities mismatch (-want +got):\n%s", diff)
	}
	if len(rec.Meals) != len(MealSlots) {
		t.Errorf("meals = %d, want %d", len(rec.Meals), len(MealSlots))
	}
	if rec.Meals[MealPostWorkout].Time != "22:00" {
		t.Errorf("post-workout time = %q, want 22:00", rec.Meals[MealPostWorkout].Time)
	}
	for slot, meal := range rec.Meals {
		if meal.Kind() != MealEmpty {
			t.Errorf("slot %s not empty", slot)
		}
	}

	if _, err := PlannerDayFor("03/02/2026", activities); err == nil {
		t.Error("expected error for malformed date")
	}
}
