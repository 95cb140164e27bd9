package progress

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
)

func boolItems(keys ...string) []models.ChecklistItemDefinition {
	defs := make([]models.ChecklistItemDefinition, len(keys))
	for i, k := range keys {
		defs[i] = models.ChecklistItemDefinition{Key: k, Label: k, Max: 1}
	}
	return defs
}

func record(date string, items map[string]float64) models.DayChecklistRecord {
	rec := models.NewDayChecklistRecord(date)
	for k, v := range items {
		rec.Items[k] = v
	}
	return rec
}

var water = models.ChecklistItemDefinition{Key: "water", Label: "Water", Max: 3000}

func TestDayProgress(t *testing.T) {
	seven := boolItems("breakfast", "morning_snack", "lunch", "afternoon_snack", "dinner", "post_workout", "creatine")

	tests := []struct {
		name  string
		items map[string]float64
		defs  []models.ChecklistItemDefinition
		want  int
	}{
		{
			name:  "three of seven booleans",
			items: map[string]float64{"breakfast": 1, "lunch": 1, "dinner": 1},
			defs:  seven,
			want:  43,
		},
		{
			name:  "all booleans done",
			items: map[string]float64{"breakfast": 1, "morning_snack": 1, "lunch": 1, "afternoon_snack": 1, "dinner": 1, "post_workout": 1, "creatine": 1},
			defs:  seven,
			want:  100,
		},
		{
			name:  "water half way plus one boolean",
			items: map[string]float64{"water": 1500, "creatine": 1},
			defs:  []models.ChecklistItemDefinition{water, {Key: "creatine", Label: "Creatine", Max: 1}},
			want:  75,
		},
		{
			name:  "water over goal is capped",
			items: map[string]float64{"water": 4500},
			defs:  []models.ChecklistItemDefinition{water},
			want:  100,
		},
		{
			name:  "small water amounts stay proportional",
			items: map[string]float64{"water": 10},
			defs:  []models.ChecklistItemDefinition{water},
			want:  0,
		},
		{
			name:  "quantity item that is not water is not rescaled",
			items: map[string]float64{"steps": 5},
			defs:  []models.ChecklistItemDefinition{{Key: "steps", Label: "Steps", Max: 10000}},
			want:  0,
		},
		{
			name:  "partial boolean value does not count",
			items: map[string]float64{"creatine": 0.5},
			defs:  boolItems("creatine"),
			want:  0,
		},
		{
			name:  "unrecorded definitions score zero",
			items: map[string]float64{},
			defs:  seven,
			want:  0,
		},
		{
			name:  "empty definitions and empty items",
			items: map[string]float64{},
			defs:  nil,
			want:  0,
		},
		{
			name:  "legacy booleans",
			items: map[string]float64{"breakfast": 1, "lunch": 0, "dinner": 1, "creatine": 0},
			defs:  nil,
			want:  50,
		},
		{
			name:  "legacy water counts a fraction of three litres",
			items: map[string]float64{"breakfast": 1, "agua": 1.5},
			defs:  nil,
			want:  75,
		},
		{
			name:  "legacy water above target is capped",
			items: map[string]float64{"agua": 5},
			defs:  nil,
			want:  100,
		},
		{
			name:  "water without definitions is millilitres",
			items: map[string]float64{"water": 1500},
			defs:  nil,
			want:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayProgress(record("2026-03-02", tt.items), tt.defs)
			if got != tt.want {
				t.Errorf("DayProgress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestItemScore_WaterIsMonotonic(t *testing.T) {
	prev := -1.0
	for ml := 0.0; ml <= 3500; ml++ {
		got := ItemScore(water, ml)
		if got < prev {
			t.Fatalf("ItemScore(%v) = %v, below ItemScore(%v) = %v", ml, got, ml-1, prev)
		}
		if want := math.Min(ml/water.Max, 1) * 100; got != want {
			t.Fatalf("ItemScore(%v) = %v, want %v", ml, got, want)
		}
		prev = got
	}
}

func TestDayProgress_DecodedLegacyWater(t *testing.T) {
	var rec models.DayChecklistRecord
	if err := json.Unmarshal([]byte(`{"date":"2026-03-02","items":{"agua":2.5}}`), &rec); err != nil {
		t.Fatal(err)
	}
	if got := DayProgress(rec, []models.ChecklistItemDefinition{water}); got != 83 {
		t.Errorf("DayProgress() = %d, want 83", got)
	}
	rec.Items["water"] += 250
	if got := DayProgress(rec, []models.ChecklistItemDefinition{water}); got != 92 {
		t.Errorf("DayProgress() after adding 250 ml = %d, want 92", got)
	}
}

func TestDayProgress_BooleanProportion(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	defs := boolItems(keys...)
	for n := 1; n <= len(keys); n++ {
		for k := 0; k <= n; k++ {
			items := map[string]float64{}
			for i := 0; i < k; i++ {
				items[keys[i]] = 1
			}
			got := DayProgress(record("2026-03-02", items), defs[:n])
			want := round(100 * float64(k) / float64(n))
			if got != want {
				t.Errorf("n=%d k=%d: DayProgress() = %d, want %d", n, k, got, want)
			}
		}
	}
}

func TestDayProgress_ZeroValueRecord(t *testing.T) {
	if got := DayProgress(models.DayChecklistRecord{}, nil); got != 0 {
		t.Errorf("DayProgress(zero) = %d, want 0", got)
	}
	if got := DayProgress(models.DayChecklistRecord{}, boolItems("a")); got != 0 {
		t.Errorf("DayProgress(zero, defs) = %d, want 0", got)
	}
}

func TestWeekProgress(t *testing.T) {
	defs := boolItems("a", "b")
	// 2026-03-01 is a Sunday.
	ref := time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		records []models.DayChecklistRecord
		want    int
	}{
		{
			name: "absent days are excluded",
			records: []models.DayChecklistRecord{
				record("2026-03-01", map[string]float64{"a": 1, "b": 1}),
				record("2026-03-03", map[string]float64{"a": 1}),
			},
			want: 75,
		},
		{
			name: "days outside the window are ignored",
			records: []models.DayChecklistRecord{
				record("2026-02-28", map[string]float64{"a": 1, "b": 1}),
				record("2026-03-07", map[string]float64{"a": 1}),
				record("2026-03-08", map[string]float64{"a": 1, "b": 1}),
			},
			want: 50,
		},
		{
			name: "malformed dates are skipped",
			records: []models.DayChecklistRecord{
				record("2026-3-2", map[string]float64{"a": 1, "b": 1}),
				record("", map[string]float64{"a": 1, "b": 1}),
				record("2026-03-02", map[string]float64{}),
			},
			want: 0,
		},
		{
			name:    "no records",
			records: nil,
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekProgress(tt.records, defs, ref); got != tt.want {
				t.Errorf("WeekProgress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWeekProgress_AnchoredOnSunday(t *testing.T) {
	defs := boolItems("a")
	records := []models.DayChecklistRecord{
		record("2026-03-01", map[string]float64{"a": 1}),
	}
	sunday := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 23, 59, 0, 0, time.UTC)
	nextSunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	if got := WeekProgress(records, defs, sunday); got != 100 {
		t.Errorf("WeekProgress(sunday) = %d, want 100", got)
	}
	if got := WeekProgress(records, defs, saturday); got != 100 {
		t.Errorf("WeekProgress(saturday) = %d, want 100", got)
	}
	if got := WeekProgress(records, defs, nextSunday); got != 0 {
		t.Errorf("WeekProgress(next sunday) = %d, want 0", got)
	}
}

func TestMonthAndYearProgress(t *testing.T) {
	defs := boolItems("a", "b", "c", "d")
	records := []models.DayChecklistRecord{
		record("2026-01-05", map[string]float64{"a": 1, "b": 1, "c": 1, "d": 1}),
		record("2026-01-20", map[string]float64{"a": 1, "b": 1}),
		record("2026-02-01", map[string]float64{"a": 1}),
		record("2025-01-10", map[string]float64{}),
		record("not-a-date", map[string]float64{"a": 1, "b": 1, "c": 1, "d": 1}),
	}

	if got := MonthProgress(records, 2026, 0, defs); got != 75 {
		t.Errorf("MonthProgress(Jan) = %d, want 75", got)
	}
	if got := MonthProgress(records, 2026, 1, defs); got != 25 {
		t.Errorf("MonthProgress(Feb) = %d, want 25", got)
	}
	if got := MonthProgress(records, 2026, 2, defs); got != 0 {
		t.Errorf("MonthProgress(Mar) = %d, want 0", got)
	}
	// (100 + 50 + 25) / 3
	if got := YearProgress(records, 2026, defs); got != 58 {
		t.Errorf("YearProgress(2026) = %d, want 58", got)
	}
	if got := YearProgress(records, 2025, defs); got != 0 {
		t.Errorf("YearProgress(2025) = %d, want 0", got)
	}
}

func TestHabitComplete(t *testing.T) {
	pushups := models.HabitDefinition{ID: "pushups", Name: "Pushups", Type: models.HabitQuantity, Target: 5}
	read := models.HabitDefinition{ID: "read", Name: "Read", Type: models.HabitBoolean}
	water := models.HabitDefinition{ID: "glasses", Name: "Glasses", Type: models.HabitTimesPerDay, Target: 8}

	tests := []struct {
		name  string
		def   models.HabitDefinition
		value float64
		want  bool
	}{
		{"quantity at target", pushups, 5, true},
		{"quantity above target", pushups, 7, true},
		{"quantity below target", pushups, 4, false},
		{"boolean true", read, 1, true},
		{"boolean false", read, 0, false},
		{"boolean counted value is not true", read, 2, false},
		{"times per day short", water, 7, false},
		{"times per day met", water, 8, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HabitComplete(tt.def, tt.value); got != tt.want {
				t.Errorf("HabitComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHabitsProgress(t *testing.T) {
	defs := []models.HabitDefinition{
		{ID: "read", Type: models.HabitBoolean},
		{ID: "pushups", Type: models.HabitQuantity, Target: 10},
		{ID: "gym", Type: models.HabitTimesPerWeek, Target: 3},
	}

	if got := HabitsProgress(map[string]float64{"read": 1, "pushups": 10}, defs); got != 67 {
		t.Errorf("HabitsProgress() = %d, want 67", got)
	}
	if got := HabitsProgress(nil, defs); got != 0 {
		t.Errorf("HabitsProgress(nil) = %d, want 0", got)
	}
	if got := HabitsProgress(map[string]float64{"read": 1}, nil); got != 0 {
		t.Errorf("HabitsProgress(no defs) = %d, want 0", got)
	}
}

func TestBlendedDayScore(t *testing.T) {
	tests := []struct {
		food, habits, want int
	}{
		{100, 0, 60},
		{0, 100, 40},
		{100, 100, 100},
		{0, 0, 0},
		{50, 75, 60},
	}
	for _, tt := range tests {
		if got := BlendedDayScore(tt.food, tt.habits); got != tt.want {
			t.Errorf("BlendedDayScore(%d, %d) = %d, want %d", tt.food, tt.habits, got, tt.want)
		}
	}
	if constants.FoodWeight != 0.6 || constants.HabitsWeight != 0.4 {
		t.Errorf("blend weights = %v/%v, want 0.6/0.4", constants.FoodWeight, constants.HabitsWeight)
	}
}

func TestHabitsForDay(t *testing.T) {
	defs := []models.HabitDefinition{
		{ID: "read", Type: models.HabitBoolean},
		{ID: "activity-volley", Type: models.HabitBoolean},
		{ID: "activity-gym", Type: models.HabitBoolean},
	}

	got := HabitsForDay(defs, []string{"gym"})
	if len(got) != 2 || got[0].ID != "read" || got[1].ID != "activity-gym" {
		t.Errorf("HabitsForDay() = %v", got)
	}
	if got := HabitsForDay(defs, nil); len(got) != 1 {
		t.Errorf("HabitsForDay(no activities) = %v, want only read", got)
	}
}
