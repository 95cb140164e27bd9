package checklist

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/seed"
	"github.com/julianstephens/dietplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	for _, item := range seed.ChecklistItems() {
		if err := store.SaveChecklistItem(item); err != nil {
			t.Fatalf("SaveChecklistItem: %v", err)
		}
	}
	return &cli.Context{Store: store, In: strings.NewReader("y\n")}
}

const day = "2026-05-04"

func TestToggleAndSet(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&ChecklistToggleCmd{Key: "lunch", Date: day}).Run(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	// Legacy key names resolve to the current ones
	if err := (&ChecklistSetCmd{Key: "agua", Value: 5000, Date: day}).Run(ctx); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := (&ChecklistToggleCmd{Key: constants.WaterItemKey, Date: day}).Run(ctx); err == nil {
		t.Error("expected toggling a counted item to fail")
	}

	rec, _ := ctx.Store.GetChecklistDay(day)
	if rec.Items["lunch"] != 1 {
		t.Errorf("lunch = %v, want 1", rec.Items["lunch"])
	}
	if rec.Items[constants.WaterItemKey] != constants.DefaultWaterGoalMl {
		t.Errorf("water = %v, want clamped to %d", rec.Items[constants.WaterItemKey], constants.DefaultWaterGoalMl)
	}
}

func TestWaterCmd(t *testing.T) {
	ctx := setupTestDB(t)

	for _, amount := range []float64{250, 500, -100} {
		if err := (&WaterCmd{Amount: amount, Date: day}).Run(ctx); err != nil {
			t.Fatalf("water %v: %v", amount, err)
		}
	}
	rec, _ := ctx.Store.GetChecklistDay(day)
	if got := rec.Items[constants.WaterItemKey]; got != 650 {
		t.Errorf("water = %v, want 650", got)
	}
}

func TestRenderDay(t *testing.T) {
	ctx := setupTestDB(t)
	if err := ctx.Store.SaveHabit(models.HabitDefinition{ID: "walk", Name: "Walk", Type: models.HabitBoolean, Target: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Tracker().ToggleItem(day, "breakfast"); err != nil {
		t.Fatal(err)
	}

	out, err := RenderDay(ctx, day)
	if err != nil {
		t.Fatalf("RenderDay: %v", err)
	}
	for _, want := range []string{"Checklist for " + day, "Breakfast", "Walk", "Food", "Habits"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestItemsAddAndRemove(t *testing.T) {
	ctx := setupTestDB(t)

	if err := (&ItemsAddCmd{Key: "vitamins", Label: "Vitamins", Max: 1}).Run(ctx); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, _ := ctx.Store.GetChecklistItems()
	last := items[len(items)-1]
	if last.Key != "vitamins" || last.Order != len(seed.ChecklistItems()) {
		t.Errorf("new item = %+v, want vitamins at the end", last)
	}

	if err := (&ItemsRemoveCmd{Key: "vitamins"}).Run(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	items, _ = ctx.Store.GetChecklistItems()
	if len(items) != len(seed.ChecklistItems()) {
		t.Errorf("expected %d items after remove, got %d", len(seed.ChecklistItems()), len(items))
	}
}

func TestResetCmd(t *testing.T) {
	ctx := setupTestDB(t)
	if _, err := ctx.Tracker().ToggleItem(day, "lunch"); err != nil {
		t.Fatal(err)
	}

	if err := (&ChecklistResetCmd{}).Run(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	days, _ := ctx.Store.GetAllChecklistDays()
	if len(days) != 0 {
		t.Errorf("expected no checklist days after reset, got %d", len(days))
	}
}
