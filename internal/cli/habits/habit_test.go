package habits

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/dietplan/internal/cli"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func TestHabitAddCmd(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []struct {
		name       string
		cmd        HabitAddCmd
		wantTarget float64
		wantErr    bool
	}{
		{"boolean forces target", HabitAddCmd{Name: "Stretch", Type: "boolean", Target: 5}, 1, false},
		{"quantity", HabitAddCmd{Name: "Glasses", Type: "quantity", Target: 8}, 8, false},
		{"cli spelling", HabitAddCmd{Name: "Squats", Type: "times-per-day", Target: 3}, 3, false},
		{"duplicate name", HabitAddCmd{Name: "stretch", Type: "boolean", Target: 1}, 0, true},
		{"bad type", HabitAddCmd{Name: "Run", Type: "sometimes", Target: 1}, 0, true},
		{"zero target", HabitAddCmd{Name: "Read", Type: "quantity", Target: 0}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			h, err := Resolve(ctx, tt.cmd.Name)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if h.Target != tt.wantTarget {
				t.Errorf("target = %v, want %v", h.Target, tt.wantTarget)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	ctx := setupTestDB(t)
	if err := ctx.Store.SaveHabit(models.HabitDefinition{ID: "abc", Name: "Meditate", Type: models.HabitBoolean, Target: 1}); err != nil {
		t.Fatal(err)
	}

	for _, ref := range []string{"abc", "meditate", "MEDITATE"} {
		h, err := Resolve(ctx, ref)
		if err != nil || h.ID != "abc" {
			t.Errorf("Resolve(%q) = %+v, %v", ref, h, err)
		}
	}
	if _, err := Resolve(ctx, "nap"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Resolve(nap) error = %v, want not found", err)
	}
}

func TestHabitToggleAndLog(t *testing.T) {
	ctx := setupTestDB(t)
	if err := ctx.Store.SaveHabit(models.HabitDefinition{ID: "walk", Name: "Walk", Type: models.HabitBoolean, Target: 1}); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.SaveHabit(models.HabitDefinition{ID: "glasses", Name: "Glasses", Type: models.HabitQuantity, Target: 8}); err != nil {
		t.Fatal(err)
	}

	date := "2026-04-01"
	if err := (&HabitToggleCmd{Habit: "walk", Date: date}).Run(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := (&HabitLogCmd{Habit: "Glasses", Delta: 3, Date: date}).Run(ctx); err != nil {
		t.Fatalf("log: %v", err)
	}
	if err := (&HabitLogCmd{Habit: "Glasses", Delta: -5, Date: date}).Run(ctx); err != nil {
		t.Fatalf("log: %v", err)
	}

	rec, err := ctx.Store.GetChecklistDay(date)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Habits["walk"] != 1 {
		t.Errorf("walk = %v, want 1", rec.Habits["walk"])
	}
	if rec.Habits["glasses"] != 0 {
		t.Errorf("glasses = %v, want 0 (never negative)", rec.Habits["glasses"])
	}

	if err := (&HabitDeleteCmd{Habit: "walk"}).Run(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := Resolve(ctx, "walk"); err == nil {
		t.Error("habit still resolvable after delete")
	}
}
