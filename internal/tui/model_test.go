package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/seed"
	"github.com/julianstephens/dietplan/internal/storage/sqlite"
	"github.com/julianstephens/dietplan/internal/tui/components/checklist"
	"github.com/julianstephens/dietplan/internal/tui/components/habits"
)

func setupTestModel(t *testing.T) (Model, *sqlite.Store) {
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
	if err := store.SaveHabit(models.HabitDefinition{ID: "steps", Name: "Steps", Type: models.HabitQuantity, Target: 3}); err != nil {
		t.Fatalf("SaveHabit: %v", err)
	}
	return NewModel(store), store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestToggleItemMsg(t *testing.T) {
	m, store := setupTestModel(t)

	m = update(t, m, checklist.ToggleItemMsg{Key: string(models.MealLunch)})
	if m.statusMessage != "" {
		t.Fatalf("unexpected status: %s", m.statusMessage)
	}

	rec, err := store.GetChecklistDay(m.date())
	if err != nil {
		t.Fatalf("GetChecklistDay: %v", err)
	}
	if rec.Items[string(models.MealLunch)] != 1 {
		t.Errorf("lunch = %v, want 1", rec.Items[string(models.MealLunch)])
	}
	if m.summary.Food == 0 {
		t.Error("food score not refreshed after toggle")
	}
}

func TestAdjustWater(t *testing.T) {
	m, store := setupTestModel(t)

	m = update(t, m, checklist.AdjustItemMsg{Key: constants.WaterItemKey, Delta: checklist.WaterStepMl})
	m = update(t, m, checklist.AdjustItemMsg{Key: constants.WaterItemKey, Delta: checklist.WaterStepMl})
	m = update(t, m, checklist.AdjustItemMsg{Key: constants.WaterItemKey, Delta: -checklist.WaterStepMl})

	rec, _ := store.GetChecklistDay(m.date())
	if got := rec.Items[constants.WaterItemKey]; got != checklist.WaterStepMl {
		t.Errorf("water = %v, want %v", got, checklist.WaterStepMl)
	}
}

func TestLogHabitMsg(t *testing.T) {
	m, store := setupTestModel(t)

	for i := 0; i < 3; i++ {
		m = update(t, m, habits.LogHabitMsg{ID: "steps", Delta: 1})
	}
	rec, _ := store.GetChecklistDay(m.date())
	if rec.Habits["steps"] != 3 {
		t.Errorf("steps = %v, want 3", rec.Habits["steps"])
	}
	if m.summary.Habits != 100 {
		t.Errorf("habit score = %d, want 100", m.summary.Habits)
	}
}

func TestEditErrorShowsStatus(t *testing.T) {
	m, _ := setupTestModel(t)

	m = update(t, m, checklist.ToggleItemMsg{Key: "no-such-item"})
	if m.statusMessage == "" {
		t.Error("expected status message for unknown item")
	}
}

func TestTabCycles(t *testing.T) {
	m, _ := setupTestModel(t)

	want := []SessionState{StateHabits, StateWeek, StateToday}
	for _, s := range want {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != s {
			t.Fatalf("state = %v, want %v", m.state, s)
		}
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateWeek {
		t.Errorf("shift+tab state = %v, want %v", m.state, StateWeek)
	}
}

func TestDayNavigationStopsAtToday(t *testing.T) {
	m, _ := setupTestModel(t)
	today := m.date()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.date() != today {
		t.Errorf("moved past today to %s", m.date())
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.date() == today {
		t.Error("left did not move to the previous day")
	}
}

func TestDeleteHabitConfirm(t *testing.T) {
	m, store := setupTestModel(t)

	m = update(t, m, habits.DeleteHabitMsg{ID: "steps"})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %v, want confirm delete", m.state)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	if m.state != StateHabits {
		t.Errorf("state = %v, want habits", m.state)
	}
	if _, err := store.GetHabit("steps"); err == nil {
		t.Error("habit still present after confirmed delete")
	}
}

func TestHabitFormModel(t *testing.T) {
	tests := []struct {
		name    string
		form    HabitFormModel
		want    float64
		wantErr bool
	}{
		{"boolean ignores target", HabitFormModel{Name: "Stretch", Type: models.HabitBoolean, Target: "9"}, 1, false},
		{"quantity target", HabitFormModel{Name: "Steps", Type: models.HabitQuantity, Target: "8000"}, 8000, false},
		{"quantity default", HabitFormModel{Name: "Reps", Type: models.HabitTimesPerDay}, 1, false},
		{"empty name", HabitFormModel{Type: models.HabitBoolean}, 0, true},
		{"bad target", HabitFormModel{Name: "Steps", Type: models.HabitQuantity, Target: "lots"}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := tt.form.Habit("id")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Habit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && h.Target != tt.want {
				t.Errorf("Target = %v, want %v", h.Target, tt.want)
			}
		})
	}
}

func TestViewRenders(t *testing.T) {
	m, _ := setupTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	for _, s := range mainStates {
		m.state = s
		if m.View() == "" {
			t.Errorf("empty view for state %v", s)
		}
	}
}
