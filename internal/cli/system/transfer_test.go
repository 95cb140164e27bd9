package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/dietplan/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	if err := ctx.Store.SaveHabit(models.HabitDefinition{ID: "walk", Name: "Walk", Type: models.HabitBoolean, Target: 1}); err != nil {
		t.Fatalf("SaveHabit: %v", err)
	}
	rec := models.NewDayChecklistRecord("2026-02-10")
	rec.Items["lunch"] = 1
	rec.Habits["walk"] = 1
	if err := ctx.Store.SaveChecklistDay(rec); err != nil {
		t.Fatalf("SaveChecklistDay: %v", err)
	}

	out := filepath.Join(t.TempDir(), "export.json")
	if err := (&ExportCmd{Output: out}).Run(ctx); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	other, cleanupOther := setupTestDebugDB(t)
	defer cleanupOther()
	if err := (&ImportCmd{File: out, Yes: true}).Run(other); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	want, _ := ctx.Store.GetAllChecklistDays()
	got, err := other.Store.GetAllChecklistDays()
	if err != nil {
		t.Fatalf("GetAllChecklistDays: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("checklist mismatch after import (-want +got):\n%s", diff)
	}
	habits, _ := other.Store.GetHabits()
	if len(habits) != 1 || habits[0].Name != "Walk" {
		t.Errorf("habits after import = %+v", habits)
	}
}

func TestImportCmd_RejectsInvalidDocument(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()

	doc := `{"planner":[{"date":"2026-02-10","meals":{"lunch":{"time":"12:30","recipeId":"ghost"}}}]}`
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(doc), 0600); err != nil {
		t.Fatal(err)
	}

	err := (&ImportCmd{File: path, Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestImportCmd_Cancelled(t *testing.T) {
	ctx, cleanup := setupTestDebugDB(t)
	defer cleanup()
	ctx.In = strings.NewReader("n\n")

	if err := ctx.Store.SaveRecipe(models.Recipe{ID: "keep", Name: "Keep me", Category: "lunch"}); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := (&ImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if _, err := ctx.Store.GetRecipe("keep"); err != nil {
		t.Errorf("recipe removed despite cancelled import: %v", err)
	}
}
