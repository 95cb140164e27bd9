package system

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/dietplan/internal/cli"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpDay      *DebugDumpDayCmd      `cmd:"" help:"Dump a day's checklist and planner records as JSON."`
	DumpHabit    *DebugDumpHabitCmd    `cmd:"" help:"Dump habit data as JSON."`
	DumpRecipe   *DebugDumpRecipeCmd   `cmd:"" help:"Dump recipe data as JSON."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings data as JSON."`
}

func printJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpDayCmd struct {
	Date string `arg:"" help:"Date to dump (YYYY-MM-DD, 'today', 'yesterday' or 'tomorrow')."`
}

type dayDump struct {
	Checklist models.DayChecklistRecord `json:"checklist"`
	Planner   models.PlannerDayRecord   `json:"planner"`
}

func (cmd *DebugDumpDayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(cmd.Date)
	if err != nil {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", cmd.Date)
	}

	checklist, err := ctx.Store.GetChecklistDay(date)
	if err != nil {
		return fmt.Errorf("failed to get checklist: %w", err)
	}
	planner, err := ctx.Store.GetPlannerDay(date)
	if err != nil {
		return fmt.Errorf("failed to get planner day: %w", err)
	}

	return printJSON(dayDump{Checklist: checklist, Planner: planner})
}

type DebugDumpHabitCmd struct {
	ID string `arg:"" help:"ID of the habit to dump."`
}

func (cmd *DebugDumpHabitCmd) Run(ctx *cli.Context) error {
	habit, err := ctx.Store.GetHabit(cmd.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("habit not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get habit: %w", err)
	}
	return printJSON(habit)
}

type DebugDumpRecipeCmd struct {
	ID string `arg:"" help:"ID of the recipe to dump."`
}

func (cmd *DebugDumpRecipeCmd) Run(ctx *cli.Context) error {
	recipe, err := ctx.Store.GetRecipe(cmd.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("recipe not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to get recipe: %w", err)
	}
	return printJSON(recipe)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return printJSON(settings)
}
