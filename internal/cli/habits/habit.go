package habits

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/constants"
	apperrors "github.com/julianstephens/dietplan/internal/errors"
	"github.com/julianstephens/dietplan/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a yes/no habit done or undone for a day."`
	Log    HabitLogCmd    `cmd:"" help:"Add to a counted habit's value for a day."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its recorded values."`
}

type HabitAddCmd struct {
	Name   string  `arg:"" help:"Habit name."`
	Type   string  `help:"boolean, quantity, timesPerDay or timesPerWeek." default:"boolean"`
	Target float64 `help:"Daily target for counted habits." default:"1"`
	Icon   string  `help:"Optional icon."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	if _, err := Resolve(ctx, c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	habitType, err := models.ParseHabitType(c.Type)
	if err != nil {
		return err
	}
	habit := models.HabitDefinition{
		ID:     uuid.NewString(),
		Name:   c.Name,
		Icon:   c.Icon,
		Type:   habitType,
		Target: c.Target,
	}
	if habitType == models.HabitBoolean {
		habit.Target = 1
	}
	if err := habit.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

// Resolve finds a habit by id or by case-insensitive name.
func Resolve(ctx *cli.Context, ref string) (models.HabitDefinition, error) {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return models.HabitDefinition{}, err
	}
	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.HabitDefinition{}, apperrors.NotFound("habit", ref)
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	for _, h := range habits {
		kind := string(h.Type)
		if h.Type != models.HabitBoolean {
			kind = fmt.Sprintf("%s, target %v", h.Type, h.Target)
		}
		note := ""
		if h.IsActivityHabit(constants.ActivityHabitPrefix) {
			note = " [activity]"
		}
		name := h.Name
		if h.Icon != "" {
			name = h.Icon + " " + name
		}
		fmt.Printf("%s (%s)%s %s\n", name, kind, note, cli.DimStyle.Render(h.ID))
	}
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, err := Resolve(ctx, c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker().ToggleHabit(date, habit.ID)
	if err != nil {
		return err
	}
	if rec.Habits[habit.ID] == 1 {
		fmt.Printf("✓ %s done for %s\n", habit.Name, date)
	} else {
		fmt.Printf("Unmarked %s for %s\n", habit.Name, date)
	}
	return nil
}

type HabitLogCmd struct {
	Habit string  `arg:"" help:"Habit name or id."`
	Delta float64 `arg:"" optional:"" help:"Amount to add; negative to subtract." default:"1"`
	Date  string  `help:"Date in YYYY-MM-DD format (default: today)."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	habit, err := Resolve(ctx, c.Habit)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker().LogHabit(date, habit.ID, c.Delta)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %v / %v on %s\n", habit.Name, rec.Habits[habit.ID], habit.Target, date)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit name or id."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	habit, err := Resolve(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}
