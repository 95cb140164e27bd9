package prep

import (
	"fmt"
	"slices"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/models"
)

type PrepCmd struct {
	List   PrepListCmd   `cmd:"" help:"Show prep tasks." default:"1"`
	Add    PrepAddCmd    `cmd:"" help:"Add a prep task."`
	Done   PrepDoneCmd   `cmd:"" help:"Toggle a prep task done."`
	Remove PrepRemoveCmd `cmd:"" help:"Remove a prep task."`
	Reset  PrepResetCmd  `cmd:"" help:"Mark every task of a day as not done."`
}

type PrepListCmd struct {
	Day string `arg:"" optional:"" help:"sunday or wednesday (default: both)."`
}

func (c *PrepListCmd) Run(ctx *cli.Context) error {
	days := models.PrepDays
	if c.Day != "" {
		day, err := models.ParsePrepDay(c.Day)
		if err != nil {
			return err
		}
		days = []string{day}
	}
	for i, day := range days {
		tasks, err := ctx.Store.GetPrepTasks(day)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Println()
		}
		done := 0
		for _, t := range tasks {
			if t.Done {
				done++
			}
		}
		fmt.Printf("%s %s\n", cli.BoldStyle.Render(day), cli.DimStyle.Render(fmt.Sprintf("(%d/%d)", done, len(tasks))))
		if len(tasks) == 0 {
			fmt.Println("  No tasks.")
			continue
		}
		for n, t := range tasks {
			label := t.Task
			if t.Icon != "" {
				label = t.Icon + " " + label
			}
			fmt.Printf("  %d. %s %s\n", n+1, cli.Check(t.Done), label)
		}
	}
	return nil
}

type PrepAddCmd struct {
	Day  string `arg:"" help:"sunday or wednesday."`
	Task string `arg:"" help:"Task description."`
	Icon string `help:"Optional icon."`
}

func (c *PrepAddCmd) Run(ctx *cli.Context) error {
	day, tasks, err := load(ctx, c.Day)
	if err != nil {
		return err
	}
	tasks = append(tasks, models.PrepTask{Task: c.Task, Icon: c.Icon})
	if err := ctx.Store.SavePrepTasks(day, tasks); err != nil {
		return err
	}
	fmt.Printf("Added task %d to %s\n", len(tasks), day)
	return nil
}

type PrepDoneCmd struct {
	Day      string `arg:"" help:"sunday or wednesday."`
	Position int    `arg:"" help:"Task number as shown by 'prep list'."`
}

func (c *PrepDoneCmd) Run(ctx *cli.Context) error {
	day, tasks, err := load(ctx, c.Day)
	if err != nil {
		return err
	}
	idx, err := index(tasks, c.Position, day)
	if err != nil {
		return err
	}
	tasks[idx].Done = !tasks[idx].Done
	if err := ctx.Store.SavePrepTasks(day, tasks); err != nil {
		return err
	}
	fmt.Printf("%s %s\n", cli.Check(tasks[idx].Done), tasks[idx].Task)
	return nil
}

type PrepRemoveCmd struct {
	Day      string `arg:"" help:"sunday or wednesday."`
	Position int    `arg:"" help:"Task number as shown by 'prep list'."`
}

func (c *PrepRemoveCmd) Run(ctx *cli.Context) error {
	day, tasks, err := load(ctx, c.Day)
	if err != nil {
		return err
	}
	idx, err := index(tasks, c.Position, day)
	if err != nil {
		return err
	}
	removed := tasks[idx].Task
	tasks = slices.Delete(tasks, idx, idx+1)
	if err := ctx.Store.SavePrepTasks(day, tasks); err != nil {
		return err
	}
	fmt.Printf("Removed %q from %s\n", removed, day)
	return nil
}

type PrepResetCmd struct {
	Day string `arg:"" help:"sunday or wednesday."`
}

func (c *PrepResetCmd) Run(ctx *cli.Context) error {
	day, tasks, err := load(ctx, c.Day)
	if err != nil {
		return err
	}
	for i := range tasks {
		tasks[i].Done = false
	}
	if err := ctx.Store.SavePrepTasks(day, tasks); err != nil {
		return err
	}
	fmt.Printf("Reset %d task(s) on %s\n", len(tasks), day)
	return nil
}

func load(ctx *cli.Context, arg string) (string, []models.PrepTask, error) {
	day, err := models.ParsePrepDay(arg)
	if err != nil {
		return "", nil, err
	}
	tasks, err := ctx.Store.GetPrepTasks(day)
	if err != nil {
		return "", nil, err
	}
	return day, tasks, nil
}

func index(tasks []models.PrepTask, position int, day string) (int, error) {
	if position < 1 || position > len(tasks) {
		return 0, fmt.Errorf("%s has no task #%d", day, position)
	}
	return position - 1, nil
}
