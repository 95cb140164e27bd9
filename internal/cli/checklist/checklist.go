package checklist

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/progress"
)

type ChecklistCmd struct {
	Show   ChecklistShowCmd   `cmd:"" help:"Show a day's checklist and habits." default:"withargs"`
	Toggle ChecklistToggleCmd `cmd:"" help:"Tick or untick a checkbox item."`
	Set    ChecklistSetCmd    `cmd:"" help:"Set the value of an item."`
	Water  WaterCmd           `cmd:"" help:"Add (or remove) water in millilitres."`
	Items  ItemsCmd           `cmd:"" help:"Manage checklist item definitions."`
	Reset  ChecklistResetCmd  `cmd:"" help:"Delete every recorded checklist day."`
}

type ChecklistShowCmd struct {
	Date string `arg:"" optional:"" help:"Date (YYYY-MM-DD, today, yesterday, tomorrow)."`
}

func (c *ChecklistShowCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	out, err := RenderDay(ctx, date)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

// RenderDay formats the checklist, the habits that apply to the day and the
// day's scores.
func RenderDay(ctx *cli.Context, date string) (string, error) {
	rec, err := ctx.Store.GetChecklistDay(date)
	if err != nil {
		return "", err
	}
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return "", err
	}
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return "", err
	}
	plan, err := ctx.Store.GetPlannerDay(date)
	if err != nil {
		return "", err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", cli.BoldStyle.Render("Checklist for "+date))
	for _, item := range items {
		value := rec.Items[item.Key]
		label := item.Label
		if item.Icon != "" {
			label = item.Icon + " " + label
		}
		if item.IsBoolean() {
			fmt.Fprintf(&b, "  %s %-24s %s\n", cli.Check(value >= 1), label, cli.DimStyle.Render(item.Key))
			continue
		}
		score := int(progress.ItemScore(item, value))
		fmt.Fprintf(&b, "  %s %-24s %s / %s\n", cli.Check(score >= 100), label,
			humanize.Commaf(value), humanize.Commaf(item.Max))
	}

	applicable := progress.HabitsForDay(habits, plan.Activities)
	if len(applicable) > 0 {
		fmt.Fprintf(&b, "\n%s\n\n", cli.BoldStyle.Render("Habits"))
		for _, h := range applicable {
			value := rec.Habits[h.ID]
			name := h.Name
			if h.Icon != "" {
				name = h.Icon + " " + name
			}
			detail := ""
			if h.Type != models.HabitBoolean {
				detail = fmt.Sprintf("%v / %v", value, h.Target)
			}
			fmt.Fprintf(&b, "  %s %-24s %s\n", cli.Check(progress.HabitComplete(h, value)), name, detail)
		}
	}

	sum := progress.Summarize(rec, items, habits, plan.Activities)
	fmt.Fprintf(&b, "\n  Food    %s\n", cli.Bar(sum.Food, 20))
	if sum.HabitCount > 0 {
		fmt.Fprintf(&b, "  Habits  %s\n", cli.Bar(sum.Habits, 20))
		if settings.ShowBlendedScore {
			fmt.Fprintf(&b, "  Day     %s\n", cli.Bar(sum.Blended, 20))
		}
	}
	return b.String(), nil
}

type ChecklistToggleCmd struct {
	Key  string `arg:"" help:"Item key (e.g. lunch)."`
	Date string `help:"Date (default: today)."`
}

func (c *ChecklistToggleCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker().ToggleItem(date, c.Key)
	if err != nil {
		return err
	}
	key := models.NormalizeKey(c.Key)
	state := "unchecked"
	if rec.Items[key] >= 1 {
		state = "checked"
	}
	fmt.Printf("%s %s for %s\n", key, state, date)
	return nil
}

type ChecklistSetCmd struct {
	Key   string  `arg:"" help:"Item key."`
	Value float64 `arg:"" help:"New value (clamped to the item's max)."`
	Date  string  `help:"Date (default: today)."`
}

func (c *ChecklistSetCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker().SetItem(date, c.Key, c.Value)
	if err != nil {
		return err
	}
	key := models.NormalizeKey(c.Key)
	fmt.Printf("%s = %v for %s\n", key, rec.Items[key], date)
	return nil
}

type WaterCmd struct {
	Amount float64 `arg:"" help:"Millilitres to add; negative to remove." default:"250"`
	Date   string  `help:"Date (default: today)."`
}

func (c *WaterCmd) Run(ctx *cli.Context) error {
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	rec, err := ctx.Tracker().AddWater(date, c.Amount)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	fmt.Printf("💧 %s ml of %s ml on %s\n",
		humanize.Commaf(rec.Items[constants.WaterItemKey]), humanize.Comma(int64(settings.WaterGoalMl)), date)
	return nil
}

type ItemsCmd struct {
	List   ItemsListCmd   `cmd:"" help:"List item definitions." default:"1"`
	Add    ItemsAddCmd    `cmd:"" help:"Add or update an item definition."`
	Remove ItemsRemoveCmd `cmd:"" help:"Remove an item and its recorded values."`
}

type ItemsListCmd struct{}

func (c *ItemsListCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No checklist items defined.")
		return nil
	}
	for _, item := range items {
		kind := "checkbox"
		if !item.IsBoolean() {
			kind = "max " + humanize.Commaf(item.Max)
		}
		fmt.Printf("  %2d  %-18s %-24s %s\n", item.Order, item.Key, item.Label, cli.DimStyle.Render(kind))
	}
	return nil
}

type ItemsAddCmd struct {
	Key   string  `arg:"" help:"Item key."`
	Label string  `arg:"" help:"Display label."`
	Max   float64 `help:"Target value; 1 makes a checkbox." default:"1"`
	Icon  string  `help:"Optional icon."`
	Order *int    `help:"Display position (default: after the last item)."`
}

func (c *ItemsAddCmd) Run(ctx *cli.Context) error {
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return err
	}
	def := models.ChecklistItemDefinition{
		Key:   models.NormalizeKey(c.Key),
		Label: c.Label,
		Icon:  c.Icon,
		Max:   c.Max,
	}
	if c.Order != nil {
		def.Order = *c.Order
	} else {
		for _, item := range items {
			if item.Key == def.Key {
				def.Order = item.Order
				break
			}
			if item.Order >= def.Order {
				def.Order = item.Order + 1
			}
		}
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveChecklistItem(def); err != nil {
		return err
	}
	fmt.Printf("Saved checklist item %s\n", def.Key)
	return nil
}

type ItemsRemoveCmd struct {
	Key string `arg:"" help:"Item key."`
}

func (c *ItemsRemoveCmd) Run(ctx *cli.Context) error {
	key := models.NormalizeKey(c.Key)
	if err := ctx.Store.DeleteChecklistItem(key); err != nil {
		return err
	}
	fmt.Printf("Removed checklist item %s\n", key)
	return nil
}

type ChecklistResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ChecklistResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Delete every recorded checklist day? A backup is taken first.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Store.ResetChecklistHistory(); err != nil {
		return err
	}
	fmt.Println("Checklist history cleared.")
	return nil
}
