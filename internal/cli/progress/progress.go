package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dietplan/internal/cli"
	"github.com/julianstephens/dietplan/internal/progress"
	"github.com/julianstephens/dietplan/internal/utils"
)

type ProgressCmd struct {
	Date string `arg:"" optional:"" help:"Reference date (default: today)."`
}

func (c *ProgressCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Day(c.Date)
	if err != nil {
		return err
	}
	date := utils.FormatDate(day)

	records, err := ctx.Store.GetAllChecklistDays()
	if err != nil {
		return err
	}
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return err
	}
	habits, err := ctx.Store.GetHabits()
	if err != nil {
		return err
	}
	plan, err := ctx.Store.GetPlannerDay(date)
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	rec, err := ctx.Store.GetChecklistDay(date)
	if err != nil {
		return err
	}

	sum := progress.Summarize(rec, items, habits, plan.Activities)
	month := int(day.Month()) - 1

	fmt.Println(cli.BoldStyle.Render("Progress for " + date))
	fmt.Println()
	fmt.Printf("  Day    %s\n", cli.Bar(sum.Food, 30))
	if sum.HabitCount > 0 {
		fmt.Printf("  Habits %s\n", cli.Bar(sum.Habits, 30))
		if settings.ShowBlendedScore {
			fmt.Printf("  Total  %s\n", cli.Bar(sum.Blended, 30))
		}
	}
	fmt.Printf("  Week   %s\n", cli.Bar(progress.WeekProgress(records, items, day), 30))
	fmt.Printf("  Month  %s\n", cli.Bar(progress.MonthProgress(records, day.Year(), month, items), 30))
	fmt.Printf("  Year   %s\n", cli.Bar(progress.YearProgress(records, day.Year(), items), 30))

	week := progress.Week(records, items, day)
	fmt.Println()
	for _, d := range week.Days {
		t, _ := time.Parse("2006-01-02", d.Date)
		label := t.Format("Mon 02")
		if !d.Recorded {
			fmt.Printf("  %s  %s\n", label, cli.DimStyle.Render("no record"))
			continue
		}
		fmt.Printf("  %s  %s\n", label, cli.Bar(d.Score, 20))
	}
	return nil
}

type CalendarCmd struct {
	Month string `arg:"" optional:"" help:"Month as YYYY-MM (default: current month)."`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	today, err := ctx.Today()
	if err != nil {
		return err
	}
	year, month := today.Year(), today.Month()
	if c.Month != "" {
		t, err := time.Parse("2006-01", c.Month)
		if err != nil {
			return fmt.Errorf("invalid month %q (expected YYYY-MM)", c.Month)
		}
		year, month = t.Year(), t.Month()
	}

	records, err := ctx.Store.GetAllChecklistDays()
	if err != nil {
		return err
	}
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return err
	}

	days := progress.MonthDays(records, year, int(month)-1, items)
	fmt.Println(RenderCalendar(year, month, days, utils.FormatDate(today)))
	fmt.Printf("\nMonth average: %d%%\n", progress.MonthProgress(records, year, int(month)-1, items))
	return nil
}

var (
	cellStyle  = lipgloss.NewStyle().Width(5).Align(lipgloss.Right)
	todayStyle = lipgloss.NewStyle().Underline(true)
	titleStyle = lipgloss.NewStyle().Bold(true).Width(35).Align(lipgloss.Center)
)

// RenderCalendar draws a Sunday-first month grid, each recorded day coloured
// by its score band.
func RenderCalendar(year int, month time.Month, days []progress.DayScore, today string) string {
	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("%s %d", month, year)))

	var header []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		header = append(header, cellStyle.Render(wd.String()[:2]))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var cells []string
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, cellStyle.Render(""))
	}
	for i, d := range days {
		label := fmt.Sprintf("%d", i+1)
		style := cli.DimStyle
		if d.Recorded {
			style = cli.BandStyle(d.Score)
		}
		if d.Date == today {
			style = style.Inherit(todayStyle)
		}
		cells = append(cells, cellStyle.Render(style.Render(label)))
		if len(cells) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

type HistoryCmd struct {
	List HistoryListCmd `cmd:"" help:"List saved weekly snapshots." default:"1"`
	Save HistorySaveCmd `cmd:"" help:"Save a snapshot of a week's progress."`
}

type HistoryListCmd struct{}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	history, err := ctx.Store.GetHistory()
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No weekly history saved yet.")
		return nil
	}
	for _, snap := range history {
		daily := make([]string, len(snap.DailyPercentages))
		for i, pct := range snap.DailyPercentages {
			daily[i] = cli.BandStyle(pct).Render(fmt.Sprintf("%3d", pct))
		}
		fmt.Printf("  Week of %s  %s  %s\n", snap.WeekStart, cli.Bar(snap.WeeklyPercentage, 20), strings.Join(daily, " "))
	}
	return nil
}

type HistorySaveCmd struct {
	Date string `arg:"" optional:"" help:"Any date in the week to save (default: today)."`
}

func (c *HistorySaveCmd) Run(ctx *cli.Context) error {
	day, err := ctx.Day(c.Date)
	if err != nil {
		return err
	}
	start := utils.WeekStart(day)
	records, err := ctx.Store.GetChecklistDays(utils.FormatDate(start), utils.FormatDate(start.AddDate(0, 0, 6)))
	if err != nil {
		return err
	}
	items, err := ctx.Store.GetChecklistItems()
	if err != nil {
		return err
	}
	snap := progress.Week(records, items, day).Snapshot(time.Now())
	if err := ctx.Store.AddWeekSnapshot(snap); err != nil {
		return err
	}
	fmt.Printf("Saved week of %s at %d%%\n", snap.WeekStart, snap.WeeklyPercentage)
	return nil
}
