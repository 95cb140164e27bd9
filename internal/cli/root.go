package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dietplan/internal/backup"
	"github.com/julianstephens/dietplan/internal/logger"
	"github.com/julianstephens/dietplan/internal/progress"
	"github.com/julianstephens/dietplan/internal/storage"
	"github.com/julianstephens/dietplan/internal/tracker"
	"github.com/julianstephens/dietplan/internal/utils"
)

type Context struct {
	Store storage.Provider
	// MirrorURL is the --mirror flag value; empty means env or keyring.
	MirrorURL string
	// In is read by confirmation prompts. Nil means stdin.
	In io.Reader
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Tracker returns a tracker over the context's store.
func (c *Context) Tracker() *tracker.Tracker {
	return tracker.New(c.Store)
}

// Today returns midnight of the current day in the configured timezone.
func (c *Context) Today() (time.Time, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return utils.TodayFromSettings(settings)
}

// Day resolves a date argument ("", "today", "yesterday", "tomorrow" or
// YYYY-MM-DD) to midnight of that day.
func (c *Context) Day(arg string) (time.Time, error) {
	today, err := c.Today()
	if err != nil {
		return time.Time{}, err
	}
	return utils.ResolveDate(arg, today)
}

// Date is Day formatted as YYYY-MM-DD.
func (c *Context) Date(arg string) (string, error) {
	d, err := c.Day(arg)
	if err != nil {
		return "", err
	}
	return utils.FormatDate(d), nil
}

// Confirm asks a yes/no question and reports whether the answer was yes.
func (c *Context) Confirm(question string) (bool, error) {
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	fmt.Printf("%s [y/N]: ", question)
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	seen := make(map[time.Weekday]bool)
	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		wd, ok := dayMap[part]
		if !ok {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num > 6 {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			wd = time.Weekday(num)
		}
		if !seen[wd] {
			seen[wd] = true
			weekdays = append(weekdays, wd)
		}
	}

	return weekdays, nil
}

// FormatWeekdays renders weekdays as "Mon,Wed", or "-" when empty.
func FormatWeekdays(days []time.Weekday) string {
	if len(days) == 0 {
		return "-"
	}
	names := make([]string, len(days))
	for i, wd := range days {
		names[i] = wd.String()[:3]
	}
	return strings.Join(names, ",")
}

var (
	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	fairStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	poorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	BoldStyle = lipgloss.NewStyle().Bold(true)
)

// BandStyle returns the colour used for a percentage.
func BandStyle(pct int) lipgloss.Style {
	switch progress.Color(pct) {
	case progress.BandGood:
		return goodStyle
	case progress.BandFair:
		return fairStyle
	default:
		return poorStyle
	}
}

// Bar renders a coloured progress bar of width cells followed by the percentage.
func Bar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return BandStyle(pct).Render(strings.Repeat("█", filled)) +
		DimStyle.Render(strings.Repeat("░", width-filled)) +
		fmt.Sprintf(" %3d%%", pct)
}

// Check renders a checkbox.
func Check(done bool) string {
	if done {
		return goodStyle.Render("✓")
	}
	return DimStyle.Render("·")
}
