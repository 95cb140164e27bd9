package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/dietplan/internal/progress"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.checklistModel.View())
	case StateHabits:
		content = docStyle.Render(m.habitsModel.View())
	case StateWeek:
		content = docStyle.Render(m.viewWeek())
	case StateAddHabit:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	var status string
	if m.statusMessage != "" {
		status = dangerStyle.Render(m.statusMessage)
	}
	var banner string
	if m.validationNote != "" {
		banner = warningStyle.Render(m.validationNote)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		m.viewSummary(),
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	titles := []string{"Today", "Habits", "Week"}
	var tabs []string
	for i, title := range titles {
		if m.state == mainStates[i] {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, dimStyle.Render("  "+m.day.Format("Mon 2 Jan 2006")))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewSummary() string {
	lines := []string{fmt.Sprintf("  Food    %s", m.bar.ViewAs(pct(m.summary.Food)))}
	if m.summary.HabitCount > 0 {
		lines = append(lines, fmt.Sprintf("  Habits  %s", m.bar.ViewAs(pct(m.summary.Habits))))
		if m.showBlended {
			lines = append(lines, fmt.Sprintf("  Day     %s", m.bar.ViewAs(pct(m.summary.Blended))))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewWeek() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s\n\n", m.week.Start.Format("2 Jan"))
	for _, d := range m.week.Days {
		label := d.Date
		if !d.Recorded {
			fmt.Fprintf(&b, "  %s  %s\n", label, dimStyle.Render("no record"))
			continue
		}
		fmt.Fprintf(&b, "  %s  %s\n", label, m.bar.ViewAs(pct(d.Score)))
	}
	fmt.Fprintf(&b, "\n  Week        %s\n", m.bar.ViewAs(pct(m.week.Percentage)))
	fmt.Fprintf(&b, "  %s\n", dimStyle.Render(bandLabel(m.week.Percentage)))
	return b.String()
}

func bandLabel(p int) string {
	switch progress.Color(p) {
	case progress.BandGood:
		return "on track"
	case progress.BandFair:
		return "getting there"
	default:
		return "needs attention"
	}
}

func pct(p int) float64 {
	return float64(p) / 100
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-8,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit and its history?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
