package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/progress"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

// LogHabitMsg adds Delta to a counted habit.
type LogHabitMsg struct {
	ID    string
	Delta float64
}

type DeleteHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.HabitDefinition
	Value float64
}

func (i Item) Title() string {
	title := i.Habit.Name
	if i.Habit.Icon != "" {
		title = i.Habit.Icon + " " + title
	}
	if progress.HabitComplete(i.Habit, i.Value) {
		return "✓ " + title
	}
	return "○ " + title
}

func (i Item) Description() string {
	if i.Habit.Type == models.HabitBoolean {
		if progress.HabitComplete(i.Habit, i.Value) {
			return "completed today"
		}
		return "not completed today"
	}
	return fmt.Sprintf("%v / %v (%s)", i.Value, i.Habit.Target, i.Habit.Type)
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Log    key.Binding
	Unlog  key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Log: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "log one"),
		),
		Unlog: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "undo one"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

// New lists the habits that apply today with their logged values.
func New(habits []models.HabitDefinition, values map[string]float64, width, height int) Model {
	l := list.New(toItems(habits, values), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Log, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Log, keys.Unlog, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func toItems(habits []models.HabitDefinition, values map[string]float64) []list.Item {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h, Value: values[h.ID]}
	}
	return items
}

func (m *Model) SetHabits(habits []models.HabitDefinition, values map[string]float64) {
	m.list.SetItems(toItems(habits, values))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		i, ok := m.list.SelectedItem().(Item)
		if !ok {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if i.Habit.Type == models.HabitBoolean {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: i.Habit.ID} }
			}
			return m, func() tea.Msg { return LogHabitMsg{ID: i.Habit.ID, Delta: 1} }
		case key.Matches(msg, m.keys.Log):
			return m, func() tea.Msg { return LogHabitMsg{ID: i.Habit.ID, Delta: 1} }
		case key.Matches(msg, m.keys.Unlog):
			if i.Value > 0 {
				return m, func() tea.Msg { return LogHabitMsg{ID: i.Habit.ID, Delta: -1} }
			}
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits for today.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
