package checklist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/progress"
)

// WaterStepMl is how much one key press adds to or removes from water.
const WaterStepMl = 250

type ToggleItemMsg struct {
	Key string
}

// AdjustItemMsg changes a counted item by Delta.
type AdjustItemMsg struct {
	Key   string
	Delta float64
}

type Item struct {
	Def   models.ChecklistItemDefinition
	Value float64
}

func (i Item) Title() string {
	mark := "○ "
	if progress.ItemScore(i.Def, i.Value) >= 100 {
		mark = "✓ "
	}
	label := i.Def.Label
	if i.Def.Icon != "" {
		label = i.Def.Icon + " " + label
	}
	return mark + label
}

func (i Item) Description() string {
	if i.Def.IsBoolean() {
		if i.Value >= 1 {
			return "done"
		}
		return "not done"
	}
	return fmt.Sprintf("%s / %s", humanize.Commaf(i.Value), humanize.Commaf(i.Def.Max))
}

func (i Item) FilterValue() string { return i.Def.Label }

type KeyMap struct {
	Toggle   key.Binding
	Increase key.Binding
	Decrease key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
		Increase: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "less"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(defs []models.ChecklistItemDefinition, record models.DayChecklistRecord, width, height int) Model {
	l := list.New(toItems(defs, record), list.NewDefaultDelegate(), width, height)
	l.Title = "Checklist"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Toggle, keys.Increase, keys.Decrease}
	}

	return Model{list: l, keys: keys}
}

func toItems(defs []models.ChecklistItemDefinition, record models.DayChecklistRecord) []list.Item {
	items := make([]list.Item, len(defs))
	for i, d := range defs {
		items[i] = Item{Def: d, Value: record.Items[d.Key]}
	}
	return items
}

func (m *Model) SetDay(defs []models.ChecklistItemDefinition, record models.DayChecklistRecord) {
	m.list.SetItems(toItems(defs, record))
}

// step is the amount one key press changes a counted item by.
func step(def models.ChecklistItemDefinition) float64 {
	if def.Key == constants.WaterItemKey {
		return WaterStepMl
	}
	return 1
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		i, ok := m.list.SelectedItem().(Item)
		if ok {
			switch {
			case key.Matches(msg, m.keys.Toggle):
				if i.Def.IsBoolean() {
					return m, func() tea.Msg { return ToggleItemMsg{Key: i.Def.Key} }
				}
				// Enter on a counted item fills it
				return m, func() tea.Msg { return AdjustItemMsg{Key: i.Def.Key, Delta: i.Def.Max - i.Value} }
			case key.Matches(msg, m.keys.Increase):
				return m, func() tea.Msg { return AdjustItemMsg{Key: i.Def.Key, Delta: step(i.Def)} }
			case key.Matches(msg, m.keys.Decrease):
				return m, func() tea.Msg { return AdjustItemMsg{Key: i.Def.Key, Delta: -step(i.Def)} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return "\n  No checklist items.\n  Add some with 'dietplan checklist items add'."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
