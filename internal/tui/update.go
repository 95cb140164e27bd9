package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/dietplan/internal/constants"
	"github.com/julianstephens/dietplan/internal/logger"
	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/tui/components/checklist"
	"github.com/julianstephens/dietplan/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case StateAddHabit:
		return m.updateAddHabit(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Tabs, summary bars and help
		listHeight := msg.Height - 9

		h, v := docStyle.GetFrameSize()
		m.checklistModel.SetSize(msg.Width-h, listHeight-v)
		m.habitsModel.SetSize(msg.Width-h, listHeight-v)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = cycle(m.state, 1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = cycle(m.state, -1)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.day = m.day.AddDate(0, 0, -1)
			m.refresh()
			return m, nil
		case key.Matches(msg, m.keys.Next):
			// The future has nothing to tick yet
			if m.day.Before(m.today) {
				m.day = m.day.AddDate(0, 0, 1)
				m.refresh()
			}
			return m, nil
		}

	case checklist.ToggleItemMsg:
		_, err := m.tracker.ToggleItem(m.date(), msg.Key)
		return m.afterEdit(err), nil

	case checklist.AdjustItemMsg:
		var err error
		if msg.Key == constants.WaterItemKey {
			_, err = m.tracker.AddWater(m.date(), msg.Delta)
		} else {
			var rec models.DayChecklistRecord
			rec, err = m.store.GetChecklistDay(m.date())
			if err == nil {
				_, err = m.tracker.SetItem(m.date(), msg.Key, rec.Items[msg.Key]+msg.Delta)
			}
		}
		return m.afterEdit(err), nil

	case habits.ToggleHabitMsg:
		_, err := m.tracker.ToggleHabit(m.date(), msg.ID)
		return m.afterEdit(err), nil

	case habits.LogHabitMsg:
		_, err := m.tracker.LogHabit(m.date(), msg.ID, msg.Delta)
		return m.afterEdit(err), nil

	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Type: models.HabitBoolean}
		m.form = NewHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.DeleteHabitMsg:
		m.habitToDelete = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.checklistModel, cmd = m.checklistModel.Update(msg)
	case StateHabits:
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

func cycle(s SessionState, dir int) SessionState {
	for i, st := range mainStates {
		if st == s {
			return mainStates[(i+dir+len(mainStates))%len(mainStates)]
		}
	}
	return s
}

// afterEdit reports err in the status line or reloads the day.
func (m Model) afterEdit(err error) Model {
	if err != nil {
		logger.Warn("TUI edit failed", "date", m.date(), "error", err)
		m.statusMessage = err.Error()
		return m
	}
	m.statusMessage = ""
	m.refresh()
	return m
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		habit, err := m.habitForm.Habit(uuid.New().String())
		if err == nil {
			err = m.store.SaveHabit(habit)
		}
		if err != nil {
			// Stay in the form so the user can fix it or cancel with ESC
			m.statusMessage = err.Error()
			m.form.State = huh.StateNormal
			break
		}
		m.statusMessage = ""
		m.refresh()
		m.state = StateHabits
	case huh.StateAborted:
		m.state = StateHabits
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y":
		if err := m.store.DeleteHabit(m.habitToDelete); err != nil {
			m.statusMessage = err.Error()
		} else {
			m.refresh()
		}
		m.habitToDelete = ""
		m.state = StateHabits
	case "n", "N", "esc", "q":
		m.habitToDelete = ""
		m.state = StateHabits
	}
	return m, nil
}
