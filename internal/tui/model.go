package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/dietplan/internal/models"
	"github.com/julianstephens/dietplan/internal/progress"
	"github.com/julianstephens/dietplan/internal/storage"
	"github.com/julianstephens/dietplan/internal/tracker"
	"github.com/julianstephens/dietplan/internal/tui/components/checklist"
	"github.com/julianstephens/dietplan/internal/tui/components/habits"
	"github.com/julianstephens/dietplan/internal/utils"
	"github.com/julianstephens/dietplan/internal/validation"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateHabits
	StateWeek
	StateAddHabit
	StateConfirmDelete
)

var mainStates = []SessionState{StateToday, StateHabits, StateWeek}

type Model struct {
	store          storage.Provider
	tracker        *tracker.Tracker
	state          SessionState
	keys           KeyMap
	help           help.Model
	bar            bprogress.Model
	checklistModel checklist.Model
	habitsModel    habits.Model
	form           *huh.Form
	habitForm      *HabitFormModel
	today          time.Time
	day            time.Time
	summary        progress.DaySummary
	week           progress.WeekBreakdown
	showBlended    bool
	habitToDelete  string
	statusMessage  string
	validationNote string
	quitting       bool
	width          int
	height         int
}

// NewModel opens the day view on today in the configured timezone.
func NewModel(store storage.Provider) Model {
	today := utils.StartOfDay(time.Now())
	if settings, err := store.GetSettings(); err == nil {
		if t, err := utils.TodayFromSettings(settings); err == nil {
			today = t
		}
	}

	m := Model{
		store:          store,
		tracker:        tracker.New(store),
		state:          StateToday,
		keys:           DefaultKeyMap(),
		help:           help.New(),
		bar:            bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(30)),
		checklistModel: checklist.New(nil, models.NewDayChecklistRecord(""), 0, 0),
		habitsModel:    habits.New(nil, nil, 0, 0),
		today:          today,
		day:            today,
	}
	m.refresh()
	m.updateValidationStatus()
	return m
}

func (m Model) date() string {
	return utils.FormatDate(m.day)
}

// refresh reloads the selected day and the week around it.
func (m *Model) refresh() {
	date := m.date()
	rec, err := m.store.GetChecklistDay(date)
	if err != nil {
		m.statusMessage = fmt.Sprintf("failed to load %s: %v", date, err)
		return
	}
	items, _ := m.store.GetChecklistItems()
	allHabits, _ := m.store.GetHabits()
	plan, _ := m.store.GetPlannerDay(date)
	settings, _ := m.store.GetSettings()
	records, _ := m.store.GetChecklistDays(
		utils.FormatDate(utils.WeekStart(m.day)),
		utils.FormatDate(utils.WeekStart(m.day).AddDate(0, 0, 6)),
	)

	m.checklistModel.SetDay(items, rec)
	m.habitsModel.SetHabits(progress.HabitsForDay(allHabits, plan.Activities), rec.Habits)
	m.summary = progress.Summarize(rec, items, allHabits, plan.Activities)
	m.week = progress.Week(records, items, m.day)
	m.showBlended = settings.ShowBlendedScore
}

// updateValidationStatus counts data problems for the banner.
func (m *Model) updateValidationStatus() {
	data, err := m.store.Export()
	if err != nil {
		m.validationNote = "⚠ Validation unavailable"
		return
	}
	result := validation.New().ValidateData(data)
	if result.HasConflicts() {
		m.validationNote = fmt.Sprintf("⚠ %d data problem(s), run 'dietplan doctor'", len(result.Conflicts))
	} else {
		m.validationNote = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Prev, m.keys.Next, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Prev, m.keys.Next}
	var actions []key.Binding
	switch m.state {
	case StateToday:
		k := checklist.DefaultKeyMap()
		actions = []key.Binding{k.Toggle, k.Increase, k.Decrease}
	case StateHabits:
		k := habits.DefaultKeyMap()
		actions = []key.Binding{k.Add, k.Toggle, k.Log, k.Unlog, k.Delete}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
