// Package tui is the interactive calendar front-end. All store
// mutations happen on the bubbletea event loop; the once-per-minute
// tick also drives the routine checker on that same loop.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/routine"
	"github.com/daybook-app/daybook/internal/store"
)

// Pane represents which pane is focused
type Pane int

const (
	PaneCalendar Pane = iota
	PaneTaskList
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTask
	ModeEditTask
	ModeHelp
)

// Model is the main TUI model
type Model struct {
	store   *store.Store
	checker *routine.Checker
	cfg     *config.Config

	// Day state
	selected dateutil.Date
	view     store.DayView
	stats    store.Stats

	// UI state
	width      int
	height     int
	pane       Pane
	mode       Mode
	taskCursor int

	// Input
	input   textinput.Model
	editID  string // task being edited in ModeEditTask
	message string
}

// NewModel creates a new TUI model focused on today.
func NewModel(st *store.Store, checker *routine.Checker, cfg *config.Config) Model {
	logger.Info("Initializing TUI model")

	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 256
	ti.Width = 50

	m := Model{
		store:    st,
		checker:  checker,
		cfg:      cfg,
		selected: dateutil.Today(),
		pane:     PaneCalendar,
		mode:     ModeNormal,
		input:    ti,
	}
	m.loadDay()
	return m
}

// loadDay refreshes the day view and stats for the selected date.
func (m *Model) loadDay() {
	m.view = m.store.TasksForDate(m.selected)
	m.stats = m.store.Stats(m.selected)
	if max := len(m.view.Tasks) - 1; m.taskCursor > max {
		m.taskCursor = max
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
}

// currentTask returns the task under the cursor in the day list.
func (m *Model) currentTask() *model.Task {
	if m.taskCursor < len(m.view.Tasks) {
		return &m.view.Tasks[m.taskCursor]
	}
	return nil
}

// selectDate moves the selection and reloads the day.
func (m *Model) selectDate(d dateutil.Date) {
	m.selected = d
	m.taskCursor = 0
	m.loadDay()
}

// save persists pending store mutations, reporting failures in the
// status line instead of crashing the UI.
func (m *Model) save() {
	if err := m.store.Save(); err != nil {
		logger.Error("Save failed", logger.F("error", err))
		m.message = "Save failed: " + err.Error()
	}
}
