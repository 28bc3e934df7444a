package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/model"
)

// tickMsg fires once per minute to evaluate report routines.
type tickMsg time.Time

func minuteTick() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// bgColorCycle is the order the color key walks through.
var bgColorCycle = []string{
	model.BgNone, model.BgRed, model.BgOrange, model.BgYellow,
	model.BgGreen, model.BgBlue, model.BgPurple,
}

func (m Model) Init() tea.Cmd {
	return minuteTick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case tea.KeyMsg:
		switch m.mode {
		case ModeAddTask, ModeEditTask:
			return m.updateInput(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

// handleTick runs the routine checker on the UI loop and persists any
// bookkeeping it produced.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	results := m.checker.Check(now)
	for _, res := range results {
		if res.Sent {
			m.message = "Sent routine: " + res.Routine.Name
		} else {
			logger.Error("Routine send failed",
				logger.F("routine", res.Routine.Name), logger.F("error", res.Err))
			m.message = "Routine failed: " + res.Routine.Name
		}
	}
	if m.store.Dirty() {
		m.save()
	}
	return m, minuteTick()
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, keys.Tab):
		if m.pane == PaneCalendar {
			m.pane = PaneTaskList
		} else {
			m.pane = PaneCalendar
		}
		return m, nil

	case key.Matches(msg, keys.Today):
		m.selectDate(dateutil.Today())
		return m, nil

	case key.Matches(msg, keys.Left):
		m.selectDate(m.selected.AddDays(-1))
		return m, nil

	case key.Matches(msg, keys.Right):
		m.selectDate(m.selected.AddDays(1))
		return m, nil

	case key.Matches(msg, keys.PrevMonth):
		m.selectDate(m.selected.AddMonths(-1))
		return m, nil

	case key.Matches(msg, keys.NextMonth):
		m.selectDate(m.selected.AddMonths(1))
		return m, nil

	case key.Matches(msg, keys.Add):
		m.mode = ModeAddTask
		m.input.SetValue("")
		m.input.Focus()
		return m, nil
	}

	if m.pane == PaneCalendar {
		return m.updateCalendarKeys(msg)
	}
	return m.updateTaskKeys(msg)
}

func (m Model) updateCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.selectDate(m.selected.AddDays(-7))
	case key.Matches(msg, keys.Down):
		m.selectDate(m.selected.AddDays(7))
	case key.Matches(msg, keys.Enter):
		m.pane = PaneTaskList
	}
	return m, nil
}

func (m Model) updateTaskKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.taskCursor > 0 {
			m.taskCursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.taskCursor < len(m.view.Tasks)-1 {
			m.taskCursor++
		}
		return m, nil

	case key.Matches(msg, keys.Escape):
		m.pane = PaneCalendar
		return m, nil
	}

	t := m.currentTask()
	if t == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Done), key.Matches(msg, keys.Enter):
		m.store.ToggleCompleted(t.ID)

	case key.Matches(msg, keys.Important):
		m.store.ToggleImportant(t.ID)

	case key.Matches(msg, keys.Color):
		updated := *t
		updated.BgColor = nextBgColor(t.BgColor)
		m.store.UpdateTask(t.ID, updated)

	case key.Matches(msg, keys.Category):
		updated := *t
		updated.Category = m.nextCategory(t.Category)
		m.store.UpdateTask(t.ID, updated)

	case key.Matches(msg, keys.Delete):
		m.store.DeleteTask(t.ID)

	case key.Matches(msg, keys.MoveUp):
		if m.store.ReorderTasks(m.selected, m.taskCursor, m.taskCursor-1) {
			m.taskCursor--
		}

	case key.Matches(msg, keys.MoveDown):
		if m.store.ReorderTasks(m.selected, m.taskCursor, m.taskCursor+1) {
			m.taskCursor++
		}

	case key.Matches(msg, keys.Edit):
		m.mode = ModeEditTask
		m.editID = t.ID
		m.input.SetValue(t.Title)
		m.input.Focus()
		return m, nil

	default:
		return m, nil
	}

	m.save()
	m.loadDay()
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		m.input.Blur()
		return m, nil

	case key.Matches(msg, keys.Enter):
		title := m.input.Value()
		m.input.Blur()

		switch m.mode {
		case ModeAddTask:
			t := model.NewTask(title, "", model.ReservedCategory, m.selected)
			m.store.AddTask(t)
		case ModeEditTask:
			if existing, ok := m.store.Task(m.editID); ok {
				existing.Title = title
				existing.Normalize()
				m.store.UpdateTask(m.editID, existing)
			}
		}
		m.mode = ModeNormal
		m.save()
		m.loadDay()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// nextBgColor returns the color after the given one in the cycle.
func nextBgColor(current string) string {
	for i, name := range bgColorCycle {
		if name == current {
			return bgColorCycle[(i+1)%len(bgColorCycle)]
		}
	}
	return bgColorCycle[0]
}

// nextCategory returns the category after the given one in display
// order, wrapping around.
func (m *Model) nextCategory(current string) string {
	cats := m.store.Categories()
	if len(cats) == 0 {
		return current
	}
	for i, c := range cats {
		if c.Name == current {
			return cats[(i+1)%len(cats)].Name
		}
	}
	return cats[0].Name
}
