package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	header := HeaderStyle.Render("Daybook — " + m.selected.String())

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		CalendarStyle.Render(m.renderCalendar()),
		TaskListStyle.Render(m.renderDay()),
	)

	sections := []string{header, body}
	if m.mode == ModeAddTask || m.mode == ModeEditTask {
		sections = append(sections, m.renderInput())
	}
	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderCalendar draws the month of the selected date as a
// Monday-first grid. Days with tasks render bold, today underlined.
func (m Model) renderCalendar() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s %d\n\n", m.selected.Month(), m.selected.Year()))
	b.WriteString(" Mo  Tu  We  Th  Fr  Sa  Su\n")

	today := dateutil.Today()
	grid := dateutil.MonthGrid(m.selected.Year(), m.selected.Month())
	for _, week := range grid {
		for _, d := range week {
			if d.IsZero() {
				b.WriteString("    ")
				continue
			}
			label := fmt.Sprintf("%2d", d.Day())
			style := DayStyle
			switch {
			case d.Equal(m.selected):
				style = DaySelectedStyle
			case d.Equal(today):
				style = DayTodayStyle
			case m.store.Stats(d).Total > 0:
				style = DayWithTasksStyle
			}
			b.WriteString(style.Render(label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderDay draws the selected date's task list followed by the
// carried-over section.
func (m Model) renderDay() string {
	var b strings.Builder

	if m.stats.Total > 0 {
		b.WriteString(fmt.Sprintf("%d/%d done (%.0f%%)\n\n",
			m.stats.Completed, m.stats.Total, m.stats.CompletionRate))
	}

	if len(m.view.Tasks) == 0 {
		b.WriteString(HelpStyle.Render("No tasks. Press 'a' to add one."))
		b.WriteString("\n")
	}
	for i, t := range m.view.Tasks {
		selected := m.pane == PaneTaskList && i == m.taskCursor
		b.WriteString(m.renderTask(t, selected))
		b.WriteString("\n")
	}

	if len(m.view.CarriedOver) > 0 {
		b.WriteString("\n")
		b.WriteString(CarriedOverStyle.Render("Carried over"))
		b.WriteString("\n")
		for _, t := range m.view.CarriedOver {
			line := fmt.Sprintf("! %s (%s)", t.Title, t.CreatedDate)
			b.WriteString(CarriedOverStyle.Render(line))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderTask(t model.Task, selected bool) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	mark := " "
	if t.Important {
		mark = "!"
	}

	category := CategoryStyle(m.store.CategoryColor(t.Category)).Render(t.Category)
	line := fmt.Sprintf("%s%s %s  %s", check, mark, t.Title, category)

	switch {
	case selected:
		return TaskItemSelectedStyle.Render(line)
	case t.Completed:
		return TaskDoneStyle.Render(line)
	default:
		style := TaskItemStyle
		if t.BgColor != model.BgNone {
			style = style.Foreground(lipgloss.Color(t.BgColorHex()))
		}
		return style.Render(line)
	}
}

func (m Model) renderInput() string {
	title := "New task"
	if m.mode == ModeEditTask {
		title = "Edit title"
	}
	return ModalStyle.Render(title + "\n" + m.input.View())
}

func (m Model) renderStatusBar() string {
	left := m.message
	if left == "" {
		left = "? help · tab switch pane · q quit"
	}
	return StatusBarStyle.Width(m.width).Render(left)
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"←/→", "previous / next day"},
		{"↑/↓", "move in pane"},
		{"[ / ]", "previous / next month"},
		{"t", "jump to today"},
		{"tab", "switch pane"},
		{"a", "add task"},
		{"e", "edit title"},
		{"x / enter", "toggle done"},
		{"!", "toggle important"},
		{"b", "cycle background color"},
		{"c", "cycle category"},
		{"K / J", "move task up / down"},
		{"d", "delete task"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Key bindings"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-10s %s\n", r[0], r[1]))
	}
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Press any key to close"))
	return b.String()
}
