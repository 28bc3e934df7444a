package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")

	ImportantColor = lipgloss.Color("#FFB347")
	CompletedColor = lipgloss.Color("#95E1A3")
	CarriedColor   = lipgloss.Color("#FFE66D")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary).
			Padding(0, 1)

	CalendarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(Border).
			Padding(1, 2)

	TaskListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	DayStyle = lipgloss.NewStyle().
			Padding(0, 1)

	DaySelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Foreground(Primary).
				Bold(true)

	DayTodayStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(Primary).
			Underline(true)

	DayWithTasksStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Bold(true)

	TaskItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TaskItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TaskDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	CarriedOverStyle = lipgloss.NewStyle().
				Foreground(CarriedColor).
				Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// CategoryStyle renders a category chip in its configured color.
func CategoryStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Bold(true)
}
