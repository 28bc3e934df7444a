// Package model defines the core data types persisted by the store.
package model

import (
	"strings"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/google/uuid"
)

// DefaultTitle is used when a task is created with an empty title.
const DefaultTitle = "New task"

// Background color names for task rows. "none" renders as plain white.
const (
	BgNone   = "none"
	BgRed    = "red"
	BgOrange = "orange"
	BgYellow = "yellow"
	BgGreen  = "green"
	BgBlue   = "blue"
	BgPurple = "purple"
)

// BgColors maps background color names to their hex values.
var BgColors = map[string]string{
	BgNone:   "#FFFFFF",
	BgRed:    "#FFCDD2",
	BgOrange: "#FFE0B2",
	BgYellow: "#FFF9C4",
	BgGreen:  "#C8E6C9",
	BgBlue:   "#BBDEFB",
	BgPurple: "#E1BEE7",
}

// Task represents a single todo item. Order is its display position
// among tasks sharing the same creation date, counted from 1.
type Task struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Content     string        `json:"content"`
	Category    string        `json:"category"`
	CreatedDate dateutil.Date `json:"created_date"`
	Important   bool          `json:"important"`
	Completed   bool          `json:"completed"`
	BgColor     string        `json:"bg_color"`
	Order       int           `json:"order,omitempty"`
}

// NewTask creates a task with defaults applied. Empty titles get a
// placeholder, empty categories fall back to the reserved category,
// and a zero creation date becomes today.
func NewTask(title, content, category string, created dateutil.Date) Task {
	t := Task{
		ID:          uuid.New().String(),
		Title:       title,
		Content:     content,
		Category:    category,
		CreatedDate: created,
		BgColor:     BgNone,
	}
	t.Normalize()
	return t
}

// BgColorHex returns the hex value for the task's background color.
func (t Task) BgColorHex() string {
	if hex, ok := BgColors[t.BgColor]; ok {
		return hex
	}
	return BgColors[BgNone]
}

// Normalize repairs fields that may be missing or invalid in loaded
// records: empty ids, titles, categories and unknown colors.
func (t *Task) Normalize() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if strings.TrimSpace(t.Title) == "" {
		t.Title = DefaultTitle
	}
	if t.Category == "" {
		t.Category = ReservedCategory
	}
	if _, ok := BgColors[t.BgColor]; !ok {
		t.BgColor = BgNone
	}
	if t.CreatedDate.IsZero() {
		t.CreatedDate = dateutil.Today()
	}
}
