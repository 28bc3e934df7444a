package model

import (
	"fmt"
	"time"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/google/uuid"
)

// Recurrence kinds for a routine.
const (
	RepeatOnce   = "once"
	RepeatDaily  = "daily"
	RepeatWeekly = "weekly"
)

// Report content section names. PendingImportant adds a cross-date
// section of important, incomplete tasks from the last 30 days.
const (
	ContentAll              = "all"
	ContentCompleted        = "completed"
	ContentIncomplete       = "incomplete"
	ContentPendingImportant = "pending_important"
)

// weekdayNames maps the persisted lowercase names to time.Weekday.
var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// WeekdayName returns the persisted lowercase name for a weekday.
func WeekdayName(d time.Weekday) string {
	for name, wd := range weekdayNames {
		if wd == d {
			return name
		}
	}
	return ""
}

// ParseWeekday converts a persisted weekday name back to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[name]
	return wd, ok
}

// CategoryFilter selects which categories a report includes. A nil
// filter means all categories; a non-empty one means only those names.
// An empty non-nil filter is invalid and rejected by Routine.Validate.
type CategoryFilter []string

// All reports whether the filter includes every category.
func (f CategoryFilter) All() bool {
	return f == nil
}

// Matches reports whether a task in the given category passes the filter.
func (f CategoryFilter) Matches(category string) bool {
	if f == nil {
		return true
	}
	for _, name := range f {
		if name == category {
			return true
		}
	}
	return false
}

// Routine is a recurring (or one-off) report send rule. The checker
// fires it at most once per calendar day, at the configured minute.
type Routine struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Recipients []string `json:"recipients"`
	Subject    string   `json:"subject"`
	SendTime   string   `json:"send_time"` // HH:mm

	Repeat   string        `json:"repeat"`             // once, daily, weekly
	SendDate dateutil.Date `json:"send_date,omitzero"` // once only
	Weekdays []string      `json:"weekdays,omitempty"` // weekly only

	ContentTypes       []string       `json:"content_types"`
	SelectedCategories CategoryFilter `json:"selected_categories"`
	Memo               string         `json:"memo,omitempty"`
	Enabled            bool           `json:"enabled"`

	LastSentDate dateutil.Date `json:"last_sent_date,omitzero"`
	LastSentTime string        `json:"last_sent_time,omitempty"`
	TotalSent    int           `json:"total_sent"`
}

// NewRoutine creates an enabled daily routine with a fresh id.
func NewRoutine(name string) Routine {
	return Routine{
		ID:           uuid.New().String(),
		Name:         name,
		Repeat:       RepeatDaily,
		SendTime:     "09:00",
		ContentTypes: []string{ContentAll},
		Enabled:      true,
	}
}

// Validate checks a routine before it may be saved.
func (r Routine) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("routine name is required")
	}
	if len(r.Recipients) == 0 {
		return fmt.Errorf("routine %q has no recipients", r.Name)
	}
	if _, err := time.Parse("15:04", r.SendTime); err != nil {
		return fmt.Errorf("routine %q: invalid send time %q: expected HH:mm", r.Name, r.SendTime)
	}
	switch r.Repeat {
	case RepeatOnce:
		if r.SendDate.IsZero() {
			return fmt.Errorf("routine %q: one-off routine needs a send date", r.Name)
		}
	case RepeatDaily:
	case RepeatWeekly:
		if len(r.Weekdays) == 0 {
			return fmt.Errorf("routine %q: weekly routine needs at least one weekday", r.Name)
		}
		for _, name := range r.Weekdays {
			if _, ok := ParseWeekday(name); !ok {
				return fmt.Errorf("routine %q: unknown weekday %q", r.Name, name)
			}
		}
	default:
		return fmt.Errorf("routine %q: unknown repeat kind %q", r.Name, r.Repeat)
	}
	if len(r.ContentTypes) == 0 {
		return fmt.Errorf("routine %q has no content types", r.Name)
	}
	// A user who unchecked every category must not silently match
	// zero tasks; nil (all categories) is the way to mean "no filter".
	if r.SelectedCategories != nil && len(r.SelectedCategories) == 0 {
		return fmt.Errorf("routine %q: category filter selects no categories", r.Name)
	}
	return nil
}
