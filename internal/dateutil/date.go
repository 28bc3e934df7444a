// Package dateutil provides a calendar Date type that marshals as
// YYYY-MM-DD, plus month/week helpers for the calendar views.
package dateutil

import (
	"encoding/json"
	"fmt"
	"time"
)

const layout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
type Date struct {
	t time.Time
}

// New creates a Date from year, month and day.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current local date.
func Today() Date {
	return FromTime(time.Now())
}

// FromTime truncates a time.Time to its date.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Parse parses a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.t.Format(layout)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Year returns the calendar year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of the month.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// AddDays returns the date shifted by n days.
func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// AddMonths returns the date shifted by n months, clamped to the first
// of the month so calendar navigation never skips a short month.
func (d Date) AddMonths(n int) Date {
	first := time.Date(d.t.Year(), d.t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Date{first.AddDate(0, n, 0)}
}

// Equal reports whether two dates are the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is later than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// WeekBounds returns the Monday and Sunday of the week containing d.
func WeekBounds(d Date) (Date, Date) {
	// time.Weekday counts Sunday as 0; weeks here start on Monday.
	offset := (int(d.Weekday()) + 6) % 7
	start := d.AddDays(-offset)
	return start, start.AddDays(6)
}

// MonthBounds returns the first and last day of the month containing d.
func MonthBounds(d Date) (Date, Date) {
	first := New(d.Year(), d.Month(), 1)
	last := first.AddMonths(1).AddDays(-1)
	return first, last
}

// MonthDays returns every date of the given month in order.
func MonthDays(year int, month time.Month) []Date {
	first := New(year, month, 1)
	var days []Date
	for d := first; d.Month() == month; d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// MonthGrid returns the month laid out as Monday-first weeks. Cells
// outside the month are zero Dates, matching a printed calendar page.
func MonthGrid(year int, month time.Month) [][7]Date {
	days := MonthDays(year, month)

	var grid [][7]Date
	week := [7]Date{}
	for _, d := range days {
		col := (int(d.Weekday()) + 6) % 7
		week[col] = d
		if col == 6 {
			grid = append(grid, week)
			week = [7]Date{}
		}
	}
	if week != ([7]Date{}) {
		grid = append(grid, week)
	}
	return grid
}
