// Package report builds the HTML daily report from store data and
// hands it to a mail transport. The transport is an interface so the
// concrete mail client stays substitutable.
package report

import (
	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
)

// pendingWindowDays is how far back the cross-date "still pending"
// section looks for important unfinished tasks.
const pendingWindowDays = 30

// Data is everything a report template needs for one day.
type Data struct {
	Date           dateutil.Date
	All            []model.Task
	Completed      []model.Task
	Incomplete     []model.Task
	Pending        []model.Task // important, unfinished, from earlier dates
	Total          int
	CompletedCount int
	CompletionRate float64
	ContentTypes   []string
	Filter         model.CategoryFilter
}

// Has reports whether the given content section is enabled.
func (d Data) Has(contentType string) bool {
	for _, ct := range d.ContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// Collect gathers a date's tasks from the store, applies the category
// filter, and computes the section lists and statistics.
func Collect(st *store.Store, date dateutil.Date, filter model.CategoryFilter, contentTypes []string) Data {
	d := Data{
		Date:         date,
		ContentTypes: contentTypes,
		Filter:       filter,
	}

	for _, t := range st.TasksForDate(date).Tasks {
		if !filter.Matches(t.Category) {
			continue
		}
		d.All = append(d.All, t)
		if t.Completed {
			d.Completed = append(d.Completed, t)
		} else {
			d.Incomplete = append(d.Incomplete, t)
		}
	}

	d.Total = len(d.All)
	d.CompletedCount = len(d.Completed)
	if d.Total > 0 {
		d.CompletionRate = float64(d.CompletedCount) / float64(d.Total) * 100
	}

	if d.Has(model.ContentPendingImportant) {
		cutoff := date.AddDays(-pendingWindowDays)
		for _, t := range st.AllTasks() {
			if t.CreatedDate.Equal(date) || !t.Important || t.Completed {
				continue
			}
			if t.CreatedDate.Before(cutoff) || t.CreatedDate.After(date) {
				continue
			}
			if !filter.Matches(t.Category) {
				continue
			}
			d.Pending = append(d.Pending, t)
		}
	}

	return d
}
