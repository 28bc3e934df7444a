// Package export writes task lists as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
)

// Field names accepted by Options.Fields, in their default order.
var DefaultFields = []string{"id", "title", "content", "category", "created_date", "important", "completed"}

var headerLabels = map[string]string{
	"id":           "ID",
	"title":        "Title",
	"content":      "Content",
	"category":     "Category",
	"created_date": "Created",
	"important":    "Important",
	"completed":    "Completed",
}

// Options controls the CSV layout.
type Options struct {
	Fields        []string // nil means DefaultFields; unknown names are skipped
	IncludeHeader bool
}

// Filter narrows the task list before export. Nil pointers and empty
// slices mean "no restriction" for their dimension.
type Filter struct {
	From       *dateutil.Date
	To         *dateutil.Date
	Categories []string
	Completed  *bool
}

// Apply returns the tasks passing every restriction of the filter.
func Apply(tasks []model.Task, f Filter) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if f.From != nil && t.CreatedDate.Before(*f.From) {
			continue
		}
		if f.To != nil && t.CreatedDate.After(*f.To) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, t.Category) {
			continue
		}
		if f.Completed != nil && t.Completed != *f.Completed {
			continue
		}
		out = append(out, t)
	}
	return out
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Write renders the tasks as CSV.
func Write(w io.Writer, tasks []model.Task, opts Options) error {
	fields := opts.Fields
	if fields == nil {
		fields = DefaultFields
	}
	var selected []string
	for _, f := range fields {
		if _, ok := headerLabels[f]; ok {
			selected = append(selected, f)
		}
	}
	if len(selected) == 0 {
		return fmt.Errorf("no exportable fields selected")
	}

	cw := csv.NewWriter(w)
	if opts.IncludeHeader {
		header := make([]string, len(selected))
		for i, f := range selected {
			header[i] = headerLabels[f]
		}
		if err := cw.Write(header); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
	}

	for _, t := range tasks {
		row := make([]string, len(selected))
		for i, f := range selected {
			row[i] = fieldValue(t, f)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func fieldValue(t model.Task, field string) string {
	switch field {
	case "id":
		return t.ID
	case "title":
		return t.Title
	case "content":
		return t.Content
	case "category":
		return t.Category
	case "created_date":
		return t.CreatedDate.String()
	case "important":
		return yesNo(t.Important)
	case "completed":
		return yesNo(t.Completed)
	}
	return ""
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
