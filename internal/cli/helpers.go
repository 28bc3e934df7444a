package cli

import (
	"fmt"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
)

// resolveDate parses a --date flag value, defaulting to today.
func resolveDate(s string) (dateutil.Date, error) {
	if s == "" {
		return dateutil.Today(), nil
	}
	return dateutil.Parse(s)
}

// shortID trims a task id for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printTask prints one task line in list output.
func printTask(num int, t model.Task) {
	icon := "[ ]"
	if t.Completed {
		icon = "[x]"
	}
	star := "  "
	if t.Important {
		star = "* "
	}
	fmt.Printf("  %2d. %s %s%-8s  %-40s  [%s]\n", num, icon, star, shortID(t.ID), truncate(t.Title, 40), t.Category)
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max-3] + "..."
	}
	return s
}

// matchTask finds a task on a date by 1-based position or id prefix.
func matchTask(tasks []model.Task, ref string) (model.Task, bool) {
	for i, t := range tasks {
		if fmt.Sprintf("%d", i+1) == ref {
			return t, true
		}
	}
	for _, t := range tasks {
		if len(ref) >= 4 && len(t.ID) >= len(ref) && t.ID[:len(ref)] == ref {
			return t, true
		}
	}
	return model.Task{}, false
}
