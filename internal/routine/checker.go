package routine

import (
	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/report"
	"github.com/daybook-app/daybook/internal/store"

	"time"
)

// Checker evaluates routines against the clock and fires the due
// ones. It is called from the UI loop's minute tick and runs to
// completion there; the mail transport call blocks the tick.
type Checker struct {
	tasks     *store.Store
	routines  *Store
	transport report.Transport
}

// Result records the outcome of one fired routine.
type Result struct {
	Routine model.Routine
	Sent    bool
	Err     error
}

// NewChecker creates a checker over the given stores and transport.
func NewChecker(tasks *store.Store, routines *Store, transport report.Transport) *Checker {
	return &Checker{tasks: tasks, routines: routines, transport: transport}
}

// Due reports whether a routine should fire at the given instant.
// The send time must equal the wall clock truncated to the minute: a
// tick missed at that exact minute skips the routine for the day.
// A routine fires at most once per calendar day regardless of how
// many ticks land on its minute.
func Due(r model.Routine, now time.Time) bool {
	if !r.Enabled {
		return false
	}
	if r.SendTime != now.Format("15:04") {
		return false
	}
	today := dateutil.FromTime(now)
	if r.LastSentDate.Equal(today) {
		return false
	}

	switch r.Repeat {
	case model.RepeatOnce:
		return r.SendDate.Equal(today)
	case model.RepeatDaily:
		return true
	case model.RepeatWeekly:
		name := model.WeekdayName(now.Weekday())
		for _, wd := range r.Weekdays {
			if wd == name {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Check evaluates every routine against now, sends the due ones, and
// persists updated send history. Routines sharing a send time are
// evaluated independently; their relative order is unspecified.
func (c *Checker) Check(now time.Time) []Result {
	var results []Result
	for _, r := range c.routines.List() {
		if !Due(r, now) {
			continue
		}
		res := Result{Routine: r}
		if err := c.fire(r, now); err != nil {
			res.Err = err
			logger.Error("Routine send failed",
				logger.F("routine", r.Name), logger.F("error", err))
		} else {
			res.Sent = true
			c.routines.markSent(r.ID, dateutil.FromTime(now), now.Format("15:04"))
			logger.Info("Routine sent", logger.F("routine", r.Name))
		}
		results = append(results, res)
	}

	if len(results) > 0 {
		if err := c.routines.Save(); err != nil {
			logger.Error("Failed to persist routine history", logger.F("error", err))
		}
	}
	return results
}

// fire builds and sends the report for one routine. Send history is
// only updated by the caller when this returns nil.
func (c *Checker) fire(r model.Routine, now time.Time) error {
	date := dateutil.FromTime(now)
	data := report.Collect(c.tasks, date, r.SelectedCategories, r.ContentTypes)

	html, err := report.RenderHTML(data, report.Meta{
		Title:         "Daily report",
		RoutineName:   r.Name,
		Memo:          r.Memo,
		GeneratedAt:   now,
		CategoryColor: c.tasks.CategoryColor,
	})
	if err != nil {
		return err
	}

	subject := r.Subject
	if subject == "" {
		subject = date.String() + " Daily report"
	}
	return c.transport.Send("[routine] "+subject, html, r.Recipients)
}
