package report

import (
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/daybook-app/daybook/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) (*store.Store, dateutil.Date) {
	t.Helper()
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	date := dateutil.New(2026, time.March, 2)

	a := model.NewTask("write minutes", "from the sync", "LB", date)
	st.AddTask(a)
	st.ToggleCompleted(a.ID)

	st.AddTask(model.NewTask("fix flaky test", "", "Tester", date))

	old := model.NewTask("renew certs", "", "Handler", date.AddDays(-3))
	old.Important = true
	st.AddTask(old)

	ancient := model.NewTask("forgotten", "", "Handler", date.AddDays(-45))
	ancient.Important = true
	st.AddTask(ancient)

	return st, date
}

func TestCollectSectionsAndStats(t *testing.T) {
	st, date := seedStore(t)

	d := Collect(st, date, nil, []string{model.ContentAll, model.ContentCompleted, model.ContentIncomplete})

	assert.Equal(t, 2, d.Total)
	assert.Equal(t, 1, d.CompletedCount)
	assert.InDelta(t, 50.0, d.CompletionRate, 0.001)
	require.Len(t, d.Completed, 1)
	assert.Equal(t, "write minutes", d.Completed[0].Title)
	require.Len(t, d.Incomplete, 1)
	assert.Equal(t, "fix flaky test", d.Incomplete[0].Title)
	assert.Empty(t, d.Pending, "pending section only when requested")
}

func TestCollectPendingWindow(t *testing.T) {
	st, date := seedStore(t)

	d := Collect(st, date, nil, []string{model.ContentPendingImportant})

	require.Len(t, d.Pending, 1)
	assert.Equal(t, "renew certs", d.Pending[0].Title, "tasks older than the window are excluded")
}

func TestCollectCategoryFilter(t *testing.T) {
	st, date := seedStore(t)

	d := Collect(st, date, model.CategoryFilter{"LB"}, []string{model.ContentAll, model.ContentPendingImportant})

	assert.Equal(t, 1, d.Total)
	assert.Equal(t, "write minutes", d.All[0].Title)
	assert.Empty(t, d.Pending, "filter applies to the pending section too")
}

func TestCollectIncompleteOnlyWithCategoryFilter(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	date := dateutil.New(2026, time.March, 2)

	done := model.NewTask("lb done", "", "LB", date)
	st.AddTask(done)
	st.ToggleCompleted(done.ID)
	st.AddTask(model.NewTask("lb open one", "", "LB", date))
	st.AddTask(model.NewTask("lb open two", "", "LB", date))
	st.AddTask(model.NewTask("etc one", "", "ETC", date))
	st.AddTask(model.NewTask("etc two", "", "ETC", date))

	d := Collect(st, date, model.CategoryFilter{"LB"}, []string{model.ContentIncomplete})

	require.Len(t, d.Incomplete, 2)
	assert.Equal(t, "lb open one", d.Incomplete[0].Title)
	assert.Equal(t, "lb open two", d.Incomplete[1].Title)

	html, err := RenderHTML(d, Meta{Title: "Daily report"})
	require.NoError(t, err)
	assert.Contains(t, html, "lb open one")
	assert.Contains(t, html, "lb open two")
	assert.NotContains(t, html, "lb done")
	assert.NotContains(t, html, "etc one")
}

func TestCollectEmptyDay(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)

	d := Collect(st, dateutil.New(2026, time.March, 2), nil, []string{model.ContentAll})
	assert.Equal(t, 0, d.Total)
	assert.Equal(t, 0.0, d.CompletionRate)
}

func TestRenderHTML(t *testing.T) {
	st, date := seedStore(t)
	d := Collect(st, date, nil, []string{model.ContentAll, model.ContentIncomplete})

	html, err := RenderHTML(d, Meta{
		Title:         "Daily report",
		RoutineName:   "standup",
		Memo:          "ship it",
		CategoryColor: st.CategoryColor,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Daily report")
	assert.Contains(t, html, "2026-03-02")
	assert.Contains(t, html, "write minutes")
	assert.Contains(t, html, "standup")
	assert.Contains(t, html, "ship it")
	assert.Contains(t, html, "all categories")
	assert.Contains(t, html, "#4285F4", "category chips use store colors")
	assert.NotContains(t, html, "Still pending", "section not requested")
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	st, err := store.Open(t.TempDir())
	require.NoError(t, err)
	date := dateutil.New(2026, time.March, 2)
	st.AddTask(model.NewTask("<script>alert(1)</script>", "", "LB", date))

	d := Collect(st, date, nil, []string{model.ContentAll})
	html, err := RenderHTML(d, Meta{Title: "Daily report"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRenderHTMLFilterLabel(t *testing.T) {
	st, date := seedStore(t)
	d := Collect(st, date, model.CategoryFilter{"LB", "Tester"}, []string{model.ContentAll})

	html, err := RenderHTML(d, Meta{Title: "Daily report"})
	require.NoError(t, err)
	assert.Contains(t, html, "LB, Tester")
}

func TestContentSnippet(t *testing.T) {
	short := "short note"
	assert.Equal(t, short, contentSnippet(short))

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'x'
	}
	got := contentSnippet(string(long))
	assert.Len(t, got, 103)
	assert.True(t, len(got) < 150)
}
