package export

import (
	"strings"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks() []model.Task {
	march := func(day int) dateutil.Date { return dateutil.New(2026, time.March, day) }
	return []model.Task{
		{ID: "t1", Title: "plan sprint", Category: "LB", CreatedDate: march(1)},
		{ID: "t2", Title: "review, with comma", Category: "Tester", CreatedDate: march(2), Completed: true},
		{ID: "t3", Title: "deploy", Category: "LB", CreatedDate: march(5), Important: true},
	}
}

func TestApplyFilter(t *testing.T) {
	tasks := sampleTasks()

	assert.Len(t, Apply(tasks, Filter{}), 3)

	from := dateutil.New(2026, time.March, 2)
	to := dateutil.New(2026, time.March, 2)
	got := Apply(tasks, Filter{From: &from, To: &to})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)

	got = Apply(tasks, Filter{Categories: []string{"LB"}})
	assert.Len(t, got, 2)

	completed := true
	got = Apply(tasks, Filter{Completed: &completed})
	require.Len(t, got, 1)
	assert.Equal(t, "t2", got[0].ID)

	open := false
	got = Apply(tasks, Filter{Categories: []string{"LB"}, Completed: &open})
	assert.Len(t, got, 2)
}

func TestWriteDefaultFields(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Write(&b, sampleTasks(), Options{IncludeHeader: true}))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID,Title,Content,Category,Created,Important,Completed", lines[0])
	assert.Equal(t, "t1,plan sprint,,LB,2026-03-01,no,no", lines[1])
	assert.Contains(t, lines[2], `"review, with comma"`, "comma in title must be quoted")
	assert.Equal(t, "t3,deploy,,LB,2026-03-05,yes,no", lines[3])
}

func TestWriteFieldSelection(t *testing.T) {
	var b strings.Builder
	opts := Options{Fields: []string{"title", "bogus", "completed"}, IncludeHeader: true}
	require.NoError(t, Write(&b, sampleTasks(), opts))

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	assert.Equal(t, "Title,Completed", lines[0])
	assert.Equal(t, "plan sprint,no", lines[1])
}

func TestWriteNoValidFields(t *testing.T) {
	var b strings.Builder
	err := Write(&b, sampleTasks(), Options{Fields: []string{"bogus"}})
	assert.Error(t, err)
	assert.Empty(t, b.String())
}

func TestWriteWithoutHeader(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Write(&b, sampleTasks()[:1], Options{}))
	assert.Equal(t, "t1,plan sprint,,LB,2026-03-01,no,no\n", b.String())
}
