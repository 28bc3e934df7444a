package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	return s
}

func addTask(t *testing.T, s *Store, title string, date dateutil.Date) model.Task {
	t.Helper()
	task := model.NewTask(title, "", "LB", date)
	s.AddTask(task)
	got, ok := s.Task(task.ID)
	require.True(t, ok)
	return got
}

// assertContiguousOrders checks the per-date display order invariant:
// orders are exactly 1..N in the order the view returns them.
func assertContiguousOrders(t *testing.T, s *Store, date dateutil.Date) {
	t.Helper()
	view := s.TasksForDate(date)
	for i, task := range view.Tasks {
		assert.Equal(t, i+1, task.Order, "task %q at position %d", task.Title, i)
	}
}

func TestOpenMissingFilesStartsEmpty(t *testing.T) {
	s := newTestStore(t)

	assert.Empty(t, s.AllTasks())
	assert.False(t, s.Dirty())

	names := make([]string, 0)
	for _, c := range s.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"LB", "Tester", "Handler", "ETC"}, names)
}

func TestOpenCorruptTasksFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), []byte("{not json"), 0644))

	s, err := Open(dir)
	require.NoError(t, err)
	assert.Empty(t, s.AllTasks())
}

func TestOpenCorruptCategoriesFileDegradesToDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), []byte("[[["), 0644))

	s, err := Open(dir)
	require.NoError(t, err)
	assert.Len(t, s.Categories(), 4)
}

func TestOpenNormalizesLoadedOrders(t *testing.T) {
	dir := t.TempDir()
	tasks := []model.Task{
		{ID: "a", Title: "first", Category: "ETC", CreatedDate: dateutil.New(2026, time.March, 1), Order: 5},
		{ID: "b", Title: "second", Category: "ETC", CreatedDate: dateutil.New(2026, time.March, 1), Order: 9},
		{ID: "c", Title: "unordered", Category: "ETC", CreatedDate: dateutil.New(2026, time.March, 1)},
	}
	data, err := json.Marshal(tasks)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tasks.json"), data, 0644))

	s, err := Open(dir)
	require.NoError(t, err)

	view := s.TasksForDate(dateutil.New(2026, time.March, 1))
	require.Len(t, view.Tasks, 3)
	assert.Equal(t, "first", view.Tasks[0].Title)
	assert.Equal(t, "second", view.Tasks[1].Title)
	assert.Equal(t, "unordered", view.Tasks[2].Title)
	assertContiguousOrders(t, s, dateutil.New(2026, time.March, 1))

	// Renumbering is a mutation that must reach disk.
	assert.True(t, s.Dirty())
}

func TestAddTaskAppendsToDateOrder(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2026, time.March, 2)

	a := addTask(t, s, "a", date)
	b := addTask(t, s, "b", date)
	other := addTask(t, s, "other day", date.AddDays(1))

	assert.Equal(t, 1, a.Order)
	assert.Equal(t, 2, b.Order)
	assert.Equal(t, 1, other.Order)
	assertContiguousOrders(t, s, date)
}

func TestDayViewSeparatesCarriedOver(t *testing.T) {
	s := newTestStore(t)
	today := dateutil.New(2026, time.March, 10)
	yesterday := today.AddDays(-1)

	addTask(t, s, "own", today)

	carried := model.NewTask("carried", "", "LB", yesterday)
	carried.Important = true
	s.AddTask(carried)

	done := model.NewTask("done elsewhere", "", "LB", yesterday)
	done.Important = true
	done.Completed = true
	s.AddTask(done)

	plain := model.NewTask("not important", "", "LB", yesterday)
	s.AddTask(plain)

	view := s.TasksForDate(today)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "own", view.Tasks[0].Title)
	require.Len(t, view.CarriedOver, 1)
	assert.Equal(t, "carried", view.CarriedOver[0].Title)

	// A date's own important unfinished tasks never carry into itself.
	yView := s.TasksForDate(yesterday)
	assert.Len(t, yView.Tasks, 3)
	assert.Empty(t, yView.CarriedOver)
}

func TestDeleteTaskClosesOrderGap(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2026, time.March, 3)

	addTask(t, s, "a", date)
	b := addTask(t, s, "b", date)
	addTask(t, s, "c", date)

	require.True(t, s.DeleteTask(b.ID))

	view := s.TasksForDate(date)
	require.Len(t, view.Tasks, 2)
	assert.Equal(t, "a", view.Tasks[0].Title)
	assert.Equal(t, "c", view.Tasks[1].Title)
	assertContiguousOrders(t, s, date)

	assert.False(t, s.DeleteTask(b.ID))
}

func TestReorderTasksMovesWithinDate(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2026, time.March, 4)

	addTask(t, s, "a", date)
	addTask(t, s, "b", date)
	addTask(t, s, "c", date)

	require.True(t, s.ReorderTasks(date, 0, 2))

	titles := func() []string {
		var out []string
		for _, task := range s.TasksForDate(date).Tasks {
			out = append(out, task.Title)
		}
		return out
	}
	assert.Equal(t, []string{"b", "c", "a"}, titles())
	assertContiguousOrders(t, s, date)

	// Moving back restores the original order.
	require.True(t, s.ReorderTasks(date, 2, 0))
	assert.Equal(t, []string{"a", "b", "c"}, titles())
	assertContiguousOrders(t, s, date)
}

func TestReorderTasksRejectsBadIndices(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2026, time.March, 5)
	addTask(t, s, "only", date)

	assert.False(t, s.ReorderTasks(date, 0, 0))
	assert.False(t, s.ReorderTasks(date, -1, 0))
	assert.False(t, s.ReorderTasks(date, 0, 1))
	assert.False(t, s.ReorderTasks(date.AddDays(1), 0, 0))
}

func TestToggleFlags(t *testing.T) {
	s := newTestStore(t)
	task := addTask(t, s, "flip", dateutil.New(2026, time.March, 6))

	require.True(t, s.ToggleCompleted(task.ID))
	got, _ := s.Task(task.ID)
	assert.True(t, got.Completed)

	require.True(t, s.ToggleCompleted(task.ID))
	got, _ = s.Task(task.ID)
	assert.False(t, got.Completed)

	require.True(t, s.ToggleImportant(task.ID))
	got, _ = s.Task(task.ID)
	assert.True(t, got.Important)

	assert.False(t, s.ToggleCompleted("nope"))
	assert.False(t, s.ToggleImportant("nope"))
}

func TestUpdateTaskKeepsLookedUpID(t *testing.T) {
	s := newTestStore(t)
	task := addTask(t, s, "before", dateutil.New(2026, time.March, 7))

	updated := task
	updated.ID = "spoofed"
	updated.Title = "after"
	require.True(t, s.UpdateTask(task.ID, updated))

	got, ok := s.Task(task.ID)
	require.True(t, ok)
	assert.Equal(t, "after", got.Title)
	_, ok = s.Task("spoofed")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2026, time.March, 8)

	empty := s.Stats(date)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0.0, empty.CompletionRate)

	addTask(t, s, "a", date)
	b := addTask(t, s, "b", date)
	addTask(t, s, "c", date)
	addTask(t, s, "d", date)
	s.ToggleCompleted(b.ID)

	st := s.Stats(date)
	assert.Equal(t, 4, st.Total)
	assert.Equal(t, 1, st.Completed)
	assert.InDelta(t, 25.0, st.CompletionRate, 0.001)
}

func TestDeleteCategoryReassignsTasks(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2026, time.March, 9)
	task := addTask(t, s, "in LB", date)
	require.Equal(t, "LB", task.Category)

	require.NoError(t, s.DeleteCategory("LB"))

	got, _ := s.Task(task.ID)
	assert.Equal(t, model.ReservedCategory, got.Category)
	_, exists := s.Category("LB")
	assert.False(t, exists)
}

func TestDeleteCategoryReserved(t *testing.T) {
	s := newTestStore(t)
	err := s.DeleteCategory(model.ReservedCategory)
	assert.ErrorIs(t, err, ErrReservedCategory)

	err = s.DeleteCategory("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddCategoryRejectsDuplicates(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddCategory(model.NewCategory("Research", "#123456")))
	assert.Error(t, s.AddCategory(model.NewCategory("Research", "#654321")))
	assert.Error(t, s.AddCategory(model.Category{}))
}

func TestReorderCategories(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.ReorderCategories(0, 2))
	names := make([]string, 0)
	for _, c := range s.Categories() {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Tester", "Handler", "LB", "ETC"}, names)

	assert.True(t, s.ReorderCategories(1, 1))
	assert.False(t, s.ReorderCategories(-1, 0))
	assert.False(t, s.ReorderCategories(0, 99))
}

func TestCategoryColorFallback(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "#4285F4", s.CategoryColor("LB"))
	assert.Equal(t, "#6c757d", s.CategoryColor("unknown"))
}

func TestTemplates(t *testing.T) {
	s := newTestStore(t)

	require.True(t, s.AddTemplate("LB", model.Template{Title: "standup", Content: "notes"}))
	c, _ := s.Category("LB")
	require.Len(t, c.Templates, 1)

	assert.False(t, s.RemoveTemplate("LB", 5))
	require.True(t, s.RemoveTemplate("LB", 0))
	c, _ = s.Category("LB")
	assert.Empty(t, c.Templates)

	assert.False(t, s.AddTemplate("nope", model.Template{Title: "x"}))
}

func TestDeleteSecondOfThreeKeepsFirstAtOne(t *testing.T) {
	s := newTestStore(t)
	date := dateutil.New(2024, time.June, 1)

	first := model.NewTask("Write report", "", "ETC", date)
	s.AddTask(first)
	second := addTask(t, s, "second", date)
	addTask(t, s, "third", date)

	require.True(t, s.DeleteTask(second.ID))

	view := s.TasksForDate(date)
	require.Len(t, view.Tasks, 2)
	assert.Equal(t, "Write report", view.Tasks[0].Title)
	assert.Equal(t, 1, view.Tasks[0].Order)
	assert.Equal(t, 2, view.Tasks[1].Order)
}

func TestTemplateListGrowsInOrder(t *testing.T) {
	s := newTestStore(t)

	c, _ := s.Category("LB")
	require.Empty(t, c.Templates)

	require.True(t, s.AddTemplate("LB", model.Template{Title: "Standup", Content: "Daily sync"}))
	require.True(t, s.AddTemplate("LB", model.Template{Title: "Review"}))

	c, _ = s.Category("LB")
	require.Len(t, c.Templates, 2)
	assert.Equal(t, "Standup", c.Templates[0].Title)
	assert.Equal(t, "Review", c.Templates[1].Title)
}

func TestSaveWritesOnlyDirtyCollections(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	// The default category set is synthesized in memory, not written.
	require.NoError(t, s.Save())
	_, err = os.Stat(filepath.Join(dir, "tasks.json"))
	assert.True(t, os.IsNotExist(err))

	addTask(t, s, "persist me", dateutil.New(2026, time.March, 11))
	require.True(t, s.Dirty())
	require.NoError(t, s.Save())
	assert.False(t, s.Dirty())

	reopened, err := Open(dir)
	require.NoError(t, err)
	require.Len(t, reopened.AllTasks(), 1)
	assert.Equal(t, "persist me", reopened.AllTasks()[0].Title)
}

func TestSaveRoundTripPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	date := dateutil.New(2026, time.March, 12)

	addTask(t, s, "a", date)
	addTask(t, s, "b", date)
	addTask(t, s, "c", date)
	require.True(t, s.ReorderTasks(date, 2, 0))
	require.NoError(t, s.Save())

	reopened, err := Open(dir)
	require.NoError(t, err)
	view := reopened.TasksForDate(date)
	require.Len(t, view.Tasks, 3)
	assert.Equal(t, "c", view.Tasks[0].Title)
	assert.Equal(t, "a", view.Tasks[1].Title)
	assert.Equal(t, "b", view.Tasks[2].Title)
	assertContiguousOrders(t, reopened, date)
}

func TestEnsureReservedCategory(t *testing.T) {
	dir := t.TempDir()
	categories := []model.Category{{Name: "Only", Color: "#111111"}}
	data, err := json.Marshal(categories)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.json"), data, 0644))

	s, err := Open(dir)
	require.NoError(t, err)

	_, ok := s.Category(model.ReservedCategory)
	assert.True(t, ok)
	assert.True(t, s.Dirty())
}
