// Package store is the single source of truth for tasks and categories.
// It loads both collections from JSON files at open time, keeps them in
// memory, and writes them back on demand. All mutation goes through it;
// callers hold only values it returns.
//
// The store is not safe for concurrent use. The application mutates it
// from the UI loop only, and the two backing files are written without
// any cross-file transactional guarantee.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/model"
)

const (
	tasksFile      = "tasks.json"
	categoriesFile = "categories.json"
)

// ErrReservedCategory is returned when deleting the reserved category.
var ErrReservedCategory = errors.New("the ETC category cannot be deleted")

// ErrNotFound is returned when an id or name matches nothing.
var ErrNotFound = errors.New("not found")

// DayView is the result of a date query: the date's own tasks in
// display order, and important unfinished tasks carried over from
// other dates. The two collections are deliberately separate so
// callers cannot confuse a carried-over task with one owned by the
// date being viewed.
type DayView struct {
	Tasks       []model.Task
	CarriedOver []model.Task
}

// Stats summarizes a single day's tasks.
type Stats struct {
	Total          int
	Completed      int
	CompletionRate float64
}

// Store owns the task and category collections and their JSON files.
type Store struct {
	dataDir    string
	tasks      []model.Task
	categories []model.Category

	// True when an unsaved mutation exists in the respective
	// collection; cleared only after a successful write.
	tasksDirty      bool
	categoriesDirty bool
}

// Open loads the store from dataDir, creating the directory if needed.
// A missing or unreadable tasks file degrades to an empty task list; a
// missing or unreadable categories file degrades to the built-in
// default set. Load problems are logged, never returned.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Store{dataDir: dataDir}
	s.loadTasks()
	s.loadCategories()
	s.ensureReservedCategory()
	s.normalizeOrders()
	return s, nil
}

// DataDir returns the directory backing the store.
func (s *Store) DataDir() string {
	return s.dataDir
}

func (s *Store) loadTasks() {
	path := filepath.Join(s.dataDir, tasksFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read tasks file, starting empty",
				logger.F("path", path), logger.F("error", err))
		}
		s.tasks = nil
		return
	}

	var tasks []model.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		logger.Warn("Failed to parse tasks file, starting empty",
			logger.F("path", path), logger.F("error", err))
		s.tasks = nil
		return
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	s.tasks = tasks
}

func (s *Store) loadCategories() {
	path := filepath.Join(s.dataDir, categoriesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read categories file, using defaults",
				logger.F("path", path), logger.F("error", err))
		}
		s.categories = model.DefaultCategories()
		return
	}

	var categories []model.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		logger.Warn("Failed to parse categories file, using defaults",
			logger.F("path", path), logger.F("error", err))
		s.categories = model.DefaultCategories()
		return
	}
	s.categories = categories
}

// ensureReservedCategory guarantees the ETC category exists.
func (s *Store) ensureReservedCategory() {
	for _, c := range s.categories {
		if c.Name == model.ReservedCategory {
			return
		}
	}
	s.categories = append(s.categories, model.NewCategory(model.ReservedCategory, ""))
	s.categoriesDirty = true
}

// normalizeOrders renumbers every date group to 1..N. Records loaded
// without an order keep their file position but sort after numbered
// ones. Run once at load so mutations can rely on the invariant.
func (s *Store) normalizeOrders() {
	groups := make(map[string][]*model.Task)
	var dates []string
	for i := range s.tasks {
		key := s.tasks[i].CreatedDate.String()
		if _, ok := groups[key]; !ok {
			dates = append(dates, key)
		}
		groups[key] = append(groups[key], &s.tasks[i])
	}

	for _, key := range dates {
		group := groups[key]
		sort.SliceStable(group, func(i, j int) bool {
			oi, oj := group[i].Order, group[j].Order
			if oi == 0 {
				return false
			}
			if oj == 0 {
				return true
			}
			return oi < oj
		})
		for i, t := range group {
			if t.Order != i+1 {
				t.Order = i + 1
				s.tasksDirty = true
			}
		}
	}
}

// TasksForDate returns the day view for a date: its own tasks sorted
// by display order, plus important unfinished tasks from other dates
// in encounter order.
func (s *Store) TasksForDate(date dateutil.Date) DayView {
	var view DayView
	for _, t := range s.tasks {
		if t.CreatedDate.Equal(date) {
			view.Tasks = append(view.Tasks, t)
		} else if t.Important && !t.Completed {
			view.CarriedOver = append(view.CarriedOver, t)
		}
	}
	sort.SliceStable(view.Tasks, func(i, j int) bool {
		return view.Tasks[i].Order < view.Tasks[j].Order
	})
	return view
}

// AllTasks returns a copy of every task in storage order.
func (s *Store) AllTasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns the task with the given id.
func (s *Store) Task(id string) (model.Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// AddTask appends a task. A task without an order is placed after the
// existing tasks of its date.
func (s *Store) AddTask(t model.Task) {
	if t.Order == 0 {
		max := 0
		for _, other := range s.tasks {
			if other.CreatedDate.Equal(t.CreatedDate) && other.Order > max {
				max = other.Order
			}
		}
		t.Order = max + 1
	}
	s.tasks = append(s.tasks, t)
	s.tasksDirty = true
}

// UpdateTask replaces the task with the given id. Returns false when
// no task matches. The replacement keeps the id it was looked up by.
func (s *Store) UpdateTask(id string, updated model.Task) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			updated.ID = id
			s.tasks[i] = updated
			s.tasksDirty = true
			return true
		}
	}
	return false
}

// ToggleCompleted flips the completed flag of a task.
func (s *Store) ToggleCompleted(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Completed = !s.tasks[i].Completed
			s.tasksDirty = true
			return true
		}
	}
	return false
}

// ToggleImportant flips the important flag of a task.
func (s *Store) ToggleImportant(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i].Important = !s.tasks[i].Important
			s.tasksDirty = true
			return true
		}
	}
	return false
}

// DeleteTask removes a task and closes the order gap it leaves among
// the remaining tasks of the same date.
func (s *Store) DeleteTask(id string) bool {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		deleted := s.tasks[i]
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		for j := range s.tasks {
			if s.tasks[j].CreatedDate.Equal(deleted.CreatedDate) && s.tasks[j].Order > deleted.Order {
				s.tasks[j].Order--
			}
		}
		s.tasksDirty = true
		return true
	}
	return false
}

// ReorderTasks moves a task within a date's display order. Indices are
// positions in the date-filtered ordered view, not the raw storage
// list. Returns false for out-of-range indices or a no-op move.
func (s *Store) ReorderTasks(date dateutil.Date, srcIdx, dstIdx int) bool {
	view := s.TasksForDate(date).Tasks
	if srcIdx < 0 || srcIdx >= len(view) || dstIdx < 0 || dstIdx >= len(view) || srcIdx == dstIdx {
		return false
	}

	ids := make([]string, len(view))
	for i, t := range view {
		ids[i] = t.ID
	}
	moved := ids[srcIdx]
	ids = append(ids[:srcIdx], ids[srcIdx+1:]...)
	ids = append(ids[:dstIdx], append([]string{moved}, ids[dstIdx:]...)...)

	position := make(map[string]int, len(ids))
	for i, id := range ids {
		position[id] = i + 1
	}
	for i := range s.tasks {
		if p, ok := position[s.tasks[i].ID]; ok {
			s.tasks[i].Order = p
		}
	}
	s.tasksDirty = true
	return true
}

// Stats returns the per-day task statistics. The completion rate is a
// percentage, zero for an empty day.
func (s *Store) Stats(date dateutil.Date) Stats {
	var st Stats
	for _, t := range s.tasks {
		if !t.CreatedDate.Equal(date) {
			continue
		}
		st.Total++
		if t.Completed {
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = float64(st.Completed) / float64(st.Total) * 100
	}
	return st
}

// Categories returns a copy of the category list in display order.
func (s *Store) Categories() []model.Category {
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// Category returns the category with the given name.
func (s *Store) Category(name string) (model.Category, bool) {
	for _, c := range s.categories {
		if c.Name == name {
			return c, true
		}
	}
	return model.Category{}, false
}

// CategoryColor returns the color of the named category, or a neutral
// gray when the category is unknown.
func (s *Store) CategoryColor(name string) string {
	if c, ok := s.Category(name); ok {
		return c.Color
	}
	return "#6c757d"
}

// AddCategory appends a category. Duplicate names are rejected.
func (s *Store) AddCategory(c model.Category) error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	if _, exists := s.Category(c.Name); exists {
		return fmt.Errorf("category %q already exists", c.Name)
	}
	s.categories = append(s.categories, c)
	s.categoriesDirty = true
	return nil
}

// DeleteCategory removes a category. The reserved category is refused,
// and tasks referencing the removed category move to the reserved one.
func (s *Store) DeleteCategory(name string) error {
	if name == model.ReservedCategory {
		return ErrReservedCategory
	}
	for i, c := range s.categories {
		if c.Name != name {
			continue
		}
		for j := range s.tasks {
			if s.tasks[j].Category == name {
				s.tasks[j].Category = model.ReservedCategory
				s.tasksDirty = true
			}
		}
		s.categories = append(s.categories[:i], s.categories[i+1:]...)
		s.categoriesDirty = true
		return nil
	}
	return ErrNotFound
}

// ReorderCategories moves a category in the global display order.
// Equal indices are accepted as a successful no-op.
func (s *Store) ReorderCategories(srcIdx, dstIdx int) bool {
	if srcIdx < 0 || srcIdx >= len(s.categories) || dstIdx < 0 || dstIdx >= len(s.categories) {
		return false
	}
	if srcIdx == dstIdx {
		return true
	}
	moved := s.categories[srcIdx]
	s.categories = append(s.categories[:srcIdx], s.categories[srcIdx+1:]...)
	s.categories = append(s.categories[:dstIdx], append([]model.Category{moved}, s.categories[dstIdx:]...)...)
	s.categoriesDirty = true
	return true
}

// AddTemplate appends a template to a category.
func (s *Store) AddTemplate(category string, tpl model.Template) bool {
	for i := range s.categories {
		if s.categories[i].Name == category {
			s.categories[i].Templates = append(s.categories[i].Templates, tpl)
			s.categoriesDirty = true
			return true
		}
	}
	return false
}

// RemoveTemplate removes a template from a category by position.
func (s *Store) RemoveTemplate(category string, idx int) bool {
	for i := range s.categories {
		if s.categories[i].Name != category {
			continue
		}
		tpls := s.categories[i].Templates
		if idx < 0 || idx >= len(tpls) {
			return false
		}
		s.categories[i].Templates = append(tpls[:idx], tpls[idx+1:]...)
		s.categoriesDirty = true
		return true
	}
	return false
}

// Dirty reports whether unsaved mutations exist.
func (s *Store) Dirty() bool {
	return s.tasksDirty || s.categoriesDirty
}

// Save writes whichever collections have unsaved mutations. Each dirty
// flag is cleared only after its file is written; a failure leaves the
// flag set so a later Save retries. The two files are written
// independently with no cross-file atomicity.
func (s *Store) Save() error {
	if s.tasksDirty {
		if err := s.writeJSON(tasksFile, s.tasks); err != nil {
			return fmt.Errorf("failed to save tasks: %w", err)
		}
		s.tasksDirty = false
	}
	if s.categoriesDirty {
		if err := s.writeJSON(categoriesFile, s.categories); err != nil {
			return fmt.Errorf("failed to save categories: %w", err)
		}
		s.categoriesDirty = false
	}
	return nil
}

func (s *Store) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dataDir, name), data, 0644)
}
