// Package routine persists report send rules and decides, once per
// minute, which of them are due.
package routine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/daybook-app/daybook/internal/dateutil"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/model"
)

const routinesFile = "daily_routines.json"

// Store owns the persisted routine list.
type Store struct {
	dataDir  string
	routines []model.Routine
	dirty    bool
}

// OpenStore loads the routine list from dataDir. A missing or
// unreadable file degrades to an empty list.
func OpenStore(dataDir string) *Store {
	s := &Store{dataDir: dataDir}

	path := filepath.Join(dataDir, routinesFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read routines file, starting empty",
				logger.F("path", path), logger.F("error", err))
		}
		return s
	}
	if err := json.Unmarshal(data, &s.routines); err != nil {
		logger.Warn("Failed to parse routines file, starting empty",
			logger.F("path", path), logger.F("error", err))
		s.routines = nil
	}
	return s
}

// List returns a copy of the routine list.
func (s *Store) List() []model.Routine {
	out := make([]model.Routine, len(s.routines))
	copy(out, s.routines)
	return out
}

// Get returns the routine with the given id.
func (s *Store) Get(id string) (model.Routine, bool) {
	for _, r := range s.routines {
		if r.ID == id {
			return r, true
		}
	}
	return model.Routine{}, false
}

// Add validates and appends a routine.
func (s *Store) Add(r model.Routine) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.routines = append(s.routines, r)
	s.dirty = true
	return nil
}

// Update validates and replaces the routine with the given id.
func (s *Store) Update(id string, r model.Routine) error {
	if err := r.Validate(); err != nil {
		return err
	}
	for i := range s.routines {
		if s.routines[i].ID == id {
			r.ID = id
			s.routines[i] = r
			s.dirty = true
			return nil
		}
	}
	return fmt.Errorf("routine %q not found", id)
}

// Delete removes the routine with the given id.
func (s *Store) Delete(id string) bool {
	for i := range s.routines {
		if s.routines[i].ID == id {
			s.routines = append(s.routines[:i], s.routines[i+1:]...)
			s.dirty = true
			return true
		}
	}
	return false
}

// SetEnabled flips a routine on or off.
func (s *Store) SetEnabled(id string, enabled bool) bool {
	for i := range s.routines {
		if s.routines[i].ID == id {
			s.routines[i].Enabled = enabled
			s.dirty = true
			return true
		}
	}
	return false
}

// markSent records a successful send on a routine.
func (s *Store) markSent(id string, date dateutil.Date, timeOfDay string) {
	for i := range s.routines {
		if s.routines[i].ID != id {
			continue
		}
		s.routines[i].LastSentDate = date
		s.routines[i].LastSentTime = timeOfDay
		s.routines[i].TotalSent++
		s.dirty = true
		return
	}
}

// Save writes the routine list when it has unsaved mutations.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(s.routines, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal routines: %w", err)
	}
	path := filepath.Join(s.dataDir, routinesFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write routines: %w", err)
	}
	s.dirty = false
	return nil
}
