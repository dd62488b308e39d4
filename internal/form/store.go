// Package form holds the shared form state: per-field value, touched flag
// and validation error. Widgets write values through the store and read
// errors back from it; they never own form data themselves.
package form

import (
	"maps"
	"sync"
)

type Store struct {
	mu      sync.Mutex
	values  map[string]any
	touched map[string]bool
	errors  map[string]string
}

// NewStore copies initial into a fresh store. All fields start untouched
// and error-free.
func NewStore(initial map[string]any) *Store {
	s := &Store{}
	s.reset(initial)
	return s
}

func (s *Store) reset(initial map[string]any) {
	s.values = make(map[string]any, len(initial))
	maps.Copy(s.values, initial)
	s.touched = make(map[string]bool)
	s.errors = make(map[string]string)
}

// Reset discards all values, touched flags and errors and reapplies initial.
func (s *Store) Reset(initial map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(initial)
}

// Value returns the field's current value and whether the field exists.
func (s *Store) Value(field string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[field]
	return v, ok
}

// SetValue writes a field value. Unknown field names are accepted; the
// ruleset decides what is meaningful.
func (s *Store) SetValue(field string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[field] = value
}

// Touch marks the field as interacted with. Errors only surface on
// touched fields.
func (s *Store) Touch(field string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched[field] = true
}

// TouchAll marks every known field touched, as submit does.
func (s *Store) TouchAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for field := range s.values {
		s.touched[field] = true
	}
}

func (s *Store) Touched(field string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touched[field]
}

// SetErrors replaces the full error map, typically with a ruleset result.
func (s *Store) SetErrors(errs map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = make(map[string]string, len(errs))
	maps.Copy(s.errors, errs)
}

// Error returns the field's validation error, or "" when clean.
func (s *Store) Error(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors[field]
}

// DisplayError returns the error only once the field has been touched.
func (s *Store) DisplayError(field string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.touched[field] {
		return ""
	}
	return s.errors[field]
}

// Snapshot copies the current values for evaluation outside the lock.
func (s *Store) Snapshot() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]any, len(s.values))
	maps.Copy(out, s.values)
	return out
}
