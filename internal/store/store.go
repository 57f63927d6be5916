// Package store holds the in-memory itinerary — the single source of truth
// for a running session. It is an explicit state machine: mutations are only
// accepted once the initial load has seeded the store, and every accepted
// mutation hands a deep snapshot to the registered change listener (the
// persistence adapter's save path).
package store

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/HaruLab/travel-planning/internal/domain"
)

// State is the store lifecycle phase.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

// untitled is the fallback title applied to activities saved with an empty title.
const untitled = "Untitled"

// Store holds the trip and guards it for the enrichment workers and sync
// goroutines that read snapshots concurrently with user mutations.
type Store struct {
	mu       sync.Mutex
	state    State
	trip     domain.Trip
	onChange func(domain.Trip)
}

// New returns an empty store in StateUninitialized.
func New() *Store {
	return &Store{}
}

// OnChange registers the listener invoked (outside the store lock, with a
// deep snapshot) after every accepted mutation. Only one listener is
// supported; the persistence adapter owns it.
func (s *Store) OnChange(fn func(domain.Trip)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// BeginLoad marks the store as loading. Idempotent.
func (s *Store) BeginLoad() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateUninitialized {
		s.state = StateLoading
	}
}

// Seed installs the initially-loaded trip and transitions to StateReady.
// It does not notify the change listener: seeding is the result of a load,
// not a user edit, and must never trigger a write back to the stores.
func (s *Store) Seed(t domain.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trip = t.Clone()
	s.state = StateReady
}

// Snapshot returns a deep copy of the current trip.
func (s *Store) Snapshot() domain.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trip.Clone()
}

// NewID returns a fresh opaque activity/todo identifier.
func NewID() string {
	return uuid.NewString()
}

// mutate runs fn under the lock once the store is Ready, then notifies the
// change listener with a snapshot. fn returning an error aborts the
// notification; fn returning false skips it (accepted no-op).
func (s *Store) mutate(fn func(t *domain.Trip) (changed bool, err error)) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return fmt.Errorf("store: %w", domain.ErrNotReady)
	}
	changed, err := fn(&s.trip)
	var snap domain.Trip
	notify := err == nil && changed && s.onChange != nil
	onChange := s.onChange
	if notify {
		snap = s.trip.Clone()
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if notify {
		onChange(snap)
	}
	return nil
}

// normalize applies save-time defaults to an activity: empty titles become
// "Untitled" and a missing map embed is derived from origin/destination.
func normalize(a *domain.Activity) {
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		a.Title = untitled
	}
	if a.MapEmbedCode == "" {
		a.MapEmbedCode = a.DeriveMapEmbed()
	}
}

// AddActivity appends a new activity. The caller generates the ID; it must be
// non-empty and unique within the sequence.
func (s *Store) AddActivity(a domain.Activity) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		if a.ID == "" {
			return false, fmt.Errorf("store.AddActivity: %w: missing activity id", domain.ErrValidation)
		}
		if t.IndexOf(a.ID) >= 0 {
			return false, fmt.Errorf("store.AddActivity: %w: duplicate activity id %q", domain.ErrValidation, a.ID)
		}
		if a.Price < 0 {
			return false, fmt.Errorf("store.AddActivity: %w: negative price", domain.ErrValidation)
		}
		normalize(&a)
		t.Activities = append(t.Activities, a.Clone())
		return true, nil
	})
}

// UpdateActivity replaces the activity whose ID matches, preserving its
// position in the sequence. Editing the title or origin clears the cached
// weather so enrichment resolves it again.
func (s *Store) UpdateActivity(a domain.Activity) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		i := t.IndexOf(a.ID)
		if i < 0 {
			return false, fmt.Errorf("store.UpdateActivity: %w: activity %q", domain.ErrNotFound, a.ID)
		}
		if a.Price < 0 {
			return false, fmt.Errorf("store.UpdateActivity: %w: negative price", domain.ErrValidation)
		}
		normalize(&a)
		prev := t.Activities[i]
		if a.Title != prev.Title || a.Origin != prev.Origin {
			a.Weather = nil // location changed: cached weather is stale
		} else {
			a.Weather = prev.Weather
		}
		t.Activities[i] = a.Clone()
		return true, nil
	})
}

// RemoveActivity removes the first activity with the given ID.
// Removing an unknown ID is an accepted no-op.
func (s *Store) RemoveActivity(id string) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		i := t.IndexOf(id)
		if i < 0 {
			return false, nil
		}
		t.Activities = append(t.Activities[:i], t.Activities[i+1:]...)
		return true, nil
	})
}

// Reorder moves the activity at from to position to, shifting the elements
// between them. Both indices must be valid positions in the current sequence.
// This is the operation backing drag-and-drop.
func (s *Store) Reorder(from, to int) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		n := len(t.Activities)
		if from < 0 || from >= n || to < 0 || to >= n {
			return false, fmt.Errorf("store.Reorder: %w: index out of range (from=%d to=%d len=%d)",
				domain.ErrValidation, from, to, n)
		}
		if from == to {
			return false, nil
		}
		moved := t.Activities[from]
		rest := append(t.Activities[:from], t.Activities[from+1:]...)
		t.Activities = append(rest[:to], append([]domain.Activity{moved}, rest[to:]...)...)
		return true, nil
	})
}

// SetTitle sets the trip title.
func (s *Store) SetTitle(title string) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		if t.Title == title {
			return false, nil
		}
		t.Title = title
		return true, nil
	})
}

// SetDate sets the trip date label (free text, not a parsed calendar date).
func (s *Store) SetDate(date string) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		if t.Date == date {
			return false, nil
		}
		t.Date = date
		return true, nil
	})
}

// SetWeather attaches enrichment results to an activity. Attaching to an
// activity that disappeared meanwhile is an accepted no-op: the enrichment
// worker races user deletes by design.
func (s *Store) SetWeather(id string, w domain.WeatherInfo) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		i := t.IndexOf(id)
		if i < 0 {
			return false, nil
		}
		t.Activities[i].Weather = &w
		return true, nil
	})
}

// AddTodo appends a sub-task to an activity and returns its generated ID.
func (s *Store) AddTodo(activityID, text string) (string, error) {
	id := NewID()
	err := s.mutate(func(t *domain.Trip) (bool, error) {
		i := t.IndexOf(activityID)
		if i < 0 {
			return false, fmt.Errorf("store.AddTodo: %w: activity %q", domain.ErrNotFound, activityID)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return false, fmt.Errorf("store.AddTodo: %w: empty todo text", domain.ErrValidation)
		}
		t.Activities[i].Todos = append(t.Activities[i].Todos, domain.Todo{ID: id, Text: text})
		return true, nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// ToggleTodo flips a sub-task's completed flag.
func (s *Store) ToggleTodo(activityID, todoID string) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		i := t.IndexOf(activityID)
		if i < 0 {
			return false, fmt.Errorf("store.ToggleTodo: %w: activity %q", domain.ErrNotFound, activityID)
		}
		for j := range t.Activities[i].Todos {
			if t.Activities[i].Todos[j].ID == todoID {
				t.Activities[i].Todos[j].Completed = !t.Activities[i].Todos[j].Completed
				return true, nil
			}
		}
		return false, fmt.Errorf("store.ToggleTodo: %w: todo %q", domain.ErrNotFound, todoID)
	})
}

// RemoveTodo deletes a sub-task from an activity.
// Removing an unknown todo is an accepted no-op.
func (s *Store) RemoveTodo(activityID, todoID string) error {
	return s.mutate(func(t *domain.Trip) (bool, error) {
		i := t.IndexOf(activityID)
		if i < 0 {
			return false, fmt.Errorf("store.RemoveTodo: %w: activity %q", domain.ErrNotFound, activityID)
		}
		todos := t.Activities[i].Todos
		for j := range todos {
			if todos[j].ID == todoID {
				t.Activities[i].Todos = append(todos[:j], todos[j+1:]...)
				return true, nil
			}
		}
		return false, nil
	})
}

// Adopt overlays the fields present in doc onto the current trip without
// notifying the change listener. Import uses it: imported data must reach the
// local cache but bypass the remote endpoint, so the adapter persists the
// cache itself after adopting.
func (s *Store) Adopt(doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return fmt.Errorf("store.Adopt: %w", domain.ErrNotReady)
	}
	s.trip = doc.ToTrip(s.trip)
	return nil
}
