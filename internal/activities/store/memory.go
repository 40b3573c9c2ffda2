package store

import (
	"context"
	"fmt"
	"sync"

	"mergington/internal/activities/models"
	"mergington/pkg/platform/sentinel"
)

// Error Contract:
// - Return sentinel.ErrNotFound when no activity has the requested name
// - Return sentinel.ErrAlreadyUsed when Create hits an existing name
// - Return validate errors from Execute unchanged
//
// Callers always receive copies; the live records never leave the lock.

// InMemory is the activity registry. One RWMutex guards every roster, so a
// validate-then-mutate sequence in Execute is serialized against all others.
type InMemory struct {
	mu         sync.RWMutex
	activities map[string]*models.Activity
}

// NewInMemory constructs an empty registry.
func NewInMemory() *InMemory {
	return &InMemory{activities: make(map[string]*models.Activity)}
}

// Create registers a new activity under its exact name.
func (s *InMemory) Create(_ context.Context, activity *models.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.activities[activity.Name]; ok {
		return fmt.Errorf("activity %q: %w", activity.Name, sentinel.ErrAlreadyUsed)
	}
	s.activities[activity.Name] = activity.Clone()
	return nil
}

// ListAll returns a snapshot of every activity keyed by name.
func (s *InMemory) ListAll(_ context.Context) (models.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.Catalog, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

// FindByName is an exact, case-sensitive lookup.
func (s *InMemory) FindByName(_ context.Context, name string) (*models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if a, ok := s.activities[name]; ok {
		return a.Clone(), nil
	}
	return nil, fmt.Errorf("activity %q: %w", name, sentinel.ErrNotFound)
}

// Execute runs validate and then mutate on the live record while holding the
// write lock. mutate is skipped when validate fails. The returned activity is
// a copy taken after mutation.
func (s *InMemory) Execute(_ context.Context, name string, validate func(*models.Activity) error, mutate func(*models.Activity)) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return nil, fmt.Errorf("activity %q: %w", name, sentinel.ErrNotFound)
	}
	if err := validate(a); err != nil {
		return nil, err
	}
	mutate(a)
	return a.Clone(), nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activities), nil
}
