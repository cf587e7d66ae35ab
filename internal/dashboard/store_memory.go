package dashboard

import (
	"context"
	"sync"

	"workbench/pkg/platform/sentinel"
)

// InMemoryStore keeps layouts in a slice to preserve creation order, which
// matters for the delete-active fallback (first remaining layout wins).
type InMemoryStore struct {
	mu      sync.RWMutex
	layouts []Layout
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Upsert(_ context.Context, l Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, have := range s.layouts {
		if have.ID == l.ID {
			s.layouts[i] = l
			return nil
		}
	}
	s.layouts = append(s.layouts, l)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, layoutID string) (Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.layouts {
		if string(l.ID) == layoutID {
			return l, nil
		}
	}
	return Layout{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, layoutID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.layouts {
		if string(l.ID) == layoutID {
			s.layouts = append(s.layouts[:i], s.layouts[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) All(_ context.Context) ([]Layout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Layout, len(s.layouts))
	copy(out, s.layouts)
	return out, nil
}

func (s *InMemoryStore) ReplaceAll(_ context.Context, layouts []Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts = make([]Layout, len(layouts))
	copy(s.layouts, layouts)
	return nil
}
