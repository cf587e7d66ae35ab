package event

import (
	"context"
	"sync"

	"workbench/pkg/platform/sentinel"
)

// InMemoryStore keeps events in a slice so insertion order is preserved; the
// upcoming-list tie ordering depends on it.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Insert(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

func (s *InMemoryStore) Put(_ context.Context, e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID == e.ID {
			s.events[i] = e
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) Delete(_ context.Context, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.events {
		if s.events[i].ID.String() == eventID {
			s.events = append(s.events[:i], s.events[i+1:]...)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) Get(_ context.Context, eventID string) (Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID.String() == eventID {
			return e, nil
		}
	}
	return Event{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) All(_ context.Context) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events...), nil
}

func (s *InMemoryStore) ReplaceAll(_ context.Context, events []Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]Event{}, events...)
	return nil
}
