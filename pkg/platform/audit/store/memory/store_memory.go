package memory

import (
	"context"
	"sort"
	"sync"

	id "workbench/pkg/domain"
	audit "workbench/pkg/platform/audit"
)

// InMemoryStore keeps the trail in process memory. Default backend; the
// Postgres variant takes over when a DSN is configured.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []audit.Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry audit.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

func (s *InMemoryStore) ListByActor(_ context.Context, actor id.UserID) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []audit.Entry
	for _, e := range s.entries {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListRecent returns the most recent N entries, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]audit.Entry{}, s.entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear wipes the trail; used by tests.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}
