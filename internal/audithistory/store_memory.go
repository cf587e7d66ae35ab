package audithistory

import (
	"context"
	"sync"

	"workbench/pkg/platform/sentinel"
)

// InMemoryStore keeps records in seed order.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []AuditRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ReplaceAll(_ context.Context, records []AuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]AuditRecord, len(records))
	copy(s.records, records)
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, auditID string) (AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if string(r.ID) == auditID {
			return r, nil
		}
	}
	return AuditRecord{}, sentinel.ErrNotFound
}

func (s *InMemoryStore) All(_ context.Context) ([]AuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]AuditRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
