package session

import (
	"context"
	"sync"
	"time"

	"workbench/pkg/platform/sentinel"
)

// InMemorySessionStore keeps sessions in process memory. Default backend; the
// Redis variant takes over when a URL is configured.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *InMemorySessionStore) Save(_ context.Context, sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = sess
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if time.Now().After(sess.ExpiresAt) {
		return nil, sentinel.ErrNotFound
	}
	return sess, nil
}

func (s *InMemorySessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
