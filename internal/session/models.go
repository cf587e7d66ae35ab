package session

import (
	"context"
	"time"

	"workbench/internal/registry"
	id "workbench/pkg/domain"
)

// Session is one login-as selection: a pointer into the roster plus the
// capabilities derived from it. Switching users replaces the session
// wholesale; nothing is carried over.
type Session struct {
	ID           string       `json:"id"`
	UserID       id.UserID    `json:"userId"`
	Persona      registry.Persona `json:"persona"`
	Capabilities []Capability `json:"capabilities"`
	Device       string       `json:"device,omitempty"`
	IssuedAt     time.Time    `json:"issuedAt"`
	ExpiresAt    time.Time    `json:"expiresAt"`
}

// Store persists sessions. Implementations must be safe for concurrent use.
type Store interface {
	Save(ctx context.Context, s *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
