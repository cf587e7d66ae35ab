package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mssola/useragent"

	"workbench/internal/platform/localstore"
	"workbench/internal/platform/metrics"
	"workbench/internal/registry"
	id "workbench/pkg/domain"
	audit "workbench/pkg/platform/audit"
	"workbench/pkg/platform/sentinel"
)

// StorageKey is the versioned snapshot key for the current-user selection.
// The version is bumped on incompatible snapshot changes.
const StorageKey = "trc-user-storage-v2"

type snapshot struct {
	CurrentUserID id.UserID `json:"currentUserId"`
}

// Service owns the current-user pointer and the login-as flow. The default
// selection is the first roster member, matching the seeded behavior.
type Service struct {
	users   *registry.Users
	store   Store
	tokens  *TokenService
	local   *localstore.Store
	trail   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger

	ttl time.Duration

	mu      sync.RWMutex
	current id.UserID
}

func NewService(
	users *registry.Users,
	store Store,
	tokens *TokenService,
	local *localstore.Store,
	trail *audit.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
	ttl time.Duration,
) *Service {
	s := &Service{
		users:   users,
		store:   store,
		tokens:  tokens,
		local:   local,
		trail:   trail,
		metrics: m,
		logger:  logger,
		ttl:     ttl,
	}
	s.restore()
	return s
}

// restore loads the persisted selection, falling back to the first roster
// member when nothing was saved or the saved id no longer resolves.
func (s *Service) restore() {
	var snap snapshot
	if s.local != nil {
		if err := s.local.Load(StorageKey, &snap); err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.Warn("session snapshot load failed", "error", err)
		}
	}
	if _, ok := s.users.ByID(snap.CurrentUserID); ok {
		s.current = snap.CurrentUserID
		return
	}
	if all := s.users.All(); len(all) > 0 {
		s.current = all[0].ID
	}
}

// CurrentUser returns the selected roster member.
func (s *Service) CurrentUser() (registry.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users.ByID(s.current)
}

// Switch repoints the current selection and mints a session for the target
// user. Unknown ids are a no-op reported through found=false.
func (s *Service) Switch(ctx context.Context, userID id.UserID, userAgent string) (*Session, bool, error) {
	user, ok := s.users.ByID(userID)
	if !ok {
		return nil, false, nil
	}

	sess := &Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Persona:      user.Persona,
		Capabilities: DeriveCapabilities(user),
		Device:       deviceSummary(userAgent),
		IssuedAt:     time.Now(),
		ExpiresAt:    time.Now().Add(s.ttl),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, false, fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.current = user.ID
	s.mu.Unlock()
	s.persist()

	s.metrics.SessionSwitches.Inc()
	s.trail.Emit(ctx, audit.Entry{
		Actor:   user.ID,
		Action:  audit.ActionSessionSwitched,
		Subject: user.ID.String(),
		Detail:  map[string]string{"persona": string(user.Persona), "device": sess.Device},
	})
	return sess, true, nil
}

// SessionFor captures the current selection as a transient session without
// persisting it; in-process callers use this for capability checks.
func (s *Service) SessionFor(user registry.User) *Session {
	return &Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Persona:      user.Persona,
		Capabilities: DeriveCapabilities(user),
		IssuedAt:     time.Now(),
		ExpiresAt:    time.Now().Add(s.ttl),
	}
}

// Resolve loads a stored session by id.
func (s *Service) Resolve(ctx context.Context, sessionID string) (*Session, error) {
	return s.store.FindByID(ctx, sessionID)
}

// IssueToken signs a bearer token for the session.
func (s *Service) IssueToken(sess *Session) (string, error) {
	return s.tokens.IssueToken(sess)
}

func (s *Service) persist() {
	if s.local == nil {
		return
	}
	s.mu.RLock()
	snap := snapshot{CurrentUserID: s.current}
	s.mu.RUnlock()
	if err := s.local.Save(StorageKey, snap); err != nil {
		s.logger.Warn("session snapshot save failed", "error", err)
	}
}

// deviceSummary condenses a User-Agent header to "Browser x.y on OS".
func deviceSummary(rawUA string) string {
	if rawUA == "" {
		return ""
	}
	ua := useragent.New(rawUA)
	name, version := ua.Browser()
	os := ua.OS()
	switch {
	case name == "" && os == "":
		return ""
	case os == "":
		return fmt.Sprintf("%s %s", name, version)
	default:
		return fmt.Sprintf("%s %s on %s", name, version, os)
	}
}
