//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"workbench/internal/registry"
	"workbench/internal/session"
	id "workbench/pkg/domain"
	"workbench/pkg/platform/sentinel"
	"workbench/pkg/testutil/containers"
)

type RedisSessionStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisSessionStore
}

func TestRedisSessionStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	s := new(RedisSessionStoreSuite)
	s.redis = containers.NewRedisContainer(t)
	suite.Run(t, s)
}

func (s *RedisSessionStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.store = session.NewRedisSessionStore(s.redis.Client)
}

func newTestSession(ttl time.Duration) *session.Session {
	now := time.Now()
	return &session.Session{
		ID:           uuid.NewString(),
		UserID:       id.UserID("trc-001"),
		Persona:      registry.PersonaTRC,
		Capabilities: []session.Capability{session.CapabilityManageEvents},
		IssuedAt:     now,
		ExpiresAt:    now.Add(ttl),
	}
}

// TestSaveAndFind verifies a session round-trips through Redis intact.
func (s *RedisSessionStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	sess := newTestSession(time.Hour)

	s.Require().NoError(s.store.Save(ctx, sess))

	got, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(sess.UserID, got.UserID)
	s.Equal(sess.Persona, got.Persona)
	s.Equal(sess.Capabilities, got.Capabilities)
}

// TestFindUnknown verifies a missing session maps to the not-found sentinel.
func (s *RedisSessionStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(context.Background(), "no-such-session")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestExpiredSessionRejected verifies a session past its expiry cannot be
// saved; Redis TTLs handle the rest.
func (s *RedisSessionStoreSuite) TestExpiredSessionRejected() {
	sess := newTestSession(-time.Minute)
	err := s.store.Save(context.Background(), sess)
	s.Require().ErrorIs(err, sentinel.ErrInvalidState)
}

// TestTTLEviction verifies Redis evicts the session once the TTL elapses.
func (s *RedisSessionStoreSuite) TestTTLEviction() {
	ctx := context.Background()
	sess := newTestSession(time.Second)

	s.Require().NoError(s.store.Save(ctx, sess))
	time.Sleep(1500 * time.Millisecond)

	_, err := s.store.FindByID(ctx, sess.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestDelete verifies deletion removes the session.
func (s *RedisSessionStoreSuite) TestDelete() {
	ctx := context.Background()
	sess := newTestSession(time.Hour)

	s.Require().NoError(s.store.Save(ctx, sess))
	s.Require().NoError(s.store.Delete(ctx, sess.ID))

	_, err := s.store.FindByID(ctx, sess.ID)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}
