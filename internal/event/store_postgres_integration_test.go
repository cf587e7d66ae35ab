//go:build integration

package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"workbench/internal/event"
	id "workbench/pkg/domain"
	"workbench/pkg/platform/sentinel"
	"workbench/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	store *event.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	pg := containers.NewPostgresContainer(t)
	store, err := event.OpenPostgres(context.Background(), pg.DSN)
	if err != nil {
		t.Fatalf("open postgres store: %v", err)
	}
	t.Cleanup(store.Close)

	s := new(PostgresStoreSuite)
	s.store = store
	suite.Run(t, s)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.store.ReplaceAll(context.Background(), nil))
}

func newStoredEvent(eventID, title string, start time.Time) event.Event {
	return event.Event{
		ID:        id.EventID(eventID),
		Title:     title,
		StartDate: start,
		Type:      event.TypeInternalAudit,
		Priority:  event.PriorityMedium,
		Status:    event.StatusScheduled,
		CreatedBy: id.UserID("trc-001"),
		CreatedAt: start,
		UpdatedAt: start,
	}
}

// TestInsertAndGet verifies an event document round-trips through the table.
func (s *PostgresStoreSuite) TestInsertAndGet() {
	ctx := context.Background()
	start := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	e := newStoredEvent("evt-1", "Q4 Internal Audit", start)

	s.Require().NoError(s.store.Insert(ctx, e))

	got, err := s.store.Get(ctx, "evt-1")
	s.Require().NoError(err)
	s.Equal(e.Title, got.Title)
	s.True(e.StartDate.Equal(got.StartDate))
	s.Equal(e.Type, got.Type)
}

// TestGetUnknown verifies a missing id maps to the not-found sentinel.
func (s *PostgresStoreSuite) TestGetUnknown() {
	_, err := s.store.Get(context.Background(), "ghost")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

// TestAllPreservesInsertionOrder verifies listing follows the serial column,
// not key order.
func (s *PostgresStoreSuite) TestAllPreservesInsertionOrder() {
	ctx := context.Background()
	base := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)

	s.Require().NoError(s.store.Insert(ctx, newStoredEvent("z-last-key", "first inserted", base)))
	s.Require().NoError(s.store.Insert(ctx, newStoredEvent("a-first-key", "second inserted", base)))

	all, err := s.store.All(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("first inserted", all[0].Title)
	s.Equal("second inserted", all[1].Title)
}

// TestPutReplacesDocument verifies Put overwrites the stored document and
// rejects unknown ids.
func (s *PostgresStoreSuite) TestPutReplacesDocument() {
	ctx := context.Background()
	base := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	e := newStoredEvent("evt-1", "before", base)
	s.Require().NoError(s.store.Insert(ctx, e))

	e.Title = "after"
	s.Require().NoError(s.store.Put(ctx, e))

	got, err := s.store.Get(ctx, "evt-1")
	s.Require().NoError(err)
	s.Equal("after", got.Title)

	ghost := newStoredEvent("ghost", "nope", base)
	s.Require().ErrorIs(s.store.Put(ctx, ghost), sentinel.ErrNotFound)
}

// TestDelete verifies deletion and the unknown-id sentinel.
func (s *PostgresStoreSuite) TestDelete() {
	ctx := context.Background()
	base := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Insert(ctx, newStoredEvent("evt-1", "t", base)))

	s.Require().NoError(s.store.Delete(ctx, "evt-1"))
	_, err := s.store.Get(ctx, "evt-1")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().ErrorIs(s.store.Delete(ctx, "evt-1"), sentinel.ErrNotFound)
}

// TestReplaceAll verifies the snapshot load path swaps the full table in one
// transaction.
func (s *PostgresStoreSuite) TestReplaceAll() {
	ctx := context.Background()
	base := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	s.Require().NoError(s.store.Insert(ctx, newStoredEvent("old", "old", base)))

	s.Require().NoError(s.store.ReplaceAll(ctx, []event.Event{
		newStoredEvent("new-1", "n1", base),
		newStoredEvent("new-2", "n2", base),
	}))

	all, err := s.store.All(ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(id.EventID("new-1"), all[0].ID)
	s.Equal(id.EventID("new-2"), all[1].ID)
}
