package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "workbench/pkg/domain"
	"workbench/pkg/platform/sentinel"
)

type EventStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func (s *EventStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func TestEventStoreSuite(t *testing.T) {
	suite.Run(t, new(EventStoreSuite))
}

func (s *EventStoreSuite) newEvent(eventID, title string) Event {
	return Event{
		ID:        id.EventID(eventID),
		Title:     title,
		StartDate: time.Date(2025, time.November, 20, 9, 0, 0, 0, time.UTC),
		Type:      TypeInternalAudit,
		Priority:  PriorityHigh,
		Status:    StatusScheduled,
		CreatedBy: "trc-001",
	}
}

// TestInsertAndLookup verifies inserts land and lookups round-trip.
func (s *EventStoreSuite) TestInsertAndLookup() {
	s.Run("inserts and finds by id", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-1", "Audit")))

		found, err := s.store.Get(s.ctx, "e-1")
		s.Require().NoError(err)
		s.Equal("Audit", found.Title)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.Get(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestOrdering verifies All preserves insertion order.
func (s *EventStoreSuite) TestOrdering() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-1", "first")))
	s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-2", "second")))
	s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-3", "third")))

	all, err := s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("first", all[0].Title)
	s.Equal("second", all[1].Title)
	s.Equal("third", all[2].Title)
}

// TestPut verifies in-place replacement semantics.
func (s *EventStoreSuite) TestPut() {
	s.Run("replaces existing record", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-1", "before")))

		updated := s.newEvent("e-1", "after")
		s.Require().NoError(s.store.Put(s.ctx, updated))

		found, err := s.store.Get(s.ctx, "e-1")
		s.Require().NoError(err)
		s.Equal("after", found.Title)

		all, err := s.store.All(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("rejects unknown id", func() {
		err := s.store.Put(s.ctx, s.newEvent("ghost", "nope"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestDelete verifies removal and the not-found sentinel.
func (s *EventStoreSuite) TestDelete() {
	s.Run("removes existing record", func() {
		s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-1", "gone")))
		s.Require().NoError(s.store.Delete(s.ctx, "e-1"))

		_, err := s.store.Get(s.ctx, "e-1")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("reports unknown id", func() {
		err := s.store.Delete(s.ctx, "missing")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

// TestReplaceAll verifies wholesale snapshot swaps.
func (s *EventStoreSuite) TestReplaceAll() {
	s.Require().NoError(s.store.Insert(s.ctx, s.newEvent("e-1", "old")))

	s.Require().NoError(s.store.ReplaceAll(s.ctx, []Event{
		s.newEvent("e-2", "new"),
	}))

	all, err := s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 1)
	s.Equal("new", all[0].Title)

	s.Require().NoError(s.store.ReplaceAll(s.ctx, nil))
	all, err = s.store.All(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}
