package audit

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PublisherSuite struct {
	suite.Suite
	pub *Publisher
}

func TestPublisherSuite(t *testing.T) {
	suite.Run(t, new(PublisherSuite))
}

func (s *PublisherSuite) SetupTest() {
	s.pub = NewPublisher(2, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// TestEmitStampsEntry verifies missing ids and timestamps are filled in.
func (s *PublisherSuite) TestEmitStampsEntry() {
	s.pub.Emit(context.Background(), Entry{Action: ActionEventCreated, Subject: "evt-1"})

	got := <-s.pub.Inbox()
	s.NotEmpty(got.ID)
	s.False(got.Timestamp.IsZero())
	s.Equal(ActionEventCreated, got.Action)
}

// TestEmitPreservesCallerStamps verifies explicit ids and timestamps pass
// through untouched.
func (s *PublisherSuite) TestEmitPreservesCallerStamps() {
	ts := time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)
	s.pub.Emit(context.Background(), Entry{ID: "fixed", Timestamp: ts, Action: ActionWidgetMoved})

	got := <-s.pub.Inbox()
	s.Equal("fixed", got.ID)
	s.True(ts.Equal(got.Timestamp))
}

// TestEmitDropsWhenFull verifies a full inbox never blocks the caller.
func (s *PublisherSuite) TestEmitDropsWhenFull() {
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		s.pub.Emit(ctx, Entry{Action: ActionEventUpdated})
	}
	s.Len(s.pub.Inbox(), 2)
}
