package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"workbench/internal/session"
)

type SlotSuite struct {
	suite.Suite
	start time.Time
	admin *session.Session
}

func (s *SlotSuite) SetupTest() {
	s.start = time.Date(2025, time.November, 20, 9, 0, 0, 0, time.UTC)
	s.admin = &session.Session{
		ID:           "sess-admin",
		UserID:       "trc-admin-001",
		Capabilities: []session.Capability{session.CapabilityManageEvents},
	}
}

func TestSlotSuite(t *testing.T) {
	suite.Run(t, new(SlotSuite))
}

func (s *SlotSuite) TestSelectSlot() {
	enabled := Config{EnableAdmin: true}

	s.Run("stretches sub-hour spans to exactly one hour", func() {
		draft, ok := SelectSlot(s.admin, enabled, s.start, s.start.Add(30*time.Minute))
		s.Require().True(ok)
		s.Require().NotNil(draft.EndDate)
		s.True(draft.EndDate.Equal(s.start.Add(time.Hour)))
	})

	s.Run("applies the floor when no span was dragged", func() {
		draft, ok := SelectSlot(s.admin, enabled, s.start, time.Time{})
		s.Require().True(ok)
		s.Require().NotNil(draft.EndDate)
		s.True(draft.EndDate.Equal(s.start.Add(time.Hour)))
	})

	s.Run("keeps spans of an hour or more", func() {
		end := s.start.Add(3 * time.Hour)
		draft, ok := SelectSlot(s.admin, enabled, s.start, end)
		s.Require().True(ok)
		s.Require().NotNil(draft.EndDate)
		s.True(draft.EndDate.Equal(end))
	})

	s.Run("is a no-op without the manage capability", func() {
		viewer := &session.Session{ID: "sess-viewer", UserID: "cfs-001"}
		_, ok := SelectSlot(viewer, enabled, s.start, s.start.Add(2*time.Hour))
		s.False(ok)
	})

	s.Run("is a no-op when the widget disables admin", func() {
		_, ok := SelectSlot(s.admin, Config{EnableAdmin: false}, s.start, s.start.Add(2*time.Hour))
		s.False(ok)
	})

	s.Run("is a no-op for a nil session", func() {
		_, ok := SelectSlot(nil, enabled, s.start, s.start.Add(2*time.Hour))
		s.False(ok)
	})
}
