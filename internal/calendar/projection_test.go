package calendar

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"workbench/internal/event"
	id "workbench/pkg/domain"
)

type ProjectionSuite struct {
	suite.Suite
	now time.Time
}

func (s *ProjectionSuite) SetupTest() {
	s.now = time.Date(2025, time.November, 18, 12, 0, 0, 0, time.UTC)
}

func TestProjectionSuite(t *testing.T) {
	suite.Run(t, new(ProjectionSuite))
}

func (s *ProjectionSuite) event(eventID string, start time.Time, end *time.Time, t event.Type, p event.Priority, st event.Status) event.Event {
	return event.Event{
		ID:        id.EventID(eventID),
		Title:     eventID,
		StartDate: start,
		EndDate:   end,
		Type:      t,
		Priority:  p,
		Status:    st,
	}
}

func (s *ProjectionSuite) timed(eventID string, start time.Time, end *time.Time) event.Event {
	return s.event(eventID, start, end, event.TypeInternalAudit, event.PriorityMedium, event.StatusScheduled)
}

// TestProject verifies end synthesis and the all-day promotion rule.
func (s *ProjectionSuite) TestProject() {
	s.Run("synthesizes a one-hour end when none is set", func() {
		items := Project([]event.Event{s.timed("open", s.now, nil)}, DefaultFilters())
		s.Require().Len(items, 1)
		s.True(items[0].End.Equal(s.now.Add(time.Hour)))
		s.False(items[0].AllDay)
	})

	s.Run("keeps an explicit end as-is", func() {
		end := s.now.Add(30 * time.Minute)
		items := Project([]event.Event{s.timed("short", s.now, &end)}, DefaultFilters())
		s.Require().Len(items, 1)
		s.True(items[0].End.Equal(end))
	})

	s.Run("promotes spans of a day or more to all-day", func() {
		exactly := s.now.Add(24 * time.Hour)
		under := s.now.Add(24*time.Hour - time.Minute)

		items := Project([]event.Event{
			s.timed("exactly-a-day", s.now, &exactly),
			s.timed("just-under", s.now, &under),
		}, DefaultFilters())
		s.Require().Len(items, 2)
		s.True(items[0].AllDay)
		s.False(items[1].AllDay)
	})
}

// TestFiltering verifies conjunctive inclusion and order independence.
func (s *ProjectionSuite) TestFiltering() {
	events := []event.Event{
		s.event("match", s.now, nil, event.TypeCoreIssue, event.PriorityCritical, event.StatusInProgress),
		s.event("wrong-type", s.now, nil, event.TypeRecertification, event.PriorityCritical, event.StatusInProgress),
		s.event("wrong-priority", s.now, nil, event.TypeCoreIssue, event.PriorityLow, event.StatusInProgress),
		s.event("wrong-status", s.now, nil, event.TypeCoreIssue, event.PriorityCritical, event.StatusCompleted),
	}

	f := Filters{
		Types:      []event.Type{event.TypeCoreIssue},
		Priorities: []event.Priority{event.PriorityCritical},
		Statuses:   []event.Status{event.StatusInProgress},
	}

	items := Project(events, f)
	s.Require().Len(items, 1)
	s.Equal(id.EventID("match"), items[0].ID)

	s.Run("narrowing one dimension at a time commutes", func() {
		onlyType := DefaultFilters()
		onlyType.Types = f.Types
		thenPriority := onlyType
		thenPriority.Priorities = f.Priorities
		thenStatus := thenPriority
		thenStatus.Statuses = f.Statuses

		s.Equal(Project(events, f), Project(events, thenStatus))
	})

	s.Run("defaults include everything", func() {
		s.Len(Project(events, DefaultFilters()), len(events))
	})
}

// TestUpcomingList verifies the start>=now cut, ordering, and the cap of ten.
func (s *ProjectionSuite) TestUpcomingList() {
	s.Run("drops past events and sorts ascending", func() {
		events := []event.Event{
			s.timed("later", s.now.Add(48*time.Hour), nil),
			s.timed("past", s.now.Add(-time.Hour), nil),
			s.timed("soon", s.now.Add(time.Hour), nil),
		}
		items := UpcomingList(events, DefaultFilters(), s.now)
		s.Require().Len(items, 2)
		s.Equal(id.EventID("soon"), items[0].ID)
		s.Equal(id.EventID("later"), items[1].ID)
	})

	s.Run("caps the list at ten", func() {
		var events []event.Event
		for i := 0; i < 15; i++ {
			events = append(events, s.timed(fmt.Sprintf("e-%02d", i), s.now.Add(time.Duration(i+1)*time.Hour), nil))
		}
		items := UpcomingList(events, DefaultFilters(), s.now)
		s.Require().Len(items, 10)
		s.Equal(id.EventID("e-00"), items[0].ID)
		s.Equal(id.EventID("e-09"), items[9].ID)
	})

	s.Run("equal starts keep input order", func() {
		start := s.now.Add(time.Hour)
		events := []event.Event{
			s.timed("first", start, nil),
			s.timed("second", start, nil),
		}
		items := UpcomingList(events, DefaultFilters(), s.now)
		s.Require().Len(items, 2)
		s.Equal(id.EventID("first"), items[0].ID)
		s.Equal(id.EventID("second"), items[1].ID)
	})
}

// TestFiltersFor verifies the widget config narrows the type set.
func (s *ProjectionSuite) TestFiltersFor() {
	cfg := Config{ShowEventTypes: []event.Type{event.TypeRiskAssessment}}
	f := FiltersFor(cfg)

	s.Equal([]event.Type{event.TypeRiskAssessment}, f.Types)
	s.Equal(event.Priorities(), f.Priorities)

	s.Equal(DefaultFilters(), FiltersFor(Config{}))
}
