package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ViewSuite struct {
	suite.Suite
	now time.Time
}

func (s *ViewSuite) SetupTest() {
	s.now = time.Date(2025, time.November, 18, 12, 0, 0, 0, time.UTC)
}

func TestViewSuite(t *testing.T) {
	suite.Run(t, new(ViewSuite))
}

func (s *ViewSuite) TestNewState() {
	s.Run("honors the configured view", func() {
		st := NewState(Config{View: ViewAgenda}, s.now)
		s.Equal(ViewAgenda, st.View)
		s.True(st.Current.Equal(s.now))
	})

	s.Run("defaults to month", func() {
		s.Equal(ViewMonth, NewState(Config{}, s.now).View)
	})
}

func (s *ViewSuite) TestNavigate() {
	s.Run("steps by one unit of the active view", func() {
		st := NewState(Config{View: ViewWeek}, s.now)
		st = st.Navigate(NavNext, s.now)
		s.True(st.Current.Equal(s.now.AddDate(0, 0, 7)))

		st = st.SetView(ViewDay).Navigate(NavPrev, s.now)
		s.True(st.Current.Equal(s.now.AddDate(0, 0, 6)))

		st = st.SetView(ViewMonth).Navigate(NavNext, s.now)
		s.True(st.Current.Equal(s.now.AddDate(0, 1, 6)))
	})

	s.Run("today re-anchors regardless of drift", func() {
		st := NewState(Config{}, s.now)
		st = st.Navigate(NavNext, s.now).Navigate(NavNext, s.now)
		st = st.Navigate(NavToday, s.now)
		s.True(st.Current.Equal(s.now))
	})

	s.Run("rejects unknown views", func() {
		st := NewState(Config{}, s.now).SetView("sideways")
		s.Equal(ViewMonth, st.View)
	})
}

func (s *ViewSuite) TestParseView() {
	v, err := ParseView("agenda")
	s.Require().NoError(err)
	s.Equal(ViewAgenda, v)

	_, err = ParseView("quarter")
	s.Require().Error(err)
}
