package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type DragSuite struct {
	suite.Suite
	start time.Time
}

func (s *DragSuite) SetupTest() {
	s.start = time.Date(2025, time.November, 18, 12, 0, 0, 0, time.UTC)
}

func TestDragSuite(t *testing.T) {
	suite.Run(t, new(DragSuite))
}

// TestPointerActivation verifies the travel threshold disambiguates clicks.
func (s *DragSuite) TestPointerActivation() {
	s.Run("short travel stays a click", func() {
		d := NewDrag(GesturePointer, 100, 100, s.start)
		d.Move(105, 103, s.start)
		s.False(d.Active())
	})

	s.Run("travel past the threshold activates", func() {
		d := NewDrag(GesturePointer, 100, 100, s.start)
		d.Move(112, 100, s.start)
		s.True(d.Active())
	})

	s.Run("diagonal travel uses euclidean distance", func() {
		d := NewDrag(GesturePointer, 0, 0, s.start)
		d.Move(7, 7, s.start) // ~9.9px
		s.False(d.Active())
		d.Move(8, 8, s.start) // ~11.3px
		s.True(d.Active())
	})
}

// TestTouchActivation verifies hold delay plus wander tolerance.
func (s *DragSuite) TestTouchActivation() {
	s.Run("activates after the hold delay", func() {
		d := NewDrag(GestureTouch, 100, 100, s.start)
		d.Move(102, 102, s.start.Add(100*time.Millisecond))
		s.False(d.Active())
		d.Move(102, 102, s.start.Add(350*time.Millisecond))
		s.True(d.Active())
	})

	s.Run("wandering past tolerance before the delay cancels", func() {
		d := NewDrag(GestureTouch, 100, 100, s.start)
		d.Move(110, 100, s.start.Add(100*time.Millisecond))
		s.False(d.Active())
		d.Move(110, 100, s.start.Add(400*time.Millisecond))
		s.False(d.Active())
	})

	s.Run("small wander within tolerance survives the hold", func() {
		d := NewDrag(GestureTouch, 100, 100, s.start)
		d.Move(103, 100, s.start.Add(100*time.Millisecond))
		d.Move(140, 160, s.start.Add(350*time.Millisecond))
		s.True(d.Active())
		dx, dy := d.Delta()
		s.InDelta(40, dx, 0.001)
		s.InDelta(60, dy, 0.001)
	})
}

// TestCommitDelta verifies rounding, clamping, and the zero-delta no-op.
func (s *DragSuite) TestCommitDelta() {
	s.Run("rounds the pixel delta to the nearest cell", func() {
		next, moved := CommitDelta(Position{X: 2, Y: 1}, 140, -130)
		s.True(moved)
		s.Equal(Position{X: 3, Y: 0}, next)
	})

	s.Run("zero delta is a no-op", func() {
		next, moved := CommitDelta(Position{X: 2, Y: 1}, 0, 0)
		s.False(moved)
		s.Equal(Position{X: 2, Y: 1}, next)
	})

	s.Run("sub-half-cell delta rounds to a no-op", func() {
		_, moved := CommitDelta(Position{X: 2, Y: 1}, 60, -60)
		s.False(moved)
	})

	s.Run("clamps at the origin", func() {
		next, moved := CommitDelta(Position{X: 0, Y: 0}, -200, -200)
		s.False(moved)
		s.Equal(Position{X: 0, Y: 0}, next)

		next, moved = CommitDelta(Position{X: 1, Y: 0}, -500, -500)
		s.True(moved)
		s.Equal(Position{X: 0, Y: 0}, next)
	})
}

// TestPixelRect verifies the grid-to-pixel mapping.
func (s *DragSuite) TestPixelRect() {
	w := Widget{
		Position: Position{X: 2, Y: 1},
		Size:     Size{Width: 8, Height: 6},
	}
	r := PixelRect(w)
	s.Equal(2*136+16, r.Left)
	s.Equal(1*136+16, r.Top)
	s.Equal(8*120+7*16, r.Width)
	s.Equal(6*120+5*16, r.Height)
}
