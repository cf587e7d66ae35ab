package dashboard

import (
	"math"
	"time"
)

// Activation thresholds separating drags from clicks and taps from scrolls.
const (
	// PointerActivationDistance is the minimum travel before a mouse drag
	// is recognized.
	PointerActivationDistance = 10.0
	// TouchActivationDelay is the hold time before a touch drag is
	// recognized.
	TouchActivationDelay = 300 * time.Millisecond
	// TouchTolerance is how far a touch may wander during the hold without
	// cancelling activation.
	TouchTolerance = 5.0
)

// GestureKind distinguishes the two activation models.
type GestureKind int

const (
	GesturePointer GestureKind = iota
	GestureTouch
)

// Drag tracks one in-flight gesture from press to release. It only decides
// whether the gesture is a drag and what the net pixel delta is; committing
// the delta to a widget is the service's job.
type Drag struct {
	kind      GestureKind
	originX   float64
	originY   float64
	lastX     float64
	lastY     float64
	startedAt time.Time
	active    bool
	cancelled bool
}

// NewDrag begins tracking at the press point.
func NewDrag(kind GestureKind, x, y float64, at time.Time) *Drag {
	return &Drag{kind: kind, originX: x, originY: y, lastX: x, lastY: y, startedAt: at}
}

// Move feeds a pointer sample. Pointer drags activate once travel reaches
// the distance threshold. Touch drags activate after the hold delay, but
// wandering past the tolerance before the delay elapses cancels them.
func (d *Drag) Move(x, y float64, at time.Time) {
	if d.cancelled {
		return
	}
	d.lastX, d.lastY = x, y
	travel := math.Hypot(x-d.originX, y-d.originY)

	switch d.kind {
	case GesturePointer:
		if travel >= PointerActivationDistance {
			d.active = true
		}
	case GestureTouch:
		held := at.Sub(d.startedAt) >= TouchActivationDelay
		if !d.active && !held && travel > TouchTolerance {
			d.cancelled = true
			return
		}
		if held {
			d.active = true
		}
	}
}

// Active reports whether the gesture has been recognized as a drag.
func (d *Drag) Active() bool { return d.active && !d.cancelled }

// Delta is the net pixel movement since the press.
func (d *Drag) Delta() (dx, dy float64) {
	return d.lastX - d.originX, d.lastY - d.originY
}

// CommitDelta converts a released drag's pixel delta into a new grid
// position: each axis rounds to the nearest whole cell using the grid pitch
// and clamps at zero. moved=false means both rounded deltas were zero and no
// mutation should occur.
func CommitDelta(pos Position, dx, dy float64) (Position, bool) {
	stepX := int(math.Round(dx / Pitch))
	stepY := int(math.Round(dy / Pitch))
	if stepX == 0 && stepY == 0 {
		return pos, false
	}
	next := Position{
		X: max(0, pos.X+stepX),
		Y: max(0, pos.Y+stepY),
	}
	if next == pos {
		return pos, false
	}
	return next, true
}
