package calendar

import "time"

// agendaSpanDays is how far one agenda page advances.
const agendaSpanDays = 30

// NavAction is a toolbar navigation command.
type NavAction string

const (
	NavToday NavAction = "today"
	NavPrev  NavAction = "prev"
	NavNext  NavAction = "next"
)

// State is the calendar's navigation position: the active view plus the date
// the view is anchored on.
type State struct {
	View    View      `json:"view"`
	Current time.Time `json:"current"`
}

// NewState anchors the calendar on now in the configured view, defaulting to
// month when the config leaves the view unset.
func NewState(cfg Config, now time.Time) State {
	view := cfg.View
	if !validViews[view] {
		view = ViewMonth
	}
	return State{View: view, Current: now}
}

// SetView switches the rendering mode, keeping the anchor date.
func (s State) SetView(v View) State {
	if validViews[v] {
		s.View = v
	}
	return s
}

// Navigate moves the anchor date by one unit of the active view. NavToday
// re-anchors on the supplied now.
func (s State) Navigate(action NavAction, now time.Time) State {
	switch action {
	case NavToday:
		s.Current = now
	case NavPrev:
		s.Current = s.step(-1)
	case NavNext:
		s.Current = s.step(1)
	}
	return s
}

func (s State) step(direction int) time.Time {
	switch s.View {
	case ViewWeek:
		return s.Current.AddDate(0, 0, 7*direction)
	case ViewDay:
		return s.Current.AddDate(0, 0, direction)
	case ViewAgenda:
		return s.Current.AddDate(0, 0, agendaSpanDays*direction)
	default:
		return s.Current.AddDate(0, direction, 0)
	}
}
