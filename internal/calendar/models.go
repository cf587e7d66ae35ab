// Package calendar derives displayable calendar state from the event
// collection: conjunctive filtering, projection into timed or all-day items,
// the bounded upcoming list, and slot quick-create. Everything here is a pure
// function over an event snapshot; the package holds no state of its own.
package calendar

import (
	"time"

	"workbench/internal/event"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// View names a calendar rendering mode.
type View string

const (
	ViewMonth  View = "month"
	ViewWeek   View = "week"
	ViewDay    View = "day"
	ViewAgenda View = "agenda"
)

var validViews = map[View]bool{
	ViewMonth: true, ViewWeek: true, ViewDay: true, ViewAgenda: true,
}

func ParseView(s string) (View, error) {
	v := View(s)
	if !validViews[v] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown calendar view: "+s)
	}
	return v, nil
}

// Config is the widget configuration contract the calendar consumes.
// EnableAdmin is enforced: quick-create requires both the flag and the
// session capability. ShowEventTypes, when non-empty, narrows the type filter
// before user-driven filtering applies.
type Config struct {
	View           View         `json:"view,omitempty"`
	EnableAdmin    bool         `json:"enableAdmin,omitempty"`
	ShowEventTypes []event.Type `json:"showEventTypes,omitempty"`
}

// Item is one calendar-displayable record. End is always populated: events
// without an explicit end get a synthetic one-hour duration.
type Item struct {
	ID       id.EventID     `json:"id"`
	Title    string         `json:"title"`
	Start    time.Time      `json:"start"`
	End      time.Time      `json:"end"`
	AllDay   bool           `json:"allDay"`
	Type     event.Type     `json:"type"`
	Priority event.Priority `json:"priority"`
	Status   event.Status   `json:"status"`
}

// Filters holds the three independent inclusion sets. Each defaults to every
// value; filtering is conjunctive across the three.
type Filters struct {
	Types      []event.Type     `json:"types"`
	Priorities []event.Priority `json:"priorities"`
	Statuses   []event.Status   `json:"statuses"`
}

// DefaultFilters includes every type, priority, and status.
func DefaultFilters() Filters {
	return Filters{
		Types:      event.Types(),
		Priorities: event.Priorities(),
		Statuses:   event.Statuses(),
	}
}

// FiltersFor starts from the defaults and narrows the type set to the
// widget's showEventTypes when the config names any.
func FiltersFor(cfg Config) Filters {
	f := DefaultFilters()
	if len(cfg.ShowEventTypes) > 0 {
		f.Types = append([]event.Type{}, cfg.ShowEventTypes...)
	}
	return f
}

// Matches reports whether the event passes all three inclusion sets.
func (f Filters) Matches(e event.Event) bool {
	return containsType(f.Types, e.Type) &&
		containsPriority(f.Priorities, e.Priority) &&
		containsStatus(f.Statuses, e.Status)
}

func containsType(set []event.Type, v event.Type) bool {
	for _, t := range set {
		if t == v {
			return true
		}
	}
	return false
}

func containsPriority(set []event.Priority, v event.Priority) bool {
	for _, p := range set {
		if p == v {
			return true
		}
	}
	return false
}

func containsStatus(set []event.Status, v event.Status) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
