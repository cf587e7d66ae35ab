package calendar

import (
	"sort"
	"time"

	"workbench/internal/event"
)

const (
	// syntheticDuration is assumed when an event has no explicit end.
	syntheticDuration = time.Hour
	// allDayThreshold promotes an event to the all-day lane.
	allDayThreshold = 24 * time.Hour
	// upcomingLimit bounds the sidebar list.
	upcomingLimit = 10
)

// Project maps the filtered events into calendar items. Input order is
// preserved; the renderer positions items by time, not index.
func Project(events []event.Event, f Filters) []Item {
	var out []Item
	for _, e := range events {
		if !f.Matches(e) {
			continue
		}
		out = append(out, toItem(e))
	}
	return out
}

// UpcomingList derives the sidebar list from the filtered set: events
// starting at or after now, ascending by start, capped at ten. Ties keep
// input order.
func UpcomingList(events []event.Event, f Filters, now time.Time) []Item {
	var kept []event.Event
	for _, e := range events {
		if !f.Matches(e) || e.StartDate.Before(now) {
			continue
		}
		kept = append(kept, e)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].StartDate.Before(kept[j].StartDate)
	})
	if len(kept) > upcomingLimit {
		kept = kept[:upcomingLimit]
	}

	out := make([]Item, 0, len(kept))
	for _, e := range kept {
		out = append(out, toItem(e))
	}
	return out
}

func toItem(e event.Event) Item {
	end := e.StartDate.Add(syntheticDuration)
	if e.EndDate != nil {
		end = *e.EndDate
	}
	return Item{
		ID:       e.ID,
		Title:    e.Title,
		Start:    e.StartDate,
		End:      end,
		AllDay:   end.Sub(e.StartDate) >= allDayThreshold,
		Type:     e.Type,
		Priority: e.Priority,
		Status:   e.Status,
	}
}
