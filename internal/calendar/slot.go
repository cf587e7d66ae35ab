package calendar

import (
	"time"

	"workbench/internal/event"
	"workbench/internal/session"
)

// minSlotDuration is the floor applied to slot quick-create spans.
const minSlotDuration = time.Hour

// CanQuickCreate reports whether the session may create events by selecting
// empty calendar space. Both the widget's enableAdmin flag and the session
// capability must hold.
func CanQuickCreate(sess *session.Session, cfg Config) bool {
	return cfg.EnableAdmin && session.HasCapability(sess, session.CapabilityManageEvents)
}

// SelectSlot turns a selected calendar span into a draft event. Spans under
// one hour are stretched to exactly one hour; a zero end means no span was
// dragged and the floor applies as well. permitted=false when the session may
// not quick-create; the caller treats that as a no-op.
func SelectSlot(sess *session.Session, cfg Config, start, end time.Time) (event.NewEvent, bool) {
	if !CanQuickCreate(sess, cfg) {
		return event.NewEvent{}, false
	}
	if end.IsZero() {
		end = start
	}
	if end.Sub(start) < minSlotDuration {
		end = start.Add(minSlotDuration)
	}
	return event.NewEvent{
		StartDate: start,
		EndDate:   &end,
		Type:      event.TypeInternalAudit,
		Priority:  event.PriorityMedium,
		Status:    event.StatusScheduled,
	}, true
}
