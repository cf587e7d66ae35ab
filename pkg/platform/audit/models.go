// Package audit is the workbench change trail. Every mutating command emits an
// Entry through a Publisher; a worker drains the inbox into a store and any
// configured sinks. Entries are operational bookkeeping, not regulatory
// records, so the pipeline is fail-open: a dropped entry is logged, never
// surfaced to the command that produced it.
package audit

import (
	"context"
	"time"

	id "workbench/pkg/domain"
)

// Action names the mutation an entry records.
type Action string

const (
	ActionEventCreated  Action = "event_created"
	ActionEventUpdated  Action = "event_updated"
	ActionEventDeleted  Action = "event_deleted"
	ActionEventsCleared Action = "events_cleared"

	ActionWidgetAdded   Action = "widget_added"
	ActionWidgetRemoved Action = "widget_removed"
	ActionWidgetUpdated Action = "widget_updated"
	ActionWidgetMoved   Action = "widget_moved"

	ActionLayoutSaved    Action = "layout_saved"
	ActionLayoutDeleted  Action = "layout_deleted"
	ActionLayoutSwitched Action = "layout_switched"
	ActionLayoutReset    Action = "layout_reset"

	ActionSessionSwitched Action = "session_switched"
	ActionFiltersChanged  Action = "audit_filters_changed"
)

// Entry is emitted from domain logic to capture one mutation. Keep it
// transport-agnostic so stores and sinks can fan out.
type Entry struct {
	ID        string            `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Actor     id.UserID         `json:"actor,omitempty"`
	Action    Action            `json:"action"`
	Subject   string            `json:"subject,omitempty"`
	Detail    map[string]string `json:"detail,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

// Store persists entries. Implementations must be safe for concurrent use.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	ListByActor(ctx context.Context, actor id.UserID) ([]Entry, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

// Sink receives entries after they are persisted (e.g. a Kafka topic).
type Sink interface {
	Send(ctx context.Context, entry Entry) error
}
