// Package domain holds shared identifier types. IDs are distinct string types
// so the compiler rejects cross-entity mixups; seed data uses stable
// human-readable slugs while runtime-created entities get uuid-backed values.
package domain

import (
	"github.com/google/uuid"

	dErrors "workbench/pkg/domain-errors"
)

type (
	// UserID identifies a persona roster member (e.g. "trc-001").
	UserID string
	// EntityID identifies an organizational entity (platform/product/application).
	EntityID string
	// EventID identifies a calendar event.
	EventID string
	// AuditID identifies a historical audit record.
	AuditID string
	// WidgetID identifies a dashboard widget.
	WidgetID string
	// LayoutID identifies a dashboard layout.
	LayoutID string
)

// NewEventID mints a fresh event identifier.
func NewEventID() EventID { return EventID("event-" + uuid.NewString()) }

// NewWidgetID mints a fresh widget identifier.
func NewWidgetID() WidgetID { return WidgetID("widget-" + uuid.NewString()) }

// NewLayoutID mints a fresh layout identifier.
func NewLayoutID() LayoutID { return LayoutID("layout-" + uuid.NewString()) }

// ParseUserID constructs a UserID from external input.
// Errors: CodeInvalidInput when the value is empty.
func ParseUserID(s string) (UserID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "user id cannot be empty")
	}
	return UserID(s), nil
}

// ParseEventID constructs an EventID from external input.
func ParseEventID(s string) (EventID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "event id cannot be empty")
	}
	return EventID(s), nil
}

// ParseAuditID constructs an AuditID from external input.
func ParseAuditID(s string) (AuditID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "audit id cannot be empty")
	}
	return AuditID(s), nil
}

// ParseWidgetID constructs a WidgetID from external input.
func ParseWidgetID(s string) (WidgetID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "widget id cannot be empty")
	}
	return WidgetID(s), nil
}

// ParseLayoutID constructs a LayoutID from external input.
func ParseLayoutID(s string) (LayoutID, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "layout id cannot be empty")
	}
	return LayoutID(s), nil
}

func (id UserID) String() string   { return string(id) }
func (id EntityID) String() string { return string(id) }
func (id EventID) String() string  { return string(id) }
func (id AuditID) String() string  { return string(id) }
func (id WidgetID) String() string { return string(id) }
func (id LayoutID) String() string { return string(id) }
