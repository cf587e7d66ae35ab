// Package event owns the calendar event collection: the store, its command
// surface, and the derived queries the calendar projects from.
package event

import (
	"time"

	"workbench/internal/registry"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Type classifies an event.
type Type string

const (
	TypeInternalAudit    Type = "internal_audit"
	TypeHorizontalAudit  Type = "horizontal_audit"
	TypeRegulatoryAudit  Type = "regulatory_audit"
	TypeRecertification  Type = "recertification"
	TypeCoreIssue        Type = "core_issue"
	TypeComplianceReview Type = "compliance_review"
	TypeRiskAssessment   Type = "risk_assessment"
)

// Types lists all supported event types.
func Types() []Type {
	return []Type{
		TypeInternalAudit, TypeHorizontalAudit, TypeRegulatoryAudit,
		TypeRecertification, TypeCoreIssue, TypeComplianceReview, TypeRiskAssessment,
	}
}

var validTypes = map[Type]bool{
	TypeInternalAudit: true, TypeHorizontalAudit: true, TypeRegulatoryAudit: true,
	TypeRecertification: true, TypeCoreIssue: true, TypeComplianceReview: true,
	TypeRiskAssessment: true,
}

// ParseType constructs a Type from external input.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if !validTypes[t] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid event type")
	}
	return t, nil
}

// Priority ranks an event's urgency.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists all supported priorities.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

var validPriorities = map[Priority]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true, PriorityCritical: true,
}

// ParsePriority constructs a Priority from external input.
func ParsePriority(s string) (Priority, error) {
	p := Priority(s)
	if !validPriorities[p] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid event priority")
	}
	return p, nil
}

// Status tracks an event through its lifecycle.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusOverdue    Status = "overdue"
)

// Statuses lists all supported statuses.
func Statuses() []Status {
	return []Status{StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusOverdue}
}

var validStatuses = map[Status]bool{
	StatusScheduled: true, StatusInProgress: true, StatusCompleted: true,
	StatusCancelled: true, StatusOverdue: true,
}

// ParseStatus constructs a Status from external input.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid event status")
	}
	return st, nil
}

// EntityAssociation tags an event with an organizational entity. The name and
// tag are denormalized from the registry at association time; the id is not
// validated against the registry (dangling references are tolerated and
// filtered at read time).
type EntityAssociation struct {
	Type registry.EntityType `json:"type"`
	ID   id.EntityID         `json:"id"`
	Name string              `json:"name"`
	Tag  string              `json:"tag,omitempty"`
}

// Event is one calendar entry. EndDate is optional; queries treat a missing
// end as a point event at StartDate, and the calendar projection synthesizes
// a one-hour span for display. EndDate before StartDate is not rejected:
// permissiveness is deliberate and documented, matching the historical
// behavior of the form surfaces.
type Event struct {
	ID               id.EventID         `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description,omitempty"`
	StartDate        time.Time          `json:"startDate"`
	EndDate          *time.Time         `json:"endDate,omitempty"`
	Type             Type               `json:"type"`
	Priority         Priority           `json:"priority"`
	Status           Status             `json:"status"`
	CreatedBy        id.UserID          `json:"createdBy"`
	AssignedUsers    []id.UserID        `json:"assignedUsers,omitempty"`
	AssociatedEntity *EntityAssociation `json:"associatedEntity,omitempty"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
	Metadata         map[string]any     `json:"metadata,omitempty"`
}

// effectiveEnd is the interval end used by range queries: the explicit end
// when present, otherwise the start (a point event).
func (e Event) effectiveEnd() time.Time {
	if e.EndDate != nil {
		return *e.EndDate
	}
	return e.StartDate
}
