// Package audithistory owns the historical audit browser: a read-mostly seed
// collection with conjunctive filtering, relation lookup, and a persisted
// filter state. Records are seeded and never mutated.
package audithistory

import (
	"time"

	"workbench/internal/event"
	"workbench/internal/registry"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Status is an audit record's lifecycle state.
type Status string

const (
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var validStatuses = map[Status]bool{
	StatusPlanned: true, StatusInProgress: true, StatusCompleted: true, StatusCancelled: true,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !validStatuses[st] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown audit status: "+s)
	}
	return st, nil
}

// RiskLevel grades an audit's overall risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var validRiskLevels = map[RiskLevel]bool{
	RiskLow: true, RiskMedium: true, RiskHigh: true, RiskCritical: true,
}

func ParseRiskLevel(s string) (RiskLevel, error) {
	r := RiskLevel(s)
	if !validRiskLevels[r] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown risk level: "+s)
	}
	return r, nil
}

// FindingSeverity grades one deficiency.
type FindingSeverity string

const (
	SeverityLow      FindingSeverity = "low"
	SeverityMedium   FindingSeverity = "medium"
	SeverityHigh     FindingSeverity = "high"
	SeverityCritical FindingSeverity = "critical"
)

// FindingStatus tracks remediation progress.
type FindingStatus string

const (
	FindingOpen       FindingStatus = "open"
	FindingInProgress FindingStatus = "in_progress"
	FindingResolved   FindingStatus = "resolved"
)

// DocumentType classifies an attached document.
type DocumentType string

const (
	DocumentReport   DocumentType = "report"
	DocumentEvidence DocumentType = "evidence"
	DocumentPolicy   DocumentType = "policy"
	DocumentOther    DocumentType = "other"
)

// Finding is a recorded deficiency owned by its parent audit.
type Finding struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Severity    FindingSeverity `json:"severity"`
	Status      FindingStatus   `json:"status"`
	Remediation string          `json:"remediation,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Assignee    id.UserID       `json:"assignee,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Question is one checklist item answered during the audit.
type Question struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Category string   `json:"category"`
	Answer   string   `json:"answer,omitempty"`
	Evidence []string `json:"evidence,omitempty"`
	Score    int      `json:"score,omitempty"`
	Required bool     `json:"required"`
}

// Document is an attachment uploaded against the audit.
type Document struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        DocumentType `json:"type"`
	URL         string       `json:"url"`
	Size        int64        `json:"size"`
	UploadedBy  id.UserID    `json:"uploadedBy"`
	UploadedAt  time.Time    `json:"uploadedAt"`
	Description string       `json:"description,omitempty"`
}

// EntityRef points at the audited organizational entity. The reference is by
// id string only; nothing enforces that it resolves in the registry.
type EntityRef struct {
	Type registry.EntityType `json:"type"`
	ID   string              `json:"id"`
	Name string              `json:"name"`
	Tag  string              `json:"tag,omitempty"`
}

// AuditRecord is one historical audit. Related audits are referenced by id;
// dangling references are dropped at read time, never stored back.
type AuditRecord struct {
	ID            id.AuditID  `json:"id"`
	Title         string      `json:"title"`
	Type          event.Type  `json:"type"`
	Description   string      `json:"description,omitempty"`
	AuditDate     time.Time   `json:"auditDate"`
	CompletedDate *time.Time  `json:"completedDate,omitempty"`
	Status        Status      `json:"status"`
	Entity        EntityRef   `json:"entity"`
	Auditor       id.UserID   `json:"auditor"`
	Score         *int        `json:"score,omitempty"`
	RiskLevel     RiskLevel   `json:"riskLevel"`
	Findings      []Finding   `json:"findings"`
	Questions     []Question  `json:"questions"`
	Documents     []Document  `json:"documents"`
	RelatedAudits []id.AuditID `json:"relatedAudits"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// DateRange bounds a filter on audit dates, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Filters is the browser's filter state. Nil fields mean "no constraint";
// set fields combine conjunctively.
type Filters struct {
	Type      *event.Type `json:"type,omitempty"`
	Status    *Status     `json:"status,omitempty"`
	RiskLevel *RiskLevel  `json:"riskLevel,omitempty"`
	DateRange *DateRange  `json:"dateRange,omitempty"`
	EntityID  *string     `json:"entity,omitempty"`
}

// FilterPatch merges into the current filter state. Nil leaves a field
// untouched; the Clear flags reset one.
type FilterPatch struct {
	Type           *event.Type
	ClearType      bool
	Status         *Status
	ClearStatus    bool
	RiskLevel      *RiskLevel
	ClearRiskLevel bool
	DateRange      *DateRange
	ClearDateRange bool
	EntityID       *string
	ClearEntityID  bool
}

// Matches reports whether the record passes every set constraint.
func (f Filters) Matches(a AuditRecord) bool {
	if f.Type != nil && a.Type != *f.Type {
		return false
	}
	if f.Status != nil && a.Status != *f.Status {
		return false
	}
	if f.RiskLevel != nil && a.RiskLevel != *f.RiskLevel {
		return false
	}
	if f.EntityID != nil && a.Entity.ID != *f.EntityID {
		return false
	}
	if f.DateRange != nil {
		if a.AuditDate.Before(f.DateRange.Start) || a.AuditDate.After(f.DateRange.End) {
			return false
		}
	}
	return true
}
