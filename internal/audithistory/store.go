package audithistory

import "context"

// StorageKey is the persisted-state key. Only the filter state round-trips;
// the record collection is reseeded on every start.
const StorageKey = "trc-audit-history-storage"

// Snapshot is the persisted shape.
type Snapshot struct {
	Filters Filters `json:"filters"`
}

// Store holds the audit record collection. It is read-mostly: records are
// loaded once at startup and only read afterwards.
type Store interface {
	ReplaceAll(ctx context.Context, records []AuditRecord) error
	Get(ctx context.Context, auditID string) (AuditRecord, error)
	All(ctx context.Context) ([]AuditRecord, error)
}
