package dashboard

import "context"

// StorageKey is the persisted-state key for dashboard snapshots.
const StorageKey = "trc-dashboard-storage"

// Snapshot is what survives restarts: layouts plus the active selection. The
// flat widget view is rebuilt from the active layout on restore.
type Snapshot struct {
	Layouts        []Layout `json:"layouts"`
	ActiveLayoutID string   `json:"activeLayoutId"`
}

// Store persists layouts. Implementations must be safe for concurrent use.
type Store interface {
	Upsert(ctx context.Context, l Layout) error
	Get(ctx context.Context, layoutID string) (Layout, error)
	Delete(ctx context.Context, layoutID string) error
	All(ctx context.Context) ([]Layout, error)
	ReplaceAll(ctx context.Context, layouts []Layout) error
}
