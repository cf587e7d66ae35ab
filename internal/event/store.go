package event

import (
	"context"
)

// StorageKey is the versioned snapshot key for the event collection. v7 is
// carried over from the last seed-schema bump.
const StorageKey = "trc-events-storage-v7"

// Snapshot is the persisted shape of the collection.
type Snapshot struct {
	Events []Event `json:"events"`
}

// Store persists the event collection. Derived queries live in the Service as
// pure functions over All so both backends stay small.
type Store interface {
	// Insert appends a fully-populated event.
	Insert(ctx context.Context, e Event) error
	// Put replaces the event with the same id; sentinel.ErrNotFound if absent.
	Put(ctx context.Context, e Event) error
	// Delete removes by id; sentinel.ErrNotFound if absent.
	Delete(ctx context.Context, eventID string) error
	// Get fetches by id; sentinel.ErrNotFound if absent.
	Get(ctx context.Context, eventID string) (Event, error)
	// All returns the collection in insertion order.
	All(ctx context.Context) ([]Event, error)
	// ReplaceAll swaps the whole collection (snapshot restore, clear-all).
	ReplaceAll(ctx context.Context, events []Event) error
}
