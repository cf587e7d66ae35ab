package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher hands entries to the worker through a bounded inbox. Emit never
// blocks domain commands: when the inbox is full the entry is dropped and
// logged, keeping the trail fail-open.
type Publisher struct {
	inbox  chan Entry
	logger *slog.Logger
}

// NewPublisher builds a publisher with the given inbox capacity.
func NewPublisher(capacity int, logger *slog.Logger) *Publisher {
	if capacity <= 0 {
		capacity = 256
	}
	return &Publisher{
		inbox:  make(chan Entry, capacity),
		logger: logger,
	}
}

// Inbox exposes the receive side for the worker.
func (p *Publisher) Inbox() <-chan Entry { return p.inbox }

// Emit stamps and enqueues an entry. Missing ids and timestamps are filled in
// so call sites stay terse.
func (p *Publisher) Emit(ctx context.Context, entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	select {
	case p.inbox <- entry:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, entry dropped",
			"action", entry.Action,
			"subject", entry.Subject,
		)
	}
}
