// Package worker drains the audit inbox into the store and configured sinks.
package worker

import (
	"context"
	"log/slog"

	audit "workbench/pkg/platform/audit"
)

// Worker consumes audit entries from a channel and persists them. Sink
// failures are logged and skipped; the store write is the source of truth.
type Worker struct {
	store  audit.Store
	sinks  []audit.Sink
	inbox  <-chan audit.Entry
	logger *slog.Logger
}

func New(store audit.Store, inbox <-chan audit.Entry, logger *slog.Logger, sinks ...audit.Sink) *Worker {
	return &Worker{store: store, sinks: sinks, inbox: inbox, logger: logger}
}

// Run processes entries until ctx is cancelled. Store failures are logged and
// the worker keeps going; the trail stays fail-open.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case entry := <-w.inbox:
			if err := w.store.Append(ctx, entry); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", entry.Action,
					"error", err,
				)
				continue
			}
			for _, sink := range w.sinks {
				if err := sink.Send(ctx, entry); err != nil {
					w.logger.WarnContext(ctx, "audit sink send failed",
						"action", entry.Action,
						"error", err,
					)
				}
			}
		}
	}
}
