package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	id "workbench/pkg/domain"
	audit "workbench/pkg/platform/audit"
	"workbench/pkg/platform/audit/store/memory"
	"workbench/pkg/platform/audit/worker"
)

type WorkerSuite struct {
	suite.Suite
	store *memory.InMemoryStore
	inbox chan audit.Entry
}

func TestWorkerSuite(t *testing.T) {
	suite.Run(t, new(WorkerSuite))
}

func (s *WorkerSuite) SetupTest() {
	s.store = memory.NewInMemoryStore()
	s.inbox = make(chan audit.Entry, 16)
}

func (s *WorkerSuite) runWorker(w *worker.Worker) (cancel func()) {
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	return func() {
		stop()
		<-done
	}
}

func (s *WorkerSuite) waitForEntries(n int) []audit.Entry {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		entries, err := s.store.ListRecent(context.Background(), 0)
		s.Require().NoError(err)
		if len(entries) >= n {
			return entries
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.FailNowf("timeout", "store never reached %d entries", n)
	return nil
}

type recordingSink struct {
	mu      sync.Mutex
	err     error
	entries []audit.Entry
}

func (r *recordingSink) Send(_ context.Context, entry audit.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func (r *recordingSink) sent() []audit.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Entry{}, r.entries...)
}

// TestPersistsEntries verifies drained entries land in the store.
func (s *WorkerSuite) TestPersistsEntries() {
	w := worker.New(s.store, s.inbox, slog.New(slog.NewTextHandler(io.Discard, nil)))
	stop := s.runWorker(w)
	defer stop()

	s.inbox <- audit.Entry{ID: "1", Actor: id.UserID("trc-001"), Action: audit.ActionEventCreated}
	s.inbox <- audit.Entry{ID: "2", Actor: id.UserID("trc-001"), Action: audit.ActionEventDeleted}

	entries := s.waitForEntries(2)
	s.Len(entries, 2)

	byActor, err := s.store.ListByActor(context.Background(), id.UserID("trc-001"))
	s.Require().NoError(err)
	s.Len(byActor, 2)
}

// TestFansOutToSinks verifies persisted entries reach configured sinks.
func (s *WorkerSuite) TestFansOutToSinks() {
	sink := &recordingSink{}
	w := worker.New(s.store, s.inbox, slog.New(slog.NewTextHandler(io.Discard, nil)), sink)
	stop := s.runWorker(w)
	defer stop()

	s.inbox <- audit.Entry{ID: "1", Action: audit.ActionWidgetMoved}
	s.waitForEntries(1)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && len(sink.sent()) == 0 {
		time.Sleep(5 * time.Millisecond)
	}
	s.Require().Len(sink.sent(), 1)
	s.Equal("1", sink.sent()[0].ID)
}

// TestSinkFailureDoesNotStopWorker verifies a failing sink is logged and
// skipped while the store keeps receiving entries.
func (s *WorkerSuite) TestSinkFailureDoesNotStopWorker() {
	sink := &recordingSink{err: errors.New("broker down")}
	w := worker.New(s.store, s.inbox, slog.New(slog.NewTextHandler(io.Discard, nil)), sink)
	stop := s.runWorker(w)
	defer stop()

	s.inbox <- audit.Entry{ID: "1", Action: audit.ActionEventCreated}
	s.inbox <- audit.Entry{ID: "2", Action: audit.ActionEventUpdated}

	entries := s.waitForEntries(2)
	s.Len(entries, 2)
	s.Empty(sink.sent())
}
