package audithistory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"workbench/internal/platform/localstore"
	"workbench/internal/session"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
	audit "workbench/pkg/platform/audit"
	"workbench/pkg/platform/sentinel"
)

// Service wraps the record collection with filter state and the current
// detail selection. Filter state is the only piece that survives restarts.
type Service struct {
	store  Store
	local  *localstore.Store
	trail  *audit.Publisher
	logger *slog.Logger

	mu       sync.RWMutex
	filters  Filters
	selected *AuditRecord
}

func NewService(store Store, local *localstore.Store, trail *audit.Publisher, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		local:  local,
		trail:  trail,
		logger: logger,
	}
}

// Restore seeds the record collection and loads any persisted filter state.
func (s *Service) Restore(ctx context.Context) error {
	if err := s.store.ReplaceAll(ctx, SeedAudits()); err != nil {
		return fmt.Errorf("seed audits: %w", err)
	}
	if s.local == nil {
		return nil
	}

	var snap Snapshot
	err := s.local.Load(StorageKey, &snap)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("restore audit filters: %w", err)
	}

	s.mu.Lock()
	s.filters = snap.Filters
	s.mu.Unlock()
	return nil
}

// Filters returns the current filter state.
func (s *Service) Filters() Filters {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filters
}

// SetFilters merges the patch into the current filter state. No validation
// is applied; an entity id that matches nothing simply filters everything
// out.
func (s *Service) SetFilters(ctx context.Context, sess *session.Session, patch FilterPatch) Filters {
	s.mu.Lock()
	f := s.filters
	if patch.ClearType {
		f.Type = nil
	} else if patch.Type != nil {
		f.Type = patch.Type
	}
	if patch.ClearStatus {
		f.Status = nil
	} else if patch.Status != nil {
		f.Status = patch.Status
	}
	if patch.ClearRiskLevel {
		f.RiskLevel = nil
	} else if patch.RiskLevel != nil {
		f.RiskLevel = patch.RiskLevel
	}
	if patch.ClearDateRange {
		f.DateRange = nil
	} else if patch.DateRange != nil {
		f.DateRange = patch.DateRange
	}
	if patch.ClearEntityID {
		f.EntityID = nil
	} else if patch.EntityID != nil {
		f.EntityID = patch.EntityID
	}
	s.filters = f
	s.mu.Unlock()

	s.trail.Emit(ctx, audit.Entry{
		Actor:  actorOf(sess),
		Action: audit.ActionFiltersChanged,
	})
	s.persist(ctx)
	return f
}

// FilteredAudits applies the current filter state conjunctively.
func (s *Service) FilteredAudits(ctx context.Context) ([]AuditRecord, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeInternal, "list audits", err)
	}
	f := s.Filters()

	var out []AuditRecord
	for _, a := range all {
		if f.Matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// AuditByID fetches one record; found=false for unknown ids.
func (s *Service) AuditByID(ctx context.Context, auditID id.AuditID) (AuditRecord, bool, error) {
	a, err := s.store.Get(ctx, auditID.String())
	if errors.Is(err, sentinel.ErrNotFound) {
		return AuditRecord{}, false, nil
	}
	if err != nil {
		return AuditRecord{}, false, dErrors.Wrap(dErrors.CodeInternal, "load audit", err)
	}
	return a, true, nil
}

// RelatedAudits resolves the target's related-audit ids against the
// collection. Dangling ids are dropped silently; an unknown target yields an
// empty list.
func (s *Service) RelatedAudits(ctx context.Context, auditID id.AuditID) ([]AuditRecord, error) {
	target, found, err := s.AuditByID(ctx, auditID)
	if err != nil || !found {
		return nil, err
	}

	var out []AuditRecord
	for _, relID := range target.RelatedAudits {
		rel, ok, err := s.AuditByID(ctx, relID)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, rel)
		}
	}
	return out, nil
}

// SelectAudit sets the detail selection by id; an empty id clears it.
// found=false reports an unknown id, which also clears the selection.
func (s *Service) SelectAudit(ctx context.Context, auditID id.AuditID) (bool, error) {
	if auditID == "" {
		s.mu.Lock()
		s.selected = nil
		s.mu.Unlock()
		return true, nil
	}

	a, found, err := s.AuditByID(ctx, auditID)
	if err != nil {
		return false, err
	}

	s.mu.Lock()
	if found {
		s.selected = &a
	} else {
		s.selected = nil
	}
	s.mu.Unlock()
	return found, nil
}

// SelectedAudit returns the current detail selection.
func (s *Service) SelectedAudit() (AuditRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return AuditRecord{}, false
	}
	return *s.selected, true
}

func (s *Service) persist(ctx context.Context) {
	if s.local == nil {
		return
	}
	if err := s.local.Save(StorageKey, Snapshot{Filters: s.Filters()}); err != nil {
		s.logger.WarnContext(ctx, "audit filter save failed", "error", err)
	}
}

func actorOf(sess *session.Session) id.UserID {
	if sess == nil {
		return ""
	}
	return sess.UserID
}
