package audithistory

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"workbench/internal/event"
	"workbench/internal/platform/localstore"
	audit "workbench/pkg/platform/audit"
)

type AuditHistorySuite struct {
	suite.Suite
	svc *Service
	ctx context.Context
}

func (s *AuditHistorySuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ctx = context.Background()
	s.svc = NewService(NewInMemoryStore(), nil, audit.NewPublisher(32, logger), logger)
	s.Require().NoError(s.svc.Restore(s.ctx))
}

func TestAuditHistorySuite(t *testing.T) {
	suite.Run(t, new(AuditHistorySuite))
}

// TestFiltering verifies conjunctive filtering and the inclusive date range.
func (s *AuditHistorySuite) TestFiltering() {
	s.Run("no filters returns everything", func() {
		got, err := s.svc.FilteredAudits(s.ctx)
		s.Require().NoError(err)
		s.Len(got, len(SeedAudits()))
	})

	s.Run("single status filter", func() {
		status := StatusCompleted
		s.svc.SetFilters(s.ctx, nil, FilterPatch{Status: &status})

		got, err := s.svc.FilteredAudits(s.ctx)
		s.Require().NoError(err)
		for _, a := range got {
			s.Equal(StatusCompleted, a.Status)
		}
		s.Len(got, 5)
	})

	s.Run("filters combine conjunctively", func() {
		auditType := event.TypeInternalAudit
		risk := RiskMedium
		entity := "platform-aws"
		s.svc.SetFilters(s.ctx, nil, FilterPatch{
			Type:      &auditType,
			RiskLevel: &risk,
			EntityID:  &entity,
		})

		got, err := s.svc.FilteredAudits(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
		for _, a := range got {
			s.Equal("platform-aws", a.Entity.ID)
		}
	})

	s.Run("date range bounds are inclusive", func() {
		s.svc.SetFilters(s.ctx, nil, FilterPatch{
			ClearType: true, ClearStatus: true, ClearRiskLevel: true, ClearEntityID: true,
			DateRange: &DateRange{
				Start: time.Date(2024, time.September, 10, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, time.October, 15, 0, 0, 0, 0, time.UTC),
			},
		})

		got, err := s.svc.FilteredAudits(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(got, 2)
	})

	s.Run("merge keeps fields the patch does not touch", func() {
		status := StatusCompleted
		s.svc.SetFilters(s.ctx, nil, FilterPatch{Status: &status})

		f := s.svc.Filters()
		s.NotNil(f.DateRange)
		s.NotNil(f.Status)
	})
}

// TestRelatedAudits verifies resolution and dangler dropping.
func (s *AuditHistorySuite) TestRelatedAudits() {
	s.Run("drops related ids that do not resolve", func() {
		got, err := s.svc.RelatedAudits(s.ctx, "audit-1")
		s.Require().NoError(err)
		s.Require().Len(got, 1)
		s.Equal("Q2 2023 - AWS Infrastructure Audit", got[0].Title)
	})

	s.Run("entirely dangling list yields empty", func() {
		got, err := s.svc.RelatedAudits(s.ctx, "audit-2")
		s.Require().NoError(err)
		s.Empty(got)
	})

	s.Run("unknown target yields empty", func() {
		got, err := s.svc.RelatedAudits(s.ctx, "ghost")
		s.Require().NoError(err)
		s.Empty(got)
	})
}

// TestSelection verifies select, clear, and unknown-id behavior.
func (s *AuditHistorySuite) TestSelection() {
	s.Run("selects by id", func() {
		found, err := s.svc.SelectAudit(s.ctx, "audit-3")
		s.Require().NoError(err)
		s.True(found)

		sel, ok := s.svc.SelectedAudit()
		s.Require().True(ok)
		s.Equal("API Security Assessment - Customer Portal", sel.Title)
	})

	s.Run("unknown id clears the selection", func() {
		found, err := s.svc.SelectAudit(s.ctx, "ghost")
		s.Require().NoError(err)
		s.False(found)

		_, ok := s.svc.SelectedAudit()
		s.False(ok)
	})

	s.Run("empty id clears explicitly", func() {
		_, err := s.svc.SelectAudit(s.ctx, "audit-3")
		s.Require().NoError(err)

		found, err := s.svc.SelectAudit(s.ctx, "")
		s.Require().NoError(err)
		s.True(found)

		_, ok := s.svc.SelectedAudit()
		s.False(ok)
	})
}

// TestFilterPersistence verifies only the filter state round-trips.
func (s *AuditHistorySuite) TestFilterPersistence() {
	local, err := localstore.New(s.T().TempDir())
	s.Require().NoError(err)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	first := NewService(NewInMemoryStore(), local, audit.NewPublisher(32, logger), logger)
	s.Require().NoError(first.Restore(s.ctx))

	risk := RiskHigh
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	first.SetFilters(s.ctx, nil, FilterPatch{
		RiskLevel: &risk,
		DateRange: &DateRange{Start: start, End: end},
	})

	second := NewService(NewInMemoryStore(), local, audit.NewPublisher(32, logger), logger)
	s.Require().NoError(second.Restore(s.ctx))

	f := second.Filters()
	s.Require().NotNil(f.RiskLevel)
	s.Equal(RiskHigh, *f.RiskLevel)
	s.Require().NotNil(f.DateRange)
	s.True(f.DateRange.Start.Equal(start))
	s.True(f.DateRange.End.Equal(end))

	got, err := second.FilteredAudits(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal("CORE-2024-015: Data Backup Procedures Review", got[0].Title)
}
