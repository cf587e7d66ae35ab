package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"workbench/internal/platform/localstore"
	"workbench/internal/platform/metrics"
	"workbench/internal/session"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
	audit "workbench/pkg/platform/audit"
	"workbench/pkg/platform/sentinel"
)

// upcomingWindowDays is the default forward-looking window for Upcoming.
const upcomingWindowDays = 30

// NewEvent is the command input for Add. Id and audit stamps are assigned by
// the service; everything else is taken as-is. End-before-start is accepted
// (documented permissiveness).
type NewEvent struct {
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          *time.Time
	Type             Type
	Priority         Priority
	Status           Status
	AssignedUsers    []id.UserID
	AssociatedEntity *EntityAssociation
	Metadata         map[string]any
}

// Patch carries partial updates; nil fields are left untouched. ClearEndDate
// removes an existing end date.
type Patch struct {
	Title            *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	ClearEndDate     bool
	Type             *Type
	Priority         *Priority
	Status           *Status
	AssignedUsers    *[]id.UserID
	AssociatedEntity *EntityAssociation
	ClearAssociation bool
	Metadata         map[string]any
}

// Service funnels every event mutation: capability check, validation, store
// write, audit entry, metrics, snapshot persist. Queries are pure functions
// over the current collection; with a small list there is nothing to cache.
type Service struct {
	store   Store
	local   *localstore.Store
	trail   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer

	now func() time.Time
}

func NewService(store Store, local *localstore.Store, trail *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		local:   local,
		trail:   trail,
		metrics: m,
		logger:  logger,
		tracer:  otel.Tracer("workbench/internal/event"),
		now:     time.Now,
	}
}

// Restore loads the persisted snapshot into the store, seeding defaults when
// no snapshot exists yet. Dates come back as real time.Time values.
func (s *Service) Restore(ctx context.Context) error {
	if s.local == nil {
		return nil
	}
	var snap Snapshot
	err := s.local.Load(StorageKey, &snap)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		snap.Events = SeedEvents()
	case err != nil:
		return fmt.Errorf("restore events: %w", err)
	}
	return s.store.ReplaceAll(ctx, snap.Events)
}

// Add assigns a fresh id plus created/updated stamps and appends the event.
// No uniqueness or overlap validation is performed.
func (s *Service) Add(ctx context.Context, sess *session.Session, input NewEvent) (Event, error) {
	ctx, span := s.tracer.Start(ctx, "event.Add")
	defer span.End()

	if !session.HasCapability(sess, session.CapabilityManageEvents) {
		return Event{}, dErrors.New(dErrors.CodeForbidden, "session cannot manage events")
	}
	if input.Title == "" {
		return Event{}, dErrors.New(dErrors.CodeBadRequest, "title must not be empty")
	}
	if !validTypes[input.Type] || !validPriorities[input.Priority] || !validStatuses[input.Status] {
		return Event{}, dErrors.New(dErrors.CodeBadRequest, "invalid event classification")
	}

	now := s.now()
	e := Event{
		ID:               id.NewEventID(),
		Title:            input.Title,
		Description:      input.Description,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		Type:             input.Type,
		Priority:         input.Priority,
		Status:           input.Status,
		CreatedBy:        sess.UserID,
		AssignedUsers:    input.AssignedUsers,
		AssociatedEntity: input.AssociatedEntity,
		CreatedAt:        now,
		UpdatedAt:        now,
		Metadata:         input.Metadata,
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return Event{}, dErrors.Wrap(dErrors.CodeInternal, "add event", err)
	}

	s.metrics.EventsCreated.Inc()
	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionEventCreated,
		Subject: e.ID.String(),
		Detail:  map[string]string{"title": e.Title, "type": string(e.Type)},
	})
	s.persist(ctx)
	return e, nil
}

// Update merges the patch into the matching record and bumps UpdatedAt.
// found=false reports an unknown id; the collection is left untouched.
func (s *Service) Update(ctx context.Context, sess *session.Session, eventID id.EventID, patch Patch) (Event, bool, error) {
	ctx, span := s.tracer.Start(ctx, "event.Update")
	defer span.End()

	if !session.HasCapability(sess, session.CapabilityManageEvents) {
		return Event{}, false, dErrors.New(dErrors.CodeForbidden, "session cannot manage events")
	}

	existing, err := s.store.Get(ctx, eventID.String())
	if errors.Is(err, sentinel.ErrNotFound) {
		return Event{}, false, nil
	}
	if err != nil {
		return Event{}, false, dErrors.Wrap(dErrors.CodeInternal, "load event", err)
	}

	updated := applyPatch(existing, patch)
	updated.UpdatedAt = s.now()
	if err := s.store.Put(ctx, updated); err != nil {
		return Event{}, false, dErrors.Wrap(dErrors.CodeInternal, "update event", err)
	}

	s.metrics.EventsUpdated.Inc()
	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionEventUpdated,
		Subject: eventID.String(),
	})
	s.persist(ctx)
	return updated, true, nil
}

// Delete removes the matching record. found=false reports an unknown id; the
// collection is left unchanged and no error is raised.
func (s *Service) Delete(ctx context.Context, sess *session.Session, eventID id.EventID) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "event.Delete")
	defer span.End()

	if !session.HasCapability(sess, session.CapabilityManageEvents) {
		return false, dErrors.New(dErrors.CodeForbidden, "session cannot manage events")
	}

	err := s.store.Delete(ctx, eventID.String())
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, dErrors.Wrap(dErrors.CodeInternal, "delete event", err)
	}

	s.metrics.EventsDeleted.Inc()
	s.trail.Emit(ctx, audit.Entry{
		Actor:   sess.UserID,
		Action:  audit.ActionEventDeleted,
		Subject: eventID.String(),
	})
	s.persist(ctx)
	return true, nil
}

// ClearAll wipes the collection.
func (s *Service) ClearAll(ctx context.Context, sess *session.Session) error {
	if !session.HasCapability(sess, session.CapabilityManageEvents) {
		return dErrors.New(dErrors.CodeForbidden, "session cannot manage events")
	}
	if err := s.store.ReplaceAll(ctx, nil); err != nil {
		return dErrors.Wrap(dErrors.CodeInternal, "clear events", err)
	}
	s.trail.Emit(ctx, audit.Entry{Actor: sess.UserID, Action: audit.ActionEventsCleared})
	s.persist(ctx)
	return nil
}

// Get fetches one event; found=false for unknown ids.
func (s *Service) Get(ctx context.Context, eventID id.EventID) (Event, bool, error) {
	e, err := s.store.Get(ctx, eventID.String())
	if errors.Is(err, sentinel.ErrNotFound) {
		return Event{}, false, nil
	}
	if err != nil {
		return Event{}, false, dErrors.Wrap(dErrors.CodeInternal, "load event", err)
	}
	return e, true, nil
}

// All returns the collection snapshot in insertion order.
func (s *Service) All(ctx context.Context) ([]Event, error) {
	return s.store.All(ctx)
}

// ByRange returns events whose interval intersects [start, end] with
// inclusive bounds: the event start falls in range, its end falls in range,
// or the event spans the whole query range.
func (s *Service) ByRange(ctx context.Context, start, end time.Time) ([]Event, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []Event
	for _, e := range all {
		es, ee := e.StartDate, e.effectiveEnd()
		startsInside := !es.Before(start) && !es.After(end)
		endsInside := !ee.Before(start) && !ee.After(end)
		spans := !es.After(start) && !ee.Before(end)
		if startsInside || endsInside || spans {
			out = append(out, e)
		}
	}
	return out, nil
}

// Upcoming returns events starting within [now, now+windowDays], ascending by
// start time. Ties keep insertion order. windowDays <= 0 uses the default 30.
func (s *Service) Upcoming(ctx context.Context, windowDays int) ([]Event, error) {
	if windowDays <= 0 {
		windowDays = upcomingWindowDays
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	horizon := now.AddDate(0, 0, windowDays)

	var out []Event
	for _, e := range all {
		if e.StartDate.Before(now) || e.StartDate.After(horizon) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out, nil
}

// Overdue returns events with a defined end before now whose status is not
// completed.
func (s *Service) Overdue(ctx context.Context) ([]Event, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	var out []Event
	for _, e := range all {
		if e.EndDate != nil && e.EndDate.Before(now) && e.Status != StatusCompleted {
			out = append(out, e)
		}
	}
	return out, nil
}

// Mine returns events the user created or is assigned to.
func (s *Service) Mine(ctx context.Context, userID id.UserID) ([]Event, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []Event
	for _, e := range all {
		if e.CreatedBy == userID {
			out = append(out, e)
			continue
		}
		for _, assigned := range e.AssignedUsers {
			if assigned == userID {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

// ByType returns events of the given type in insertion order.
func (s *Service) ByType(ctx context.Context, t Type) ([]Event, error) {
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	var out []Event
	for _, e := range all {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *Service) persist(ctx context.Context) {
	if s.local == nil {
		return
	}
	all, err := s.store.All(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "event snapshot read failed", "error", err)
		return
	}
	if err := s.local.Save(StorageKey, Snapshot{Events: all}); err != nil {
		s.logger.WarnContext(ctx, "event snapshot save failed", "error", err)
	}
}

func applyPatch(e Event, p Patch) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.ClearEndDate {
		e.EndDate = nil
	} else if p.EndDate != nil {
		end := *p.EndDate
		e.EndDate = &end
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Priority != nil {
		e.Priority = *p.Priority
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.AssignedUsers != nil {
		e.AssignedUsers = append([]id.UserID{}, (*p.AssignedUsers)...)
	}
	if p.ClearAssociation {
		e.AssociatedEntity = nil
	} else if p.AssociatedEntity != nil {
		assoc := *p.AssociatedEntity
		e.AssociatedEntity = &assoc
	}
	if p.Metadata != nil {
		e.Metadata = p.Metadata
	}
	return e
}
