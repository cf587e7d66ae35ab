package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"workbench/internal/event"
	"workbench/internal/platform/metrics"
	"workbench/internal/platform/middleware"
	"workbench/internal/session"
	"workbench/internal/transport/http/shared"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Service defines the event operations the transport needs.
type Service interface {
	Add(ctx context.Context, sess *session.Session, input event.NewEvent) (event.Event, error)
	Update(ctx context.Context, sess *session.Session, eventID id.EventID, patch event.Patch) (event.Event, bool, error)
	Delete(ctx context.Context, sess *session.Session, eventID id.EventID) (bool, error)
	ClearAll(ctx context.Context, sess *session.Session) error
	Get(ctx context.Context, eventID id.EventID) (event.Event, bool, error)
	All(ctx context.Context) ([]event.Event, error)
	ByRange(ctx context.Context, start, end time.Time) ([]event.Event, error)
	Upcoming(ctx context.Context, windowDays int) ([]event.Event, error)
	Overdue(ctx context.Context) ([]event.Event, error)
	Mine(ctx context.Context, userID id.UserID) ([]event.Event, error)
	ByType(ctx context.Context, t event.Type) ([]event.Event, error)
}

// Sessions resolves the authenticated session from its id.
type Sessions interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// Handler handles event endpoints.
type Handler struct {
	logger       *slog.Logger
	events       Service
	sessions     Sessions
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new event Handler.
func New(events Service, sessions Sessions, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		events:       events,
		sessions:     sessions,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the event routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	eventRouter := chi.NewRouter()
	eventRouter.Use(middleware.Recovery(h.logger))
	eventRouter.Use(middleware.RequestID)
	eventRouter.Use(middleware.Logger(h.logger))
	eventRouter.Use(middleware.Timeout(30 * time.Second))
	eventRouter.Use(middleware.ContentTypeJSON)
	eventRouter.Use(middleware.Latency(h.metrics))
	eventRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	eventRouter.Get("/", h.handleList)
	eventRouter.Post("/", h.handleAdd)
	eventRouter.Delete("/", h.handleClearAll)
	eventRouter.Get("/range", h.handleByRange)
	eventRouter.Get("/upcoming", h.handleUpcoming)
	eventRouter.Get("/overdue", h.handleOverdue)
	eventRouter.Get("/mine", h.handleMine)
	eventRouter.Get("/{id}", h.handleGet)
	eventRouter.Patch("/{id}", h.handleUpdate)
	eventRouter.Delete("/{id}", h.handleDelete)

	r.Mount("/events", eventRouter)
}

type eventRequest struct {
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	StartDate        time.Time                `json:"startDate"`
	EndDate          *time.Time               `json:"endDate,omitempty"`
	Type             string                   `json:"type"`
	Priority         string                   `json:"priority"`
	Status           string                   `json:"status"`
	AssignedUsers    []string                 `json:"assignedUsers,omitempty"`
	AssociatedEntity *event.EntityAssociation `json:"associatedEntity,omitempty"`
	Metadata         map[string]any           `json:"metadata,omitempty"`
}

type patchRequest struct {
	Title            *string                  `json:"title"`
	Description      *string                  `json:"description"`
	StartDate        *time.Time               `json:"startDate"`
	EndDate          *time.Time               `json:"endDate"`
	ClearEndDate     bool                     `json:"clearEndDate"`
	Type             *string                  `json:"type"`
	Priority         *string                  `json:"priority"`
	Status           *string                  `json:"status"`
	AssignedUsers    *[]string                `json:"assignedUsers"`
	AssociatedEntity *event.EntityAssociation `json:"associatedEntity"`
	ClearAssociation bool                     `json:"clearAssociation"`
	Metadata         map[string]any           `json:"metadata"`
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	ctx := r.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "session resolution failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "session not found"))
		return nil, false
	}
	return sess, true
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	input, err := toNewEvent(req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	created, err := h.events.Add(ctx, sess, input)
	if err != nil {
		h.writeServiceError(w, r, "add event", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	eventID, err := id.ParseEventID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	patch, err := toPatch(req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	updated, found, err := h.events.Update(ctx, sess, eventID, patch)
	if err != nil {
		h.writeServiceError(w, r, "update event", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	eventID, err := id.ParseEventID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	found, err := h.events.Delete(ctx, sess, eventID)
	if err != nil {
		h.writeServiceError(w, r, "delete event", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearAll(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.events.ClearAll(r.Context(), sess); err != nil {
		h.writeServiceError(w, r, "clear events", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	eventID, err := id.ParseEventID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	e, found, err := h.events.Get(r.Context(), eventID)
	if err != nil {
		h.writeServiceError(w, r, "get event", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "event not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	if t := r.URL.Query().Get("type"); t != "" {
		eventType, err := event.ParseType(t)
		if err != nil {
			shared.WriteError(w, err)
			return
		}
		h.writeList(w, r, func(ctx context.Context) ([]event.Event, error) {
			return h.events.ByType(ctx, eventType)
		})
		return
	}
	h.writeList(w, r, h.events.All)
}

func (h *Handler) handleByRange(w http.ResponseWriter, r *http.Request) {
	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "start must be RFC 3339"))
		return
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "end must be RFC 3339"))
		return
	}
	h.writeList(w, r, func(ctx context.Context) ([]event.Event, error) {
		return h.events.ByRange(ctx, start, end)
	})
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "days must be an integer"))
			return
		}
		days = parsed
	}
	h.writeList(w, r, func(ctx context.Context) ([]event.Event, error) {
		return h.events.Upcoming(ctx, days)
	})
}

func (h *Handler) handleOverdue(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.events.Overdue)
}

func (h *Handler) handleMine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(middleware.GetUserID(ctx))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing user identity"))
		return
	}
	h.writeList(w, r, func(ctx context.Context) ([]event.Event, error) {
		return h.events.Mine(ctx, userID)
	})
}

func (h *Handler) writeList(w http.ResponseWriter, r *http.Request, fetch func(context.Context) ([]event.Event, error)) {
	events, err := fetch(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list events", err)
		return
	}
	if events == nil {
		events = []event.Event{}
	}
	shared.WriteJSON(w, http.StatusOK, events)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	if dErrors.Is(err, dErrors.CodeBadRequest) || dErrors.Is(err, dErrors.CodeForbidden) || dErrors.Is(err, dErrors.CodeInvalidInput) {
		h.logger.WarnContext(ctx, op+" rejected",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, err)
		return
	}
	h.logger.ErrorContext(ctx, op+" failed",
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
	shared.WriteError(w, dErrors.New(dErrors.CodeInternal, op+" failed"))
}

func toNewEvent(req eventRequest) (event.NewEvent, error) {
	eventType, err := event.ParseType(req.Type)
	if err != nil {
		return event.NewEvent{}, err
	}
	priority, err := event.ParsePriority(req.Priority)
	if err != nil {
		return event.NewEvent{}, err
	}
	status, err := event.ParseStatus(req.Status)
	if err != nil {
		return event.NewEvent{}, err
	}
	assigned, err := parseUserIDs(req.AssignedUsers)
	if err != nil {
		return event.NewEvent{}, err
	}
	return event.NewEvent{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		Type:             eventType,
		Priority:         priority,
		Status:           status,
		AssignedUsers:    assigned,
		AssociatedEntity: req.AssociatedEntity,
		Metadata:         req.Metadata,
	}, nil
}

func toPatch(req patchRequest) (event.Patch, error) {
	p := event.Patch{
		Title:            req.Title,
		Description:      req.Description,
		StartDate:        req.StartDate,
		EndDate:          req.EndDate,
		ClearEndDate:     req.ClearEndDate,
		AssociatedEntity: req.AssociatedEntity,
		ClearAssociation: req.ClearAssociation,
		Metadata:         req.Metadata,
	}
	if req.Type != nil {
		t, err := event.ParseType(*req.Type)
		if err != nil {
			return event.Patch{}, err
		}
		p.Type = &t
	}
	if req.Priority != nil {
		pr, err := event.ParsePriority(*req.Priority)
		if err != nil {
			return event.Patch{}, err
		}
		p.Priority = &pr
	}
	if req.Status != nil {
		st, err := event.ParseStatus(*req.Status)
		if err != nil {
			return event.Patch{}, err
		}
		p.Status = &st
	}
	if req.AssignedUsers != nil {
		assigned, err := parseUserIDs(*req.AssignedUsers)
		if err != nil {
			return event.Patch{}, err
		}
		p.AssignedUsers = &assigned
	}
	return p, nil
}

func parseUserIDs(raw []string) ([]id.UserID, error) {
	if raw == nil {
		return nil, nil
	}
	out := make([]id.UserID, 0, len(raw))
	for _, r := range raw {
		uid, err := id.ParseUserID(r)
		if err != nil {
			return nil, err
		}
		out = append(out, uid)
	}
	return out, nil
}
