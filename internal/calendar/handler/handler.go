package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"workbench/internal/calendar"
	"workbench/internal/event"
	"workbench/internal/platform/metrics"
	"workbench/internal/platform/middleware"
	"workbench/internal/session"
	"workbench/internal/transport/http/shared"
	dErrors "workbench/pkg/domain-errors"
	pstrings "workbench/pkg/platform/strings"
)

// Events supplies the snapshot the projection runs over and accepts
// quick-created drafts.
type Events interface {
	All(ctx context.Context) ([]event.Event, error)
	Add(ctx context.Context, sess *session.Session, input event.NewEvent) (event.Event, error)
}

// Sessions resolves the authenticated session from its id.
type Sessions interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// Handler handles calendar projection endpoints.
type Handler struct {
	logger       *slog.Logger
	events       Events
	sessions     Sessions
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator

	now func() time.Time
}

// New creates a new calendar Handler.
func New(events Events, sessions Sessions, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		events:       events,
		sessions:     sessions,
		metrics:      m,
		jwtValidator: jwtValidator,
		now:          time.Now,
	}
}

// Register registers the calendar routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	calRouter := chi.NewRouter()
	calRouter.Use(middleware.Recovery(h.logger))
	calRouter.Use(middleware.RequestID)
	calRouter.Use(middleware.Logger(h.logger))
	calRouter.Use(middleware.Timeout(30 * time.Second))
	calRouter.Use(middleware.ContentTypeJSON)
	calRouter.Use(middleware.Latency(h.metrics))
	calRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	calRouter.Get("/items", h.handleItems)
	calRouter.Get("/upcoming", h.handleUpcoming)
	calRouter.Post("/slot", h.handleSlot)

	r.Mount("/calendar", calRouter)
}

type slotRequest struct {
	Start  time.Time       `json:"start"`
	End    *time.Time      `json:"end,omitempty"`
	Title  string          `json:"title"`
	Config calendar.Config `json:"config"`
}

func (h *Handler) handleItems(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	all, err := h.events.All(r.Context())
	if err != nil {
		h.writeInternal(w, r, "project calendar", err)
		return
	}

	items := calendar.Project(all, filters)
	if items == nil {
		items = []calendar.Item{}
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	filters, err := filtersFromQuery(r)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	all, err := h.events.All(r.Context())
	if err != nil {
		h.writeInternal(w, r, "derive upcoming list", err)
		return
	}

	items := calendar.UpcomingList(all, filters, h.now())
	if items == nil {
		items = []calendar.Item{}
	}
	shared.WriteJSON(w, http.StatusOK, items)
}

// handleSlot creates an event from a selected calendar span. A session that
// may not quick-create gets a 204 and no mutation, mirroring the widget's
// silent no-op.
func (h *Handler) handleSlot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess, err := h.sessions.Resolve(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "session not found"))
		return
	}

	var req slotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.Start.IsZero() {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "start is required"))
		return
	}

	end := time.Time{}
	if req.End != nil {
		end = *req.End
	}
	draft, permitted := calendar.SelectSlot(sess, req.Config, req.Start, end)
	if !permitted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if req.Title != "" {
		draft.Title = req.Title
	} else {
		draft.Title = "New Event"
	}

	created, err := h.events.Add(ctx, sess, draft)
	if err != nil {
		h.writeInternal(w, r, "create slot event", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) writeInternal(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	if dErrors.Is(err, dErrors.CodeForbidden) || dErrors.Is(err, dErrors.CodeBadRequest) {
		shared.WriteError(w, err)
		return
	}
	h.logger.ErrorContext(ctx, op+" failed",
		"request_id", middleware.GetRequestID(ctx),
		"error", err.Error(),
	)
	shared.WriteError(w, dErrors.New(dErrors.CodeInternal, op+" failed"))
}

// filtersFromQuery reads comma-separated type/priority/status lists; absent
// parameters keep the all-inclusive defaults.
func filtersFromQuery(r *http.Request) (calendar.Filters, error) {
	f := calendar.DefaultFilters()

	if raw := r.URL.Query().Get("types"); raw != "" {
		var types []event.Type
		for _, s := range pstrings.DedupeAndTrim(strings.Split(raw, ",")) {
			t, err := event.ParseType(s)
			if err != nil {
				return calendar.Filters{}, err
			}
			types = append(types, t)
		}
		f.Types = types
	}
	if raw := r.URL.Query().Get("priorities"); raw != "" {
		var priorities []event.Priority
		for _, s := range pstrings.DedupeAndTrim(strings.Split(raw, ",")) {
			p, err := event.ParsePriority(s)
			if err != nil {
				return calendar.Filters{}, err
			}
			priorities = append(priorities, p)
		}
		f.Priorities = priorities
	}
	if raw := r.URL.Query().Get("statuses"); raw != "" {
		var statuses []event.Status
		for _, s := range pstrings.DedupeAndTrim(strings.Split(raw, ",")) {
			st, err := event.ParseStatus(s)
			if err != nil {
				return calendar.Filters{}, err
			}
			statuses = append(statuses, st)
		}
		f.Statuses = statuses
	}
	return f, nil
}
