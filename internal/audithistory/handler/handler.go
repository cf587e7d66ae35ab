package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workbench/internal/audithistory"
	"workbench/internal/event"
	"workbench/internal/platform/metrics"
	"workbench/internal/platform/middleware"
	"workbench/internal/session"
	"workbench/internal/transport/http/shared"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Service defines the audit history operations the transport needs.
type Service interface {
	Filters() audithistory.Filters
	SetFilters(ctx context.Context, sess *session.Session, patch audithistory.FilterPatch) audithistory.Filters
	FilteredAudits(ctx context.Context) ([]audithistory.AuditRecord, error)
	AuditByID(ctx context.Context, auditID id.AuditID) (audithistory.AuditRecord, bool, error)
	RelatedAudits(ctx context.Context, auditID id.AuditID) ([]audithistory.AuditRecord, error)
	SelectAudit(ctx context.Context, auditID id.AuditID) (bool, error)
	SelectedAudit() (audithistory.AuditRecord, bool)
}

// Sessions resolves the authenticated session from its id.
type Sessions interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// Handler handles audit history endpoints.
type Handler struct {
	logger       *slog.Logger
	history      Service
	sessions     Sessions
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new audit history Handler.
func New(history Service, sessions Sessions, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		history:      history,
		sessions:     sessions,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the audit history routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	auditRouter := chi.NewRouter()
	auditRouter.Use(middleware.Recovery(h.logger))
	auditRouter.Use(middleware.RequestID)
	auditRouter.Use(middleware.Logger(h.logger))
	auditRouter.Use(middleware.Timeout(30 * time.Second))
	auditRouter.Use(middleware.ContentTypeJSON)
	auditRouter.Use(middleware.Latency(h.metrics))
	auditRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	auditRouter.Get("/", h.handleList)
	auditRouter.Get("/filters", h.handleGetFilters)
	auditRouter.Patch("/filters", h.handleSetFilters)
	auditRouter.Get("/selected", h.handleSelected)
	auditRouter.Put("/selected", h.handleSelect)
	auditRouter.Get("/{id}", h.handleGet)
	auditRouter.Get("/{id}/related", h.handleRelated)

	r.Mount("/audit-history", auditRouter)
}

type filterPatchRequest struct {
	Type           *string               `json:"type"`
	ClearType      bool                  `json:"clearType"`
	Status         *string               `json:"status"`
	ClearStatus    bool                  `json:"clearStatus"`
	RiskLevel      *string               `json:"riskLevel"`
	ClearRiskLevel bool                  `json:"clearRiskLevel"`
	DateRange      *audithistory.DateRange `json:"dateRange"`
	ClearDateRange bool                  `json:"clearDateRange"`
	EntityID       *string               `json:"entity"`
	ClearEntityID  bool                  `json:"clearEntity"`
}

type selectRequest struct {
	ID string `json:"id"`
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

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	audits, err := h.history.FilteredAudits(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list audits", err)
		return
	}
	if audits == nil {
		audits = []audithistory.AuditRecord{}
	}
	shared.WriteJSON(w, http.StatusOK, audits)
}

func (h *Handler) handleGetFilters(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, h.history.Filters())
}

func (h *Handler) handleSetFilters(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req filterPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	patch, err := toFilterPatch(req)
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	shared.WriteJSON(w, http.StatusOK, h.history.SetFilters(r.Context(), sess, patch))
}

func (h *Handler) handleSelected(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.history.SelectedAudit()
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no audit selected"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, sel)
}

func (h *Handler) handleSelect(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.session(w, r); !ok {
		return
	}

	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	found, err := h.history.SelectAudit(r.Context(), id.AuditID(req.ID))
	if err != nil {
		h.writeServiceError(w, r, "select audit", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "audit not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	auditID, err := id.ParseAuditID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	a, found, err := h.history.AuditByID(r.Context(), auditID)
	if err != nil {
		h.writeServiceError(w, r, "get audit", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "audit not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) handleRelated(w http.ResponseWriter, r *http.Request) {
	auditID, err := id.ParseAuditID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	related, err := h.history.RelatedAudits(r.Context(), auditID)
	if err != nil {
		h.writeServiceError(w, r, "related audits", err)
		return
	}
	if related == nil {
		related = []audithistory.AuditRecord{}
	}
	shared.WriteJSON(w, http.StatusOK, related)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	if dErrors.Is(err, dErrors.CodeBadRequest) || dErrors.Is(err, dErrors.CodeInvalidInput) {
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

func toFilterPatch(req filterPatchRequest) (audithistory.FilterPatch, error) {
	patch := audithistory.FilterPatch{
		ClearType:      req.ClearType,
		ClearStatus:    req.ClearStatus,
		ClearRiskLevel: req.ClearRiskLevel,
		DateRange:      req.DateRange,
		ClearDateRange: req.ClearDateRange,
		EntityID:       req.EntityID,
		ClearEntityID:  req.ClearEntityID,
	}
	if req.Type != nil {
		t, err := event.ParseType(*req.Type)
		if err != nil {
			return audithistory.FilterPatch{}, err
		}
		patch.Type = &t
	}
	if req.Status != nil {
		st, err := audithistory.ParseStatus(*req.Status)
		if err != nil {
			return audithistory.FilterPatch{}, err
		}
		patch.Status = &st
	}
	if req.RiskLevel != nil {
		rl, err := audithistory.ParseRiskLevel(*req.RiskLevel)
		if err != nil {
			return audithistory.FilterPatch{}, err
		}
		patch.RiskLevel = &rl
	}
	return patch, nil
}
