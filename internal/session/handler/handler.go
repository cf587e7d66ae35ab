package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workbench/internal/platform/metrics"
	"workbench/internal/platform/middleware"
	"workbench/internal/registry"
	"workbench/internal/session"
	"workbench/internal/transport/http/shared"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Service is the session operations the handler depends on.
type Service interface {
	CurrentUser() (registry.User, bool)
	Switch(ctx context.Context, userID id.UserID, userAgent string) (*session.Session, bool, error)
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
	IssueToken(sess *session.Session) (string, error)
}

// Handler handles the login-as flow and current-session introspection.
type Handler struct {
	logger       *slog.Logger
	service      Service
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new session Handler.
func New(service Service, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		service:      service,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the session routes with the chi router. The switch
// endpoint is the entry point that mints the first token, so it stays outside
// the auth guard.
func (h *Handler) Register(r chi.Router) {
	sessRouter := chi.NewRouter()
	sessRouter.Use(middleware.Recovery(h.logger))
	sessRouter.Use(middleware.RequestID)
	sessRouter.Use(middleware.Logger(h.logger))
	sessRouter.Use(middleware.Timeout(30 * time.Second))
	sessRouter.Use(middleware.ContentTypeJSON)
	sessRouter.Use(middleware.Latency(h.metrics))

	sessRouter.Post("/switch", h.handleSwitch)
	sessRouter.With(middleware.RequireAuth(h.jwtValidator, h.logger)).
		Get("/current", h.handleCurrent)

	r.Mount("/session", sessRouter)
}

type switchRequest struct {
	UserID string `json:"userId"`
}

type switchResponse struct {
	Token   string           `json:"token"`
	Session *session.Session `json:"session"`
	User    registry.User    `json:"user"`
}

type currentResponse struct {
	Session *session.Session `json:"session"`
	User    registry.User    `json:"user"`
}

func (h *Handler) handleSwitch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req switchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if req.UserID == "" {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "userId is required"))
		return
	}

	sess, found, err := h.service.Switch(ctx, id.UserID(req.UserID), r.UserAgent())
	if err != nil {
		h.logger.ErrorContext(ctx, "session switch failed",
			"request_id", middleware.GetRequestID(ctx),
			"user_id", req.UserID,
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "session switch failed"))
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "user not found"))
		return
	}

	token, err := h.service.IssueToken(sess)
	if err != nil {
		h.logger.ErrorContext(ctx, "token issue failed",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		shared.WriteError(w, dErrors.New(dErrors.CodeInternal, "token issue failed"))
		return
	}

	user, _ := h.service.CurrentUser()
	shared.WriteJSON(w, http.StatusOK, switchResponse{Token: token, Session: sess, User: user})
}

func (h *Handler) handleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, err := h.service.Resolve(ctx, middleware.GetSessionID(ctx))
	if err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "session not found"))
		return
	}
	user, ok := h.service.CurrentUser()
	if !ok {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no current user"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, currentResponse{Session: sess, User: user})
}
