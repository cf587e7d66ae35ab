package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workbench/internal/dashboard"
	"workbench/internal/platform/metrics"
	"workbench/internal/platform/middleware"
	"workbench/internal/session"
	"workbench/internal/transport/http/shared"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Service defines the dashboard operations the transport needs.
type Service interface {
	Widgets() []dashboard.Widget
	ActiveLayoutID() id.LayoutID
	Layouts(ctx context.Context) ([]dashboard.Layout, error)
	IsEditing() bool
	SetEditMode(ctx context.Context, sess *session.Session, editing bool) error
	SetActiveLayout(ctx context.Context, sess *session.Session, layoutID id.LayoutID) (bool, error)
	AddWidget(ctx context.Context, sess *session.Session, input dashboard.NewWidget) (dashboard.Widget, error)
	RemoveWidget(ctx context.Context, sess *session.Session, widgetID id.WidgetID) (bool, error)
	UpdateWidget(ctx context.Context, sess *session.Session, widgetID id.WidgetID, patch dashboard.WidgetPatch) (dashboard.Widget, bool, error)
	CommitDrag(ctx context.Context, sess *session.Session, widgetID id.WidgetID, dx, dy float64) (dashboard.Widget, bool, error)
	SaveLayout(ctx context.Context, sess *session.Session, input dashboard.NewLayout) (dashboard.Layout, error)
	DeleteLayout(ctx context.Context, sess *session.Session, layoutID id.LayoutID) (bool, error)
	ResetToDefault(ctx context.Context, sess *session.Session) error
}

// Sessions resolves the authenticated session from its id.
type Sessions interface {
	Resolve(ctx context.Context, sessionID string) (*session.Session, error)
}

// Handler handles dashboard endpoints.
type Handler struct {
	logger       *slog.Logger
	board        Service
	sessions     Sessions
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new dashboard Handler.
func New(board Service, sessions Sessions, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		board:        board,
		sessions:     sessions,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the dashboard routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	boardRouter := chi.NewRouter()
	boardRouter.Use(middleware.Recovery(h.logger))
	boardRouter.Use(middleware.RequestID)
	boardRouter.Use(middleware.Logger(h.logger))
	boardRouter.Use(middleware.Timeout(30 * time.Second))
	boardRouter.Use(middleware.ContentTypeJSON)
	boardRouter.Use(middleware.Latency(h.metrics))
	boardRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	boardRouter.Get("/", h.handleState)
	boardRouter.Put("/edit-mode", h.handleEditMode)
	boardRouter.Post("/reset", h.handleReset)
	boardRouter.Post("/widgets", h.handleAddWidget)
	boardRouter.Patch("/widgets/{id}", h.handleUpdateWidget)
	boardRouter.Delete("/widgets/{id}", h.handleRemoveWidget)
	boardRouter.Post("/widgets/{id}/drag", h.handleDrag)
	boardRouter.Get("/layouts", h.handleLayouts)
	boardRouter.Post("/layouts", h.handleSaveLayout)
	boardRouter.Put("/layouts/{id}/activate", h.handleActivate)
	boardRouter.Delete("/layouts/{id}", h.handleDeleteLayout)

	r.Mount("/dashboard", boardRouter)
}

type stateResponse struct {
	ActiveLayoutID string             `json:"activeLayoutId"`
	Widgets        []dashboard.Widget `json:"widgets"`
	IsEditing      bool               `json:"isEditing"`
}

type widgetRequest struct {
	Type        dashboard.WidgetType `json:"type"`
	Title       string               `json:"title"`
	Config      map[string]any       `json:"config,omitempty"`
	Position    dashboard.Position   `json:"position"`
	Size        dashboard.Size       `json:"size"`
	IsVisible   bool                 `json:"isVisible"`
	IsResizable bool                 `json:"isResizable"`
	IsDraggable bool                 `json:"isDraggable"`
	MinSize     *dashboard.Size      `json:"minSize,omitempty"`
	MaxSize     *dashboard.Size      `json:"maxSize,omitempty"`
}

type widgetPatchRequest struct {
	Title       *string             `json:"title"`
	Config      map[string]any      `json:"config"`
	Position    *dashboard.Position `json:"position"`
	Size        *dashboard.Size     `json:"size"`
	IsVisible   *bool               `json:"isVisible"`
	IsResizable *bool               `json:"isResizable"`
	IsDraggable *bool               `json:"isDraggable"`
}

type dragRequest struct {
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
}

type layoutRequest struct {
	Name      string             `json:"name"`
	IsDefault bool               `json:"isDefault"`
	Widgets   []dashboard.Widget `json:"widgets,omitempty"`
}

type editModeRequest struct {
	Editing bool `json:"editing"`
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

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	widgets := h.board.Widgets()
	if widgets == nil {
		widgets = []dashboard.Widget{}
	}
	shared.WriteJSON(w, http.StatusOK, stateResponse{
		ActiveLayoutID: string(h.board.ActiveLayoutID()),
		Widgets:        widgets,
		IsEditing:      h.board.IsEditing(),
	})
}

func (h *Handler) handleEditMode(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req editModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := h.board.SetEditMode(r.Context(), sess, req.Editing); err != nil {
		h.writeServiceError(w, r, "set edit mode", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.board.ResetToDefault(r.Context(), sess); err != nil {
		h.writeServiceError(w, r, "reset dashboard", err)
		return
	}
	h.handleState(w, r)
}

func (h *Handler) handleAddWidget(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req widgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	created, err := h.board.AddWidget(r.Context(), sess, dashboard.NewWidget{
		Type:        req.Type,
		Title:       req.Title,
		Config:      req.Config,
		Position:    req.Position,
		Size:        req.Size,
		IsVisible:   req.IsVisible,
		IsResizable: req.IsResizable,
		IsDraggable: req.IsDraggable,
		MinSize:     req.MinSize,
		MaxSize:     req.MaxSize,
	})
	if err != nil {
		h.writeServiceError(w, r, "add widget", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdateWidget(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	widgetID, err := id.ParseWidgetID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req widgetPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, found, err := h.board.UpdateWidget(r.Context(), sess, widgetID, dashboard.WidgetPatch{
		Title:       req.Title,
		Config:      req.Config,
		Position:    req.Position,
		Size:        req.Size,
		IsVisible:   req.IsVisible,
		IsResizable: req.IsResizable,
		IsDraggable: req.IsDraggable,
	})
	if err != nil {
		h.writeServiceError(w, r, "update widget", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "widget not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleRemoveWidget(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	widgetID, err := id.ParseWidgetID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	found, err := h.board.RemoveWidget(r.Context(), sess, widgetID)
	if err != nil {
		h.writeServiceError(w, r, "remove widget", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "widget not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleDrag(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	widgetID, err := id.ParseWidgetID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	var req dragRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	updated, moved, err := h.board.CommitDrag(r.Context(), sess, widgetID, req.DeltaX, req.DeltaY)
	if err != nil {
		h.writeServiceError(w, r, "commit drag", err)
		return
	}
	if !moved {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	shared.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) handleLayouts(w http.ResponseWriter, r *http.Request) {
	layouts, err := h.board.Layouts(r.Context())
	if err != nil {
		h.writeServiceError(w, r, "list layouts", err)
		return
	}
	if layouts == nil {
		layouts = []dashboard.Layout{}
	}
	shared.WriteJSON(w, http.StatusOK, layouts)
}

func (h *Handler) handleSaveLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}

	layout, err := h.board.SaveLayout(r.Context(), sess, dashboard.NewLayout{
		Name:      req.Name,
		UserID:    sess.UserID,
		IsDefault: req.IsDefault,
		Widgets:   req.Widgets,
	})
	if err != nil {
		h.writeServiceError(w, r, "save layout", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, layout)
}

func (h *Handler) handleActivate(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	layoutID, err := id.ParseLayoutID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	found, err := h.board.SetActiveLayout(r.Context(), sess, layoutID)
	if err != nil {
		h.writeServiceError(w, r, "switch layout", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "layout not found"))
		return
	}
	h.handleState(w, r)
}

func (h *Handler) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	layoutID, err := id.ParseLayoutID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}

	found, err := h.board.DeleteLayout(r.Context(), sess, layoutID)
	if err != nil {
		h.writeServiceError(w, r, "delete layout", err)
		return
	}
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "layout not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
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
