package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workbench/internal/platform/metrics"
	"workbench/internal/platform/middleware"
	"workbench/internal/registry"
	"workbench/internal/transport/http/shared"
	id "workbench/pkg/domain"
	dErrors "workbench/pkg/domain-errors"
)

// Handler serves the static entity and user registries.
type Handler struct {
	logger       *slog.Logger
	entities     *registry.Entities
	users        *registry.Users
	metrics      *metrics.Metrics
	jwtValidator middleware.JWTValidator
}

// New creates a new registry Handler.
func New(entities *registry.Entities, users *registry.Users, logger *slog.Logger, m *metrics.Metrics, jwtValidator middleware.JWTValidator) *Handler {
	return &Handler{
		logger:       logger,
		entities:     entities,
		users:        users,
		metrics:      m,
		jwtValidator: jwtValidator,
	}
}

// Register registers the registry routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	regRouter := chi.NewRouter()
	regRouter.Use(middleware.Recovery(h.logger))
	regRouter.Use(middleware.RequestID)
	regRouter.Use(middleware.Logger(h.logger))
	regRouter.Use(middleware.Timeout(30 * time.Second))
	regRouter.Use(middleware.ContentTypeJSON)
	regRouter.Use(middleware.Latency(h.metrics))
	regRouter.Use(middleware.RequireAuth(h.jwtValidator, h.logger))

	regRouter.Get("/entities", h.handleEntities)
	regRouter.Get("/entities/hierarchy", h.handleHierarchy)
	regRouter.Get("/entities/{id}", h.handleEntity)
	regRouter.Get("/users", h.handleUsers)
	regRouter.Get("/users/{id}", h.handleUser)

	r.Mount("/registry", regRouter)
}

func (h *Handler) handleEntities(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := registry.EntityType(raw)
		valid := false
		for _, known := range registry.EntityTypes() {
			if t == known {
				valid = true
				break
			}
		}
		if !valid {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown entity type"))
			return
		}
		entities := h.entities.ByType(t)
		if entities == nil {
			entities = []registry.Entity{}
		}
		shared.WriteJSON(w, http.StatusOK, entities)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.entities.All())
}

func (h *Handler) handleHierarchy(w http.ResponseWriter, r *http.Request) {
	shared.WriteJSON(w, http.StatusOK, h.entities.Hierarchy())
}

func (h *Handler) handleEntity(w http.ResponseWriter, r *http.Request) {
	entity, found := h.entities.ByID(id.EntityID(chi.URLParam(r, "id")))
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "entity not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, entity)
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("persona"); raw != "" {
		p := registry.Persona(raw)
		valid := false
		for _, known := range registry.Personas() {
			if p == known {
				valid = true
				break
			}
		}
		if !valid {
			shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "unknown persona"))
			return
		}
		users := h.users.ByPersona(p)
		if users == nil {
			users = []registry.User{}
		}
		shared.WriteJSON(w, http.StatusOK, users)
		return
	}
	shared.WriteJSON(w, http.StatusOK, h.users.All())
}

func (h *Handler) handleUser(w http.ResponseWriter, r *http.Request) {
	userID, err := id.ParseUserID(chi.URLParam(r, "id"))
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	user, found := h.users.ByID(userID)
	if !found {
		shared.WriteError(w, dErrors.New(dErrors.CodeNotFound, "user not found"))
		return
	}
	shared.WriteJSON(w, http.StatusOK, user)
}
