package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workbench/internal/transport/http/shared"
)

// Registrar is implemented by every feature handler; each one mounts its own
// sub-router under its resource prefix.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter composes the feature handlers into the public router, plus the
// health and metrics endpoints.
func NewRouter(registerer prometheus.Gatherer, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		shared.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(registerer, promhttp.HandlerOpts{}))

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
