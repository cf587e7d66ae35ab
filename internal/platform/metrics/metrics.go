package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared across handlers and services.
// Per-package collectors (store latencies etc.) live next to their packages.
type Metrics struct {
	RequestDuration *prometheus.HistogramVec

	EventsCreated   prometheus.Counter
	EventsUpdated   prometheus.Counter
	EventsDeleted   prometheus.Counter
	WidgetMoves     prometheus.Counter
	SessionSwitches prometheus.Counter
}

// New creates and registers all shared Prometheus metrics on the default
// registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on the given registerer. Tests pass a fresh
// registry so parallel suites do not collide on duplicate registration.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workbench_http_request_duration_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"method", "path", "status"}),
		EventsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "workbench_events_created_total",
			Help: "Total number of calendar events created",
		}),
		EventsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "workbench_events_updated_total",
			Help: "Total number of calendar events updated",
		}),
		EventsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "workbench_events_deleted_total",
			Help: "Total number of calendar events deleted",
		}),
		WidgetMoves: factory.NewCounter(prometheus.CounterOpts{
			Name: "workbench_widget_moves_total",
			Help: "Total number of committed widget drag operations",
		}),
		SessionSwitches: factory.NewCounter(prometheus.CounterOpts{
			Name: "workbench_session_switches_total",
			Help: "Total number of login-as session switches",
		}),
	}
}
