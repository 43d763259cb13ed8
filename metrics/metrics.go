// Package metrics holds the prometheus collectors of the dashboard service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes for FigureRequests
const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeRejected = "rejected"
)

var (
	// ETLPhaseDuration tracks extract, transform and load separately
	ETLPhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "migration_etl_phase_duration_seconds",
		Help:    "Duration of each data preparation phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	DatasetRows = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "migration_dataset_rows",
		Help: "Country-year rows in the prepared dataset.",
	})

	// FigureRequests counts figure selections by transport (http, ws).
	// Unrecognized metric tokens are recorded as "unknown".
	FigureRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "migration_figure_requests_total",
		Help: "Figure selections served.",
	}, []string{"transport", "metric", "outcome"})

	WSClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "migration_ws_clients",
		Help: "Connected websocket clients.",
	})
)

// ObservePhase records the time elapsed since start for a preparation phase
func ObservePhase(phase string, start time.Time) {
	ETLPhaseDuration.WithLabelValues(phase).Observe(time.Since(start).Seconds())
}

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
