package routes

import (
	"net/http"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/figure"
	"github.com/LilVoxy/migration_dashboard/metrics"
	"github.com/LilVoxy/migration_dashboard/processor"
)

const transportHTTP = "http"

// Handlers serves the prepared dataset. Every field is read-only after construction.
type Handlers struct {
	ds       *models.Dataset
	cache    *processor.FigureCache
	controls figure.Controls
	runLog   *models.ETLRunLog
	lenient  bool
	logger   *utils.ETLLogger
}

// NewHandlers creates the API handlers
func NewHandlers(ds *models.Dataset, cache *processor.FigureCache, runLog *models.ETLRunLog, lenient bool, logger *utils.ETLLogger) *Handlers {
	return &Handlers{
		ds:       ds,
		cache:    cache,
		controls: figure.BuildControls(ds),
		runLog:   runLog,
		lenient:  lenient,
		logger:   logger,
	}
}

// resolveMetric reads the metric query parameter, defaulting to log Net when absent
func (h *Handlers) resolveMetric(r *http.Request) (figure.Metric, bool, error) {
	token, present := r.URL.Query()["metric"]
	if !present || len(token) == 0 {
		return figure.DefaultMetric, false, nil
	}
	m, fellBack, err := figure.Resolve(token[0], h.lenient)
	if fellBack {
		h.logger.Warn("unknown metric %q, falling back to %s", token[0], m.Token())
	}
	return m, fellBack, err
}

// GetFigureHandler returns the raw Plotly figure of the selected metric
func (h *Handlers) GetFigureHandler(w http.ResponseWriter, r *http.Request) {
	m, fellBack, err := h.resolveMetric(r)
	if err != nil {
		metrics.FigureRequests.WithLabelValues(transportHTTP, "unknown", metrics.OutcomeRejected).Inc()
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	body, err := h.cache.JSON(m)
	if err != nil {
		h.logger.Error("figure %s: %v", m.Token(), err)
		writeError(w, r, http.StatusInternalServerError, "figure unavailable")
		return
	}

	outcome := metrics.OutcomeOK
	if fellBack {
		outcome = metrics.OutcomeFallback
	}
	metrics.FigureRequests.WithLabelValues(transportHTTP, m.Token(), outcome).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		h.logger.Debug("write figure: %v", err)
	}
}

// GetControlsHandler describes the dropdown, slider and radio buttons
func (h *Handlers) GetControlsHandler(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, h.controls)
}
