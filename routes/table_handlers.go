package routes

import (
	"net/http"
	"time"

	"github.com/spf13/cast"

	"github.com/LilVoxy/migration_dashboard/ETL/linear_regression"
	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// TableResponse lists aggregated rows
type TableResponse struct {
	Count int                    `json:"count"`
	Rows  []models.AggregatedRow `json:"rows"`
}

// StatusResponse summarizes the loaded dataset
type StatusResponse struct {
	Run       *models.ETLRunLog `json:"run"`
	Source    string            `json:"source"`
	LoadedAt  time.Time         `json:"loadedAt"`
	Rows      int               `json:"rows"`
	Countries int               `json:"countries"`
	Years     []int             `json:"years"`
	Lenient   bool              `json:"lenientMetrics"`

	// compressed figure sizes in bytes, keyed by metric token
	FigureBytes map[string]int `json:"figureBytes"`
}

// GetCountriesHandler lists the unique countries
func (h *Handlers) GetCountriesHandler(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, h.ds.Countries())
}

// GetTableHandler returns aggregated rows, optionally filtered by country and year
func (h *Handlers) GetTableHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	country := query.Get("country")

	year := 0
	if yearStr := query.Get("year"); yearStr != "" {
		parsed, err := cast.ToIntE(yearStr)
		if err != nil || parsed <= 0 {
			writeError(w, r, http.StatusBadRequest, "invalid year: "+yearStr)
			return
		}
		year = parsed
	}

	rows := h.ds.Filter(country, year)
	writeOK(w, r, TableResponse{Count: len(rows), Rows: rows})
}

// GetTrendsHandler fits the per-country trend of a metric
func (h *Handlers) GetTrendsHandler(w http.ResponseWriter, r *http.Request) {
	m, _, err := h.resolveMetric(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if country := r.URL.Query().Get("country"); country != "" {
		result, err := linear_regression.NewDataService(h.ds).Trend(country, m)
		if err != nil {
			writeError(w, r, http.StatusNotFound, err.Error())
			return
		}
		writeOK(w, r, []linear_regression.RegressionResult{*result})
		return
	}

	results := linear_regression.Trends(h.ds, m)
	if results == nil {
		results = []linear_regression.RegressionResult{}
	}
	writeOK(w, r, results)
}

// GetStatusHandler reports the preparation run
func (h *Handlers) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, StatusResponse{
		Run:       h.runLog,
		Source:    h.ds.Source(),
		LoadedAt:  h.ds.LoadedAt(),
		Rows:      h.ds.Len(),
		Countries: len(h.ds.Countries()),
		Years:     h.ds.Years(),
		Lenient:   h.lenient,

		FigureBytes: h.cache.Sizes(),
	})
}

// HealthHandler is the liveness probe
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeOK(w, r, map[string]string{"state": "up"})
}
