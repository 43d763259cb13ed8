package routes

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/gorilla/mux"

	"github.com/LilVoxy/migration_dashboard/metrics"
	"github.com/LilVoxy/migration_dashboard/websocket"
)

// SetupRoutes registers the API, the websocket channel and the static files
func SetupRoutes(router *mux.Router, h *Handlers, wsManager *websocket.Manager, staticDir string) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	// reactive channel
	router.HandleFunc("/ws", wsManager.HandleConnections)
	router.HandleFunc("/api/ws/status", wsManager.HandleStatus).Methods("GET", "OPTIONS")

	router.HandleFunc("/api/figure", h.GetFigureHandler).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/controls", h.GetControlsHandler).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/countries", h.GetCountriesHandler).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/table", h.GetTableHandler).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/trends", h.GetTrendsHandler).Methods("GET", "OPTIONS")
	router.HandleFunc("/api/status", h.GetStatusHandler).Methods("GET", "OPTIONS")

	router.HandleFunc("/health", HealthHandler).Methods("GET")
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir)))
}
