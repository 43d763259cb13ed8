package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
	"github.com/LilVoxy/migration_dashboard/ETL/runner"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/processor"
	"github.com/LilVoxy/migration_dashboard/routes"
	"github.com/LilVoxy/migration_dashboard/websocket"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	logger := utils.NewETLLogger(cfg.EnableDetailedLogging, cfg.LogFile)
	defer logger.Close()
	if err != nil {
		logger.Fatal("❌ configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// the dataset is prepared once; any failure keeps the server down
	ds, runLog, err := runner.Prepare(ctx, cfg, logger.With("prepare"))
	if err != nil {
		logger.Fatal("❌ data preparation failed: %v", err)
	}

	cache, err := processor.NewFigureCache(ds)
	if err != nil {
		logger.Fatal("❌ figure cache: %v", err)
	}

	wsManager := websocket.NewManager(ds, cache, cfg.View.LenientMetrics, logger.With("websocket"))
	go wsManager.Run(ctx)

	router := mux.NewRouter()
	handlers := routes.NewHandlers(ds, cache, runLog, cfg.View.LenientMetrics, logger.With("http"))
	routes.SetupRoutes(router, handlers, wsManager, cfg.Server.StaticDir)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("✅ Dashboard listening on %s (%d countries, %d rows)", server.Addr, len(ds.Countries()), ds.Len())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("❌ server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, closing connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	<-wsManager.Done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ shutdown: %v", err)
	}
	logger.Info("✅ Server stopped")
}
