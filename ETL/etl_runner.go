package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
	"github.com/LilVoxy/migration_dashboard/ETL/linear_regression"
	"github.com/LilVoxy/migration_dashboard/ETL/load"
	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/runner"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/figure"
)

// ETLRunner runs the preparation pipeline outside the dashboard server
type ETLRunner struct {
	config config.DashboardConfig
	logger *utils.ETLLogger
}

// NewETLRunner loads the configuration and opens the logger
func NewETLRunner(configPath string) (*ETLRunner, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := utils.NewETLLogger(cfg.EnableDetailedLogging, cfg.LogFile)
	logger.Info("ETL runner initialized, source %s %s", cfg.Source.Kind, cfg.Source.Location)

	return &ETLRunner{config: cfg, logger: logger}, nil
}

// Close releases the log file
func (r *ETLRunner) Close() {
	r.logger.Close()
}

func (r *ETLRunner) prepare(ctx context.Context) (*models.Dataset, *models.ETLRunLog, error) {
	return runner.Prepare(ctx, r.config, r.logger)
}

// RunOnce prepares the dataset and prints the run log
func (r *ETLRunner) RunOnce(ctx context.Context) error {
	_, runLog, err := r.prepare(ctx)
	if runLog != nil {
		printJSON(runLog)
	}
	return err
}

// Export prepares the dataset and writes the aggregated table to out
func (r *ETLRunner) Export(ctx context.Context, out string) error {
	ds, _, err := r.prepare(ctx)
	if err != nil {
		return err
	}
	if err := load.ExportXLSX(ds, out); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	r.logger.Info("✅ Exported %d rows to %s", ds.Len(), out)
	return nil
}

// LinearRegression prepares the dataset and prints per-country trends of m
func (r *ETLRunner) LinearRegression(ctx context.Context, m figure.Metric, lrConfig linear_regression.Config) error {
	ds, _, err := r.prepare(ctx)
	if err != nil {
		return err
	}
	trends := linear_regression.NewRegressionProcessor(ds, r.logger, lrConfig).Process(m)
	printJSON(trends)
	return nil
}

// StartScheduler re-exports the snapshot every interval until ctx is done
func (r *ETLRunner) StartScheduler(ctx context.Context, interval time.Duration, out string) error {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Starting export scheduler, interval %v", interval)

	_, err := scheduler.Every(interval).Do(func() {
		r.logger.Info("Scheduled export")
		if err := r.Export(ctx, out); err != nil {
			r.logger.Error("❌ Scheduled export failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()

	r.logger.Info("Export scheduler stopped")
	return nil
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Printf("encode output: %v", err)
	}
}

func main() {
	modePtr := flag.String("mode", "once", "Mode: once, export, lr or scheduled")
	configPtr := flag.String("config", "", "YAML configuration file")
	outPtr := flag.String("out", "migration_aggregated.xlsx", "Output workbook (export, scheduled)")
	metricPtr := flag.String("metric", "log Net", "Metric for trends: log Net, log Inflow or log Outflow (lr)")
	intervalPtr := flag.Duration("interval", 24*time.Hour, "Export interval (scheduled)")
	lrDefaults := linear_regression.DefaultConfig()
	forecastPtr := flag.Int("forecast", lrDefaults.ForecastYears, "Years to forecast (lr)")
	confidencePtr := flag.Float64("confidence", lrDefaults.ConfidenceLevel, "Confidence level (lr)")
	minR2Ptr := flag.Float64("min-r2", lrDefaults.MinR2Threshold, "R² below which a trend is reported as weak (lr)")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	etlRunner, err := NewETLRunner(*configPtr)
	if err != nil {
		log.Fatalf("ETL runner: %v", err)
	}
	defer etlRunner.Close()

	switch *modePtr {
	case "once":
		err = etlRunner.RunOnce(ctx)
	case "export":
		err = etlRunner.Export(ctx, *outPtr)
	case "lr":
		m, parseErr := figure.ParseMetric(*metricPtr)
		if parseErr != nil {
			etlRunner.logger.Fatal("%v", parseErr)
		}
		err = etlRunner.LinearRegression(ctx, m, linear_regression.Config{
			ForecastYears:   *forecastPtr,
			ConfidenceLevel: *confidencePtr,
			MinR2Threshold:  *minR2Ptr,
		})
	case "scheduled":
		err = etlRunner.StartScheduler(ctx, *intervalPtr, *outPtr)
	default:
		etlRunner.logger.Fatal("unknown mode %q, expected once, export, lr or scheduled", *modePtr)
	}

	if err != nil {
		etlRunner.logger.Fatal("❌ %s: %v", *modePtr, err)
	}
	etlRunner.logger.Info("✅ ETL runner finished")
}
