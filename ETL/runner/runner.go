// Package runner executes the one-shot extract, transform and load sequence
// that prepares the dashboard dataset.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
	"github.com/LilVoxy/migration_dashboard/ETL/extractors"
	"github.com/LilVoxy/migration_dashboard/ETL/load"
	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/transform"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/metrics"
)

// Runner wires the three phases together
type Runner struct {
	extractor   *extractors.Extractor
	transformer *transform.Transformer
	loadManager *load.LoadManager
	logger      *utils.ETLLogger
}

// NewRunner builds a runner reading from source
func NewRunner(source extractors.Source, prep config.PreparationConfig, logger *utils.ETLLogger) *Runner {
	return &Runner{
		extractor:   extractors.NewExtractor(source, logger.With("extract")),
		transformer: transform.NewTransformer(logger.With("transform"), prep.RequiredYears),
		loadManager: load.NewLoadManager(logger.With("load")),
		logger:      logger,
	}
}

// Execute runs the phases once. The run log is returned on failure too.
// Errors keep the taxonomy types of models reachable through errors.As.
func (r *Runner) Execute(ctx context.Context) (*models.Dataset, *models.ETLRunLog, error) {
	startTime := time.Now()
	source := r.extractor.SourceName()
	runLog := models.NewETLRunLog(source, startTime)
	r.logger.LogETLStart(source)

	// 1. Extract
	phaseStart := time.Now()
	extractedData, err := r.extractor.Extract(ctx)
	metrics.ObservePhase("extract", phaseStart)
	if err != nil {
		return nil, runLog, r.fail(runLog, fmt.Errorf("extract: %w", err))
	}

	// 2. Transform
	phaseStart = time.Now()
	transformedData, err := r.transformer.Transform(extractedData)
	metrics.ObservePhase("transform", phaseStart)
	if err != nil {
		return nil, runLog, r.fail(runLog, fmt.Errorf("transform: %w", err))
	}

	// 3. Load
	phaseStart = time.Now()
	ds, err := r.loadManager.Load(transformedData, source)
	metrics.ObservePhase("load", phaseStart)
	if err != nil {
		return nil, runLog, r.fail(runLog, fmt.Errorf("load: %w", err))
	}

	runLog.MarkSuccess(time.Now(), extractedData, transformedData, ds)
	r.logger.LogETLComplete(startTime, len(extractedData.Records), ds.Len(), len(ds.Countries()))
	return ds, runLog, nil
}

func (r *Runner) fail(runLog *models.ETLRunLog, err error) error {
	runLog.MarkFailure(time.Now(), err)
	r.logger.Error("preparation failed: %v", err)
	return err
}

// Prepare opens the configured source, runs the pipeline and releases the source
func Prepare(ctx context.Context, cfg config.DashboardConfig, logger *utils.ETLLogger) (*models.Dataset, *models.ETLRunLog, error) {
	var source extractors.Source
	var err error

	if cfg.Source.Kind == config.SourceMySQL {
		db, connErr := config.ConnectSource(cfg.Source.MySQL)
		if connErr != nil {
			loadErr := &models.DataLoadError{Source: "mysql:" + cfg.Source.Table, Err: connErr}
			return nil, nil, fmt.Errorf("extract: %w", loadErr)
		}
		defer db.Close()
		source, err = extractors.NewSource(cfg.Source, db)
	} else {
		source, err = extractors.NewSource(cfg.Source, nil)
	}
	if err != nil {
		return nil, nil, err
	}

	return NewRunner(source, cfg.Preparation, logger).Execute(ctx)
}
