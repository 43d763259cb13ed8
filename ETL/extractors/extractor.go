package extractors

import (
	"context"
	"errors"
	"time"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
)

// Source yields the raw migration table as string cells, header row first
type Source interface {
	Name() string
	ReadRows(ctx context.Context) ([][]string, error)
}

// Extractor reads one Source and turns its rows into migration records
type Extractor struct {
	source Source
	logger *utils.ETLLogger
}

// NewExtractor wraps a source with the shared logger
func NewExtractor(source Source, logger *utils.ETLLogger) *Extractor {
	return &Extractor{
		source: source,
		logger: logger,
	}
}

// SourceName returns the name of the underlying source
func (e *Extractor) SourceName() string {
	return e.source.Name()
}

// Extract reads and parses the whole source table.
// Read failures come back as *models.DataLoadError, shape problems as *models.DataFormatError.
func (e *Extractor) Extract(ctx context.Context) (*models.ExtractedData, error) {
	startTime := time.Now()
	e.logger.LogExtractStart(e.source.Name())

	rows, err := e.source.ReadRows(ctx)
	if err != nil {
		e.logger.Error("reading %s: %v", e.source.Name(), err)
		return nil, asLoadError(e.source.Name(), err)
	}
	e.logger.Debug("read %d raw rows from %s", len(rows), e.source.Name())

	records, skipped, err := ParseRecords(rows)
	if err != nil {
		e.logger.Error("parsing %s: %v", e.source.Name(), err)
		return nil, asLoadError(e.source.Name(), err)
	}

	extractedData := &models.ExtractedData{
		Source:      e.source.Name(),
		Records:     records,
		SkippedRows: skipped,
		ExtractedAt: time.Now(),
	}

	e.logger.LogExtractComplete(len(records), skipped, time.Since(startTime))
	return extractedData, nil
}

// asLoadError keeps taxonomy errors as they are and wraps everything else
func asLoadError(source string, err error) error {
	var formatErr *models.DataFormatError
	if errors.As(err, &formatErr) {
		return err
	}
	var loadErr *models.DataLoadError
	if errors.As(err, &loadErr) {
		return err
	}
	return &models.DataLoadError{Source: source, Err: err}
}
