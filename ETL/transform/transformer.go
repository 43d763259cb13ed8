package transform

import (
	"fmt"
	"time"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
)

// Transformer turns raw records into the aggregated, log-enriched table
type Transformer struct {
	logger        *utils.ETLLogger
	requiredYears config.YearSpan
}

// NewTransformer creates a Transformer. A zero requiredYears skips the coverage check.
func NewTransformer(logger *utils.ETLLogger, requiredYears config.YearSpan) *Transformer {
	return &Transformer{
		logger:        logger,
		requiredYears: requiredYears,
	}
}

// Transform aggregates the records and derives the log fields. It has no side effects.
func (t *Transformer) Transform(extractedData *models.ExtractedData) (*models.TransformedData, error) {
	startTime := time.Now()
	t.logger.Debug("transforming %d records", len(extractedData.Records))

	rows := Aggregate(extractedData.Records)
	t.logger.Debug("aggregated into %d country-year rows", len(rows))

	if err := checkYearCoverage(rows, t.requiredYears); err != nil {
		t.logger.Error("year coverage: %v", err)
		return nil, err
	}

	substitutions, err := DeriveLogFields(rows)
	if err != nil {
		t.logger.Error("log transform: %v", err)
		return nil, err
	}

	transformedData := &models.TransformedData{
		Rows: rows,
		Metadata: models.ETLMetadata{
			TransformedAt:     time.Now(),
			RecordsProcessed:  len(extractedData.Records),
			RowsAggregated:    len(rows),
			ZeroSubstitutions: substitutions,
		},
	}

	t.logger.LogTransformComplete(len(rows), substitutions, time.Since(startTime))
	return transformedData, nil
}

func checkYearCoverage(rows []models.AggregatedRow, span config.YearSpan) error {
	if span.IsZero() {
		return nil
	}
	if len(rows) == 0 {
		return &models.DataFormatError{
			Columns: []string{models.ColumnYear},
			Reason:  fmt.Sprintf("no rows, need years %d-%d", span.From, span.To),
		}
	}

	minYear, maxYear := rows[0].Year, rows[0].Year
	for _, row := range rows {
		if row.Year < minYear {
			minYear = row.Year
		}
		if row.Year > maxYear {
			maxYear = row.Year
		}
	}

	if minYear > span.From || maxYear < span.To {
		return &models.DataFormatError{
			Columns: []string{models.ColumnYear},
			Reason:  fmt.Sprintf("years %d-%d do not cover %d-%d", minYear, maxYear, span.From, span.To),
		}
	}
	return nil
}
