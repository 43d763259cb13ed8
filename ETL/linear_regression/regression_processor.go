package linear_regression

import (
	"time"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/figure"
)

// Config of the trend processor
type Config struct {
	// years to forecast after the last observed one
	ForecastYears int
	// 0.90, 0.95 or 0.99
	ConfidenceLevel float64
	// fits below this R² are reported as weak
	MinR2Threshold float64
}

// DefaultConfig returns the default trend settings
func DefaultConfig() Config {
	return Config{
		ForecastYears:   3,
		ConfidenceLevel: 0.95,
		MinR2Threshold:  0.30,
	}
}

// CountryTrend is a fitted country with its forecast
type CountryTrend struct {
	RegressionResult
	Weak     bool            `json:"weak"`
	Forecast []ForecastPoint `json:"forecast"`
}

// RegressionProcessor fits every country of a dataset
type RegressionProcessor struct {
	ds     *models.Dataset
	logger *utils.ETLLogger
	config Config
}

// NewRegressionProcessor creates the processor
func NewRegressionProcessor(ds *models.Dataset, logger *utils.ETLLogger, config Config) *RegressionProcessor {
	return &RegressionProcessor{
		ds:     ds,
		logger: logger,
		config: config,
	}
}

// Process fits the metric for every country and forecasts the following years
func (p *RegressionProcessor) Process(m figure.Metric) []CountryTrend {
	startTime := time.Now()
	p.logger.Info("Fitting %s trends for %d countries", m.Token(), len(p.ds.Countries()))

	results := Trends(p.ds, m)
	trends := make([]CountryTrend, 0, len(results))
	weak := 0
	for i := range results {
		result := &results[i]
		trend := CountryTrend{
			RegressionResult: *result,
			Weak:             result.R2 < p.config.MinR2Threshold,
			Forecast:         GenerateForecasts(result, p.config.ForecastYears, p.config.ConfidenceLevel),
		}
		if trend.Weak {
			weak++
		}
		p.logger.Debug("%s: a=%.3f b=%.3f R=%.3f R²=%.3f (%d-%d)",
			result.Country, result.A, result.B, result.R, result.R2, result.FirstYear, result.LastYear)
		trends = append(trends, trend)
	}

	if skipped := len(p.ds.Countries()) - len(trends); skipped > 0 {
		p.logger.Info("Skipped %d countries with fewer than 2 years", skipped)
	}
	p.logger.Info("Fitted %d trends, %d below R²=%.2f, took %v", len(trends), weak, p.config.MinR2Threshold, time.Since(startTime))
	return trends
}
