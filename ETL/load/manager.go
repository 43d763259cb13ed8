package load

import (
	"time"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
	"github.com/LilVoxy/migration_dashboard/metrics"
)

// LoadManager builds the read-only Dataset from the transformed table
type LoadManager struct {
	logger *utils.ETLLogger
}

// NewLoadManager creates a LoadManager
func NewLoadManager(logger *utils.ETLLogger) *LoadManager {
	return &LoadManager{
		logger: logger,
	}
}

// Load freezes the aggregated rows into a Dataset. An empty table is a format error.
func (m *LoadManager) Load(transformedData *models.TransformedData, source string) (*models.Dataset, error) {
	startTime := time.Now()

	if len(transformedData.Rows) == 0 {
		return nil, &models.DataFormatError{
			Columns: []string{models.ColumnCountry},
			Reason:  "no rows with a country",
		}
	}

	ds := models.NewDataset(transformedData.Rows, source, time.Now())
	metrics.DatasetRows.Set(float64(ds.Len()))

	m.logger.LogLoadComplete(len(ds.Countries()), len(ds.Years()), time.Since(startTime))
	return ds, nil
}
