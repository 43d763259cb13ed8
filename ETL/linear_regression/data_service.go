package linear_regression

import (
	"fmt"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/figure"
)

// DataService reads regression series from the prepared dataset
type DataService struct {
	ds *models.Dataset
}

// NewDataService wraps the dataset
func NewDataService(ds *models.Dataset) *DataService {
	return &DataService{ds: ds}
}

// Series returns the country's metric by year, X counted from its first year
func (s *DataService) Series(country string, m figure.Metric) ([]DataPoint, error) {
	rows := s.ds.Filter(country, 0)
	if len(rows) == 0 {
		return nil, fmt.Errorf("no data for country %q", country)
	}

	base := rows[0].Year
	points := make([]DataPoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, DataPoint{
			X:    float64(row.Year - base),
			Y:    m.Value(row),
			Year: row.Year,
		})
	}
	return points, nil
}

// Trend fits one country
func (s *DataService) Trend(country string, m figure.Metric) (*RegressionResult, error) {
	points, err := s.Series(country, m)
	if err != nil {
		return nil, err
	}
	result, err := LinearRegression(points)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", country, err)
	}
	result.Country = country
	result.Metric = m.Token()
	return result, nil
}

// Trends fits every country with at least two years, in country order
func Trends(ds *models.Dataset, m figure.Metric) []RegressionResult {
	service := NewDataService(ds)
	var results []RegressionResult
	for _, country := range ds.Countries() {
		result, err := service.Trend(country, m)
		if err != nil {
			continue
		}
		results = append(results, *result)
	}
	return results
}
