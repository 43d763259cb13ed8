package extractors

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/spf13/cast"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// ErrEmptyTable is returned for a source without data rows
var ErrEmptyTable = errors.New("table has no data rows")

const (
	minYear = 1
	maxYear = 9999
)

// ParseRecords validates the header and converts every data row.
// Rows with an empty country are skipped and counted.
func ParseRecords(rows [][]string) ([]models.MigrationRecord, int, error) {
	if len(rows) < 2 {
		return nil, 0, ErrEmptyTable
	}

	if dups := duplicateColumns(rows[0]); len(dups) > 0 {
		return nil, 0, &models.DataFormatError{Columns: dups, Reason: "duplicate"}
	}

	df := loadFrame(rows)
	if df.Err != nil {
		return nil, 0, fmt.Errorf("build table: %w", df.Err)
	}

	if missing := missingColumns(df.Names()); len(missing) > 0 {
		return nil, 0, models.MissingColumnsError(missing)
	}

	countries := df.Col(models.ColumnCountry).Records()
	years := df.Col(models.ColumnYear).Records()
	nets := df.Col(models.ColumnNetMigration).Records()
	inflows := df.Col(models.ColumnInflow).Records()
	outflows := df.Col(models.ColumnOutflow).Records()

	records := make([]models.MigrationRecord, 0, df.Nrow())
	skipped := 0
	for i := 0; i < df.Nrow(); i++ {
		// header is row 1
		rowNum := i + 2

		country := strings.TrimSpace(countries[i])
		if country == "" {
			skipped++
			continue
		}

		year, err := parseYear(years[i])
		if err != nil {
			return nil, 0, &models.DataFormatError{Columns: []string{models.ColumnYear}, Row: rowNum, Reason: err.Error()}
		}

		record := models.MigrationRecord{Country: country, Year: year}
		fields := []struct {
			column string
			raw    string
			dst    *float64
		}{
			{models.ColumnNetMigration, nets[i], &record.NetMigration},
			{models.ColumnInflow, inflows[i], &record.Inflow},
			{models.ColumnOutflow, outflows[i], &record.Outflow},
		}
		for _, f := range fields {
			v, err := parseAmount(f.raw)
			if err != nil {
				return nil, 0, &models.DataFormatError{Columns: []string{f.column}, Row: rowNum, Reason: err.Error()}
			}
			*f.dst = v
		}

		records = append(records, record)
	}

	return records, skipped, nil
}

// loadFrame pads ragged rows to the header width and loads every column as strings
func loadFrame(rows [][]string) dataframe.DataFrame {
	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = strings.TrimSpace(name)
	}

	normalized := make([][]string, 0, len(rows))
	normalized = append(normalized, header)
	for _, row := range rows[1:] {
		padded := make([]string, len(header))
		copy(padded, row)
		normalized = append(normalized, padded)
	}

	return dataframe.LoadRecords(normalized,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
}

// duplicateColumns lists header names that appear more than once, in header order
func duplicateColumns(header []string) []string {
	seen := make(map[string]int, len(header))
	var dups []string
	for _, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

func missingColumns(names []string) []string {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}

	var missing []string
	for _, required := range models.RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	return missing
}

// parseYear accepts integral numbers such as "2017" or "2017.0"
func parseYear(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.New("empty year")
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("year %q is not a number", raw)
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("year %q is not an integer", raw)
	}
	if v < minYear || v > maxYear {
		return 0, fmt.Errorf("year %q is out of range %d-%d", raw, minYear, maxYear)
	}
	return int(v), nil
}

// parseAmount treats an empty cell as zero, the way a column sum skips missing values
func parseAmount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}
