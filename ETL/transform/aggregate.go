package transform

import (
	"sort"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

type groupKey struct {
	country string
	year    int
}

// Aggregate groups records by (Country, Year) and sums the three migration columns.
// The result has exactly one row per pair, ordered by country then year.
// Derived log fields are left at zero.
func Aggregate(records []models.MigrationRecord) []models.AggregatedRow {
	groups := make(map[groupKey]*models.AggregatedRow)
	for _, rec := range records {
		key := groupKey{country: rec.Country, year: rec.Year}
		row, ok := groups[key]
		if !ok {
			row = &models.AggregatedRow{Country: rec.Country, Year: rec.Year}
			groups[key] = row
		}
		row.NetMigration += rec.NetMigration
		row.Inflow += rec.Inflow
		row.Outflow += rec.Outflow
	}

	rows := make([]models.AggregatedRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Less(rows[j])
	})
	return rows
}

// Records turns aggregated rows back into raw records, e.g. to re-aggregate them
func Records(rows []models.AggregatedRow) []models.MigrationRecord {
	out := make([]models.MigrationRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.MigrationRecord{
			Country:      row.Country,
			Year:         row.Year,
			NetMigration: row.NetMigration,
			Inflow:       row.Inflow,
			Outflow:      row.Outflow,
		})
	}
	return out
}
