package transform

import (
	"math"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// DeriveLogFields replaces exact-zero sums with models.ZeroSentinel and fills the log fields.
// It stops at the first negative value with a *models.DomainError.
// Returns the number of substituted values.
func DeriveLogFields(rows []models.AggregatedRow) (int, error) {
	substitutions := 0
	for i := range rows {
		row := &rows[i]
		columns := []struct {
			name  string
			value *float64
			log   *float64
		}{
			{models.ColumnNetMigration, &row.NetMigration, &row.LogNet},
			{models.ColumnInflow, &row.Inflow, &row.LogInflow},
			{models.ColumnOutflow, &row.Outflow, &row.LogOutflow},
		}

		for _, c := range columns {
			if *c.value < 0 {
				return substitutions, &models.DomainError{
					Country: row.Country,
					Year:    row.Year,
					Column:  c.name,
					Value:   *c.value,
				}
			}
			if *c.value == 0 {
				*c.value = models.ZeroSentinel
				substitutions++
			}
			*c.log = math.Log(*c.value)
		}
	}
	return substitutions, nil
}
