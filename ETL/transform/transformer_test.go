package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
	"github.com/LilVoxy/migration_dashboard/ETL/models"
	"github.com/LilVoxy/migration_dashboard/ETL/utils"
)

func newTestTransformer() *Transformer {
	return NewTransformer(utils.NopLogger(), config.YearSpan{})
}

func extracted(records ...models.MigrationRecord) *models.ExtractedData {
	return &models.ExtractedData{Source: "test", Records: records}
}

func TestAggregateSumsDuplicatePairs(t *testing.T) {
	rows := Aggregate([]models.MigrationRecord{
		{Country: "Spain", Year: 2016, NetMigration: 1, Inflow: 2, Outflow: 1},
		{Country: "Portugal", Year: 2017, NetMigration: 10, Inflow: 100, Outflow: 90},
		{Country: "Portugal", Year: 2017, NetMigration: 5, Inflow: 50, Outflow: 45},
		{Country: "Portugal", Year: 2016, NetMigration: 3, Inflow: 30, Outflow: 27},
	})

	require.Len(t, rows, 3)
	assert.Equal(t, "Portugal", rows[0].Country)
	assert.Equal(t, 2016, rows[0].Year)
	assert.Equal(t, models.AggregatedRow{Country: "Portugal", Year: 2017, NetMigration: 15, Inflow: 150, Outflow: 135}, rows[1])
	assert.Equal(t, "Spain", rows[2].Country)
}

func TestTransformPortugalInflow(t *testing.T) {
	data, err := newTestTransformer().Transform(extracted(
		models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 10, Inflow: 100, Outflow: 90},
		models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 5, Inflow: 50, Outflow: 45},
	))
	require.NoError(t, err)

	require.Len(t, data.Rows, 1)
	row := data.Rows[0]
	assert.Equal(t, 150.0, row.Inflow)
	assert.InDelta(t, math.Log(150), row.LogInflow, 1e-12)
	assert.InDelta(t, math.Log(15), row.LogNet, 1e-12)
	assert.InDelta(t, math.Log(135), row.LogOutflow, 1e-12)
	assert.Equal(t, 2, data.Metadata.RecordsProcessed)
	assert.Equal(t, 1, data.Metadata.RowsAggregated)
	assert.Equal(t, 0, data.Metadata.ZeroSubstitutions)
}

func TestTransformSubstitutesZero(t *testing.T) {
	data, err := newTestTransformer().Transform(extracted(
		models.MigrationRecord{Country: "Iceland", Year: 2012, NetMigration: 0, Inflow: 40, Outflow: 40},
	))
	require.NoError(t, err)

	row := data.Rows[0]
	assert.Equal(t, models.ZeroSentinel, row.NetMigration)
	assert.InDelta(t, -2.302585, row.LogNet, 1e-6)
	assert.Equal(t, 1, data.Metadata.ZeroSubstitutions)
}

func TestTransformZeroAfterSummation(t *testing.T) {
	// 0 only after the rows cancel out
	data, err := newTestTransformer().Transform(extracted(
		models.MigrationRecord{Country: "Malta", Year: 2010, NetMigration: 5, Inflow: 1, Outflow: 1},
		models.MigrationRecord{Country: "Malta", Year: 2010, NetMigration: -5, Inflow: 1, Outflow: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, models.ZeroSentinel, data.Rows[0].NetMigration)
}

func TestTransformRejectsNegativeSums(t *testing.T) {
	_, err := newTestTransformer().Transform(extracted(
		models.MigrationRecord{Country: "Greece", Year: 2011, NetMigration: -120, Inflow: 10, Outflow: 130},
	))

	var domainErr *models.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Greece", domainErr.Country)
	assert.Equal(t, 2011, domainErr.Year)
	assert.Equal(t, models.ColumnNetMigration, domainErr.Column)
	assert.Equal(t, -120.0, domainErr.Value)
}

func TestTransformedFieldsAreFiniteAndConsistent(t *testing.T) {
	data, err := newTestTransformer().Transform(extracted(
		models.MigrationRecord{Country: "A", Year: 2008, NetMigration: 0, Inflow: 0, Outflow: 0},
		models.MigrationRecord{Country: "A", Year: 2009, NetMigration: 1e9, Inflow: 3, Outflow: 0.5},
		models.MigrationRecord{Country: "B", Year: 2008, NetMigration: 7, Inflow: 0, Outflow: 12},
	))
	require.NoError(t, err)

	for _, row := range data.Rows {
		for _, pair := range [][2]float64{
			{row.NetMigration, row.LogNet},
			{row.Inflow, row.LogInflow},
			{row.Outflow, row.LogOutflow},
		} {
			assert.Greater(t, pair[0], 0.0)
			assert.False(t, math.IsInf(pair[1], 0) || math.IsNaN(pair[1]))
			assert.Equal(t, math.Log(pair[0]), pair[1])
		}
	}
	assert.Equal(t, 4, data.Metadata.ZeroSubstitutions)
}

func TestTransformIsIdempotent(t *testing.T) {
	transformer := newTestTransformer()
	first, err := transformer.Transform(extracted(
		models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 10, Inflow: 100, Outflow: 90},
		models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 5, Inflow: 50, Outflow: 45},
		models.MigrationRecord{Country: "Chile", Year: 2015, NetMigration: 0, Inflow: 12, Outflow: 7},
	))
	require.NoError(t, err)

	second, err := transformer.Transform(extracted(Records(first.Rows)...))
	require.NoError(t, err)

	assert.Equal(t, first.Rows, second.Rows)
}

func TestTransformChecksYearCoverage(t *testing.T) {
	transformer := NewTransformer(utils.NopLogger(), config.YearSpan{From: 2008, To: 2017})

	_, err := transformer.Transform(extracted(
		models.MigrationRecord{Country: "Portugal", Year: 2010, NetMigration: 1, Inflow: 1, Outflow: 1},
		models.MigrationRecord{Country: "Portugal", Year: 2017, NetMigration: 1, Inflow: 1, Outflow: 1},
	))
	var formatErr *models.DataFormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, []string{models.ColumnYear}, formatErr.Columns)

	_, err = transformer.Transform(extracted(
		models.MigrationRecord{Country: "Portugal", Year: 2008, NetMigration: 1, Inflow: 1, Outflow: 1},
		models.MigrationRecord{Country: "Spain", Year: 2017, NetMigration: 1, Inflow: 1, Outflow: 1},
	))
	assert.NoError(t, err)
}
