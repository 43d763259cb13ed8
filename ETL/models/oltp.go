package models

import (
	"time"
)

// Column names of the raw migration table
const (
	ColumnCountry      = "Country"
	ColumnYear         = "Year"
	ColumnNetMigration = "Net-Migration"
	ColumnInflow       = "Inflow"
	ColumnOutflow      = "Outflow"
)

// RequiredColumns lists the raw columns every source has to provide
var RequiredColumns = []string{
	ColumnCountry,
	ColumnYear,
	ColumnNetMigration,
	ColumnInflow,
	ColumnOutflow,
}

// MigrationRecord is one raw observation. A (Country, Year) pair may repeat.
type MigrationRecord struct {
	Country      string
	Year         int
	NetMigration float64
	Inflow       float64
	Outflow      float64
}

// ExtractedData holds the raw rows read from the source
type ExtractedData struct {
	Source      string
	Records     []MigrationRecord
	SkippedRows int // rows without a country
	ExtractedAt time.Time
}
