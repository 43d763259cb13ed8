package extractors

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/migration_dashboard/ETL/config"
)

// NewSource picks the reader for the configured source kind.
// db is only used for the mysql kind and may be nil otherwise.
func NewSource(cfg config.SourceConfig, db *sql.DB) (Source, error) {
	switch cfg.Kind {
	case config.SourceXLSX:
		return NewXLSXSource(cfg.Location, cfg.Sheet, cfg.FetchTimeout), nil
	case config.SourceCSV:
		return NewCSVSource(cfg.Location, cfg.FetchTimeout), nil
	case config.SourceMySQL:
		if db == nil {
			return nil, fmt.Errorf("mysql source needs a database connection")
		}
		return NewMySQLSource(db, cfg.Table)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Kind)
	}
}
