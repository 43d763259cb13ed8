package extractors

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)

// MySQLSource reads the raw table from columns country, year, net_migration, inflow, outflow
type MySQLSource struct {
	db    *sql.DB
	table string
}

// NewMySQLSource checks the table name, which is interpolated into the query
func NewMySQLSource(db *sql.DB, table string) (*MySQLSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &MySQLSource{db: db, table: table}, nil
}

func (s *MySQLSource) Name() string {
	return "mysql:" + s.table
}

// ReadRows renders the typed columns as cells under the canonical header.
// NULL amounts become empty cells and are summed as zero.
func (s *MySQLSource) ReadRows(ctx context.Context) ([][]string, error) {
	query := fmt.Sprintf("SELECT country, year, net_migration, inflow, outflow FROM %s ORDER BY country, year", s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	out := [][]string{append([]string(nil), models.RequiredColumns...)}
	for rows.Next() {
		var (
			country              string
			year                 int
			net, inflow, outflow sql.NullFloat64
		)
		if err := rows.Scan(&country, &year, &net, &inflow, &outflow); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, []string{
			country,
			strconv.Itoa(year),
			formatNullFloat(net),
			formatNullFloat(inflow),
			formatNullFloat(outflow),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}

func formatNullFloat(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'g', -1, 64)
}
