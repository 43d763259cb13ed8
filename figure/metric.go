package figure

import (
	"errors"
	"fmt"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// Metric selects one of the log-scaled columns of the aggregated table
type Metric int

const (
	NetMigration Metric = iota
	Inflow
	Outflow
)

// ErrUnknownMetric is returned for tokens outside the three log columns
var ErrUnknownMetric = errors.New("unknown metric")

// DefaultMetric is selected when a request names no metric
const DefaultMetric = NetMigration

var metricTokens = map[string]Metric{
	"log Net":     NetMigration,
	"log Inflow":  Inflow,
	"log Outflow": Outflow,
}

// Metrics lists every metric in display order
func Metrics() []Metric {
	return []Metric{NetMigration, Inflow, Outflow}
}

// ParseMetric maps a UI token to its metric
func ParseMetric(token string) (Metric, error) {
	m, ok := metricTokens[token]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMetric, token)
	}
	return m, nil
}

// ParseMetricLenient maps any unrecognized token to Outflow.
// fellBack reports whether the fallback was used.
func ParseMetricLenient(token string) (m Metric, fellBack bool) {
	m, err := ParseMetric(token)
	if err != nil {
		return Outflow, true
	}
	return m, false
}

// Resolve parses token strictly, or with the Outflow fallback when lenient is set
func Resolve(token string, lenient bool) (m Metric, fellBack bool, err error) {
	if lenient {
		m, fellBack = ParseMetricLenient(token)
		return m, fellBack, nil
	}
	m, err = ParseMetric(token)
	return m, false, err
}

// Token is the column name the UI sends
func (m Metric) Token() string {
	switch m {
	case NetMigration:
		return "log Net"
	case Inflow:
		return "log Inflow"
	case Outflow:
		return "log Outflow"
	}
	return fmt.Sprintf("Metric(%d)", int(m))
}

// Label is used in the figure title
func (m Metric) Label() string {
	switch m {
	case NetMigration:
		return "Net-Migration"
	case Inflow:
		return "Migrants Inflow"
	case Outflow:
		return "Migrants Outflow"
	}
	return m.Token()
}

// OptionLabel is the text of the radio button
func (m Metric) OptionLabel() string {
	switch m {
	case NetMigration:
		return "Net-Migration"
	case Inflow:
		return "Migration Inflow"
	case Outflow:
		return "Migration Outflow"
	}
	return m.Token()
}

func (m Metric) String() string {
	return m.Token()
}

// Value reads the metric's log column from a row
func (m Metric) Value(row models.AggregatedRow) float64 {
	switch m {
	case Inflow:
		return row.LogInflow
	case Outflow:
		return row.LogOutflow
	default:
		return row.LogNet
	}
}

// MarshalText encodes the metric as its token
func (m Metric) MarshalText() ([]byte, error) {
	if _, ok := metricTokens[m.Token()]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, int(m))
	}
	return []byte(m.Token()), nil
}

// UnmarshalText accepts only the three tokens
func (m *Metric) UnmarshalText(text []byte) error {
	parsed, err := ParseMetric(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
