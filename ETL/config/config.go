package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Source kinds
const (
	SourceXLSX  = "xlsx"
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

// DefaultDataURL is the OECD migration workbook the dashboard was built around
const DefaultDataURL = "https://raw.githubusercontent.com/MartaFaria/DV_Project/master/Migration_In_Out.xlsx"

// DashboardConfig holds everything the service and the ETL runner need
type DashboardConfig struct {
	Server      ServerConfig      `yaml:"server"`
	Source      SourceConfig      `yaml:"source"`
	Preparation PreparationConfig `yaml:"preparation"`
	View        ViewConfig        `yaml:"view"`

	// Debug output and the console writer
	EnableDetailedLogging bool `yaml:"enable_detailed_logging"`

	// Optional log file; "%s" is replaced with the date
	LogFile string `yaml:"log_file"`
}

// ServerConfig is the HTTP listener setup
type ServerConfig struct {
	ListenAddr      string        `yaml:"listen_addr"`
	StaticDir       string        `yaml:"static_dir"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SourceConfig describes where the raw migration table comes from
type SourceConfig struct {
	Kind         string         `yaml:"kind"`     // xlsx, csv or mysql
	Location     string         `yaml:"location"` // URL or file path for xlsx/csv
	Sheet        string         `yaml:"sheet"`    // xlsx only, first sheet when empty
	FetchTimeout time.Duration  `yaml:"fetch_timeout"`
	MySQL        DatabaseConfig `yaml:"mysql"`
	Table        string         `yaml:"table"` // mysql only
}

// DatabaseConfig holds the MySQL connection settings
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

// YearSpan is an inclusive range of years. The zero value disables the check.
type YearSpan struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// IsZero reports whether the span is unset
func (s YearSpan) IsZero() bool {
	return s.From == 0 && s.To == 0
}

// PreparationConfig tunes the transform phase
type PreparationConfig struct {
	RequiredYears YearSpan `yaml:"required_years"`
}

// ViewConfig tunes metric selection
type ViewConfig struct {
	// Map unknown metric tokens to Outflow instead of rejecting them
	LenientMetrics bool `yaml:"lenient_metrics"`
}

// Default configuration values
var (
	DefaultMySQLConfig = DatabaseConfig{
		Driver: "mysql",
		Host:   "localhost",
		Port:   3306,
		User:   "root",
		DBName: "migration",
	}

	DefaultSourceConfig = SourceConfig{
		Kind:         SourceXLSX,
		Location:     DefaultDataURL,
		FetchTimeout: 30 * time.Second,
		MySQL:        DefaultMySQLConfig,
		Table:        "migration_in_out",
	}

	DefaultServerConfig = ServerConfig{
		ListenAddr:      ":8080",
		StaticDir:       "public",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
)

// GetConfig returns the default configuration
func GetConfig() DashboardConfig {
	config := DashboardConfig{
		Server: DefaultServerConfig,
		Source: DefaultSourceConfig,
	}

	// the year slider marks cover 2008-2017
	config.Preparation.RequiredYears = YearSpan{From: 2008, To: 2017}

	return config
}

// LoadConfig layers an optional YAML file and the DASHBOARD_* environment over the defaults
func LoadConfig(path string) (DashboardConfig, error) {
	config := GetConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return config, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &config); err != nil {
			return config, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(&config, os.LookupEnv); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *DashboardConfig, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"DASHBOARD_LISTEN_ADDR":     &config.Server.ListenAddr,
		"DASHBOARD_STATIC_DIR":      &config.Server.StaticDir,
		"DASHBOARD_SOURCE_KIND":     &config.Source.Kind,
		"DASHBOARD_SOURCE_LOCATION": &config.Source.Location,
		"DASHBOARD_SOURCE_SHEET":    &config.Source.Sheet,
		"DASHBOARD_SOURCE_TABLE":    &config.Source.Table,
		"DASHBOARD_MYSQL_HOST":      &config.Source.MySQL.Host,
		"DASHBOARD_MYSQL_USER":      &config.Source.MySQL.User,
		"DASHBOARD_MYSQL_PASSWORD":  &config.Source.MySQL.Password,
		"DASHBOARD_MYSQL_DBNAME":    &config.Source.MySQL.DBName,
		"DASHBOARD_LOG_FILE":        &config.LogFile,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	bools := map[string]*bool{
		"DASHBOARD_LENIENT_METRICS":  &config.View.LenientMetrics,
		"DASHBOARD_DETAILED_LOGGING": &config.EnableDetailedLogging,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok {
			b, err := cast.ToBoolE(v)
			if err != nil {
				return fmt.Errorf("env %s: %w", key, err)
			}
			*dst = b
		}
	}

	if v, ok := lookup("DASHBOARD_MYSQL_PORT"); ok {
		port, err := cast.ToIntE(v)
		if err != nil {
			return fmt.Errorf("env DASHBOARD_MYSQL_PORT: %w", err)
		}
		config.Source.MySQL.Port = port
	}

	if v, ok := lookup("DASHBOARD_FETCH_TIMEOUT"); ok {
		d, err := cast.ToDurationE(v)
		if err != nil {
			return fmt.Errorf("env DASHBOARD_FETCH_TIMEOUT: %w", err)
		}
		config.Source.FetchTimeout = d
	}

	return nil
}

// Validate checks the fields the pipeline relies on
func (c DashboardConfig) Validate() error {
	switch c.Source.Kind {
	case SourceXLSX, SourceCSV:
		if c.Source.Location == "" {
			return fmt.Errorf("source %s needs a location", c.Source.Kind)
		}
	case SourceMySQL:
		if c.Source.Table == "" {
			return fmt.Errorf("source mysql needs a table")
		}
	default:
		return fmt.Errorf("unknown source kind %q", c.Source.Kind)
	}

	span := c.Preparation.RequiredYears
	if !span.IsZero() && span.From > span.To {
		return fmt.Errorf("required years %d-%d: start after end", span.From, span.To)
	}
	return nil
}
