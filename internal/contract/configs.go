package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/trekrank/schema"
)

// Default values for configuration.
const (
	DefaultCrewID    = 1
	DefaultPrecision = 1
	MaxPrecision     = 4
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a scoring run.
// This struct remains the "final, validated" config.
type Config struct {
	CrewID     int64
	Year       int
	Method     schema.AggMethod
	AllMethods bool // Recompute with total, average and median in one pass

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Detail     bool
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	Backend   schema.DatabaseBackend
	DBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	Crew       int64  `mapstructure:"crew"`
	Year       int    `mapstructure:"year"`
	Method     string `mapstructure:"method"`
	AllMethods bool   `mapstructure:"all-methods"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Precision  int    `mapstructure:"precision"`
	Detail     bool   `mapstructure:"detail"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`
	Backend    string `mapstructure:"backend"`
	DBConnect  string `mapstructure:"db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Unrecognized enum values are
// rejected here at the boundary rather than defaulted downstream.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Crew <= 0 {
		return &ValidationError{Field: "crew", Value: input.Crew, Reason: "must be a positive crew id"}
	}
	cfg.CrewID = input.Crew

	cfg.Year = input.Year
	if cfg.Year == 0 {
		cfg.Year = time.Now().Year()
	}
	if cfg.Year < 0 {
		return &ValidationError{Field: "year", Value: input.Year, Reason: "must be a calendar year"}
	}

	cfg.Method = schema.AggMethod(strings.ToLower(input.Method))
	if _, ok := schema.ValidAggMethods[cfg.Method]; !ok {
		return &ValidationError{Field: "method", Value: input.Method, Reason: "must be total, average, median or mode"}
	}
	cfg.AllMethods = input.AllMethods

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return &ValidationError{Field: "output", Value: input.Output, Reason: "must be text, csv, json or parquet"}
	}
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return &ValidationError{Field: "precision", Value: input.Precision, Reason: fmt.Sprintf("must be between 0 and %d", MaxPrecision)}
	}
	cfg.Precision = input.Precision
	cfg.Detail = input.Detail
	cfg.Width = input.Width

	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.UseColors = useColors

	cfg.Backend = schema.DatabaseBackend(strings.ToLower(input.Backend))
	if _, ok := schema.ValidDatabaseBackends[cfg.Backend]; !ok {
		return &ValidationError{Field: "backend", Value: input.Backend, Reason: "must be sqlite, mysql or postgresql"}
	}
	cfg.DBConnect = input.DBConnect
	if err := ValidateDatabaseConnectionString(cfg.Backend, cfg.DBConnect); err != nil {
		return err
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends. SQLite accepts an
// empty string, which resolves to the default database file path.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' or use a postgres:// URL")
		}
	}
	return nil
}
