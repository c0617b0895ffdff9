package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/capsight/capsight/core/dateutil"
	"github.com/capsight/capsight/schema"
)

// Default values for configuration.
const (
	DefaultRangeDays = 14
	MaxRangeDays     = 366
)

// Config holds the runtime configuration for one report run.
// This struct remains the "final, validated" config.
type Config struct {
	Org       string
	Workspace string

	From string // Inclusive range start (YYYY-MM-DD)
	To   string // Inclusive range end (YYYY-MM-DD)

	UserIDs    []string
	ProjectIDs []string
	SprintID   string

	Threshold         *float64 // nil means the engine default
	IncludeDisabled   bool
	IncludeUnassigned bool
	Weekly            bool

	HoursPerDay    float64
	HoursPerPoint  float64
	VelocityWindow int

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	SnapshotPath string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a deep copy of the configuration, suitable for per-request
// mutation without touching the base config.
func (c *Config) Clone() *Config {
	clone := *c
	if c.UserIDs != nil {
		clone.UserIDs = make([]string, len(c.UserIDs))
		copy(clone.UserIDs, c.UserIDs)
	}
	if c.ProjectIDs != nil {
		clone.ProjectIDs = make([]string, len(c.ProjectIDs))
		copy(clone.ProjectIDs, c.ProjectIDs)
	}
	if c.Threshold != nil {
		t := *c.Threshold
		clone.Threshold = &t
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Org          string `mapstructure:"org"`
	Workspace    string `mapstructure:"workspace"`
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
	Users        string `mapstructure:"users"`
	Projects     string `mapstructure:"projects"`
	Output       string `mapstructure:"output"`
	OutputFile   string `mapstructure:"output-file"`
	Width        int    `mapstructure:"width"`
	Snapshot     string `mapstructure:"snapshot"`
	StoreBackend string `mapstructure:"store-backend"`
	StoreConnect string `mapstructure:"store-db-connect"`
	Emoji        string `mapstructure:"emoji"`
	Color        string `mapstructure:"color"`

	// --- Fields from report commands ---
	Threshold         float64 `mapstructure:"threshold"`
	IncludeDisabled   bool    `mapstructure:"include-disabled"`
	IncludeUnassigned bool    `mapstructure:"include-unassigned"`
	Weekly            bool    `mapstructure:"weekly"`

	// --- Fields from sprint commands ---
	SprintID       string  `mapstructure:"sprint"`
	HoursPerDay    float64 `mapstructure:"hours-per-day"`
	HoursPerPoint  float64 `mapstructure:"hours-per-point"`
	VelocityWindow int     `mapstructure:"window"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input); err != nil {
		return err
	}
	if err := processScopeFilters(cfg, input); err != nil {
		return err
	}
	if err := processSprintInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfig(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-range related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Org = strings.TrimSpace(input.Org)
	cfg.Workspace = strings.TrimSpace(input.Workspace)
	if cfg.Org == "" {
		return fmt.Errorf("org is required")
	}
	if cfg.Workspace == "" {
		return fmt.Errorf("workspace is required")
	}

	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.SnapshotPath = input.Snapshot

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// Threshold is optional; non-positive means "use the engine default".
	// The engine clamps out-of-range values itself.
	if input.Threshold > 0 {
		t := input.Threshold
		cfg.Threshold = &t
	}
	cfg.IncludeDisabled = input.IncludeDisabled
	cfg.IncludeUnassigned = input.IncludeUnassigned
	cfg.Weekly = input.Weekly

	return nil
}

// processDateRange resolves and validates the reporting range. An absent range
// defaults to today through DefaultRangeDays days out.
func processDateRange(cfg *Config, input *ConfigRawInput) error {
	today := dateutil.Midnight(time.Now().UTC())
	cfg.From = dateutil.FormatDay(today)
	cfg.To = dateutil.FormatDay(today.AddDate(0, 0, DefaultRangeDays-1))

	if input.From != "" {
		if _, err := dateutil.ParseDay(input.From); err != nil {
			return fmt.Errorf("invalid --from date '%s'. Expected YYYY-MM-DD: %w", input.From, err)
		}
		cfg.From = input.From
	}
	if input.To != "" {
		if _, err := dateutil.ParseDay(input.To); err != nil {
			return fmt.Errorf("invalid --to date '%s'. Expected YYYY-MM-DD: %w", input.To, err)
		}
		cfg.To = input.To
	}

	start, _ := dateutil.ParseDay(cfg.From)
	end, _ := dateutil.ParseDay(cfg.To)
	if end.Before(start) {
		return fmt.Errorf("from (%s) cannot be after to (%s)", cfg.From, cfg.To)
	}
	if end.Sub(start) > MaxRangeDays*24*time.Hour {
		return fmt.Errorf("range cannot exceed %d days", MaxRangeDays)
	}
	return nil
}

// processScopeFilters splits the comma-separated user and project filters.
func processScopeFilters(cfg *Config, input *ConfigRawInput) error {
	cfg.UserIDs = splitCommaList(input.Users)
	cfg.ProjectIDs = splitCommaList(input.Projects)
	return nil
}

// processSprintInputs validates the sprint-specific knobs.
func processSprintInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.SprintID = strings.TrimSpace(input.SprintID)

	if input.HoursPerDay < 0 {
		return fmt.Errorf("hours-per-day cannot be negative (received %.2f)", input.HoursPerDay)
	}
	cfg.HoursPerDay = input.HoursPerDay
	if cfg.HoursPerDay == 0 {
		cfg.HoursPerDay = schema.DefaultHoursPerDay
	}

	if input.HoursPerPoint < 0 {
		return fmt.Errorf("hours-per-point cannot be negative (received %.2f)", input.HoursPerPoint)
	}
	cfg.HoursPerPoint = input.HoursPerPoint
	if cfg.HoursPerPoint == 0 {
		cfg.HoursPerPoint = schema.DefaultHoursPerPoint
	}

	if input.VelocityWindow < 0 {
		return fmt.Errorf("window cannot be negative (received %d)", input.VelocityWindow)
	}
	cfg.VelocityWindow = input.VelocityWindow

	return nil
}

// validateBackendConfig validates the override store backend configuration.
func validateBackendConfig(cfg *Config, input *ConfigRawInput) error {
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// splitCommaList splits a comma-separated flag value, dropping empty elements.
func splitCommaList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
