package contract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jreiser/trendreport/schema"
)

// Default values for configuration.
const (
	DefaultPrecision     = 2
	MaxPrecision         = 4
	DefaultTestedFile    = "tested.parquet"
	DefaultUntestedFile  = "untested.parquet"
	DefaultPredictedFile = "predicted.parquet"
)

// Config holds the runtime configuration for a report run.
// This struct remains the "final, validated" config.
type Config struct {
	DataDir       string // Directory holding the population snapshots
	TestedPath    string // Resolved path to the tested snapshot
	UntestedPath  string // Resolved path to the untested snapshot
	PredictedPath string // Resolved path to the predicted snapshot

	Output       schema.OutputMode
	OutputFile   string
	Long         bool // Emit the long-form table instead of the wide table
	Precision    int
	SmoothWindow int
	Color        bool
	Width        int // Table width override; 0 means detect from terminal

	StoreBackend   schema.StoreBackend
	StoreDBConnect string

	FieldSpecs []schema.FieldSpec
	Palette    schema.Palette
}

// ProfileConfig holds profiling configuration.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig enables profiling when a prefix is configured.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t") {
		return fmt.Errorf("profile prefix cannot contain whitespace: %q", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}

// ApplyDataDir points the snapshot paths at a new data directory using
// the default snapshot file names.
func (c *Config) ApplyDataDir(dataDir string) {
	c.DataDir = dataDir
	c.TestedPath = filepath.Join(dataDir, DefaultTestedFile)
	c.UntestedPath = filepath.Join(dataDir, DefaultUntestedFile)
	c.PredictedPath = filepath.Join(dataDir, DefaultPredictedFile)
}

// Clone returns a shallow copy of the Config. Callers that override
// per-request settings (e.g. MCP tool handlers) mutate the copy only.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw, unvalidated configuration from all sources
// (file, env, flags). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DataDirStr string

	TestedFile     string `mapstructure:"tested-file"`
	UntestedFile   string `mapstructure:"untested-file"`
	PredictedFile  string `mapstructure:"predicted-file"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Long           bool   `mapstructure:"long"`
	Precision      int    `mapstructure:"precision"`
	SmoothWindow   int    `mapstructure:"smooth-window"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and populates the final Config struct. Configuration errors are fatal
// and surface before any data is loaded.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// --- 1. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	validOutputs := map[schema.OutputMode]bool{
		schema.TextOut: true, schema.CSVOut: true, schema.JSONOut: true, schema.ParquetOut: true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 2. Precision Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Smoothing Window Validation ---
	if input.SmoothWindow < 0 || (input.SmoothWindow > 0 && input.SmoothWindow%2 == 0) {
		return fmt.Errorf("smooth-window must be 0 or a positive odd number (received %d)", input.SmoothWindow)
	}
	cfg.SmoothWindow = input.SmoothWindow

	// --- 4. Store Backend Validation ---
	cfg.StoreBackend = schema.StoreBackend(strings.ToLower(input.StoreBackend))
	validBackends := map[schema.StoreBackend]bool{
		schema.SQLiteBackend: true, schema.MySQLBackend: true,
		schema.PostgreSQLBackend: true, schema.NoneBackend: true,
	}
	if !validBackends[cfg.StoreBackend] {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgres, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if (cfg.StoreBackend == schema.MySQLBackend || cfg.StoreBackend == schema.PostgreSQLBackend) && cfg.StoreDBConnect == "" {
		return fmt.Errorf("store backend %s requires store-db-connect", cfg.StoreBackend)
	}

	// --- 5. Color Handling ---
	switch strings.ToLower(input.Color) {
	case "", "yes":
		cfg.Color = true
	case "no":
		cfg.Color = false
	default:
		return fmt.Errorf("invalid color setting '%s'. must be yes or no", input.Color)
	}

	// --- 6. Width Handling ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 7. Snapshot Path Resolution ---
	cfg.DataDir = input.DataDirStr
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	cfg.TestedPath = resolveSnapshotPath(cfg.DataDir, input.TestedFile, DefaultTestedFile)
	cfg.UntestedPath = resolveSnapshotPath(cfg.DataDir, input.UntestedFile, DefaultUntestedFile)
	cfg.PredictedPath = resolveSnapshotPath(cfg.DataDir, input.PredictedFile, DefaultPredictedFile)

	// --- 8. Fixed Pipeline Configuration ---
	cfg.FieldSpecs = schema.DefaultFieldSpecs
	cfg.Palette = schema.DefaultPalette

	return nil
}

// ValidateStoreConnectionString performs basic shape validation on the
// connection string for database backends.
func ValidateStoreConnectionString(backend schema.StoreBackend, connStr string) error {
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

// resolveSnapshotPath joins a snapshot file name to the data directory,
// leaving absolute overrides untouched.
func resolveSnapshotPath(dataDir, name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}
