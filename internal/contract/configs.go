package contract

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/debtengine/debtengine/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	WorkspaceRoot string
	HistoryDays   int
	Since         time.Time
	PathFilter    string
	Excludes      []string
	ResultLimit   int
	Workers       int
	Precision     int
	Output        schema.OutputMode
	OutputFile    string
	Width         int // Terminal width override (0 = auto-detect)

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	// Weights is the final weights map, computed from defaults overlaid with
	// workspace settings and config file entries, normalized to sum 1.0.
	Weights schema.Weights

	WarningThreshold  float64
	CriticalThreshold float64

	// MinCouplingRatio filters co-change pairs below this ratio.
	MinCouplingRatio float64

	// Settings carries the sanitized per-workspace settings document.
	Settings *schema.WorkspaceSettings

	// GitActive reports whether the workspace root is a Git repository root.
	// When false, history-backed signals degrade to zero.
	GitActive bool

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	WorkspacePathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Filter         string `mapstructure:"filter"`
	OutputFile     string `mapstructure:"output-file"`
	Limit          int    `mapstructure:"limit"`
	Workers        int    `mapstructure:"workers"`
	Exclude        string `mapstructure:"exclude"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	Width          int    `mapstructure:"width"`
	HistoryDays    int    `mapstructure:"history-days"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Color          string `mapstructure:"color"`

	// --- Fields from couplingsCmd.Flags() ---
	MinRatio float64 `mapstructure:"min-ratio"`

	// --- Fields from checkCmd.Flags() ---
	WarningThreshold  float64 `mapstructure:"warning-threshold"`
	CriticalThreshold float64 `mapstructure:"critical-threshold"`

	// --- Custom weights from config file ---
	Weights map[string]float64 `mapstructure:"weights"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Excludes != nil {
		clone.Excludes = make([]string, len(c.Excludes))
		copy(clone.Excludes, c.Excludes)
	}
	if c.Weights != nil {
		clone.Weights = make(schema.Weights, len(c.Weights))
		maps.Copy(clone.Weights, c.Weights)
	}
	if c.Settings != nil {
		settings := *c.Settings
		if c.Settings.Weights != nil {
			settings.Weights = make(schema.Weights, len(c.Settings.Weights))
			maps.Copy(settings.Weights, c.Settings.Weights)
		}
		clone.Settings = &settings
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	// Workspace resolution runs first so that settings can be loaded from it.
	if err := resolveWorkspaceRoot(cfg, input); err != nil {
		return err
	}
	if err := loadWorkspaceSettings(cfg); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processHistoryWindow(cfg, input); err != nil {
		return err
	}
	if err := processWeights(cfg, input); err != nil {
		return err
	}
	if err := processThresholds(cfg, input); err != nil {
		return err
	}
	resolveGitState(ctx, cfg, client)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
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

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.PathFilter = input.Filter
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 4. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- 5. Coupling Ratio Validation ---
	if input.MinRatio < 0 || input.MinRatio > 1 {
		return fmt.Errorf("min-ratio must be between 0.0 and 1.0 (received %.2f)", input.MinRatio)
	}
	cfg.MinCouplingRatio = input.MinRatio

	// --- 6. Excludes Processing ---
	defaults := []string{
		"Cargo.lock", "go.sum", "package-lock.json", "yarn.lock", "pnpm-lock.yaml", "composer.lock", "uv.lock",
		".min.js", ".min.css",
		"dist/", "build/", "out/", "target/", "bin/",
	}
	cfg.Excludes = defaults // Set defaults first

	if input.Exclude != "" {
		parts := strings.SplitSeq(input.Exclude, ",")
		for p := range parts {
			trimmedP := strings.TrimSpace(p)
			if trimmedP != "" {
				cfg.Excludes = append(cfg.Excludes, trimmedP)
			}
		}
	}

	return nil
}

// processHistoryWindow resolves the git history window in days.
// Flag value takes precedence over workspace settings.
func processHistoryWindow(cfg *Config, input *ConfigRawInput) error {
	days := input.HistoryDays
	if days == 0 && cfg.Settings != nil {
		days = cfg.Settings.GitHistoryDays
	}
	if days == 0 {
		days = schema.DefaultHistoryDays
	}
	if days < schema.MinHistoryDays || days > schema.MaxHistoryDays {
		return fmt.Errorf("history-days must be between %d and %d (received %d)",
			schema.MinHistoryDays, schema.MaxHistoryDays, days)
	}
	cfg.HistoryDays = days
	cfg.Since = time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	return nil
}

// processWeights computes the final signal weights: defaults, overlaid with
// workspace settings, overlaid with config file entries, then normalized.
func processWeights(cfg *Config, input *ConfigRawInput) error {
	weights := schema.DefaultWeights()
	if cfg.Settings != nil {
		maps.Copy(weights, cfg.Settings.Weights)
	}

	for key, value := range input.Weights {
		signal := schema.SignalKey(strings.ToLower(strings.TrimSpace(key)))
		if !validSignal(signal) {
			return fmt.Errorf("unknown weight key '%s'. must be one of %s", key, signalKeyList())
		}
		if value < 0 {
			return fmt.Errorf("weight for %s cannot be negative (received %.3f)", signal, value)
		}
		weights[signal] = value
	}

	cfg.Weights = weights.Normalized()
	return nil
}

// processThresholds resolves the warning and critical score thresholds.
// Flag values take precedence over workspace settings.
func processThresholds(cfg *Config, input *ConfigRawInput) error {
	warning := input.WarningThreshold
	critical := input.CriticalThreshold
	if cfg.Settings != nil {
		if warning == 0 {
			warning = cfg.Settings.WarningThreshold
		}
		if critical == 0 {
			critical = cfg.Settings.CriticalThreshold
		}
	}

	if warning < 0 || warning > 100 {
		return fmt.Errorf("warning-threshold must be between 0 and 100 (received %.1f)", warning)
	}
	if critical < 0 || critical > 100 {
		return fmt.Errorf("critical-threshold must be between 0 and 100 (received %.1f)", critical)
	}
	if warning >= critical {
		return fmt.Errorf("warning-threshold (%.1f) must be below critical-threshold (%.1f)", warning, critical)
	}

	cfg.WarningThreshold = warning
	cfg.CriticalThreshold = critical
	return nil
}

// resolveWorkspaceRoot resolves the workspace path to an absolute directory.
func resolveWorkspaceRoot(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.WorkspacePathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, err := os.Stat(absSearchPath)
	if err != nil {
		return fmt.Errorf("workspace path %q is not accessible: %w", absSearchPath, err)
	}
	if !info.IsDir() {
		absSearchPath = filepath.Dir(absSearchPath)
	}

	cfg.WorkspaceRoot = absSearchPath
	return nil
}

// loadWorkspaceSettings reads and sanitizes the per-workspace settings document.
// A missing settings file yields defaults.
func loadWorkspaceSettings(cfg *Config) error {
	// First use bootstraps the .debtengine layout before anything opens
	// the store underneath it.
	settings, err := EnsureWorkspace(cfg.WorkspaceRoot)
	if err != nil {
		return err
	}
	cfg.Settings = settings
	return nil
}

// resolveGitState probes whether history-backed signals can run. The workspace
// root must itself be the repository root, otherwise relative paths from git
// output would not line up with workspace-relative paths.
func resolveGitState(ctx context.Context, cfg *Config, client GitClient) {
	root, err := client.RepoRoot(ctx, cfg.WorkspaceRoot)
	if err != nil {
		cfg.GitActive = false
		return
	}
	cfg.GitActive = filepath.Clean(root) == cfg.WorkspaceRoot
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

func validSignal(key schema.SignalKey) bool {
	for _, s := range schema.SignalOrder {
		if s == key {
			return true
		}
	}
	return false
}

func signalKeyList() string {
	parts := make([]string, len(schema.SignalOrder))
	for i, s := range schema.SignalOrder {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
