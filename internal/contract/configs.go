package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/huangsam/replaystat/schema"
)

// Default values for configuration.
const (
	DefaultPrecision        = 2
	MaxPrecision            = 4
	DefaultJudge            = 4
	MaxJudge                = 9
	DefaultMinComboLength   = 100
	DefaultComboSearchSpace = 30
	DefaultJackWindow       = 30
	DefaultMinAccuracy      = 0.93
	DefaultTimelineAlpha    = 0.3
	DefaultTimelineMult     = 1.05
	DefaultOverallMult      = 1.125
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	Workers    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool
	Verbose    bool // Report every skipped replay on stderr

	Prefix    string // Replay directory
	SongsRoot string // Songs directory holding pack/song folders

	Judge                 int
	AlternateJudge        int
	MinComboLength        int
	ComboSearchSpace      int
	JackWindow            int
	MinAccuracy           float64
	ManipulationTolerance int

	TimelineRule              schema.TimelineRule
	TimelineAlpha             float64
	TimelineMultiplier        float64
	OverallFromCategories     bool // Derive the overall rating from the category ratings
	TimelineOverallMultiplier float64

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Workers        int    `mapstructure:"workers"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Width          int    `mapstructure:"width"`
	Color          string `mapstructure:"color"`
	Verbose        bool   `mapstructure:"verbose"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	Prefix                string  `mapstructure:"prefix"`
	SongsRoot             string  `mapstructure:"songs-root"`
	Judge                 int     `mapstructure:"judge"`
	AlternateJudge        int     `mapstructure:"alternate-judge"`
	MinComboLength        int     `mapstructure:"min-combo-length"`
	ComboSearchSpace      int     `mapstructure:"combo-search-space"`
	JackWindow            int     `mapstructure:"jack-window"`
	MinAccuracy           float64 `mapstructure:"min-accuracy"`
	ManipulationTolerance int     `mapstructure:"manipulation-tolerance"`

	// --- Fields from timelineCmd.Flags() ---
	TimelineRule              string  `mapstructure:"timeline-rule"`
	TimelineAlpha             float64 `mapstructure:"timeline-alpha"`
	TimelineMultiplier        float64 `mapstructure:"timeline-multiplier"`
	OverallFromCategories     bool    `mapstructure:"overall-from-categories"`
	TimelineOverallMultiplier float64 `mapstructure:"timeline-overall-multiplier"`
}

// DefaultConfig returns a validated Config with every default applied.
func DefaultConfig() *Config {
	return &Config{
		Workers:            DefaultWorkers,
		Precision:          DefaultPrecision,
		Output:             schema.TextOut,
		UseColors:          true,
		Judge:              DefaultJudge,
		AlternateJudge:     DefaultJudge,
		MinComboLength:     DefaultMinComboLength,
		ComboSearchSpace:   DefaultComboSearchSpace,
		JackWindow:         DefaultJackWindow,
		MinAccuracy:        DefaultMinAccuracy,
		TimelineRule:       schema.MaxRule,
		TimelineAlpha:      DefaultTimelineAlpha,
		TimelineMultiplier: DefaultTimelineMult,
		CacheBackend:       schema.SQLiteBackend,

		TimelineOverallMultiplier: DefaultOverallMult,
	}
}

// Clone returns a copy of the config that callers can modify per request.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate validates every raw input and populates cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateAnalysisInputs(cfg, input); err != nil {
		return err
	}
	if err := validateTimelineInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
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

// validateBackendConfigs validates the chart cache backend.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	return ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect)
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Verbose = input.Verbose

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// validateAnalysisInputs validates the replay analysis parameters.
func validateAnalysisInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Prefix = input.Prefix
	cfg.SongsRoot = input.SongsRoot

	if input.Judge < 1 || input.Judge > MaxJudge {
		return fmt.Errorf("judge must be between 1 and %d (received %d)", MaxJudge, input.Judge)
	}
	cfg.Judge = input.Judge

	if input.AlternateJudge < 1 || input.AlternateJudge > MaxJudge {
		return fmt.Errorf("alternate-judge must be between 1 and %d (received %d)", MaxJudge, input.AlternateJudge)
	}
	cfg.AlternateJudge = input.AlternateJudge

	if input.MinComboLength < 2 {
		return fmt.Errorf("min-combo-length must be at least 2 (received %d)", input.MinComboLength)
	}
	cfg.MinComboLength = input.MinComboLength

	if input.ComboSearchSpace < 0 {
		return fmt.Errorf("combo-search-space cannot be negative (received %d)", input.ComboSearchSpace)
	}
	cfg.ComboSearchSpace = input.ComboSearchSpace

	if input.JackWindow < 2 {
		return fmt.Errorf("jack-window must be at least 2 (received %d)", input.JackWindow)
	}
	cfg.JackWindow = input.JackWindow

	if input.MinAccuracy < 0 || input.MinAccuracy > 1 {
		return fmt.Errorf("min-accuracy must be between 0 and 1 (received %v)", input.MinAccuracy)
	}
	cfg.MinAccuracy = input.MinAccuracy

	if input.ManipulationTolerance < 0 {
		return fmt.Errorf("manipulation-tolerance cannot be negative (received %d)", input.ManipulationTolerance)
	}
	cfg.ManipulationTolerance = input.ManipulationTolerance
	return nil
}

// validateTimelineInputs validates the skill timeline parameters.
func validateTimelineInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TimelineRule = schema.TimelineRule(strings.ToLower(input.TimelineRule))
	if _, ok := schema.ValidTimelineRules[cfg.TimelineRule]; !ok {
		return fmt.Errorf("invalid timeline rule '%s'. must be max, last, aggregate, cumulative", input.TimelineRule)
	}

	if input.TimelineAlpha <= 0 || input.TimelineAlpha > 1 {
		return fmt.Errorf("timeline-alpha must be in (0, 1] (received %v)", input.TimelineAlpha)
	}
	cfg.TimelineAlpha = input.TimelineAlpha

	if input.TimelineMultiplier <= 0 {
		return fmt.Errorf("timeline-multiplier must be positive (received %v)", input.TimelineMultiplier)
	}
	cfg.TimelineMultiplier = input.TimelineMultiplier

	if input.TimelineOverallMultiplier <= 0 {
		return fmt.Errorf("timeline-overall-multiplier must be positive (received %v)", input.TimelineOverallMultiplier)
	}
	cfg.TimelineOverallMultiplier = input.TimelineOverallMultiplier
	cfg.OverallFromCategories = input.OverallFromCategories
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
}
