package contract

import (
	"testing"

	"github.com/huangsam/replaystat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input that passes every validation.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Workers:            4,
		Precision:          DefaultPrecision,
		Output:             "text",
		Color:              "yes",
		CacheBackend:       string(schema.SQLiteBackend),
		Judge:              DefaultJudge,
		AlternateJudge:     7,
		MinComboLength:     DefaultMinComboLength,
		ComboSearchSpace:   DefaultComboSearchSpace,
		JackWindow:         DefaultJackWindow,
		MinAccuracy:        DefaultMinAccuracy,
		TimelineRule:       "MAX",
		TimelineAlpha:      DefaultTimelineAlpha,
		TimelineMultiplier: DefaultTimelineMult,

		TimelineOverallMultiplier: DefaultOverallMult,
	}
}

func TestProcessAndValidate(t *testing.T) {
	cfg := &Config{}
	input := validInput()
	input.Prefix = "/replays/"
	input.SongsRoot = "/songs"
	input.OutputFile = "out.json"

	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, "out.json", cfg.OutputFile)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, 7, cfg.AlternateJudge)
	assert.Equal(t, schema.MaxRule, cfg.TimelineRule)
	assert.False(t, cfg.OverallFromCategories)
	assert.Equal(t, DefaultOverallMult, cfg.TimelineOverallMultiplier)
	assert.Equal(t, "/replays/", cfg.Prefix)
	assert.Equal(t, "/songs", cfg.SongsRoot)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
}

func TestProcessAndValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
		errMsg string
	}{
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }, "workers"},
		{"bad precision", func(in *ConfigRawInput) { in.Precision = 9 }, "precision"},
		{"bad output", func(in *ConfigRawInput) { in.Output = "xml" }, "output format"},
		{"parquet without file", func(in *ConfigRawInput) { in.Output = "parquet" }, "parquet"},
		{"bad color", func(in *ConfigRawInput) { in.Color = "maybe" }, "--color"},
		{"judge too low", func(in *ConfigRawInput) { in.Judge = 0 }, "judge"},
		{"alternate judge too high", func(in *ConfigRawInput) { in.AlternateJudge = 10 }, "alternate-judge"},
		{"short combo", func(in *ConfigRawInput) { in.MinComboLength = 1 }, "min-combo-length"},
		{"negative search space", func(in *ConfigRawInput) { in.ComboSearchSpace = -1 }, "combo-search-space"},
		{"short jack", func(in *ConfigRawInput) { in.JackWindow = 1 }, "jack-window"},
		{"accuracy above one", func(in *ConfigRawInput) { in.MinAccuracy = 1.2 }, "min-accuracy"},
		{"negative tolerance", func(in *ConfigRawInput) { in.ManipulationTolerance = -1 }, "manipulation-tolerance"},
		{"bad rule", func(in *ConfigRawInput) { in.TimelineRule = "median" }, "timeline rule"},
		{"zero alpha", func(in *ConfigRawInput) { in.TimelineAlpha = 0 }, "timeline-alpha"},
		{"zero multiplier", func(in *ConfigRawInput) { in.TimelineMultiplier = 0 }, "timeline-multiplier"},
		{"zero overall multiplier", func(in *ConfigRawInput) { in.TimelineOverallMultiplier = 0 }, "timeline-overall-multiplier"},
		{"bad backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }, "cache backend"},
		{"mysql without dsn", func(in *ConfigRawInput) { in.CacheBackend = "mysql" }, "cache-db-connect"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			err := ProcessAndValidate(&Config{}, input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite needs nothing", schema.SQLiteBackend, "", false},
		{"none needs nothing", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "root:pw@tcp(localhost:3306)/replaystat", false},
		{"mysql missing tcp", schema.MySQLBackend, "root:pw@localhost/replaystat", true},
		{"mysql missing db", schema.MySQLBackend, "root:pw@tcp(localhost:3306)", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=replaystat", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=replaystat", true},
		{"postgres missing db", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultJudge, cfg.Judge)
	assert.Equal(t, schema.MaxRule, cfg.TimelineRule)
	assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	ProcessProfilingConfig(profile, "")
	assert.False(t, profile.Enabled)

	ProcessProfilingConfig(profile, "run1")
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run1", profile.Prefix)
}
