// Package cmd defines the command-line interface for replaystat.
package cmd

import (
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(timelineCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Report skipped replays and unresolved charts on stderr")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored grades in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("prefix", "", "Directory holding replay files named by scorekey")
	analyzeCmd.Flags().String("songs-root", "", "Directory holding pack/song folders (enables timing statistics)")
	analyzeCmd.Flags().Int("judge", contract.DefaultJudge, "Judge level used to classify hits (1 to 9)")
	analyzeCmd.Flags().Int("alternate-judge", contract.DefaultJudge, "Judge level of the alternate wifescores (1 to 9)")
	analyzeCmd.Flags().Int("min-combo-length", contract.DefaultMinComboLength, "Minimum notes in a fastest combo window")
	analyzeCmd.Flags().Int("combo-search-space", contract.DefaultComboSearchSpace, "Extra window lengths tried beyond the minimum")
	analyzeCmd.Flags().Int("jack-window", contract.DefaultJackWindow, "Notes in a fastest jack window")
	analyzeCmd.Flags().Float64("min-accuracy", contract.DefaultMinAccuracy, "Minimum mean wife points of a fastest accurate window")
	analyzeCmd.Flags().Int("manipulation-tolerance", 0, "Rows a note may be hit out of order before it counts as manipulated")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of timelineCmd to Viper
	timelineCmd.Flags().String("timeline-rule", string(schema.MaxRule), "Session representative: max, last, aggregate or cumulative")
	timelineCmd.Flags().Float64("timeline-alpha", contract.DefaultTimelineAlpha, "Weight of the newest session in the aggregate, in (0, 1]")
	timelineCmd.Flags().Float64("timeline-multiplier", contract.DefaultTimelineMult, "Scale applied by the aggregate and cumulative rules")
	timelineCmd.Flags().Bool("overall-from-categories", false, "Aggregate the category ratings into the overall rating instead of reading element 0")
	timelineCmd.Flags().Float64("timeline-overall-multiplier", contract.DefaultOverallMult, "Scale applied when aggregating categories into the overall rating")
	if err := viper.BindPFlags(timelineCmd.Flags()); err != nil {
		contract.LogFatal("Error binding timeline flags", err)
	}

	// Bind all flags of cacheMigrateCmd to Viper
	cacheMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(cacheMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding cache migrate flags", err)
	}
}
