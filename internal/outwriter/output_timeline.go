package outwriter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/parquet"
	"github.com/huangsam/replaystat/schema"
)

// PrintTimelineResults outputs the skill timeline, dispatching based on the output format configured.
func PrintTimelineResults(result *schema.SkillTimelineResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("error writing Parquet output: %w", errParquetNeedsFile)
		}
		rows := parquet.TimelineRowsFrom(result)
		if err := parquet.WriteTimelineRowsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d timeline rows to %s\n", len(rows), cfg.OutputFile)
		return nil
	case schema.JSONOut, schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteTimelineResults(w, result, cfg, duration)
		}, fmt.Sprintf("Wrote %s timeline", cfg.Output))
	default:
		return WriteTimelineResults(os.Stdout, result, cfg, duration)
	}
}

// WriteTimelineResults writes the skill timeline to w in the configured format.
func WriteTimelineResults(w io.Writer, result *schema.SkillTimelineResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSON(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForTimeline(w, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetNeedsFile
	default:
		if err := writeTimelineTable(w, result, cfg, fmtFloat, duration); err != nil {
			return fmt.Errorf("error writing timeline table output: %w", err)
		}
	}
	return nil
}
