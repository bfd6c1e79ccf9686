package outwriter

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/parquet"
	"github.com/huangsam/replaystat/schema"
)

// errParquetNeedsFile is returned when parquet output is requested without an output file.
var errParquetNeedsFile = errors.New("parquet output requires --output-file")

// PrintAnalysisResults outputs the replay batch results, dispatching based on the output format configured.
func PrintAnalysisResults(input schema.AnalysisInput, result *schema.ReplaysAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.ParquetOut:
		if err := printParquetResultsForAnalysis(input, result, cfg); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	case schema.JSONOut, schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return WriteAnalysisResults(w, input, result, cfg, duration)
		}, fmt.Sprintf("Wrote %s analysis", cfg.Output))
	default:
		// Tables always go to the terminal
		return WriteAnalysisResults(os.Stdout, input, result, cfg, duration)
	}
}

// WriteAnalysisResults writes the replay batch results to w in the configured format.
// Parquet needs a file path and is handled by PrintAnalysisResults.
func WriteAnalysisResults(w io.Writer, input schema.AnalysisInput, result *schema.ReplaysAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeJSONResultsForAnalysis(w, result); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeCSVResultsForAnalysis(w, input, result, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		return errParquetNeedsFile
	default:
		if err := writeAnalysisTable(w, input, result, cfg, fmtFloat, intFmt, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printParquetResultsForAnalysis writes one row per batch entry to the configured output file.
func printParquetResultsForAnalysis(input schema.AnalysisInput, result *schema.ReplaysAnalysisResult, cfg *contract.Config) error {
	if cfg.OutputFile == "" {
		return errParquetNeedsFile
	}
	rows := parquet.ReplayRowsFrom(input, result)
	if err := parquet.WriteReplayRowsParquet(rows, cfg.OutputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %d replay rows to %s\n", len(rows), cfg.OutputFile)
	return nil
}
