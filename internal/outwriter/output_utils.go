package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/mattn/go-runewidth"
)

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
// It accepts a writer function that takes an io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV writer,
// writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// createFormatters creates the common formatter closures used across multiple output types.
func createFormatters(precision int) (fmtFloat func(float64) string, intFmt string) {
	numFmt := "%.*f"
	intFmt = "%d"
	fmtFloat = func(v float64) string {
		return fmt.Sprintf(numFmt, precision, v)
	}
	return fmtFloat, intFmt
}

// formatGrade returns the grade of a wifescore, colored when the config allows it.
func formatGrade(cfg *contract.Config, wifescore float64) string {
	if cfg.UseColors {
		return contract.GetColorGrade(wifescore)
	}
	return contract.GetPlainGrade(wifescore)
}

// formatPercent renders a 0 to 1 ratio as a percentage.
func formatPercent(fmtFloat func(float64) string, v float64) string {
	return fmtFloat(v*100) + "%"
}

// formatFastest renders a fastest window record, or "-" when none was found.
func formatFastest(fmtFloat func(float64) string, r *schema.FastestRecord) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%s nps over %d notes (%s, %ss to %ss)",
		fmtFloat(r.Speed), r.Length, r.Scorekey, fmtFloat(r.StartTime), fmtFloat(r.EndTime))
}

// formatCombo renders a longest combo record, or "-" when the batch had none.
func formatCombo(r schema.ComboRecord) string {
	if r.Length == 0 {
		return "-"
	}
	return fmt.Sprintf("%d (%s)", r.Length, r.Scorekey)
}

// truncateKey shortens a scorekey to maxWidth display cells, keeping its start.
func truncateKey(key string, maxWidth int) string {
	if maxWidth < 4 || runewidth.StringWidth(key) <= maxWidth {
		return key
	}
	return runewidth.Truncate(key, maxWidth, "...")
}
