package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/parquet"
	"github.com/huangsam/replaystat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// analysisCSVHeader names the columns of a per-replay CSV export.
var analysisCSVHeader = []string{
	"score_index",
	"scorekey",
	"pack",
	"song",
	"rate",
	"wifescore",
	"grade",
	"alternate_wifescore",
	"wife2_wifescore",
	"manipulation",
	"deviation_mean",
	"timed",
	"skip_reason",
}

// writeJSONResultsForAnalysis marshals the whole batch result to JSON and writes it.
func writeJSONResultsForAnalysis(w io.Writer, result *schema.ReplaysAnalysisResult) error {
	return writeJSON(w, result)
}

// writeCSVResultsForAnalysis writes one row per batch entry, analyzed entries first.
func writeCSVResultsForAnalysis(w io.Writer, input schema.AnalysisInput, result *schema.ReplaysAnalysisResult, fmtFloat func(float64) string) error {
	rows := parquet.ReplayRowsFrom(input, result)
	return writeCSVWithHeader(w, analysisCSVHeader, func(cw *csv.Writer) error {
		for _, r := range rows {
			skipReason := ""
			if r.SkipReason != nil {
				skipReason = *r.SkipReason
			}
			record := []string{
				strconv.Itoa(int(r.ScoreIndex)),
				r.Scorekey,
				r.Pack,
				r.Song,
				fmtFloat(r.Rate),
				fmtFloat(r.Wifescore),
				r.Grade,
				fmtFloat(r.AlternateWifescore),
				fmtFloat(r.Wife2Wifescore),
				fmtFloat(r.Manipulation),
				fmtFloat(r.DeviationMean),
				strconv.FormatBool(r.Timed),
				skipReason,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAnalysisTable prints a per-replay table followed by a batch summary table.
func writeAnalysisTable(w io.Writer, input schema.AnalysisInput, result *schema.ReplaysAnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	table.Header([]string{"#", "Scorekey", "Rate", "Wife", "Grade",
		fmt.Sprintf("J%d", result.AlternateJudge), "Wife2", "Manip", "Dev", "Timed"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Prepare Data Rows
	timed := make(map[int]bool, len(result.TimedScoreIndices))
	for _, i := range result.TimedScoreIndices {
		timed[i] = true
	}
	keyWidth := GetMaxTableKeyWidth(cfg)
	var data [][]string
	for k, i := range result.ScoreIndices {
		timedMark := "no"
		if timed[i] {
			timedMark = "yes"
		}
		data = append(data, []string{
			strconv.Itoa(i),
			truncateKey(input.Scorekeys[i], keyWidth),
			fmtFloat(input.Rates[i]) + "x",
			formatPercent(fmtFloat, result.CurrentWifescores[k]),
			formatGrade(cfg, result.CurrentWifescores[k]),
			formatPercent(fmtFloat, result.AlternateWifescores[k]),
			formatPercent(fmtFloat, result.Wife2Wifescores[k]),
			formatPercent(fmtFloat, result.Manipulations[k]),
			fmtFloat(result.DeviationMeans[k]),
			timedMark,
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if err := writeAnalysisSummary(w, result, cfg, fmtFloat, intFmt); err != nil {
		return err
	}

	for _, s := range result.Skipped {
		fmt.Fprintf(w, "%s #%d %s (%s)\n", contract.LabelColor.Sprint("Skipped"), s.Index, s.Scorekey, s.Reason)
	}
	fmt.Fprintf(w, "Analyzed %d of %d replays in %v with %d workers. Cache backend: %s\n",
		len(result.ScoreIndices), input.Len(), duration, cfg.Workers, cfg.CacheBackend)
	return nil
}

// writeAnalysisSummary prints the batch-wide outputs as a two-column table.
func writeAnalysisSummary(w io.Writer, result *schema.ReplaysAnalysisResult, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Value"})

	misses := int64(0)
	for _, m := range result.ColumnMisses {
		misses += m
	}
	columns := ""
	for c := range result.ColumnNotes {
		if c > 0 {
			columns += " "
		}
		columns += fmt.Sprintf(intFmt+"/"+intFmt, result.ColumnMisses[c], result.ColumnNotes[c])
	}
	if columns == "" {
		columns = "-"
	}

	data := [][]string{
		{"Judge", fmt.Sprintf("J%d (alternate J%d)", result.Judge, result.AlternateJudge)},
		{"Deviation mean", fmtFloat(result.DeviationMean) + " ms"},
		{"Deviation stddev", fmtFloat(result.DeviationStddev) + " ms"},
		{"Hits", fmt.Sprintf(intFmt, result.DeviationCount)},
		{"Marvelous probability", formatPercent(fmtFloat, result.MarvelousProbability)},
		{"Notes", fmt.Sprintf(intFmt, result.TotalNotes)},
		{"Misses", fmt.Sprintf(intFmt, misses)},
		{"Column misses/notes", columns},
		{"Mine hits", fmt.Sprintf(intFmt, result.MineHits)},
		{"Hold drops", fmt.Sprintf(intFmt, result.HoldDrops)},
		{"Longest combo", formatCombo(result.LongestCombo)},
		{"Longest marvelous combo", formatCombo(result.LongestMarvelousCombo)},
		{"Fastest combo", formatFastest(fmtFloat, result.FastestCombo)},
		{"Fastest jack", formatFastest(fmtFloat, result.FastestJack)},
		{"Fastest accurate run", formatFastest(fmtFloat, result.FastestAcc)},
	}
	if cfg.Verbose {
		data = append(data, []string{"Timed replays", strconv.Itoa(len(result.TimedScoreIndices))})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
