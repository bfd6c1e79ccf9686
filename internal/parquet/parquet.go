// Package parquet exports replaystat results to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/parquet-go/parquet-go"
)

// ReplayRow holds the per-replay outputs of one analyzed batch entry.
type ReplayRow struct {
	// ScoreIndex is the position of the replay in the input batch
	ScoreIndex int32 `parquet:"score_index,snappy"`

	// Scorekey identifies the replay file
	Scorekey string `parquet:"scorekey,snappy"`

	// Pack and Song locate the chart the replay was played on
	Pack string `parquet:"pack,snappy"`
	Song string `parquet:"song,snappy"`

	// Rate is the playback rate of the score
	Rate float64 `parquet:"rate,snappy"`

	// Wifescore is the stored wifescore, in the 0 to 1 range
	Wifescore float64 `parquet:"wifescore,snappy"`

	// Grade is the letter grade of Wifescore
	Grade string `parquet:"grade,snappy,dict"`

	// AlternateWifescore is the Wife3 score recomputed under the alternate judge
	AlternateWifescore float64 `parquet:"alternate_wifescore,snappy"`

	// Wife2Wifescore is the Wife2 score recomputed under the primary judge
	Wife2Wifescore float64 `parquet:"wife2_wifescore,snappy"`

	// Manipulation is the fraction of notes hit out of chart order
	Manipulation float64 `parquet:"manipulation,snappy"`

	// DeviationMean is the mean hit deviation in ms
	DeviationMean float64 `parquet:"deviation_mean,snappy"`

	// Timed is true when chart timing was available for the replay
	Timed bool `parquet:"timed,snappy"`

	// SkipReason is set for entries that produced no statistics (nullable)
	SkipReason *string `parquet:"skip_reason,optional,snappy"`
}

// TimelineRow holds one session of a skill timeline.
type TimelineRow struct {
	SessionID  int64     `parquet:"session_id,snappy"`
	Overall    float64   `parquet:"overall,snappy"`
	AggOverall float64   `parquet:"agg_overall,snappy"`
	Ratings    []float64 `parquet:"ratings,list"`
	AggRatings []float64 `parquet:"agg_ratings,list"`
}

// ReplayRowsFrom flattens an analysis result into one row per batch entry,
// analyzed entries first, then skipped ones, both in input order.
func ReplayRowsFrom(input schema.AnalysisInput, result *schema.ReplaysAnalysisResult) []ReplayRow {
	timed := make(map[int]bool, len(result.TimedScoreIndices))
	for _, i := range result.TimedScoreIndices {
		timed[i] = true
	}

	rows := make([]ReplayRow, 0, len(result.ScoreIndices)+len(result.Skipped))
	for k, i := range result.ScoreIndices {
		rows = append(rows, ReplayRow{
			ScoreIndex:         int32(i),
			Scorekey:           input.Scorekeys[i],
			Pack:               input.Packs[i],
			Song:               input.Songs[i],
			Rate:               input.Rates[i],
			Wifescore:          result.CurrentWifescores[k],
			Grade:              contract.GetPlainGrade(result.CurrentWifescores[k]),
			AlternateWifescore: result.AlternateWifescores[k],
			Wife2Wifescore:     result.Wife2Wifescores[k],
			Manipulation:       result.Manipulations[k],
			DeviationMean:      result.DeviationMeans[k],
			Timed:              timed[i],
		})
	}
	for _, s := range result.Skipped {
		reason := string(s.Reason)
		rows = append(rows, ReplayRow{
			ScoreIndex: int32(s.Index),
			Scorekey:   s.Scorekey,
			Pack:       input.Packs[s.Index],
			Song:       input.Songs[s.Index],
			Rate:       input.Rates[s.Index],
			Wifescore:  input.Wifescores[s.Index],
			Grade:      contract.GetPlainGrade(input.Wifescores[s.Index]),
			SkipReason: &reason,
		})
	}
	return rows
}

// TimelineRowsFrom flattens a skill timeline into one row per session.
func TimelineRowsFrom(result *schema.SkillTimelineResult) []TimelineRow {
	rows := make([]TimelineRow, len(result.SessionIDs))
	for i, id := range result.SessionIDs {
		rows[i] = TimelineRow{
			SessionID:  int64(id),
			Overall:    result.SessionOverallRatings[i],
			AggOverall: result.AggOverallRatings[i],
			Ratings:    result.SessionRatingVectors[i],
			AggRatings: result.AggRatingVectors[i],
		}
	}
	return rows
}

// WriteReplayRowsParquet writes replay rows to a Parquet file.
func WriteReplayRowsParquet(data []ReplayRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteTimelineRowsParquet writes timeline rows to a Parquet file.
func WriteTimelineRowsParquet(data []TimelineRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to outputPath with a schema inferred from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer; a failure here leaves an unreadable file
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}
