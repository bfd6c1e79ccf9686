package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// categoryNames returns a column name per category entry of vectors that are width long.
func categoryNames(width int) []string {
	names := make([]string, 0, max(0, width-1))
	for k := 1; k < width; k++ {
		if k-1 < len(schema.SkillCategories) {
			names = append(names, strings.ToLower(schema.SkillCategories[k-1]))
		} else {
			names = append(names, fmt.Sprintf("category_%d", k))
		}
	}
	return names
}

// vectorWidth returns the length of the longest vector.
func vectorWidth(vectors [][]float64) int {
	width := 0
	for _, v := range vectors {
		width = max(width, len(v))
	}
	return width
}

// writeCSVResultsForTimeline writes one row per session with its representative
// and aggregate ratings side by side.
func writeCSVResultsForTimeline(w io.Writer, result *schema.SkillTimelineResult, fmtFloat func(float64) string) error {
	names := categoryNames(vectorWidth(result.SessionRatingVectors))
	header := []string{"session_id", "overall", "agg_overall"}
	for _, name := range names {
		header = append(header, name, "agg_"+name)
	}

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, id := range result.SessionIDs {
			row := []string{
				strconv.Itoa(id),
				fmtFloat(result.SessionOverallRatings[i]),
				fmtFloat(result.AggOverallRatings[i]),
			}
			for k := range names {
				row = append(row,
					formatVectorEntry(fmtFloat, result.SessionRatingVectors[i], k+1),
					formatVectorEntry(fmtFloat, result.AggRatingVectors[i], k+1))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// formatVectorEntry formats vec[k], or an empty string when vec is shorter.
func formatVectorEntry(fmtFloat func(float64) string, vec []float64, k int) string {
	if k >= len(vec) {
		return ""
	}
	return fmtFloat(vec[k])
}

// writeTimelineTable prints the sessions with the session overall, the aggregate
// overall and the aggregate category ratings.
func writeTimelineTable(w io.Writer, result *schema.SkillTimelineResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	names := categoryNames(vectorWidth(result.AggRatingVectors))
	headers := append([]string{"Session", "Overall", "Agg"}, names...)
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, id := range result.SessionIDs {
		row := []string{
			strconv.Itoa(id),
			fmtFloat(result.SessionOverallRatings[i]),
			fmtFloat(result.AggOverallRatings[i]),
		}
		for k := range names {
			row = append(row, formatVectorEntry(fmtFloat, result.AggRatingVectors[i], k+1))
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Timeline built for %d sessions in %v (rule: %s)\n", len(result.SessionIDs), duration, cfg.TimelineRule)
	return nil
}
