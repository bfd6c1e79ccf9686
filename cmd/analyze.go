package cmd

import (
	"github.com/huangsam/replaystat/core"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/spf13/cobra"
)

// analyzeCmd reduces a batch of replays into accuracy, timing and speed statistics.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <manifest>",
	Short: "Analyze a batch of replays listed in a manifest.",
	Long: `Decode every replay listed in a manifest and reduce the batch into one result.

The manifest is a CSV file with the header "scorekey,wifescore,pack,song,rate"
or a JSON array of objects with those keys. Replay files are read from --prefix
and named by scorekey.

Reports, per replay:
- Stored, alternate judge and Wife2 wifescores
- Manipulation (notes hit out of chart order)
- Mean hit deviation

And for the whole batch:
- Hit deviation mean, spread and marvelous probability
- Per-column note and miss totals, mine hits and hold drops
- Offset histograms (all hits, great or better, sub-93% plays)
- Longest combos and, with --songs-root, the fastest combo, jack and accurate run

Replays that are missing or malformed are skipped and listed.

Examples:
  # Analyze a manifest against a replay directory
  replaystat analyze scores.csv --prefix ~/Etterna/Save/ReplaysV2

  # Time notes with simfiles and judge on J5
  replaystat analyze scores.csv --prefix ./replays --songs-root ./Songs --judge 5

  # Export per-replay rows for further processing
  replaystat analyze scores.json --prefix ./replays --output parquet --output-file replays.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, cacheManager, args[0]); err != nil {
			contract.LogFatal("Cannot run replay analysis", err)
		}
	},
}
