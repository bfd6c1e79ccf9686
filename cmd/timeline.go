package cmd

import (
	"github.com/huangsam/replaystat/core"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/spf13/cobra"
)

// timelineCmd builds a skill timeline from rating history.
var timelineCmd = &cobra.Command{
	Use:   "timeline <ratings>",
	Short: "Build a per-session skill timeline from rating history.",
	Long: `Group skill rating vectors into sessions and smooth them into an aggregate.

The ratings file is a CSV of "session_id,overall,category..." rows (a header
row is optional) or a JSON object {"ssr_vectors": [...], "session_ids": [...]}.
Consecutive rows with the same session id form one session.

Each session is summarized by --timeline-rule:
- max:       the highest rating per category
- last:      the final play of the session
- aggregate: the combined rating the game uses for player skill

The aggregate point of each session moves toward the session rating by
--timeline-alpha.

Examples:
  # Build a timeline from a CSV export
  replaystat timeline ratings.csv

  # Use the aggregate rule and export JSON
  replaystat timeline ratings.json --timeline-rule aggregate --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteTimeline(rootCtx, cfg, args[0]); err != nil {
			contract.LogFatal("Cannot build skill timeline", err)
		}
	},
}
