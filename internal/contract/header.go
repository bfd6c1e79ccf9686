package contract

import (
	"fmt"
	"os"
	"path/filepath"
)

// LogAnalysisHeader prints a concise, 2-line header for a replay batch.
func LogAnalysisHeader(cfg *Config, numReplays int) {
	dirName := filepath.Base(cfg.Prefix)
	if dirName == "" || dirName == "." {
		dirName = "current"
	}

	// Line 1: The batch summary (replay directory and size)
	fmt.Fprintf(os.Stderr, "🔎 Replays: %s (%d scores)\n", dirName, numReplays)

	// Line 2: The judges in effect
	fmt.Fprintf(os.Stderr, "⚖️  Judge: J%d (alternate: J%d)\n", cfg.Judge, cfg.AlternateJudge)
}

// LogTimelineHeader prints a header for a skill timeline build.
func LogTimelineHeader(cfg *Config, numPoints int) {
	fmt.Fprintf(os.Stderr, "📈 Timeline: %d ratings (rule: %s, alpha: %.2f)\n", numPoints, cfg.TimelineRule, cfg.TimelineAlpha)
}
