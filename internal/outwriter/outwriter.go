// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAnalysis prints replay batch results using the configured output format.
func (ow *OutWriter) WriteAnalysis(input schema.AnalysisInput, result *schema.ReplaysAnalysisResult, cfg *contract.Config, duration time.Duration) error {
	return PrintAnalysisResults(input, result, cfg, duration)
}

// WriteTimeline prints skill timeline results using the configured output format.
func (ow *OutWriter) WriteTimeline(result *schema.SkillTimelineResult, cfg *contract.Config, duration time.Duration) error {
	return PrintTimelineResults(result, cfg, duration)
}

// GetMaxTableKeyWidth calculates the maximum width for scorekeys in table output
// based on terminal width and table configuration.
func GetMaxTableKeyWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Index + Rate + Wife + Grade + Alt + Wife2 + Manip + Dev + Timed with borders/padding
	baseWidth := 90

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 48 {
		return 48
	}
	return available
}
