// Package core has core logic for replay analysis and skill timelines.
package core

import (
	"context"
	"time"

	"github.com/huangsam/replaystat/core/timeline"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/outwriter"
	"github.com/huangsam/replaystat/internal/resolver"
	"github.com/huangsam/replaystat/schema"
)

// ExecuteAnalyze analyzes every replay listed in the manifest at manifestPath
// and prints the batch result. It serves as the main entry point for 'analyze'.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, manifestPath string) error {
	start := time.Now()
	input, err := LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	result, err := RunAnalysis(ctx, cfg, mgr, input)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteAnalysis(input, result, cfg, duration)
}

// RunAnalysis analyzes input with file-backed resolvers rooted at the configured
// replay and songs directories. Directories already set on input win.
func RunAnalysis(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, input schema.AnalysisInput) (*schema.ReplaysAnalysisResult, error) {
	if input.Prefix == "" {
		input.Prefix = cfg.Prefix
	}
	if input.SongsRoot == "" {
		input.SongsRoot = cfg.SongsRoot
	}

	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetChartStore()
	}
	return AnalyzeReplays(ctx, cfg, input, resolver.NewFileReplayResolver(), resolver.NewChartResolver(store))
}

// TimelineOptions converts a validated config into timeline options.
func TimelineOptions(cfg *contract.Config) timeline.Options {
	return timeline.Options{
		Rule:       cfg.TimelineRule,
		Alpha:      cfg.TimelineAlpha,
		Multiplier: cfg.TimelineMultiplier,

		OverallFromCategories: cfg.OverallFromCategories,
		OverallMultiplier:     cfg.TimelineOverallMultiplier,
	}
}

// BuildTimeline builds a skill timeline from input with the configured rule.
func BuildTimeline(ctx context.Context, cfg *contract.Config, input schema.TimelineInput) (*schema.SkillTimelineResult, error) {
	if !shouldSuppressHeader(ctx) {
		contract.LogTimelineHeader(cfg, len(input.SSRVectors))
	}
	return timeline.Build(input.SSRVectors, input.SessionIDs, TimelineOptions(cfg))
}

// ExecuteTimeline builds the skill timeline of the ratings stored at path
// and prints it. It serves as the main entry point for 'timeline'.
func ExecuteTimeline(ctx context.Context, cfg *contract.Config, path string) error {
	start := time.Now()
	input, err := LoadTimelineInput(path)
	if err != nil {
		return err
	}
	result, err := BuildTimeline(ctx, cfg, input)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteTimeline(result, cfg, duration)
}
