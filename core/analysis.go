package core

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/huangsam/replaystat/core/replay"
	"github.com/huangsam/replaystat/core/stats"
	"github.com/huangsam/replaystat/core/wife"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// chartKey identifies a song folder within a pack.
type chartKey struct {
	pack string
	song string
}

// replayOutcome is what a worker produces for one batch entry.
// Exactly one of stats and skip is set.
type replayOutcome struct {
	stats *stats.ReplayStats
	skip  *schema.SkippedReplay
}

// StatsOptions converts a validated config into single-replay options.
func StatsOptions(cfg *contract.Config) (stats.Options, error) {
	windows, err := wife.ForJudge(cfg.Judge)
	if err != nil {
		return stats.Options{}, fmt.Errorf("%w: %v", contract.ErrInvalidInput, err)
	}
	alternate, err := wife.ForJudge(cfg.AlternateJudge)
	if err != nil {
		return stats.Options{}, fmt.Errorf("%w: alternate %v", contract.ErrInvalidInput, err)
	}
	return stats.Options{
		Windows:               windows,
		AlternateWindows:      alternate,
		MinComboLength:        cfg.MinComboLength,
		ComboSearchSpace:      cfg.ComboSearchSpace,
		JackWindow:            cfg.JackWindow,
		MinAccuracy:           cfg.MinAccuracy,
		ManipulationTolerance: cfg.ManipulationTolerance,
	}, nil
}

// validateInput checks that the lock-step lists of input have equal lengths.
func validateInput(input schema.AnalysisInput) error {
	n := input.Len()
	lengths := []struct {
		name string
		len  int
	}{
		{"wifescores", len(input.Wifescores)},
		{"packs", len(input.Packs)},
		{"songs", len(input.Songs)},
		{"rates", len(input.Rates)},
	}
	for _, l := range lengths {
		if l.len != n {
			return fmt.Errorf("%w: %d scorekeys but %d %s", contract.ErrInvalidInput, n, l.len, l.name)
		}
	}
	return nil
}

// AnalyzeReplays decodes and measures every replay of input and reduces the
// per-replay facts into one batch result. Replays that cannot be found or
// decoded are recorded in Skipped and left out of every other output.
func AnalyzeReplays(ctx context.Context, cfg *contract.Config, input schema.AnalysisInput, replays contract.ReplayResolver, charts contract.ChartResolver) (*schema.ReplaysAnalysisResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	opts, err := StatsOptions(cfg)
	if err != nil {
		return nil, err
	}
	if !shouldSuppressHeader(ctx) {
		contract.LogAnalysisHeader(cfg, input.Len())
	}

	timings := resolveCharts(ctx, cfg, input, charts)
	outcomes := analyzeBatch(ctx, cfg, input, replays, timings, opts)
	result := reduceOutcomes(outcomes, opts)

	if cfg.Verbose {
		for _, s := range result.Skipped {
			contract.LogWarn(fmt.Sprintf("Skipped replay %s (%s)", s.Scorekey, s.Reason), errors.New(s.Detail))
		}
	}
	return result, nil
}

// resolveCharts resolves every distinct chart of the batch once.
// Charts that cannot be resolved are absent from the returned map.
func resolveCharts(ctx context.Context, cfg *contract.Config, input schema.AnalysisInput, charts contract.ChartResolver) map[chartKey]*schema.ChartTiming {
	timings := make(map[chartKey]*schema.ChartTiming)
	if charts == nil || input.SongsRoot == "" {
		return timings
	}

	seen := make(map[chartKey]struct{})
	for i := range input.Len() {
		key := chartKey{pack: input.Packs[i], song: input.Songs[i]}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		timing, err := charts.Resolve(ctx, input.SongsRoot, key.pack, key.song)
		if err != nil {
			if cfg.Verbose {
				contract.LogWarn(fmt.Sprintf("No chart timing for %s/%s", key.pack, key.song), err)
			}
			continue
		}
		timings[key] = timing
	}
	return timings
}

// analyzeBatch processes all replays in parallel using a worker pool.
// Each worker writes only to the outcome slot of the index it received.
func analyzeBatch(ctx context.Context, cfg *contract.Config, input schema.AnalysisInput, replays contract.ReplayResolver, timings map[chartKey]*schema.ChartTiming, opts stats.Options) []replayOutcome {
	n := input.Len()
	outcomes := make([]replayOutcome, n)
	indexCh := make(chan int, n)
	var wg sync.WaitGroup

	workers := max(1, min(cfg.Workers, n))
	for range workers {
		wg.Go(func() {
			for i := range indexCh {
				outcomes[i] = analyzeReplay(ctx, input, i, replays, timings, opts)
			}
		})
	}

	for i := range n {
		indexCh <- i
	}
	close(indexCh)
	wg.Wait()
	return outcomes
}

// analyzeReplay resolves, decodes and measures the replay at index i.
func analyzeReplay(ctx context.Context, input schema.AnalysisInput, i int, replays contract.ReplayResolver, timings map[chartKey]*schema.ChartTiming, opts stats.Options) replayOutcome {
	scorekey := input.Scorekeys[i]
	skip := func(reason schema.SkipReason, err error) replayOutcome {
		return replayOutcome{skip: &schema.SkippedReplay{Index: i, Scorekey: scorekey, Reason: reason, Detail: err.Error()}}
	}

	// Unreadable files count as missing.
	data, err := replays.Resolve(ctx, input.Prefix, scorekey)
	if err != nil {
		return skip(schema.SkipNotFound, err)
	}

	timing := timings[chartKey{pack: input.Packs[i], song: input.Songs[i]}]
	decoded, err := replay.Decode(data, timing, opts.Windows)
	if err != nil {
		return skip(schema.SkipMalformed, err)
	}

	r := &schema.Replay{
		Scorekey:  scorekey,
		Rate:      input.Rates[i],
		Pack:      input.Packs[i],
		Song:      input.Songs[i],
		Wifescore: input.Wifescores[i],
		Timed:     decoded.Timed,
		Notes:     decoded.Notes,
		MineHits:  decoded.MineHits,
		HoldDrops: decoded.HoldDrops,
	}
	return replayOutcome{stats: stats.Compute(r, opts)}
}
