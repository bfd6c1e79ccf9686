package core

import (
	"github.com/huangsam/replaystat/core/stats"
	"github.com/huangsam/replaystat/schema"
)

// batchAccumulator folds per-replay statistics into a batch result in input order.
type batchAccumulator struct {
	result    *schema.ReplaysAnalysisResult
	deviation stats.DeviationStats
}

func newBatchAccumulator(opts stats.Options) *batchAccumulator {
	result := schema.NewReplaysAnalysisResult()
	result.Judge = opts.Windows.Judge
	result.AlternateJudge = opts.AlternateWindows.Judge
	return &batchAccumulator{result: result}
}

// add folds the statistics of the replay at input index i.
func (a *batchAccumulator) add(i int, st *stats.ReplayStats) {
	res := a.result

	res.ScoreIndices = append(res.ScoreIndices, i)
	res.Manipulations = append(res.Manipulations, st.Manipulation)
	res.DeviationMeans = append(res.DeviationMeans, st.Deviation.Mean)
	res.CurrentWifescores = append(res.CurrentWifescores, st.Wifescore)
	res.AlternateWifescores = append(res.AlternateWifescores, st.AlternateWifescore)
	res.Wife2Wifescores = append(res.Wife2Wifescores, st.Wife2Wifescore)
	if st.Timed {
		res.TimedScoreIndices = append(res.TimedScoreIndices, i)
	}

	a.deviation = a.deviation.Merge(st.Deviation)

	res.TotalNotes += int64(st.Notes)
	res.MineHits += int64(st.MineHits)
	res.HoldDrops += int64(st.HoldDrops)
	for len(res.ColumnNotes) < len(st.Columns) {
		res.ColumnNotes = append(res.ColumnNotes, 0)
		res.ColumnMisses = append(res.ColumnMisses, 0)
	}
	for c, cc := range st.Columns {
		res.ColumnNotes[c] += int64(cc.Notes)
		res.ColumnMisses[c] += int64(cc.Misses)
	}

	stats.AddHistogram(res.OffsetBuckets, st.Offsets)
	stats.AddHistogram(res.GreatOffsetBuckets, st.GreatOffsets)
	if st.Wifescore < schema.Sub93Threshold {
		stats.AddHistogram(res.Sub93OffsetBuckets, st.Offsets)
	}

	// Earlier entries win ties, so only a strictly faster record replaces the best.
	res.FastestCombo = fasterRecord(res.FastestCombo, st.FastestCombo)
	res.FastestJack = fasterRecord(res.FastestJack, st.FastestJack)
	res.FastestAcc = fasterRecord(res.FastestAcc, st.FastestAcc)

	if st.LongestCombo > res.LongestCombo.Length {
		res.LongestCombo = schema.ComboRecord{Scorekey: st.Scorekey, Length: st.LongestCombo}
	}
	if st.LongestMarvelousCombo > res.LongestMarvelousCombo.Length {
		res.LongestMarvelousCombo = schema.ComboRecord{Scorekey: st.Scorekey, Length: st.LongestMarvelousCombo}
	}
}

// skip records a batch entry that produced no statistics.
func (a *batchAccumulator) skip(s schema.SkippedReplay) {
	a.result.Skipped = append(a.result.Skipped, s)
}

// finish fills the pooled deviation outputs and returns the result.
func (a *batchAccumulator) finish(marvelousMs float64) *schema.ReplaysAnalysisResult {
	res := a.result
	res.DeviationCount = a.deviation.Count
	res.DeviationMean = a.deviation.Mean
	res.DeviationStddev = a.deviation.Stddev()
	res.MarvelousProbability = a.deviation.MarvelousProbability(marvelousMs)
	return res
}

// fasterRecord returns the faster of best and candidate, keeping best on a tie.
func fasterRecord(best, candidate *schema.FastestRecord) *schema.FastestRecord {
	if candidate == nil {
		return best
	}
	if best == nil || candidate.Speed > best.Speed {
		rec := *candidate
		return &rec
	}
	return best
}

// reduceOutcomes folds the worker outcomes in input order.
func reduceOutcomes(outcomes []replayOutcome, opts stats.Options) *schema.ReplaysAnalysisResult {
	acc := newBatchAccumulator(opts)
	for i, o := range outcomes {
		switch {
		case o.skip != nil:
			acc.skip(*o.skip)
		case o.stats != nil:
			acc.add(i, o.stats)
		}
	}
	return acc.finish(opts.Windows.Marvelous)
}
