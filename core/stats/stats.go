// Package stats computes the derived facts of a single decoded replay.
package stats

import (
	"github.com/huangsam/replaystat/core/wife"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// Options controls the single-replay computations.
type Options struct {
	Windows               wife.Windows // Windows the notes were judged with
	AlternateWindows      wife.Windows // Windows used for the recomputed wifescore
	MinComboLength        int
	ComboSearchSpace      int
	JackWindow            int
	MinAccuracy           float64
	ManipulationTolerance int // In rows
}

// DefaultOptions returns Options for judge 4 with the default search parameters.
func DefaultOptions() Options {
	w, _ := wife.ForJudge(contract.DefaultJudge)
	return Options{
		Windows:          w,
		AlternateWindows: w,
		MinComboLength:   contract.DefaultMinComboLength,
		ComboSearchSpace: contract.DefaultComboSearchSpace,
		JackWindow:       contract.DefaultJackWindow,
		MinAccuracy:      contract.DefaultMinAccuracy,
	}
}

// ReplayStats holds everything derived from one replay.
type ReplayStats struct {
	Scorekey  string
	Wifescore float64
	Timed     bool
	Notes     int
	MineHits  int
	HoldDrops int

	Deviation    DeviationStats
	Columns      []ColumnCount
	Manipulation float64

	Offsets      []int64 // All hits
	GreatOffsets []int64 // Hits judged great or better

	LongestCombo          int
	LongestMarvelousCombo int

	// Only set for timed replays.
	FastestCombo *schema.FastestRecord
	FastestJack  *schema.FastestRecord
	FastestAcc   *schema.FastestRecord

	AlternateWifescore float64 // Wife3 under the alternate windows
	Wife2Wifescore     float64 // Wife2 under the judged windows
}

// Compute derives the statistics of r.
func Compute(r *schema.Replay, opts Options) *ReplayStats {
	st := &ReplayStats{
		Scorekey:     r.Scorekey,
		Wifescore:    r.Wifescore,
		Timed:        r.Timed,
		Notes:        len(r.Notes),
		MineHits:     r.MineHits,
		HoldDrops:    r.HoldDrops,
		Columns:      ColumnCounts(r.Notes),
		Manipulation: Manipulation(r.Notes, opts.ManipulationTolerance),
		Offsets:      NewHistogram(),
		GreatOffsets: NewHistogram(),

		LongestCombo:          LongestCombo(r.Notes),
		LongestMarvelousCombo: LongestMarvelousCombo(r.Notes),
	}

	alt := wife.NewWife3Score(opts.AlternateWindows)
	wife2 := wife.NewWife2Score(opts.Windows)
	points := make([]float64, len(r.Notes))
	for i, n := range r.Notes {
		points[i] = wife.Wife3(n.Deviation, opts.Windows.Scale)
		alt.AddNote(n.Deviation)
		wife2.AddNote(n.Deviation)
		if n.IsMiss() {
			continue
		}
		st.Deviation.Add(n.Deviation)
		b := BucketIndex(n.Deviation)
		st.Offsets[b]++
		if n.Judgment.AtLeast(schema.Great) {
			st.GreatOffsets[b]++
		}
	}
	alt.AddMines(r.MineHits)
	alt.AddHoldDrops(r.HoldDrops)
	wife2.AddMines(r.MineHits)
	wife2.AddHoldDrops(r.HoldDrops)
	st.AlternateWifescore = alt.Value()
	st.Wife2Wifescore = wife2.Value()

	if r.Timed {
		rate := r.Rate
		if rate <= 0 {
			rate = 1
		}
		st.FastestCombo = FastestCombo(r.Notes, opts.MinComboLength, opts.ComboSearchSpace, rate)
		st.FastestAcc = FastestAccurateCombo(r.Notes, points, opts.MinComboLength, opts.ComboSearchSpace, opts.MinAccuracy, rate)
		st.FastestJack = FastestJack(r.Notes, opts.JackWindow, rate)
		for _, rec := range []*schema.FastestRecord{st.FastestCombo, st.FastestAcc, st.FastestJack} {
			if rec != nil {
				rec.Scorekey = r.Scorekey
			}
		}
	}
	return st
}
