package stats

import "github.com/huangsam/replaystat/schema"

// window is a candidate section of a combo.
type window struct {
	start    int // index into the run
	length   int
	speed    float64
	accuracy float64
}

// windowSearch describes which windows of a run qualify.
type windowSearch struct {
	minLength   int
	maxLength   int     // inclusive
	minAccuracy float64 // ignored when points is nil
	rate        float64
}

// fastestWindow returns the fastest window of a run. times holds the note
// times of the run and points their scores (nil when accuracy is not
// required). Among equal speeds the earliest start wins, then the longer
// window.
func fastestWindow(times, points []float64, s windowSearch) (window, bool) {
	n := len(times)
	if s.minLength < 2 || n < s.minLength {
		return window{}, false
	}

	// Prefix sums make the mean points of any window O(1).
	var prefix []float64
	if points != nil {
		prefix = make([]float64, n+1)
		for i, p := range points {
			prefix[i+1] = prefix[i] + p
		}
	}

	var best window
	found := false
	for start := 0; start+s.minLength <= n; start++ {
		longest := min(s.maxLength, n-start)
		for length := longest; length >= s.minLength; length-- {
			elapsed := times[start+length-1] - times[start]
			if elapsed <= 0 {
				continue
			}
			speed := float64(length-1) / elapsed * s.rate
			if found && speed <= best.speed {
				continue
			}
			acc := 0.0
			if prefix != nil {
				acc = (prefix[start+length] - prefix[start]) / float64(length)
				if acc < s.minAccuracy {
					continue
				}
			}
			best = window{start: start, length: length, speed: speed, accuracy: acc}
			found = true
		}
	}
	return best, found
}

// combos splits indices into maximal runs without a combo breaker.
// keep selects which notes take part; nil keeps all of them.
func combos(notes []schema.NoteEvent, keep func(schema.NoteEvent) bool) [][]int {
	var runs [][]int
	var cur []int
	for i, n := range notes {
		if keep != nil && !keep(n) {
			continue
		}
		if n.Judgment.BreaksCombo() {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, i)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// searchRuns scans every run and converts the fastest window into a record.
// timeOf picks the timestamp used for a note.
func searchRuns(notes []schema.NoteEvent, runs [][]int, points []float64, timeOf func(schema.NoteEvent) float64, s windowSearch) *schema.FastestRecord {
	var best *schema.FastestRecord
	var times, pts []float64
	for _, run := range runs {
		if len(run) < s.minLength {
			continue
		}
		times = times[:0]
		pts = pts[:0]
		for _, i := range run {
			times = append(times, timeOf(notes[i]))
			if points != nil {
				pts = append(pts, points[i])
			}
		}
		var runPoints []float64
		if points != nil {
			runPoints = pts
		}
		w, ok := fastestWindow(times, runPoints, s)
		if !ok || (best != nil && w.speed <= best.Speed) {
			continue
		}
		best = &schema.FastestRecord{
			StartTime: times[w.start],
			EndTime:   times[w.start+w.length-1],
			Length:    w.length,
			Speed:     w.speed,
			Accuracy:  w.accuracy,
		}
	}
	return best
}

func noteTime(n schema.NoteEvent) float64 { return n.Time }

// Better reports whether a beats b: faster first, then earlier, then longer.
// A nil record never beats anything.
func Better(a, b *schema.FastestRecord) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	case a.Speed != b.Speed:
		return a.Speed > b.Speed
	case a.StartTime != b.StartTime:
		return a.StartTime < b.StartTime
	default:
		return a.Length > b.Length
	}
}

// FastestCombo finds the fastest section of any combo, from minLength notes up
// to minLength+searchSpace notes.
func FastestCombo(notes []schema.NoteEvent, minLength, searchSpace int, rate float64) *schema.FastestRecord {
	s := windowSearch{minLength: minLength, maxLength: minLength + searchSpace, rate: rate}
	return searchRuns(notes, combos(notes, nil), nil, noteTime, s)
}

// FastestAccurateCombo is FastestCombo restricted to windows whose mean points
// reach minAccuracy. points holds the score of every note.
func FastestAccurateCombo(notes []schema.NoteEvent, points []float64, minLength, searchSpace int, minAccuracy, rate float64) *schema.FastestRecord {
	s := windowSearch{minLength: minLength, maxLength: minLength + searchSpace, minAccuracy: minAccuracy, rate: rate}
	return searchRuns(notes, combos(notes, nil), points, noteTime, s)
}

// FastestJack finds the fastest run of exactly size consecutive hits on one
// column, timed by when the notes were hit.
func FastestJack(notes []schema.NoteEvent, size int, rate float64) *schema.FastestRecord {
	numColumns := 0
	for _, n := range notes {
		numColumns = max(numColumns, n.Column+1)
	}
	s := windowSearch{minLength: size, maxLength: size, rate: rate}

	var best *schema.FastestRecord
	for col := range numColumns {
		runs := combos(notes, func(n schema.NoteEvent) bool { return n.Column == col })
		rec := searchRuns(notes, runs, nil, schema.NoteEvent.HitTime, s)
		if rec != nil && (best == nil || Better(rec, best)) {
			best = rec
		}
	}
	return best
}
