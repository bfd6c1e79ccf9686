package stats

import "github.com/huangsam/replaystat/schema"

// Manipulation returns the fraction of notes whose row lies more than
// tolerance rows before the furthest row recorded so far. A replay recorded in
// chart order scores 0.
func Manipulation(notes []schema.NoteEvent, tolerance int) float64 {
	if len(notes) == 0 {
		return 0
	}
	outOfOrder := 0
	maxRow := notes[0].Row
	for _, n := range notes[1:] {
		if n.Row < maxRow-tolerance {
			outOfOrder++
		}
		maxRow = max(maxRow, n.Row)
	}
	return float64(outOfOrder) / float64(len(notes))
}
