package stats

import "github.com/huangsam/replaystat/schema"

// LongestCombo returns the longest run of notes without a combo breaker.
func LongestCombo(notes []schema.NoteEvent) int {
	return longestRun(notes, func(n schema.NoteEvent) bool { return !n.Judgment.BreaksCombo() })
}

// LongestMarvelousCombo returns the longest run of marvelous hits.
func LongestMarvelousCombo(notes []schema.NoteEvent) int {
	return longestRun(notes, func(n schema.NoteEvent) bool { return n.Judgment == schema.Marvelous })
}

func longestRun(notes []schema.NoteEvent, extends func(schema.NoteEvent) bool) int {
	longest, cur := 0, 0
	for _, n := range notes {
		if !extends(n) {
			cur = 0
			continue
		}
		cur++
		longest = max(longest, cur)
	}
	return longest
}
