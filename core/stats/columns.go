package stats

import "github.com/huangsam/replaystat/schema"

// ColumnCount holds the note and miss totals of one column.
type ColumnCount struct {
	Notes  int64 `json:"notes"`
	Misses int64 `json:"misses"`
}

// ColumnCounts buckets notes by column. The slice is as long as the highest column used.
func ColumnCounts(notes []schema.NoteEvent) []ColumnCount {
	var counts []ColumnCount
	for _, n := range notes {
		if n.Column >= len(counts) {
			counts = append(counts, make([]ColumnCount, n.Column+1-len(counts))...)
		}
		counts[n.Column].Notes++
		if n.Judgment == schema.Miss {
			counts[n.Column].Misses++
		}
	}
	return counts
}
