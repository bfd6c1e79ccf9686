// Package schema has the models shared by every part of replaystat.
package schema

import "math"

// NoteEvent is one scored note of a replay.
type NoteEvent struct {
	Row       int      `json:"row"`       // Chart row as written in the replay
	Time      float64  `json:"time"`      // Chart time in seconds, valid only for timed replays
	Column    int      `json:"column"`    // Zero-based column
	Deviation float64  `json:"deviation"` // Signed offset in ms, NaN for a miss
	Judgment  Judgment `json:"judgment"`
}

// IsMiss reports whether the note counts as missed: either it was never hit
// or the hit landed outside every scoring window.
func (n NoteEvent) IsMiss() bool {
	return n.Judgment == Miss || math.IsNaN(n.Deviation)
}

// HitTime returns the moment the player hit the note, in chart seconds.
func (n NoteEvent) HitTime() float64 {
	if n.IsMiss() {
		return n.Time
	}
	return n.Time + n.Deviation/1000
}

// Replay is a decoded play of a chart together with its identifying metadata.
// Notes keep the order in which they were recorded.
type Replay struct {
	Scorekey  string
	Rate      float64
	Pack      string
	Song      string
	Wifescore float64
	Timed     bool // Note times were derived from chart timing
	Notes     []NoteEvent
	MineHits  int
	HoldDrops int
}

// BPMSegment starts a tempo at a beat.
type BPMSegment struct {
	Beat float64 `json:"beat"`
	BPM  float64 `json:"bpm"`
}

// StopSegment pauses the chart for a number of seconds at a beat.
type StopSegment struct {
	Beat    float64 `json:"beat"`
	Seconds float64 `json:"seconds"`
}

// ChartTiming maps chart rows to seconds. The first BPM segment starts at beat 0.
type ChartTiming struct {
	Offset float64       `json:"offset"`
	BPMs   []BPMSegment  `json:"bpms"`
	Stops  []StopSegment `json:"stops,omitempty"`
}

// RowToSeconds converts a chart row to seconds from the start of the music.
func (c *ChartTiming) RowToSeconds(row int) float64 {
	return c.BeatToSeconds(float64(row) / RowsPerBeat)
}

// BeatToSeconds converts a beat to seconds from the start of the music.
func (c *ChartTiming) BeatToSeconds(beat float64) float64 {
	t := -c.Offset
	if len(c.BPMs) == 0 {
		return t
	}
	prevBeat, bpm := 0.0, c.BPMs[0].BPM
	for _, seg := range c.BPMs[1:] {
		if seg.Beat >= beat {
			break
		}
		t += (seg.Beat - prevBeat) * 60 / bpm
		prevBeat, bpm = seg.Beat, seg.BPM
	}
	t += (beat - prevBeat) * 60 / bpm
	for _, stop := range c.Stops {
		if stop.Beat < beat {
			t += stop.Seconds
		}
	}
	return t
}
