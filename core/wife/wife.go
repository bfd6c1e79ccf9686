// Package wife has the judgment windows and the Wife2/Wife3 scoring curves.
// Points are scaled so that a perfect note is worth 1.
package wife

import (
	"fmt"
	"math"

	"github.com/huangsam/replaystat/schema"
)

// judgeScales are the timing scales of judges 1 through 9.
var judgeScales = [...]float64{1.50, 1.33, 1.16, 1.00, 0.84, 0.66, 0.50, 0.33, 0.20}

// Base window edges in ms at scale 1.
const (
	marvelousMs = 22.5
	perfectMs   = 45
	greatMs     = 90
	goodMs      = 135
	badMs       = 180
)

// Penalties per event, in scaled points.
const (
	Wife3MissWeight     = -2.75
	Wife3MinePenalty    = -3.5
	Wife3HoldDropWeight = -2.25
	Wife2MissWeight     = -4
	Wife2MinePenalty    = -4
	Wife2HoldDropWeight = -3
)

// Windows holds the judgment window edges in ms and the timing scale they came from.
type Windows struct {
	Judge     int
	Scale     float64
	Marvelous float64
	Perfect   float64
	Great     float64
	Good      float64
	Bad       float64
}

// JudgeScale returns the timing scale of a judge level.
func JudgeScale(judge int) (float64, error) {
	if judge < 1 || judge > len(judgeScales) {
		return 0, fmt.Errorf("judge must be between 1 and %d (received %d)", len(judgeScales), judge)
	}
	return judgeScales[judge-1], nil
}

// ForJudge returns the windows of a judge level.
func ForJudge(judge int) (Windows, error) {
	scale, err := JudgeScale(judge)
	if err != nil {
		return Windows{}, err
	}
	return Windows{
		Judge:     judge,
		Scale:     scale,
		Marvelous: marvelousMs * scale,
		Perfect:   perfectMs * scale,
		Great:     greatMs * scale,
		Good:      goodMs * scale,
		Bad:       badMs * scale,
	}, nil
}

// Classify returns the judgment of a deviation in ms. NaN is a miss.
func (w Windows) Classify(deviationMs float64) schema.Judgment {
	d := math.Abs(deviationMs)
	switch {
	case math.IsNaN(d):
		return schema.Miss
	case d <= w.Marvelous:
		return schema.Marvelous
	case d <= w.Perfect:
		return schema.Perfect
	case d <= w.Great:
		return schema.Great
	case d <= w.Good:
		return schema.Good
	case d <= w.Bad:
		return schema.Bad
	default:
		return schema.Miss
	}
}

// Wife3 returns the points of one note under the Wife3 curve. NaN is a miss.
func Wife3(deviationMs, scale float64) float64 {
	d := math.Abs(deviationMs)
	if math.IsNaN(d) {
		return Wife3MissWeight
	}
	ridic := 5 * scale
	if d <= ridic {
		return 1
	}
	zero := 65 * math.Pow(scale, 0.75)
	if d <= zero {
		dev := 22.7 * math.Pow(scale, 0.75)
		return math.Erf((zero - d) / dev)
	}
	maxBoo := badMs * scale
	if d <= maxBoo {
		return (d - zero) * Wife3MissWeight / (maxBoo - zero)
	}
	return Wife3MissWeight
}

// Wife2 returns the points of one note under the Wife2 curve. NaN is a miss.
func Wife2(deviationMs, scale float64) float64 {
	d := math.Abs(deviationMs)
	if math.IsNaN(d) || d > badMs {
		return Wife2MissWeight
	}
	sigma := 95 * scale
	y := 1 - math.Pow(2, -(d*d)/(sigma*sigma))
	y *= y
	return (1-Wife2MissWeight)*(1-y) + Wife2MissWeight
}

// Score sums per-note points and event penalties and normalizes by the note count.
type Score struct {
	curve        func(float64, float64) float64
	scale        float64
	minePenalty  float64
	holdDropLoss float64
	points       float64
	notes        int
}

// NewWife3Score returns an empty Wife3 accumulator for the given windows.
func NewWife3Score(w Windows) *Score {
	return &Score{curve: Wife3, scale: w.Scale, minePenalty: Wife3MinePenalty, holdDropLoss: Wife3HoldDropWeight}
}

// NewWife2Score returns an empty Wife2 accumulator for the given windows.
func NewWife2Score(w Windows) *Score {
	return &Score{curve: Wife2, scale: w.Scale, minePenalty: Wife2MinePenalty, holdDropLoss: Wife2HoldDropWeight}
}

// AddNote scores one note and returns its points.
func (s *Score) AddNote(deviationMs float64) float64 {
	p := s.curve(deviationMs, s.scale)
	s.points += p
	s.notes++
	return p
}

// AddMines applies the mine penalty n times.
func (s *Score) AddMines(n int) {
	s.points += float64(n) * s.minePenalty
}

// AddHoldDrops applies the hold drop penalty n times.
func (s *Score) AddHoldDrops(n int) {
	s.points += float64(n) * s.holdDropLoss
}

// Value returns the normalized score, 0 when no note was scored.
func (s *Score) Value() float64 {
	if s.notes == 0 {
		return 0
	}
	return s.points / float64(s.notes)
}
