// Package timeline turns per-play skill rating vectors into a per-session
// history and a smoothed aggregate of that history.
package timeline

import (
	"fmt"
	"math"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// Skill aggregation search parameters.
const (
	aggregateDelta       = 0.1
	aggregateRounds      = 12
	aggregateResolution  = 10.24
	aggregateGrowthPower = 0.1
)

// Options controls how sessions are summarized and smoothed.
type Options struct {
	Rule       schema.TimelineRule // Representative of a session
	Alpha      float64             // Weight of the newest session in the aggregate, in (0, 1]
	Multiplier float64             // Scale applied by the aggregate and cumulative rules

	// When set, element 0 of each representative is replaced by the skill
	// aggregate of elements 1.. scaled by OverallMultiplier.
	OverallFromCategories bool
	OverallMultiplier     float64
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Rule:              schema.MaxRule,
		Alpha:             contract.DefaultTimelineAlpha,
		Multiplier:        contract.DefaultTimelineMult,
		OverallMultiplier: contract.DefaultOverallMult,
	}
}

func (o Options) validate() error {
	if _, ok := schema.ValidTimelineRules[o.Rule]; !ok {
		return fmt.Errorf("%w: unknown timeline rule %q", contract.ErrInvalidInput, o.Rule)
	}
	if !(o.Alpha > 0 && o.Alpha <= 1) {
		return fmt.Errorf("%w: alpha must be in (0, 1] (received %v)", contract.ErrInvalidInput, o.Alpha)
	}
	if (o.Rule == schema.AggregateRule || o.Rule == schema.CumulativeRule) && !(o.Multiplier > 0) {
		return fmt.Errorf("%w: multiplier must be positive (received %v)", contract.ErrInvalidInput, o.Multiplier)
	}
	if o.OverallFromCategories && !(o.OverallMultiplier > 0) {
		return fmt.Errorf("%w: overall multiplier must be positive (received %v)", contract.ErrInvalidInput, o.OverallMultiplier)
	}
	return nil
}

// Build groups ssrVectors into sessions by consecutive equal sessionIDs and
// returns one representative and one aggregate point per session. Element 0 of
// each vector is the overall rating. The cumulative rule aggregates every play
// up to and including the session rather than the session alone.
func Build(ssrVectors [][]float64, sessionIDs []int, opts Options) (*schema.SkillTimelineResult, error) {
	if len(ssrVectors) != len(sessionIDs) {
		return nil, fmt.Errorf("%w: %d rating vectors but %d session ids", contract.ErrInvalidInput, len(ssrVectors), len(sessionIDs))
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	res := &schema.SkillTimelineResult{
		SessionIDs:            []int{},
		SessionRatingVectors:  [][]float64{},
		SessionOverallRatings: []float64{},
		AggRatingVectors:      [][]float64{},
		AggOverallRatings:     []float64{},
	}
	if len(ssrVectors) == 0 {
		return res, nil
	}

	width := len(ssrVectors[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: rating vectors must not be empty", contract.ErrInvalidInput)
	}
	for i, v := range ssrVectors {
		if len(v) != width {
			return nil, fmt.Errorf("%w: rating vector %d has %d entries, expected %d", contract.ErrInvalidInput, i, len(v), width)
		}
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return nil, fmt.Errorf("%w: rating vector %d is not finite", contract.ErrInvalidInput, i)
			}
		}
	}

	var agg []float64
	for start := 0; start < len(ssrVectors); {
		end := start + 1
		for end < len(ssrVectors) && sessionIDs[end] == sessionIDs[start] {
			end++
		}
		plays := ssrVectors[start:end]
		if opts.Rule == schema.CumulativeRule {
			plays = ssrVectors[:end]
		}
		rep := representative(plays, opts)
		if opts.OverallFromCategories && len(rep) > 1 {
			rep[0] = AggregateSkill(rep[1:], opts.OverallMultiplier)
		}
		if agg == nil {
			agg = append([]float64(nil), rep...)
		} else {
			agg = decay(agg, rep, opts.Alpha)
		}

		res.SessionIDs = append(res.SessionIDs, sessionIDs[start])
		res.SessionRatingVectors = append(res.SessionRatingVectors, rep)
		res.SessionOverallRatings = append(res.SessionOverallRatings, rep[0])
		res.AggRatingVectors = append(res.AggRatingVectors, agg)
		res.AggOverallRatings = append(res.AggOverallRatings, agg[0])
		start = end
	}
	return res, nil
}

// decay folds rep into the previous aggregate and returns a new vector.
func decay(prev, rep []float64, alpha float64) []float64 {
	next := make([]float64, len(prev))
	for i := range prev {
		next[i] = prev[i] + alpha*(rep[i]-prev[i])
	}
	return next
}

// representative picks the rating vector that stands for a whole session.
func representative(session [][]float64, opts Options) []float64 {
	width := len(session[0])
	out := make([]float64, width)
	switch opts.Rule {
	case schema.LastRule:
		copy(out, session[len(session)-1])
	case schema.AggregateRule, schema.CumulativeRule:
		column := make([]float64, len(session))
		for i := range width {
			for j, v := range session {
				column[j] = v[i]
			}
			out[i] = AggregateSkill(column, opts.Multiplier)
		}
	default:
		copy(out, session[0])
		for _, v := range session[1:] {
			for i, x := range v {
				out[i] = max(out[i], x)
			}
		}
	}
	return out
}

// AggregateSkill combines several ratings into one, the way the game combines
// play ratings into a player rating: a binary search for the rating r at which
// the summed shortfall sum(max(0, 2/erfc(0.1*(x-r)) - 2)) no longer exceeds
// 2^(0.1*r), scaled by multiplier.
func AggregateSkill(values []float64, multiplier float64) float64 {
	rating, resolution := 0.0, aggregateResolution
	for range aggregateRounds {
		for {
			rating += resolution
			if shortfall(values, rating) <= math.Pow(2, aggregateGrowthPower*rating) {
				break
			}
		}
		rating -= resolution
		resolution /= 2
	}
	return (rating + 2*resolution) * multiplier
}

func shortfall(values []float64, rating float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += max(0, 2/math.Erfc(aggregateDelta*(v-rating))-2)
	}
	return sum
}
