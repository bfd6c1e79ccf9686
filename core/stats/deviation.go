package stats

import "math"

// DeviationStats accumulates the count, mean and sum of squared differences of
// hit deviations. Two accumulators merge exactly into the pooled statistics of
// their union.
type DeviationStats struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"m2"`
}

// Add folds one deviation into the accumulator.
func (d *DeviationStats) Add(x float64) {
	d.Count++
	delta := x - d.Mean
	d.Mean += delta / float64(d.Count)
	d.M2 += delta * (x - d.Mean)
}

// Merge returns the pooled statistics of d and o.
func (d DeviationStats) Merge(o DeviationStats) DeviationStats {
	switch {
	case o.Count == 0:
		return d
	case d.Count == 0:
		return o
	}
	n := d.Count + o.Count
	delta := o.Mean - d.Mean
	return DeviationStats{
		Count: n,
		Mean:  d.Mean + delta*float64(o.Count)/float64(n),
		M2:    d.M2 + o.M2 + delta*delta*float64(d.Count)*float64(o.Count)/float64(n),
	}
}

// Variance returns the population variance, 0 when empty.
func (d DeviationStats) Variance() float64 {
	if d.Count == 0 {
		return 0
	}
	return d.M2 / float64(d.Count)
}

// Stddev returns the population standard deviation, 0 when empty.
func (d DeviationStats) Stddev() float64 {
	return math.Sqrt(d.Variance())
}

// MarvelousProbability estimates the chance that a hit lands within ±windowMs,
// treating deviations as normally distributed around zero with the observed
// spread.
func (d DeviationStats) MarvelousProbability(windowMs float64) float64 {
	if d.Count == 0 {
		return 0
	}
	sigma := d.Stddev()
	if sigma == 0 {
		return 1
	}
	return 1 - math.Erfc(windowMs/(sigma*math.Sqrt2))
}
