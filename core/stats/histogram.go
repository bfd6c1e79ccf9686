package stats

import (
	"math"

	"github.com/huangsam/replaystat/schema"
)

// BucketIndex returns the histogram bucket of a deviation in ms, clamped to the edges.
func BucketIndex(deviationMs float64) int {
	i := int(math.Round(deviationMs)) + schema.OffsetBucketRange
	return min(max(i, 0), schema.NumOffsetBuckets-1)
}

// NewHistogram returns an empty offset histogram.
func NewHistogram() []int64 {
	return make([]int64, schema.NumOffsetBuckets)
}

// AddHistogram adds src into dst bucket by bucket.
func AddHistogram(dst, src []int64) {
	for i, v := range src {
		dst[i] += v
	}
}
