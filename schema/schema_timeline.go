package schema

// SkillTimelineResult holds one representative point and one aggregate point per session.
type SkillTimelineResult struct {
	SessionIDs            []int       `json:"session_ids"`
	SessionRatingVectors  [][]float64 `json:"session_rating_vectors"`
	SessionOverallRatings []float64   `json:"session_overall_ratings"`
	AggRatingVectors      [][]float64 `json:"agg_rating_vectors"`
	AggOverallRatings     []float64   `json:"agg_overall_ratings"`
}

// TimelineInput is the file and tool payload for build_skill_timeline.
type TimelineInput struct {
	SSRVectors [][]float64 `json:"ssr_vectors"`
	SessionIDs []int       `json:"session_ids"`
}
