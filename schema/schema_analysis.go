package schema

// AnalysisInput holds the lock-step lists of one analyze_replays call.
type AnalysisInput struct {
	Prefix     string    `json:"prefix"`     // Directory holding replay files named by scorekey
	Scorekeys  []string  `json:"scorekeys"`  // Scorekey per entry
	Wifescores []float64 `json:"wifescores"` // Stored wifescore per entry
	Packs      []string  `json:"packs"`      // Pack name per entry
	Songs      []string  `json:"songs"`      // Song folder name per entry
	Rates      []float64 `json:"rates"`      // Playback rate per entry
	SongsRoot  string    `json:"songs_root"` // Directory holding pack/song folders
}

// Len returns the number of entries in the batch.
func (in AnalysisInput) Len() int {
	return len(in.Scorekeys)
}

// FastestRecord is the fastest window found in a replay or a batch.
type FastestRecord struct {
	Scorekey  string  `json:"scorekey"`
	StartTime float64 `json:"start_time"` // Chart seconds of the first note
	EndTime   float64 `json:"end_time"`   // Chart seconds of the last note
	Length    int     `json:"length"`     // Number of notes
	Speed     float64 `json:"speed"`      // Notes per second, rate applied
	Accuracy  float64 `json:"accuracy"`   // Mean Wife3 points per note in the window
}

// ComboRecord is the longest run found in a replay or a batch.
type ComboRecord struct {
	Scorekey string `json:"scorekey"`
	Length   int    `json:"length"`
}

// SkippedReplay records a batch entry that produced no statistics.
type SkippedReplay struct {
	Index    int        `json:"index"`
	Scorekey string     `json:"scorekey"`
	Reason   SkipReason `json:"reason"`
	Detail   string     `json:"detail"`
}

// ReplaysAnalysisResult is the reduction of a batch of replays.
// Per-index slices are aligned with ScoreIndices.
type ReplaysAnalysisResult struct {
	ScoreIndices        []int     `json:"score_indices"`
	Manipulations       []float64 `json:"manipulations"`
	DeviationMeans      []float64 `json:"deviation_means"`
	CurrentWifescores   []float64 `json:"current_wifescores"`
	AlternateWifescores []float64 `json:"alternate_wifescores"`
	Wife2Wifescores     []float64 `json:"wife2_wifescores"`

	// TimedScoreIndices lists entries whose chart timing was resolved.
	TimedScoreIndices []int `json:"timed_score_indices"`

	Skipped []SkippedReplay `json:"skipped"`

	DeviationCount       int64   `json:"deviation_count"`
	DeviationMean        float64 `json:"deviation_mean"`
	DeviationStddev      float64 `json:"deviation_stddev"`
	MarvelousProbability float64 `json:"marvelous_probability"`

	TotalNotes   int64   `json:"total_notes"`
	ColumnNotes  []int64 `json:"column_notes"`
	ColumnMisses []int64 `json:"column_misses"`
	MineHits     int64   `json:"mine_hits"`
	HoldDrops    int64   `json:"hold_drops"`

	FastestCombo          *FastestRecord `json:"fastest_combo,omitempty"`
	FastestJack           *FastestRecord `json:"fastest_jack,omitempty"`
	FastestAcc            *FastestRecord `json:"fastest_acc,omitempty"`
	LongestCombo          ComboRecord    `json:"longest_combo"`
	LongestMarvelousCombo ComboRecord    `json:"longest_marvelous_combo"`

	OffsetBuckets      []int64 `json:"offset_buckets"`
	GreatOffsetBuckets []int64 `json:"great_offset_buckets"`
	Sub93OffsetBuckets []int64 `json:"sub_93_offset_buckets"`

	Judge          int `json:"judge"`
	AlternateJudge int `json:"alternate_judge"`
}

// NewReplaysAnalysisResult returns an empty result with allocated histograms.
func NewReplaysAnalysisResult() *ReplaysAnalysisResult {
	return &ReplaysAnalysisResult{
		ScoreIndices:        []int{},
		Manipulations:       []float64{},
		DeviationMeans:      []float64{},
		CurrentWifescores:   []float64{},
		AlternateWifescores: []float64{},
		Wife2Wifescores:     []float64{},
		TimedScoreIndices:   []int{},
		Skipped:             []SkippedReplay{},
		ColumnNotes:         []int64{},
		ColumnMisses:        []int64{},
		OffsetBuckets:       make([]int64, NumOffsetBuckets),
		GreatOffsetBuckets:  make([]int64, NumOffsetBuckets),
		Sub93OffsetBuckets:  make([]int64, NumOffsetBuckets),
	}
}
