package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// TimelineRule selects the representative rating of a session.
	TimelineRule string

	// SkipReason explains why a replay was left out of a batch.
	SkipReason string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All timeline representative rules supported.
const (
	MaxRule        TimelineRule = "max" // default
	LastRule       TimelineRule = "last"
	AggregateRule  TimelineRule = "aggregate"
	CumulativeRule TimelineRule = "cumulative"
)

// All skip reasons recorded by the aggregator.
const (
	SkipNotFound  SkipReason = "replay_not_found"
	SkipMalformed SkipReason = "malformed_replay"
)

// Offset histogram layout: one bucket per millisecond in [-OffsetBucketRange, +OffsetBucketRange].
const (
	OffsetBucketRange = 180
	NumOffsetBuckets  = 2*OffsetBucketRange + 1
)

// Sub93Threshold is the wifescore below which a replay feeds the sub-93 histogram.
const Sub93Threshold = 0.93

// RowsPerBeat is the chart row resolution used by replay files.
const RowsPerBeat = 48

// SkillCategories names the per-category entries that follow the overall rating
// in a skill rating vector.
var SkillCategories = []string{"Stream", "Jumpstream", "Handstream", "Stamina", "Jacks", "Chordjacks", "Technical"}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidTimelineRules lists all valid timeline representative rules.
var ValidTimelineRules = map[TimelineRule]struct{}{
	MaxRule:        {},
	LastRule:       {},
	AggregateRule:  {},
	CumulativeRule: {},
}
