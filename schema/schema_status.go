package schema

import "time"

// CacheStatus represents the status of the chart timing cache.
// Entry times are the modification times of the cached chart files.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	NewestChartTime time.Time `json:"newest_chart_time"`
	OldestChartTime time.Time `json:"oldest_chart_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}
