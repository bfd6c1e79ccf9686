// Package contract provides interfaces and shared utilities for replaystat's internal architecture.
package contract

import (
	"context"

	"github.com/huangsam/replaystat/schema"
)

// ReplayResolver loads the raw per-note records of a replay.
// This allows the aggregator to be tested without replay files on disk.
type ReplayResolver interface {
	// Resolve returns the replay named scorekey under prefix.
	// A missing replay yields an error wrapping ErrReplayNotFound.
	Resolve(ctx context.Context, prefix, scorekey string) ([]byte, error)
}

// ChartResolver loads the timing of the chart a replay was played on.
type ChartResolver interface {
	// Resolve returns the timing of the chart in songsRoot/pack/song.
	// A missing chart yields an error wrapping ErrChartNotFound.
	Resolve(ctx context.Context, songsRoot, pack, song string) (*schema.ChartTiming, error)
}

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetChartStore() CacheStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}
