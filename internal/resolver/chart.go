package resolver

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
)

// currentChartCacheVersion defines the version of the cached timing layout.
const currentChartCacheVersion = 1

// chartExtensions lists the simfile extensions searched in a song folder, in preference order.
var chartExtensions = []string{".sm", ".ssc"}

// ChartResolver parses chart timing from song folders, caching it in a store.
// A nil store disables caching.
type ChartResolver struct {
	store contract.CacheStore
}

var _ contract.ChartResolver = &ChartResolver{}

// NewChartResolver creates a chart resolver backed by store.
func NewChartResolver(store contract.CacheStore) *ChartResolver {
	return &ChartResolver{store: store}
}

// Resolve returns the timing of the chart in songsRoot/pack/song.
func (r *ChartResolver) Resolve(_ context.Context, songsRoot, pack, song string) (*schema.ChartTiming, error) {
	path, err := findChartFile(filepath.Join(songsRoot, pack, song))
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrChartNotFound, err)
	}
	mtime := info.ModTime().Unix()

	key := chartCacheKey(path)
	if timing := r.checkCacheHit(key, mtime); timing != nil {
		return timing, nil
	}
	return r.parseAndStore(path, key, mtime)
}

// checkCacheHit returns the cached timing when it matches the file's modification time.
func (r *ChartResolver) checkCacheHit(key string, mtime int64) *schema.ChartTiming {
	if r.store == nil {
		return nil
	}
	data, version, ts, err := r.store.Get(key)
	if err != nil || version != currentChartCacheVersion || ts != mtime {
		return nil
	}
	var timing schema.ChartTiming
	if err := json.Unmarshal(data, &timing); err != nil {
		return nil
	}
	return &timing
}

// parseAndStore parses the chart file and caches its timing.
func (r *ChartResolver) parseAndStore(path, key string, mtime int64) (*schema.ChartTiming, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", contract.ErrChartNotFound, err)
	}
	timing, err := ParseSimfile(data)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if r.store != nil {
		if data, err := json.Marshal(timing); err == nil {
			if err := r.store.Set(key, data, currentChartCacheVersion, mtime); err != nil {
				contract.LogWarn("Cannot cache chart timing", err)
			}
		}
	}
	return timing, nil
}

// chartCacheKey hashes the chart path into a cache key.
func chartCacheKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(path)))
}

// findChartFile returns the first simfile in dir, preferring .sm over .ssc.
func findChartFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contract.ErrChartNotFound, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	for _, ext := range chartExtensions {
		for _, name := range names {
			if strings.EqualFold(filepath.Ext(name), ext) {
				return filepath.Join(dir, name), nil
			}
		}
	}
	return "", fmt.Errorf("%w: no simfile in %s", contract.ErrChartNotFound, dir)
}
