package iocache

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/huangsam/replaystat/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetGlobals resets the global manager between tests.
func resetGlobals() {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}
	Manager = &CacheStoreManager{}
}

func TestInitStores(t *testing.T) {
	t.Run("sqlite setup", func(t *testing.T) {
		resetGlobals()
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		require.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NotNil(t, Manager.GetChartStore(), "Chart store should not be nil")
		CloseCaching()

		_, err := os.Stat(dbPath)
		assert.NoError(t, err, "Database file should be created")
	})

	t.Run("idempotent setup", func(t *testing.T) {
		resetGlobals()
		dbPath := filepath.Join(t.TempDir(), "cache.db")

		// Multiple initializations should be safe (sync.Once)
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		first := Manager.GetChartStore()
		assert.NoError(t, InitStores(schema.SQLiteBackend, dbPath))
		assert.Same(t, first, Manager.GetChartStore())

		// Multiple closes should be safe (sync.Once)
		CloseCaching()
		CloseCaching()
	})

	t.Run("none backend", func(t *testing.T) {
		resetGlobals()
		require.NoError(t, InitStores(schema.NoneBackend, ""))

		store := Manager.GetChartStore()
		require.NotNil(t, store)
		_, _, _, err := store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, store.Set("key", []byte("v"), 1, 1))
		CloseCaching()
	})

	t.Run("empty backend", func(t *testing.T) {
		resetGlobals()
		require.NoError(t, InitStores("", ""))
		assert.Nil(t, Manager.GetChartStore())
	})

	t.Run("unsupported backend", func(t *testing.T) {
		resetGlobals()
		err := InitStores("redis", "")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported cache backend")
	})
}

// TestValidateTableName tests the validateTableName function with various inputs.
func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		wantErr   bool
	}{
		{"valid simple name", "chart_timing_cache", false},
		{"valid name with numbers", "cache_123", false},
		{"valid name starting with underscore", "_cache", false},
		{"valid mixed case", "ChartCache_1", false},
		{"empty name", "", true},
		{"starts with number", "1cache", true},
		{"contains dash", "chart-cache", true},
		{"contains space", "chart cache", true},
		{"sql injection attempt", "t'; DROP TABLE users; --", true},
		{"contains dot", "db.cache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.tableName)
			if tt.wantErr {
				assert.Error(t, err, "validateTableName should error for %q", tt.tableName)
			} else {
				assert.NoError(t, err, "validateTableName should not error for %q", tt.tableName)
			}
		})
	}
}

// TestQuoteTableName tests the quoteTableName function for all backends.
func TestQuoteTableName(t *testing.T) {
	tests := []struct {
		backend schema.DatabaseBackend
		want    string
	}{
		{schema.SQLiteBackend, `"chart_timing_cache"`},
		{schema.MySQLBackend, "`chart_timing_cache`"},
		{schema.PostgreSQLBackend, `"chart_timing_cache"`},
		{schema.NoneBackend, `"chart_timing_cache"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.want, quoteTableName(chartTable, tt.backend))
		})
	}
}

// TestSQLiteBackendOperations tests the full lifecycle of SQLite backend operations.
func TestSQLiteBackendOperations(t *testing.T) {
	newStore := func(t *testing.T) *CacheStoreImpl {
		store, err := NewCacheStore(chartTable, schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite store")
		t.Cleanup(func() { _ = store.Close() })
		return store.(*CacheStoreImpl)
	}

	t.Run("set and get", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set("key", []byte(`{"offset":0.1}`), 1, 1234567890))

		value, version, ts, err := store.Get("key")
		require.NoError(t, err)
		assert.Equal(t, `{"offset":0.1}`, string(value))
		assert.Equal(t, 1, version)
		assert.Equal(t, int64(1234567890), ts)
	})

	t.Run("upsert", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Set("key", []byte("old"), 1, 1000))
		require.NoError(t, store.Set("key", []byte("new"), 2, 2000))

		value, version, ts, err := store.Get("key")
		require.NoError(t, err)
		assert.Equal(t, "new", string(value))
		assert.Equal(t, 2, version)
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("missing key", func(t *testing.T) {
		store := newStore(t)
		_, _, _, err := store.Get("missing")
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	t.Run("status", func(t *testing.T) {
		store := newStore(t)
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.True(t, status.Connected)
		assert.Equal(t, 0, status.TotalEntries)

		require.NoError(t, store.Set("a", []byte("x"), 1, 1000))
		require.NoError(t, store.Set("b", []byte("y"), 1, 3000))
		status, err = store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, string(schema.SQLiteBackend), status.Backend)
		assert.Equal(t, 2, status.TotalEntries)
		assert.Equal(t, time.Unix(1000, 0), status.OldestChartTime)
		assert.Equal(t, time.Unix(3000, 0), status.NewestChartTime)
		assert.Positive(t, status.TableSizeBytes)
	})
}

// TestGetPlaceholder tests the getPlaceholder method for different backends.
func TestGetPlaceholder(t *testing.T) {
	assert.Equal(t, "?", (&CacheStoreImpl{backend: schema.SQLiteBackend}).getPlaceholder())
	assert.Equal(t, "?", (&CacheStoreImpl{backend: schema.MySQLBackend}).getPlaceholder())
	assert.Equal(t, "$1", (&CacheStoreImpl{backend: schema.PostgreSQLBackend}).getPlaceholder())
}

// TestGetUpsertQuery tests the getUpsertQuery method for different backends.
func TestGetUpsertQuery(t *testing.T) {
	tests := []struct {
		backend      schema.DatabaseBackend
		wantContains []string
	}{
		{schema.SQLiteBackend, []string{"INSERT OR REPLACE", `"chart_timing_cache"`}},
		{schema.MySQLBackend, []string{"INSERT INTO", "ON DUPLICATE KEY UPDATE", "`chart_timing_cache`"}},
		{schema.PostgreSQLBackend, []string{"ON CONFLICT (cache_key)", "DO UPDATE SET", "$1", "$4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			got := (&CacheStoreImpl{backend: tt.backend, tableName: chartTable}).getUpsertQuery()
			for _, want := range tt.wantContains {
				assert.Contains(t, got, want)
			}
		})
	}
}

// TestGetCreateTableQuery tests the getCreateTableQuery function for different backends.
func TestGetCreateTableQuery(t *testing.T) {
	assert.Contains(t, getCreateTableQuery(chartTable, schema.SQLiteBackend), "cache_value BLOB")
	assert.Contains(t, getCreateTableQuery(chartTable, schema.MySQLBackend), "cache_key VARCHAR(255)")
	assert.Contains(t, getCreateTableQuery(chartTable, schema.PostgreSQLBackend), "cache_value BYTEA")
}

func TestNewCacheStoreErrors(t *testing.T) {
	_, err := NewCacheStore("bad-name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)

	_, err = NewCacheStore(chartTable, "redis", "")
	assert.Error(t, err)
}

func TestCacheStoreWithNilDB(t *testing.T) {
	store := &CacheStoreImpl{backend: schema.NoneBackend}
	_, _, _, err := store.Get("key")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, store.Set("key", []byte("v"), 1, 1))
	assert.NoError(t, store.Close())

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
}

func TestClearCache(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "cache.db")
		require.NoError(t, os.WriteFile(dbPath, []byte("x"), 0o600))

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
		_, err := os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.SQLiteBackend, filepath.Join(t.TempDir(), "nope.db"), ""))
	})

	t.Run("sqlite empty path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache("redis", "", ""))
	})
}

func TestCacheStoreManagerConcurrency(t *testing.T) {
	resetGlobals()
	require.NoError(t, InitStores(schema.NoneBackend, ""))

	var wg sync.WaitGroup
	for range 20 {
		wg.Go(func() {
			assert.NotNil(t, Manager.GetChartStore())
		})
	}
	wg.Wait()
	CloseCaching()
}

func TestPrintCacheStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintCacheStatus(&buf, schema.CacheStatus{
		Backend:         "sqlite",
		Connected:       true,
		TotalEntries:    3,
		NewestChartTime: time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local),
		OldestChartTime: time.Date(2023, 1, 2, 3, 4, 5, 0, time.Local),
		TableSizeBytes:  4096,
	})
	out := buf.String()
	assert.Contains(t, out, "sqlite")
	assert.Contains(t, out, "2024-01-02 03:04:05")
	assert.Contains(t, out, "4096 bytes")

	buf.Reset()
	PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
	assert.NotContains(t, buf.String(), "Cached Charts")
}
