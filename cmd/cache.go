package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/iocache"
	"github.com/huangsam/replaystat/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheStoreSetupWrapper runs cacheSetup and opens the chart store.
func cacheStoreSetupWrapper(_ *cobra.Command, _ []string) error {
	if err := cacheSetup(); err != nil {
		return err
	}
	if err := iocache.InitStores(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}
	return nil
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by analysis commands. This avoids validating
// analysis settings for simple cache operations.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the chart timing cache (improves performance)",
	Long: `Manage the cache of parsed chart timing that speeds up timed analyses.

Replaystat caches the timing of every simfile it reads, keyed by path and
invalidated when the simfile changes on disk.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no caching)

Subcommands:
  status  - Show cache statistics and connection info
  clear   - Remove all cached data
  migrate - Move the cache schema to a given version

Examples:
  # Check cache status
  replaystat cache status

  # Clear cache after reorganizing the songs directory
  replaystat cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached chart timing",
	Long: `Delete all cached chart timing from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  replaystat cache clear

  # Clear MySQL cache (set connection string via env variable)
  REPLAYSTAT_CACHE_BACKEND=mysql REPLAYSTAT_CACHE_DB_CONNECT="..." replaystat cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearCache(cfg.CacheBackend, contract.GetCacheDBFilePath(), cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the chart timing cache.

Displays:
- Backend type and connection status
- Total number of cached charts
- Newest and oldest simfile modification times
- Cache table size

Examples:
  # Check cache status
  replaystat cache status`,
	PreRunE: cacheStoreSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetChartStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("no cache store for backend %s", cfg.CacheBackend))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}

// cacheMigrateCmd moves the cache schema between versions.
var cacheMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the chart timing cache schema",
	Long: `Apply or roll back the versioned schema migrations of the chart timing cache.

Examples:
  # Migrate to the latest schema
  replaystat cache migrate

  # Roll back to the first schema version
  replaystat cache migrate --target-version 1`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateCache(os.Stdout, cfg.CacheBackend, cfg.CacheDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate cache", err)
		}
	},
}
