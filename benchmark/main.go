// Package main provides a performance benchmarking tool for the Replaystat CLI.
// It generates synthetic replay batches of increasing size, runs analyze on each
// one several times with and without the chart cache, treating the first cached
// run as cold and averaging the rest as warm, and writes the timings as CSV.
//
// Prerequisites:
// - replaystat binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic batches and the cache database are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	Batch       string
	Replays     int
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	NotesPerRun int
	SongsPerSet int
	BatchSizes  map[string]int
	BatchOrder  []string
}

// batchPaths locates one generated batch on disk.
type batchPaths struct {
	manifest  string
	prefix    string
	songsRoot string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoCacheRuns: 3,
		CacheRuns:   4,
		NotesPerRun: 2000,
		SongsPerSet: 50,
		BatchSizes: map[string]int{
			"small":  100,
			"medium": 1000,
			"large":  5000,
		},
		BatchOrder: []string{"small", "medium", "large"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the replaystat binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("replaystat"); err != nil {
		return fmt.Errorf("replaystat binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work dir %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks generates every batch and benchmarks analyze on it
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d batches, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.BatchOrder), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, name := range config.BatchOrder {
		size := config.BatchSizes[name]
		fmt.Printf("Generating %s batch (%d replays)\n", name, size)

		paths, err := generateBatch(config, name, size)
		if err != nil {
			return nil, fmt.Errorf("generate %s batch: %w", name, err)
		}
		results = append(results, runBenchmarkSuite(config, name, size, paths))
	}

	return results, nil
}

// generateBatch writes replay files, simfiles and a manifest for one batch
func generateBatch(config BenchmarkConfig, name string, size int) (batchPaths, error) {
	root := filepath.Join(config.WorkDir, name)
	paths := batchPaths{
		manifest:  filepath.Join(root, "manifest.csv"),
		prefix:    filepath.Join(root, "replays"),
		songsRoot: filepath.Join(root, "songs"),
	}
	if err := os.MkdirAll(paths.prefix, 0o755); err != nil {
		return paths, err
	}

	for s := range config.SongsPerSet {
		dir := filepath.Join(paths.songsRoot, "Bench", fmt.Sprintf("Song%03d", s))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return paths, err
		}
		sm := fmt.Sprintf("#OFFSET:-0.050;\n#BPMS:0.000=%d.000;\n", 120+s*4)
		if err := os.WriteFile(filepath.Join(dir, "song.sm"), []byte(sm), 0o600); err != nil {
			return paths, err
		}
	}

	rng := rand.New(rand.NewPCG(uint64(size), 42))
	var manifest strings.Builder
	manifest.WriteString("scorekey,wifescore,pack,song,rate\n")
	for i := range size {
		key := fmt.Sprintf("%s%06d", name, i)
		if err := os.WriteFile(filepath.Join(paths.prefix, key), syntheticReplay(rng, config.NotesPerRun), 0o600); err != nil {
			return paths, err
		}
		fmt.Fprintf(&manifest, "%s,%.4f,Bench,Song%03d,%.1f\n", key, 0.90+rng.Float64()*0.09, i%config.SongsPerSet, 1.0+float64(rng.IntN(5))*0.1)
	}
	return paths, os.WriteFile(paths.manifest, []byte(manifest.String()), 0o600)
}

// syntheticReplay produces a replay with normally distributed offsets and occasional misses
func syntheticReplay(rng *rand.Rand, notes int) []byte {
	var b strings.Builder
	for n := range notes {
		dev := rng.NormFloat64() * 0.018
		if rng.IntN(200) == 0 {
			dev = 1.0
		}
		fmt.Fprintf(&b, "%d %.4f %d\n", n*12, dev, rng.IntN(4))
	}
	return []byte(b.String())
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a batch
func runBenchmarkSuite(config BenchmarkConfig, name string, size int, paths batchPaths) BenchmarkResult {
	fmt.Printf("Running analyze on %s batch\n", name)

	runPhase := func(cacheArgs []string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, paths, cacheArgs, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avgTime = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		}
		return cold, avgTime
	}

	_, noCacheAvg := runPhase([]string{"--cache-backend", "none"}, config.NoCacheRuns, "No-cache")

	dbPath := filepath.Join(config.WorkDir, name+"-charts.db")
	_ = os.Remove(dbPath)
	coldTime, warmAvg := runPhase([]string{"--cache-backend", "sqlite", "--cache-db-connect", dbPath}, config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Batch:       name,
		Replays:     size,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes analyze multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, paths batchPaths, cacheArgs []string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"analyze", paths.manifest,
		"--prefix", paths.prefix,
		"--songs-root", paths.songsRoot,
		"--workers", fmt.Sprint(config.Workers),
	}
	args = append(args, cacheArgs...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("replaystat", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Analyzed") &&
		strings.Contains(outputStr, "replays in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/replaystat_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"batch", "replays", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range results {
		record := []string{result.Batch, fmt.Sprint(result.Replays), result.NoCacheTime, result.ColdTime, result.WarmTime}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	fmt.Printf("Analyze:\n")
	for _, result := range results {
		fmt.Printf("  %-8s (%5d replays): No-cache: %s, Cold: %s, Warm: %s\n",
			result.Batch, result.Replays, result.NoCacheTime, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
