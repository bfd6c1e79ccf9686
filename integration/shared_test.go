//go:build basic || database

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedReplaystatPath holds the path to a shared replaystat binary built once for all tests.
	sharedReplaystatPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getReplaystatBinary returns the path to the replaystat binary, building it once if needed.
func getReplaystatBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		var err error
		tempDir, err = os.MkdirTemp("", "replaystat-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		binPath := filepath.Join(tempDir, "replaystat")
		buildCmd := exec.Command("go", "build", "-o", binPath, ".")
		buildCmd.Dir = ".." // Build from project root
		if err := buildCmd.Run(); err != nil {
			panic(fmt.Sprintf("failed to build replaystat: %v", err))
		}

		sharedReplaystatPath = binPath
	})

	return sharedReplaystatPath
}

// fixturePaths returns the absolute replay prefix and songs root shipped with the resolver tests.
func fixturePaths(t *testing.T) (prefix, songsRoot string) {
	t.Helper()
	prefix, err := filepath.Abs(filepath.Join("..", "internal", "resolver", "testdata", "replays"))
	require.NoError(t, err)
	songsRoot, err = filepath.Abs(filepath.Join("..", "internal", "resolver", "testdata", "songs"))
	require.NoError(t, err)
	return prefix, songsRoot
}

// writeFixture writes content to name inside a fresh temp directory.
func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// runReplaystatCommand runs the binary with extra environment variables and
// returns its stdout. Stderr is logged when the command fails.
func runReplaystatCommand(t *testing.T, env []string, args ...string) ([]byte, error) {
	t.Helper()
	cmd := exec.Command(getReplaystatBinary(), args...)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Logf("Command failed: %s\nStdout: %s\nStderr: %s", cmd.String(), stdout.String(), stderr.String())
		return nil, err
	}
	return stdout.Bytes(), nil
}
