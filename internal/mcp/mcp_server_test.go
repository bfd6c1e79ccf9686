package mcp_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/internal/iocache"
	mcp_internal "github.com/huangsam/replaystat/internal/mcp"
	"github.com/huangsam/replaystat/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, mgr contract.CacheManager, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := contract.DefaultConfig()
	baseCfg.Workers = 2
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	res, err := tool.Handler(context.Background(), mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	})
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestAnalyzeReplaysTool(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "k1"), []byte("0 0.010 0\n48 -0.020 1\n"), 0o644))

	res := callTool(t, nil, "analyze_replays", map[string]any{
		"prefix":     dir,
		"scorekeys":  []any{"k1", "k2"},
		"wifescores": []any{0.95, 0.8},
		"packs":      []any{"P", "P"},
		"songs":      []any{"S", "S"},
		"rates":      []any{1.0, 1.0},
		"judge":      5.0,
	})
	require.False(t, res.IsError, resultText(t, res))

	var result schema.ReplaysAnalysisResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Equal(t, []int{0}, result.ScoreIndices)
	assert.Equal(t, 5, result.Judge)
	assert.Equal(t, int64(2), result.DeviationCount)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, schema.SkipNotFound, result.Skipped[0].Reason)
}

func TestAnalyzeReplaysToolErrors(t *testing.T) {
	t.Run("mismatched lists", func(t *testing.T) {
		res := callTool(t, nil, "analyze_replays", map[string]any{
			"scorekeys":  []any{"k1", "k2"},
			"wifescores": []any{0.95},
			"packs":      []any{"P", "P"},
			"songs":      []any{"S", "S"},
			"rates":      []any{1.0, 1.0},
		})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "2 scorekeys but 1 wifescores")
	})

	t.Run("wrong element type", func(t *testing.T) {
		res := callTool(t, nil, "analyze_replays", map[string]any{
			"scorekeys": []any{1.0},
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid replay batch")
	})

	t.Run("bad judge", func(t *testing.T) {
		res := callTool(t, nil, "analyze_replays", map[string]any{
			"scorekeys": []any{}, "wifescores": []any{}, "packs": []any{}, "songs": []any{}, "rates": []any{},
			"judge": 11.0,
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "judge must be between 1 and 9")
	})
}

func TestBuildSkillTimelineTool(t *testing.T) {
	res := callTool(t, nil, "build_skill_timeline", map[string]any{
		"ssr_vectors": []any{[]any{20.0, 18.0}, []any{22.0, 17.0}, []any{25.0, 24.0}},
		"session_ids": []any{1.0, 1.0, 2.0},
		"rule":        "last",
		"alpha":       0.5,
	})
	require.False(t, res.IsError, resultText(t, res))

	var result schema.SkillTimelineResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Equal(t, []int{1, 2}, result.SessionIDs)
	assert.Equal(t, []float64{22, 25}, result.SessionOverallRatings)
	assert.InDelta(t, 23.5, result.AggOverallRatings[1], 1e-9)
}

func TestBuildSkillTimelineToolErrors(t *testing.T) {
	t.Run("unknown rule", func(t *testing.T) {
		res := callTool(t, nil, "build_skill_timeline", map[string]any{
			"ssr_vectors": []any{[]any{20.0}},
			"session_ids": []any{1.0},
			"rule":        "median",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "unknown timeline rule")
	})

	t.Run("length mismatch", func(t *testing.T) {
		res := callTool(t, nil, "build_skill_timeline", map[string]any{
			"ssr_vectors": []any{[]any{20.0}, []any{21.0}},
			"session_ids": []any{1.0},
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "2 rating vectors but 1 session ids")
	})
}

func TestGetCacheStatusTool(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		res := callTool(t, nil, "get_cache_status", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "disabled")
	})

	t.Run("status", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("GetStatus").Return(schema.CacheStatus{Backend: "sqlite", Connected: true, TotalEntries: 3}, nil)
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetChartStore").Return(store)

		res := callTool(t, mgr, "get_cache_status", map[string]any{})
		require.False(t, res.IsError, resultText(t, res))

		var status schema.CacheStatus
		require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &status))
		assert.Equal(t, 3, status.TotalEntries)
		assert.True(t, status.Connected)
		mgr.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("store error", func(t *testing.T) {
		store := &iocache.MockCacheStore{}
		store.On("GetStatus").Return(schema.CacheStatus{}, errors.New("connection refused"))
		mgr := &iocache.MockCacheManager{}
		mgr.On("GetChartStore").Return(store)

		res := callTool(t, mgr, "get_cache_status", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "connection refused")
	})
}
