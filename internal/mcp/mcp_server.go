// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the replaystat MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Replaystat Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: analyze_replays ---
	s.AddTool(mcp.NewTool("analyze_replays",
		mcp.WithDescription("Decode a batch of replays and reduce them into accuracy, timing and speed statistics."),
		mcp.WithString("prefix", mcp.Description("Directory holding replay files named by scorekey (defaults to the configured prefix).")),
		mcp.WithString("songs_root", mcp.Description("Directory holding pack/song folders used to time notes.")),
		mcp.WithArray("scorekeys", mcp.Description("Scorekey of each replay."), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("wifescores", mcp.Description("Stored wifescore of each replay, in the 0 to 1 range."), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithArray("packs", mcp.Description("Pack name of each replay."), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("songs", mcp.Description("Song folder name of each replay."), mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("rates", mcp.Description("Playback rate of each replay."), mcp.Required(), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithNumber("judge", mcp.Description("Judge level used to classify hits (1 to 9).")),
		mcp.WithNumber("alternate_judge", mcp.Description("Judge level of the alternate wifescores (1 to 9).")),
	), h.handleAnalyzeReplays)

	// --- 2. Tool: build_skill_timeline ---
	s.AddTool(mcp.NewTool("build_skill_timeline",
		mcp.WithDescription("Group skill rating vectors into sessions and smooth them into an aggregate timeline."),
		mcp.WithArray("ssr_vectors", mcp.Description("Rating vectors in play order; element 0 is the overall rating."), mcp.Required(),
			mcp.Items(map[string]any{"type": "array", "items": map[string]any{"type": "number"}})),
		mcp.WithArray("session_ids", mcp.Description("Session id of each rating vector."), mcp.Required(), mcp.Items(map[string]any{"type": "integer"})),
		mcp.WithString("rule", mcp.Description("Session representative rule. Defaults to 'max'."),
			mcp.Enum(string(schema.MaxRule), string(schema.LastRule), string(schema.AggregateRule), string(schema.CumulativeRule))),
		mcp.WithNumber("alpha", mcp.Description("Weight of the newest session in the aggregate, in (0, 1].")),
		mcp.WithNumber("multiplier", mcp.Description("Scale applied by the aggregate and cumulative rules.")),
		mcp.WithBoolean("overall_from_categories", mcp.Description("Aggregate the category ratings (elements 1..) into the overall rating.")),
		mcp.WithNumber("overall_multiplier", mcp.Description("Scale applied when aggregating categories into the overall rating. Defaults to 1.125.")),
	), h.handleBuildSkillTimeline)

	// --- 3. Tool: get_cache_status ---
	s.AddTool(mcp.NewTool("get_cache_status",
		mcp.WithDescription("Report the state of the chart timing cache."),
	), h.handleGetCacheStatus)

	return s
}

// StartMCPServer starts the replaystat MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
