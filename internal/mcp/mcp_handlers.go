package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/replaystat/core"
	"github.com/huangsam/replaystat/internal/contract"
	"github.com/huangsam/replaystat/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// bindArguments decodes the tool arguments into target through their JSON form.
func bindArguments(request mcp.CallToolRequest, target any) error {
	raw, err := json.Marshal(request.GetArguments())
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}

func (h *toolHandler) handleAnalyzeReplays(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if j := request.GetInt("judge", 0); j != 0 {
		cfg.Judge = j
	}
	if j := request.GetInt("alternate_judge", 0); j != 0 {
		cfg.AlternateJudge = j
	}

	var input schema.AnalysisInput
	if err := bindArguments(request, &input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid replay batch: %v", err)), nil
	}

	result, err := core.RunAnalysis(core.WithSuppressHeader(ctx), cfg, h.mgr, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBuildSkillTimeline(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if r := request.GetString("rule", ""); r != "" {
		cfg.TimelineRule = schema.TimelineRule(r)
	}
	if a := request.GetFloat("alpha", 0); a != 0 {
		cfg.TimelineAlpha = a
	}
	if m := request.GetFloat("multiplier", 0); m != 0 {
		cfg.TimelineMultiplier = m
	}
	cfg.OverallFromCategories = request.GetBool("overall_from_categories", cfg.OverallFromCategories)
	if m := request.GetFloat("overall_multiplier", 0); m != 0 {
		cfg.TimelineOverallMultiplier = m
	}

	var input schema.TimelineInput
	if err := bindArguments(request, &input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid rating history: %v", err)), nil
	}

	result, err := core.BuildTimeline(core.WithSuppressHeader(ctx), cfg, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("timeline failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCacheStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.mgr == nil {
		return mcp.NewToolResultError("chart cache is disabled"), nil
	}
	store := h.mgr.GetChartStore()
	if store == nil {
		return mcp.NewToolResultError("chart cache is disabled"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cache status failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
