package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/debtengine/debtengine/core"
	"github.com/debtengine/debtengine/internal/contract"
	"github.com/debtengine/debtengine/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	engine  *core.Engine
}

// workspaceConfig clones the base config and applies the optional
// workspace_path argument.
func (h *toolHandler) workspaceConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("workspace_path", ""); p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("invalid workspace_path: %w", err)
		}
		cfg.WorkspaceRoot = filepath.Clean(abs)
	}
	return cfg, nil
}

// scanSummary is the JSON shape returned by the score_workspace tool.
type scanSummary struct {
	WorkspaceScore float64                    `json:"workspace_score"`
	FileCount      int                        `json:"file_count"`
	HighDebtCount  int                        `json:"high_debt_count"`
	DurationMS     int64                      `json:"duration_ms"`
	Files          []schema.EnrichedFileScore `json:"files"`
}

func (h *toolHandler) handleScoreWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.workspaceConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if d := request.GetInt("history_days", 0); d != 0 {
		if d < schema.MinHistoryDays || d > schema.MaxHistoryDays {
			return mcp.NewToolResultError(fmt.Sprintf("history_days must be between %d and %d", schema.MinHistoryDays, schema.MaxHistoryDays)), nil
		}
		cfg.HistoryDays = d
		cfg.Since = time.Now().Add(-time.Duration(d) * 24 * time.Hour)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	result, _, err := h.engine.GetScanResults(core.WithSuppressHeader(ctx), cfg, nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	summary := scanSummary{
		WorkspaceScore: result.WorkspaceScore,
		FileCount:      result.FileCount,
		HighDebtCount:  result.HighDebtCount,
		DurationMS:     result.DurationMS,
		Files:          schema.EnrichFiles(result.Files, cfg.ResultLimit),
	}
	jsonData, _ := json.MarshalIndent(summary, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRescoreFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := request.GetString("file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	cfg, err := h.workspaceConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	score, _, err := h.engine.GetRescoreResults(core.WithSuppressHeader(ctx), cfg, filePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("rescore failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(score, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetHeatmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.workspaceConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	heatmap, _, err := h.engine.GetHeatmapResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("heatmap failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(heatmap, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBreakdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := request.GetString("file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("file_path is required"), nil
	}
	cfg, err := h.workspaceConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	breakdown, _, err := h.engine.GetBreakdownResults(core.WithSuppressHeader(ctx), cfg, filePath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("breakdown failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(breakdown, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetChangeCouplings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.workspaceConfig(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if r := request.GetFloat("min_ratio", -1); r >= 0 {
		if r > 1 {
			return mcp.NewToolResultError("min_ratio must be between 0.0 and 1.0"), nil
		}
		cfg.MinCouplingRatio = r
	}

	pairs, _, err := h.engine.GetCouplingResults(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("couplings failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(pairs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
