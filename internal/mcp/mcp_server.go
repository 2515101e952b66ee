// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/debtengine/debtengine/core"
	"github.com/debtengine/debtengine/internal/contract"
)

// NewMCPServer initializes and configures the debtengine MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, engine *core.Engine) *server.MCPServer {
	s := server.NewMCPServer(
		"Debtengine Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		engine:  engine,
	}

	// --- 1. Tool: score_workspace ---
	s.AddTool(mcp.NewTool("score_workspace",
		mcp.WithDescription("Run a full technical-debt scan: score every source file with eight weighted signals and return the ranked results."),
		mcp.WithString("workspace_path", mcp.Description("Path to the workspace root (defaults to the configured workspace).")),
		mcp.WithNumber("history_days", mcp.Description("Git history window in days (7-365).")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of ranked files returned.")),
	), h.handleScoreWorkspace)

	// --- 2. Tool: rescore_file ---
	s.AddTool(mcp.NewTool("rescore_file",
		mcp.WithDescription("Rescore a single file incrementally; an unchanged file returns its cached score without recomputing."),
		mcp.WithString("file_path", mcp.Description("Path to the file, absolute or workspace-relative."), mcp.Required()),
		mcp.WithString("workspace_path", mcp.Description("Path to the workspace root.")),
	), h.handleRescoreFile)

	// --- 3. Tool: get_heatmap ---
	s.AddTool(mcp.NewTool("get_heatmap",
		mcp.WithDescription("Return the directory tree of per-file debt scores for the workspace."),
		mcp.WithString("workspace_path", mcp.Description("Path to the workspace root.")),
	), h.handleGetHeatmap)

	// --- 4. Tool: get_breakdown ---
	s.AddTool(mcp.NewTool("get_breakdown",
		mcp.WithDescription("Explain one file's composite score: raw score, weight, contribution and evidence per signal."),
		mcp.WithString("file_path", mcp.Description("Path to the file, absolute or workspace-relative."), mcp.Required()),
		mcp.WithString("workspace_path", mcp.Description("Path to the workspace root.")),
	), h.handleGetBreakdown)

	// --- 5. Tool: get_change_couplings ---
	s.AddTool(mcp.NewTool("get_change_couplings",
		mcp.WithDescription("List file pairs that keep changing in the same commits, with co-change counts and import hints."),
		mcp.WithString("workspace_path", mcp.Description("Path to the workspace root.")),
		mcp.WithNumber("min_ratio", mcp.Description("Minimum co-change ratio in [0,1]. Defaults to 0.05.")),
	), h.handleGetChangeCouplings)

	return s
}

// StartMCPServer starts the debtengine MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, engine *core.Engine) error {
	s := NewMCPServer(baseCfg, engine)
	return server.ServeStdio(s)
}
