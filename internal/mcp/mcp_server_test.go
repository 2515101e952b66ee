package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debtengine/debtengine/core"
	"github.com/debtengine/debtengine/internal/contract"
	mcp_internal "github.com/debtengine/debtengine/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		WorkspaceRoot: "/tmp/ws",
	}

	// A nil-collaborator engine is fine here: validation errors short-circuit
	// before any scoring or store access happens.
	engine := core.NewEngine(nil, nil)
	s := mcp_internal.NewMCPServer(baseCfg, engine)

	ctx := context.Background()

	t.Run("rescore_file missing file_path", func(t *testing.T) {
		tool := s.GetTool("rescore_file")
		require.NotNil(t, tool, "Tool rescore_file should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "rescore_file",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "file_path is required")
	})

	t.Run("get_breakdown missing file_path", func(t *testing.T) {
		tool := s.GetTool("get_breakdown")
		require.NotNil(t, tool, "Tool get_breakdown should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_breakdown",
				Arguments: map[string]any{},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "file_path is required")
	})

	t.Run("score_workspace invalid history_days", func(t *testing.T) {
		tool := s.GetTool("score_workspace")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "score_workspace",
				Arguments: map[string]any{
					"history_days": 1000.0, // Above the allowed window
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "history_days must be between")
	})

	t.Run("get_change_couplings invalid min_ratio", func(t *testing.T) {
		tool := s.GetTool("get_change_couplings")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_change_couplings",
				Arguments: map[string]any{
					"min_ratio": 1.5, // Out of range
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "min_ratio must be between")
	})

	t.Run("all five tools registered", func(t *testing.T) {
		for _, name := range []string{"score_workspace", "rescore_file", "get_heatmap", "get_breakdown", "get_change_couplings"} {
			assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
		}
	})
}
