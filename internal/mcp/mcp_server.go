// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/jreiser/trendreport/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the trend report MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, source contract.RecordSource) *server.MCPServer {
	s := server.NewMCPServer(
		"Trend Report Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		source:  source,
	}

	// --- 1. Tool: get_untested_trends ---
	s.AddTool(mcp.NewTool("get_untested_trends",
		mcp.WithDescription("Summarize daily behavior trends comparing tested and untested check-in populations."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the population snapshots (defaults to current directory).")),
		mcp.WithBoolean("long", mcp.Description("Return the long-form (day, cohort, behavior) table instead of the wide table.")),
		mcp.WithNumber("smooth_window", mcp.Description("Centered moving-average window for the long table. Must be 0 or a positive odd number.")),
	), h.handleGetUntestedTrends)

	// --- 2. Tool: get_predicted_trends ---
	s.AddTool(mcp.NewTool("get_predicted_trends",
		mcp.WithDescription("Summarize daily behavior trends comparing tested and predicted check-in populations. Predicted individuals who later tested are excluded."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the population snapshots (defaults to current directory).")),
		mcp.WithBoolean("long", mcp.Description("Return the long-form (day, cohort, behavior) table instead of the wide table.")),
		mcp.WithNumber("smooth_window", mcp.Description("Centered moving-average window for the long table. Must be 0 or a positive odd number.")),
	), h.handleGetPredictedTrends)

	// --- 3. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Show results store statistics: backend, total runs and table sizes."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the trend report MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, source contract.RecordSource) error {
	s := NewMCPServer(baseCfg, source)
	return server.ServeStdio(s)
}
