package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jreiser/trendreport/core"
	"github.com/jreiser/trendreport/core/cohort"
	"github.com/jreiser/trendreport/internal/contract"
	"github.com/jreiser/trendreport/internal/iostore"
	"github.com/jreiser/trendreport/internal/outwriter"
	"github.com/jreiser/trendreport/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	source  contract.RecordSource
}

// computeFunc computes the labeled summary for one report mode.
type computeFunc func(cfg *contract.Config, source contract.RecordSource) ([]schema.LabeledRow, error)

func (h *toolHandler) handleGetUntestedTrends(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleTrends(request, core.GetUntestedCohortRows)
}

func (h *toolHandler) handleGetPredictedTrends(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.handleTrends(request, core.GetPredictedCohortRows)
}

// handleTrends is the shared handler body for both report tools.
func (h *toolHandler) handleTrends(request mcp.CallToolRequest, compute computeFunc) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if d := request.GetString("data_dir", ""); d != "" {
		cfg.ApplyDataDir(d)
	}
	long := request.GetBool("long", false)
	smoothWindow := request.GetInt("smooth_window", 0)
	if smoothWindow < 0 || (smoothWindow > 0 && smoothWindow%2 == 0) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid smooth_window %d: must be 0 or a positive odd number", smoothWindow)), nil
	}

	labeled, err := compute(cfg, h.source)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}

	if long {
		longRows := cohort.ToLong(labeled)
		longRows, err = cohort.SmoothLong(longRows, smoothWindow)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("smoothing failed: %v", err)), nil
		}
		jsonData, _ := json.MarshalIndent(longRows, "", "  ")
		return mcp.NewToolResultText(string(jsonData)), nil
	}

	jsonData, _ := json.MarshalIndent(outwriter.ToWideRecords(labeled), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := iostore.Manager.GetResultsStore()
	if store == nil {
		return mcp.NewToolResultError("results store is not initialized"), nil
	}

	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get store status: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(status, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
