package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/trustscore/core"
	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	mgr      contract.HistoryManager
	provider contract.ContextProvider
}

// netSummary is the net score part of a score_url result.
type netSummary struct {
	Weighted  *schema.Score        `json:"weighted"`
	Binary    *int                 `json:"binary"`
	Label     string               `json:"label"`
	Threshold float64              `json:"threshold"`
	Breakdown []schema.MetricScore `json:"breakdown"`
}

// scoreResult is the score_url payload.
type scoreResult struct {
	URL      string        `json:"url"`
	Kind     string        `json:"kind"`
	Record   schema.Record `json:"record"`
	NetScore netSummary    `json:"net_score"`
	Warning  string        `json:"warning,omitempty"`
}

func (h *toolHandler) handleScoreURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url := strings.TrimSpace(request.GetString("url", ""))
	if url == "" {
		return mcp.NewToolResultError("url is required"), nil
	}

	cfg := h.baseCfg.Clone()
	if th := request.GetFloat("netscore_threshold", -1); th >= 0 {
		if th > 1 {
			return mcp.NewToolResultError(fmt.Sprintf("netscore_threshold must be between 0 and 1 (received %g)", th)), nil
		}
		cfg.Thresholds.NetScore = th
	}

	ev, err := core.ScoreURL(core.WithSuppressHeader(ctx), cfg, h.mgr, h.provider, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}

	result := scoreResult{
		URL:    url,
		Kind:   string(ev.Target.Kind),
		Record: ev.Record,
		NetScore: netSummary{
			Weighted:  ev.Record.NetScore,
			Binary:    ev.NetScoreBinary,
			Label:     schema.GetPlainLabel(ev.NetScoreBinary),
			Threshold: cfg.Thresholds.NetScore,
			Breakdown: ev.Breakdown,
		},
		Warning: ev.Warning,
	}
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload := struct {
		Metrics    []engine.Operationalization `json:"metrics"`
		Thresholds engine.Thresholds           `json:"thresholds"`
	}{
		Metrics:    h.baseCfg.Plan,
		Thresholds: h.baseCfg.Thresholds,
	}
	jsonData, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode metrics: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
