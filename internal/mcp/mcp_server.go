// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/trustscore/core"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the trustscore MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.HistoryManager, provider contract.ContextProvider) *server.MCPServer {
	s := server.NewMCPServer(
		"Trustscore Evaluation Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		mgr:      mgr,
		provider: provider,
	}

	// --- 1. Tool: score_url ---
	s.AddTool(mcp.NewTool("score_url",
		mcp.WithDescription("Score a model, dataset or code repository URL and return its trust record with the net score breakdown."),
		mcp.WithString("url", mcp.Description("Hugging Face model, Hugging Face dataset or GitHub repository URL."), mcp.Required()),
		mcp.WithNumber("netscore_threshold", mcp.Description("Pass/fail threshold for the net score. Defaults to the configured threshold.")),
	), h.handleScoreURL)

	// --- 2. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List the active metrics with their weights, normalization and thresholds."),
	), h.handleListMetrics)

	return s
}

// StartMCPServer starts the trustscore MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	provider, err := core.NewProvider(baseCfg)
	if err != nil {
		return err
	}
	s := NewMCPServer(baseCfg, mgr, provider)
	return server.ServeStdio(s)
}
