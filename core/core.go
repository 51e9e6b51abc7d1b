// Package core has core logic for evaluating artifact URLs into trust scores.
package core

import (
	"context"
	"time"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/internal/fetcher"
	"github.com/huangsam/trustscore/internal/outwriter"
	"github.com/huangsam/trustscore/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// ExecuteScore evaluates every configured URL and writes the records.
// It serves as the main entry point for the 'score' command.
func ExecuteScore(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	provider, err := NewProvider(cfg)
	if err != nil {
		return err
	}
	evals, err := ScoreURLs(ctx, cfg, mgr, provider)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteEvaluations(evals, cfg, duration)
}

// ExecuteMetrics writes the active plan.
// It serves as the main entry point for the 'metrics' command.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	return outwriter.NewOutWriter().WritePlan(cfg.Plan, cfg)
}

// ScoreURL evaluates a single URL with the settings of cfg. It serves the
// MCP tools, which score one artifact per call.
func ScoreURL(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, provider contract.ContextProvider, url string) (schema.Evaluation, error) {
	single := cfg.Clone()
	single.URLs = []string{url}
	single.Warnings = nil
	evals, err := ScoreURLs(ctx, single, mgr, provider)
	if err != nil {
		return schema.Evaluation{}, err
	}
	return evals[0], nil
}

// NewProvider builds the context provider chain described by cfg.
func NewProvider(cfg *contract.Config) (*fetcher.ChainProvider, error) {
	return fetcher.NewDefaultChain(fetcher.Options{
		ContextFile:  cfg.ContextFile,
		Offline:      cfg.Offline,
		GitHubToken:  cfg.GitHubToken,
		GitHubAPIURL: cfg.GitHubAPIURL,
		HFEndpoint:   cfg.HFEndpoint,
		Timeout:      cfg.HTTPTimeout,
		Licenses:     cfg.CompatibleLicenses,
	})
}
