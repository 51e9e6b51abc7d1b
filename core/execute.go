package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"golang.org/x/sync/errgroup"
)

// ScoreURLs evaluates cfg.URLs with at most cfg.Workers in flight and
// returns the evaluations in input order. Each evaluation is recorded in the
// run history when a store is configured; history failures only warn.
func ScoreURLs(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager, provider contract.ContextProvider) ([]schema.Evaluation, error) {
	if !shouldSuppressHeader(ctx) {
		slog.Info("scoring urls", "count", len(cfg.URLs), "workers", cfg.Workers, "plan", len(cfg.Plan))
	}
	for _, w := range cfg.Warnings {
		slog.Warn(w)
	}

	// --- 0. Begin Run Tracking (if configured) ---
	var store contract.HistoryStore
	if mgr != nil {
		store = mgr.GetHistoryStore()
	}
	if store != nil {
		runID, err := store.BeginRun(time.Now(), cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunID(ctx, runID)
		}
	}

	// --- 1. Evaluate URLs concurrently ---
	evals, err := evaluateAll(ctx, cfg, metrics.NewRegistry(), provider, store)
	if err != nil {
		return nil, err
	}

	// --- 2. End Run Tracking ---
	if runID, ok := getRunID(ctx); ok && store != nil {
		if err := store.EndRun(runID, time.Now(), len(evals)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}
	return evals, nil
}

// evaluateAll runs the worker pool. Results land at their input index so
// output order never depends on scheduling.
func evaluateAll(ctx context.Context, cfg *contract.Config, reg *engine.Registry, provider contract.ContextProvider, store contract.HistoryStore) ([]schema.Evaluation, error) {
	evals := make([]schema.Evaluation, len(cfg.URLs))
	runID, tracking := getRunID(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))
	for i, url := range cfg.URLs {
		g.Go(func() error {
			ev, err := EvaluateURL(gctx, cfg, reg, provider, url)
			if err != nil {
				return err
			}
			evals[i] = ev
			if tracking && store != nil {
				if err := store.RecordEvaluation(runID, toEvaluationRecord(runID, url, ev)); err != nil {
					logTrackingError("RecordEvaluation", url, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evals, nil
}

// logTrackingError logs history tracking errors to stderr without disrupting scoring.
func logTrackingError(operation, url string, err error) {
	contract.LogWarn(fmt.Sprintf("Run tracking failed for %s on %s", operation, url), err)
}
