package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/internal/fetcher"
	"github.com/huangsam/trustscore/internal/urlparse"
	"github.com/huangsam/trustscore/schema"
)

// EvaluationBuilder scores a single URL step by step.
// A step that cannot produce data leaves the record null and the later
// steps become no-ops; only engine failures are returned as errors.
type EvaluationBuilder struct {
	ctx      context.Context
	cfg      *contract.Config
	reg      *engine.Registry
	provider contract.ContextProvider
	url      string

	target  schema.Target
	input   engine.Context
	results map[string]engine.MetricResult
	summary engine.Summary
	scored  bool
	warning string
	err     error
}

// NewEvaluationBuilder is the starting point for evaluating url.
func NewEvaluationBuilder(ctx context.Context, cfg *contract.Config, reg *engine.Registry, provider contract.ContextProvider, url string) *EvaluationBuilder {
	return &EvaluationBuilder{
		ctx:      ctx,
		cfg:      cfg,
		reg:      reg,
		provider: provider,
		url:      url,
	}
}

// Classify detects the artifact kind, category and name.
func (b *EvaluationBuilder) Classify() *EvaluationBuilder {
	b.target = urlparse.Classify(b.url)
	if !b.target.Known() {
		slog.Debug("unrecognized url", "url", b.url)
	}
	return b
}

// FetchContext asks the provider for the evaluation context.
func (b *EvaluationBuilder) FetchContext() *EvaluationBuilder {
	if b.err != nil {
		return b
	}
	if b.provider == nil {
		b.warning = "no context provider configured"
		return b
	}
	input, err := b.provider.Fetch(b.ctx, b.target)
	switch {
	case err == nil:
		b.input = input
	case b.ctx.Err() != nil:
		b.err = b.ctx.Err()
	case errors.Is(err, fetcher.ErrNoProvider):
		b.warning = err.Error()
		slog.Info("no context for url", "url", b.url)
	default:
		b.warning = err.Error()
		slog.Warn("context fetch failed", "url", b.url, "err", err)
	}
	return b
}

// RunMetrics runs the configured plan against the fetched context.
func (b *EvaluationBuilder) RunMetrics() *EvaluationBuilder {
	if b.err != nil || b.input == nil {
		return b
	}
	results, summary, err := engine.RunMetrics(b.cfg.Plan, b.input, b.reg, b.cfg.Thresholds)
	if err != nil {
		b.err = err
		return b
	}
	b.results, b.summary, b.scored = results, summary, true
	return b
}

// Build finalizes the evaluation.
func (b *EvaluationBuilder) Build() (schema.Evaluation, error) {
	if b.err != nil {
		return schema.Evaluation{}, fmt.Errorf("failed to evaluate %s: %w", b.url, b.err)
	}
	ev := schema.Evaluation{
		Target:      b.target,
		EvaluatedAt: time.Now(),
		Warning:     b.warning,
	}
	if !b.scored {
		ev.Record = newNullRecord(b.target)
		return ev, nil
	}
	ev.Record = buildRecord(b.target, b.results, b.summary)
	binary := b.summary.Binary
	ev.NetScoreBinary = &binary
	ev.Breakdown = breakdownOf(b.summary)
	return ev, nil
}

// EvaluateURL classifies, fetches and scores one URL.
func EvaluateURL(ctx context.Context, cfg *contract.Config, reg *engine.Registry, provider contract.ContextProvider, url string) (schema.Evaluation, error) {
	return NewEvaluationBuilder(ctx, cfg, reg, provider, url).
		Classify().     // Detects kind, category and name
		FetchContext(). // Gathers metadata into the context
		RunMetrics().   // Runs the plan and combines the net score
		Build()
}
