package core

import (
	"context"
	"errors"
	"sync"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
)

const widgetsURL = "https://github.com/acme/widgets"

// widgetsContext is a complete context. With the default plan it scores:
// ramp 0.5, bus 0.75, perf 1, license 1, size 0.2, availability 1,
// dataset quality 0.5 and code quality 0.4. Every metric passes except code
// quality (weight 0.15); size fails, which counts as a pass once inverted.
// The net score is 0.85.
func widgetsContext() engine.Context {
	return engine.Context{
		"ramp":                map[string]any{"likes_norm": 1.0, "downloads_norm": 0.5, "recency_norm": 0.0},
		"repo_meta":           map[string]any{"top_contributor_pct": 0.25},
		"requirements_score":  1.0,
		"license":             "MIT",
		"compatible_licenses": []string{"mit"},
		"size_components":     map[string]any{"loc_norm": 0.2},
		"availability":        map[string]any{"has_code": true, "has_dataset": true, "links_ok": true},
		"dataset_quality":     map[string]any{"documentation": 0.5},
		"code_quality":        map[string]any{"style_norm": 0.4},
	}
}

// stubProvider serves fixed contexts keyed by URL.
type stubProvider struct {
	mu       sync.Mutex
	contexts map[string]engine.Context
	err      error
	calls    int
}

var _ contract.ContextProvider = &stubProvider{} // Compile-time check

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Supports(schema.Target) bool { return true }

func (s *stubProvider) Fetch(_ context.Context, target schema.Target) (engine.Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.contexts[target.URL]
	if !ok {
		return nil, errors.New("no fixture for " + target.URL)
	}
	return c, nil
}

// newTestConfig returns a config running the default plan with 0.5 thresholds.
func newTestConfig(urls ...string) *contract.Config {
	return &contract.Config{
		URLs:       urls,
		Workers:    2,
		Precision:  2,
		Output:     schema.TextOut,
		Thresholds: engine.DefaultThresholds(),
		Plan:       metrics.DefaultPlan(),
	}
}
