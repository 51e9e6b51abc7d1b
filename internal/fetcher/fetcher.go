// Package fetcher builds evaluation contexts from fixtures, GitHub and Hugging Face.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
)

// ErrNoProvider is returned when no provider can describe a target.
var ErrNoProvider = errors.New("no context provider for url")

// CompatibleLicensesKey is the context key the license metric reads.
const CompatibleLicensesKey = "compatible_licenses"

// ChainProvider asks each provider in order and uses the first that supports the target.
type ChainProvider struct {
	providers []contract.ContextProvider
	licenses  []string
}

var _ contract.ContextProvider = &ChainProvider{} // Compile-time check

// NewChainProvider returns a chain over providers. Nil providers are skipped.
// When licenses is non-empty it is injected into every context that does not
// already carry its own list.
func NewChainProvider(licenses []string, providers ...contract.ContextProvider) *ChainProvider {
	chain := &ChainProvider{licenses: slices.Clone(licenses)}
	for _, p := range providers {
		if p != nil {
			chain.providers = append(chain.providers, p)
		}
	}
	return chain
}

// Name implements contract.ContextProvider.
func (c *ChainProvider) Name() string { return "chain" }

// Supports implements contract.ContextProvider.
func (c *ChainProvider) Supports(target schema.Target) bool {
	return slices.ContainsFunc(c.providers, func(p contract.ContextProvider) bool {
		return p.Supports(target)
	})
}

// Fetch implements contract.ContextProvider.
func (c *ChainProvider) Fetch(ctx context.Context, target schema.Target) (engine.Context, error) {
	for _, p := range c.providers {
		if !p.Supports(target) {
			continue
		}
		slog.Debug("fetching context", "provider", p.Name(), "url", target.URL)
		out, err := p.Fetch(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("%s provider: %w", p.Name(), err)
		}
		if out == nil {
			out = engine.Context{}
		}
		if _, ok := out[CompatibleLicensesKey]; !ok && len(c.licenses) > 0 {
			out[CompatibleLicensesKey] = slices.Clone(c.licenses)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNoProvider, target.URL)
}

// Providers returns the provider names in lookup order.
func (c *ChainProvider) Providers() []string {
	names := make([]string, len(c.providers))
	for i, p := range c.providers {
		names[i] = p.Name()
	}
	return names
}

// Options configures NewDefaultChain.
type Options struct {
	ContextFile  string
	Offline      bool
	GitHubToken  string
	GitHubAPIURL string
	HFEndpoint   string
	Timeout      time.Duration
	Licenses     []string
}

// NewDefaultChain builds the standard chain: the fixture file first, then
// the remote providers unless offline.
func NewDefaultChain(opts Options) (*ChainProvider, error) {
	var providers []contract.ContextProvider
	if opts.ContextFile != "" {
		fp, err := LoadFileProvider(opts.ContextFile)
		if err != nil {
			return nil, err
		}
		providers = append(providers, fp)
	}
	if !opts.Offline {
		gh, err := NewGitHubProvider(opts.GitHubToken, opts.GitHubAPIURL, opts.Timeout)
		if err != nil {
			return nil, err
		}
		providers = append(providers, gh, NewHuggingFaceProvider(opts.HFEndpoint, opts.Timeout))
	}
	return NewChainProvider(opts.Licenses, providers...), nil
}

// cloneContext copies the top level and every nested mapping of c.
func cloneContext(c map[string]any) engine.Context {
	out := make(engine.Context, len(c))
	for k, v := range c {
		if m, ok := v.(map[string]any); ok {
			v = maps.Clone(m)
		}
		out[k] = v
	}
	return out
}

// logNorm maps a non-negative count onto [0,1] on a log scale where ref maps to 1.
func logNorm(v, ref float64) float64 {
	if v <= 0 || ref <= 0 {
		return 0
	}
	return math.Min(1, math.Log1p(v)/math.Log1p(ref))
}

// recencyNorm is 1 for an update today, falling linearly to 0 after a year.
func recencyNorm(updated, now time.Time) float64 {
	if updated.IsZero() {
		return 0
	}
	days := now.Sub(updated).Hours() / 24
	return math.Max(0, math.Min(1, 1-days/365))
}

func boolNorm(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
