package metrics

import "github.com/huangsam/trustscore/core/engine"

// BusFactorID measures how much a project depends on one contributor.
const BusFactorID = "bus_factor"

type busFactor struct{}

// NewBusFactor returns the bus factor metric.
func NewBusFactor() engine.Metric { return busFactor{} }

func (busFactor) ID() string { return BusFactorID }

// Compute scores 1 - top_contributor_pct. Without data the project is
// assumed to have a single contributor.
func (busFactor) Compute(c engine.Context, p engine.Params) (engine.MetricResult, error) {
	pct := 1.0
	if v, ok := engine.ToFloat(c.Scope("repo_meta")["top_contributor_pct"]); ok {
		pct = v
	}
	value := 1 - pct
	details := map[string]any{"top_contributor_pct": pct}
	return engine.NewMetricResult(BusFactorID, value, engine.Binarize(value, p.Threshold), details, 0), nil
}
