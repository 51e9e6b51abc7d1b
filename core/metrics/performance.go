package metrics

import "github.com/huangsam/trustscore/core/engine"

// PerformanceClaimsID checks how many documented performance claims hold up.
const PerformanceClaimsID = "performance_claims"

// Performance claims modes reported in details.
const (
	ModeWeighted = "weighted"
	ModeSimple   = "simple"
)

type performanceClaims struct{}

// NewPerformanceClaims returns the performance claims metric.
func NewPerformanceClaims() engine.Metric { return performanceClaims{} }

func (performanceClaims) ID() string { return PerformanceClaimsID }

func (performanceClaims) Compute(c engine.Context, p engine.Params) (engine.MetricResult, error) {
	var value float64
	var details map[string]any

	if score, ok := engine.ToFloat(c["requirements_score"]); ok {
		value = score
		details = map[string]any{"mode": ModeWeighted}
	} else {
		passed, ok := engine.ToFloat(c["requirements_passed"])
		if !ok {
			passed = 0
		}
		total, ok := engine.ToFloat(c["requirements_total"])
		if !ok {
			total = 1
		}
		if total > 0 {
			value = passed / total
		}
		details = map[string]any{"mode": ModeSimple, "passed": passed, "total": total}
	}

	return engine.NewMetricResult(PerformanceClaimsID, value, engine.Binarize(value, p.Threshold), details, 0), nil
}
