// Package metrics holds the built-in trust metrics. Each one reads a scoped
// part of the evaluation context and reports a raw value, normally in [0,1].
package metrics

import "github.com/huangsam/trustscore/core/engine"

// composite averages the present, numeric keys of one context scope.
// Missing or unparsable keys are left out of the average.
type composite struct {
	id    string
	scope string
	keys  []string
}

func (m composite) ID() string { return m.id }

func (m composite) Compute(c engine.Context, p engine.Params) (engine.MetricResult, error) {
	avg, used, values := engine.AverageOf(c.Scope(m.scope), m.keys)
	details := map[string]any{
		"components": values,
		"used":       used,
	}
	return engine.NewMetricResult(m.id, avg, engine.Binarize(avg, p.Threshold), details, 0), nil
}
