package engine

import "time"

// RunMetrics invokes each operationalization's metric once, in list order,
// against the same context and then combines the results with NetScore.
//
// Results are keyed by metric id; with duplicate ids the last one wins.
// The first resolution or compute failure aborts the run.
func RunMetrics(ops []Operationalization, c Context, reg *Registry, th Thresholds) (map[string]MetricResult, Summary, error) {
	results := make(map[string]MetricResult, len(ops))
	instances := make(map[string]Metric, len(ops))

	for _, op := range ops {
		m, ok := instances[op.MetricID]
		if !ok {
			factory, err := reg.Resolve(op.MetricID)
			if err != nil {
				return nil, Summary{}, err
			}
			m = factory()
			instances[op.MetricID] = m
		}

		params := Params{Options: op.Params, Threshold: th.ForMetric(op.Params)}

		start := time.Now()
		res, err := m.Compute(c, params)
		elapsed := time.Since(start)
		if err != nil {
			return nil, Summary{}, &MetricError{MetricID: op.MetricID, Err: err}
		}
		if res.Seconds() == 0 {
			res = res.WithSeconds(elapsed.Seconds())
		}
		results[op.MetricID] = res
	}

	summary, err := NetScore(results, ops, th)
	if err != nil {
		return nil, Summary{}, err
	}
	return results, summary, nil
}
