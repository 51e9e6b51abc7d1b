package engine

// Component is one metric's entry in the net score breakdown.
type Component struct {
	MetricID string  `json:"metric_id"`
	Value    float64 `json:"value"`
	Weight   float64 `json:"weight"`
	Binary   int     `json:"binary"`
	Seconds  float64 `json:"seconds"`
}

// Summary is the combined result of one run.
type Summary struct {
	Weighted   float64     `json:"NetScore_weighted"`
	Binary     int         `json:"NetScore_binary"`
	Components []Component `json:"components"`
}

// NetScore weights the pass/fail decision of each result named by ops, in ops
// order. Each decision goes through the operationalization's normalization
// before weighting, while the component keeps the raw value. Operationalizations
// without a result are skipped. When the weights of the remaining entries sum
// to zero the weighted score is 0.0.
func NetScore(results map[string]MetricResult, ops []Operationalization, th Thresholds) (Summary, error) {
	summary := Summary{Components: make([]Component, 0, len(ops))}

	var weightedSum, weightSum float64
	for _, op := range ops {
		res, ok := results[op.MetricID]
		if !ok {
			continue
		}
		normalized, err := Normalize(float64(res.Binary()), op)
		if err != nil {
			return Summary{}, err
		}
		weightedSum += normalized * op.Weight
		weightSum += op.Weight

		summary.Components = append(summary.Components, Component{
			MetricID: op.MetricID,
			Value:    res.Value(),
			Weight:   op.Weight,
			Binary:   res.Binary(),
			Seconds:  res.Seconds(),
		})
	}

	if weightSum != 0 {
		summary.Weighted = weightedSum / weightSum
	}
	summary.Binary = Binarize(summary.Weighted, th.netScore())
	return summary, nil
}

// Component returns the breakdown entry for id, if present.
func (s Summary) Component(id string) (Component, bool) {
	for _, c := range s.Components {
		if c.MetricID == id {
			return c, true
		}
	}
	return Component{}, false
}

// TotalSeconds sums the compute time of every component.
func (s Summary) TotalSeconds() float64 {
	var total float64
	for _, c := range s.Components {
		total += c.Seconds
	}
	return total
}
