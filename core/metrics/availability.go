package metrics

import "github.com/huangsam/trustscore/core/engine"

// AvailabilityID checks that code, data and links are reachable.
const AvailabilityID = "availability"

// AvailabilityFlags are read from the availability scope.
// A missing flag counts as false; it is not dropped from the average.
var AvailabilityFlags = []string{"has_code", "has_dataset", "links_ok"}

type availability struct{}

// NewAvailability returns the availability metric.
func NewAvailability() engine.Metric { return availability{} }

func (availability) ID() string { return AvailabilityID }

func (availability) Compute(c engine.Context, p engine.Params) (engine.MetricResult, error) {
	scope := c.Scope("availability")
	details := make(map[string]any, len(AvailabilityFlags))

	var hits int
	for _, flag := range AvailabilityFlags {
		ok := engine.ToBool(scope[flag])
		details[flag] = ok
		if ok {
			hits++
		}
	}

	value := float64(hits) / float64(len(AvailabilityFlags))
	return engine.NewMetricResult(AvailabilityID, value, engine.Binarize(value, p.Threshold), details, 0), nil
}
