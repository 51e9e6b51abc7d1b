// Package engine turns raw metric values into normalized, weighted and
// thresholded scores. It resolves metrics from a registry, runs them over a
// shared evaluation context and combines their results into a net score.
//
// The engine never fetches, caches or persists anything and never reads the
// process environment. Everything it needs is passed in by the caller.
package engine

import (
	"encoding/json"
	"maps"
)

// MetricResult is the value produced by every metric.
// Fields are unexported so a result cannot change once it has been built.
type MetricResult struct {
	id      string
	value   float64
	binary  int
	details map[string]any
	seconds float64
}

// NewMetricResult builds a result. Binary values other than 0 and 1 are clamped
// to the nearest valid decision. The details map is copied.
func NewMetricResult(id string, value float64, binary int, details map[string]any, seconds float64) MetricResult {
	if binary != 0 {
		binary = 1
	}
	return MetricResult{
		id:      id,
		value:   value,
		binary:  binary,
		details: maps.Clone(details),
		seconds: seconds,
	}
}

// ID returns the metric identifier.
func (r MetricResult) ID() string { return r.id }

// Value returns the raw, not yet normalized score.
func (r MetricResult) Value() float64 { return r.value }

// Binary returns the metric's own pass/fail decision.
func (r MetricResult) Binary() int { return r.binary }

// Seconds returns how long the metric took to compute.
func (r MetricResult) Seconds() float64 { return r.seconds }

// Details returns a shallow copy of the diagnostic breakdown.
func (r MetricResult) Details() map[string]any {
	if r.details == nil {
		return map[string]any{}
	}
	return maps.Clone(r.details)
}

// WithSeconds returns a copy of the result carrying the given duration.
func (r MetricResult) WithSeconds(seconds float64) MetricResult {
	return NewMetricResult(r.id, r.value, r.binary, r.details, seconds)
}

// MarshalJSON implements json.Marshaler.
func (r MetricResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID      string         `json:"id"`
		Value   float64        `json:"value"`
		Binary  int            `json:"binary"`
		Details map[string]any `json:"details"`
		Seconds float64        `json:"seconds"`
	}{r.id, r.value, r.binary, r.Details(), r.seconds})
}
