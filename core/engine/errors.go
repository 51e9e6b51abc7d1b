package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration marks setup errors such as an unknown normalization
// strategy or a metric id that is not registered. These are caller bugs, never
// data problems, and are returned as soon as they are found.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ErrUnknownMetric is returned when a metric id cannot be resolved.
var ErrUnknownMetric = fmt.Errorf("%w: unknown metric", ErrInvalidConfiguration)

// MetricError wraps a failure raised by a metric's Compute.
type MetricError struct {
	MetricID string
	Err      error
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("metric %s failed: %v", e.MetricID, e.Err)
}

func (e *MetricError) Unwrap() error { return e.Err }
