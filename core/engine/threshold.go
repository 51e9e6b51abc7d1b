package engine

import (
	"math"
	"strconv"
	"strings"
)

// DefaultThreshold applies when no explicit or configured threshold is usable.
const DefaultThreshold = 0.5

// ThresholdParam is the operationalization params key for a metric-local threshold.
const ThresholdParam = "threshold"

// Binarize returns 1 when score reaches threshold, 0 otherwise.
// The boundary is inclusive: Binarize(0.5, 0.5) == 1.
func Binarize(score, threshold float64) int {
	if score >= threshold {
		return 1
	}
	return 0
}

// ParseThreshold parses a threshold override.
// Empty, malformed or non-finite input falls back to DefaultThreshold instead of failing.
func ParseThreshold(raw string) float64 {
	v, ok := parseFinite(raw)
	if !ok {
		return DefaultThreshold
	}
	return v
}

// Thresholds holds the resolved pass/fail thresholds for one evaluation run.
type Thresholds struct {
	Metric   float64 `json:"metric"`   // default for every metric's own decision
	NetScore float64 `json:"netscore"` // applied to the weighted net score
}

// DefaultThresholds returns 0.5 for both decisions.
func DefaultThresholds() Thresholds {
	return Thresholds{Metric: DefaultThreshold, NetScore: DefaultThreshold}
}

// NewThresholds builds Thresholds from raw override strings.
func NewThresholds(metricRaw, netScoreRaw string) Thresholds {
	return Thresholds{
		Metric:   ParseThreshold(metricRaw),
		NetScore: ParseThreshold(netScoreRaw),
	}
}

// ForMetric resolves a metric-local threshold: an explicit "threshold" option
// first, then t.Metric, then DefaultThreshold.
func (t Thresholds) ForMetric(options map[string]any) float64 {
	if raw, ok := options[ThresholdParam]; ok {
		if v, ok := ToFloat(raw); ok {
			return v
		}
	}
	if isFinite(t.Metric) {
		return t.Metric
	}
	return DefaultThreshold
}

func (t Thresholds) netScore() float64 {
	if isFinite(t.NetScore) {
		return t.NetScore
	}
	return DefaultThreshold
}

func parseFinite(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
