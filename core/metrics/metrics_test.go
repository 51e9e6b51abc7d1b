package metrics

import (
	"testing"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compute(t *testing.T, m engine.Metric, c engine.Context) engine.MetricResult {
	t.Helper()
	res, err := m.Compute(c, engine.Params{Threshold: engine.DefaultThreshold})
	require.NoError(t, err)
	assert.Equal(t, m.ID(), res.ID())
	return res
}

func TestCompositeMetrics(t *testing.T) {
	tests := []struct {
		name     string
		metric   engine.Metric
		context  engine.Context
		expected float64
		used     []string
	}{
		{
			name:   "size all components",
			metric: NewSize(),
			context: engine.Context{"size_components": map[string]any{
				"loc_norm": 0.5, "db_norm": 0.8, "params_norm": 0.2, "artifacts_norm": 1.0,
			}},
			expected: 0.625,
			used:     []string{"loc_norm", "db_norm", "params_norm", "artifacts_norm"},
		},
		{
			name:     "size partial",
			metric:   NewSize(),
			context:  engine.Context{"size_components": map[string]any{"loc_norm": 0.7, "db_norm": 0.3}},
			expected: 0.5,
			used:     []string{"loc_norm", "db_norm"},
		},
		{
			name:     "size string inputs",
			metric:   NewSize(),
			context:  engine.Context{"size_components": map[string]any{"loc_norm": "0.4", "db_norm": "0.6"}},
			expected: 0.5,
			used:     []string{"loc_norm", "db_norm"},
		},
		{
			name:     "size malformed component excluded",
			metric:   NewSize(),
			context:  engine.Context{"size_components": map[string]any{"loc_norm": "0.4", "db_norm": "huge"}},
			expected: 0.4,
			used:     []string{"loc_norm"},
		},
		{
			name:   "code quality all components",
			metric: NewCodeQuality(),
			context: engine.Context{"code_quality": map[string]any{
				"test_coverage_norm": 0.9, "style_norm": 0.8, "comment_ratio_norm": 0.7, "maintainability_norm": 0.6,
			}},
			expected: 0.75,
			used:     []string{"test_coverage_norm", "style_norm", "comment_ratio_norm", "maintainability_norm"},
		},
		{
			name:     "code quality string inputs",
			metric:   NewCodeQuality(),
			context:  engine.Context{"code_quality": map[string]any{"test_coverage_norm": "0.4", "style_norm": "0.6"}},
			expected: 0.5,
			used:     []string{"test_coverage_norm", "style_norm"},
		},
		{
			name:   "dataset quality all components",
			metric: NewDatasetQuality(),
			context: engine.Context{"dataset_quality": map[string]any{
				"cleanliness": 1.0, "documentation": 0.5, "class_balance": 0.75,
			}},
			expected: 0.75,
			used:     []string{"cleanliness", "documentation", "class_balance"},
		},
		{
			name:     "dataset quality partial",
			metric:   NewDatasetQuality(),
			context:  engine.Context{"dataset_quality": map[string]any{"cleanliness": 0.4}},
			expected: 0.4,
			used:     []string{"cleanliness"},
		},
		{
			name:     "ramp up all components",
			metric:   NewRampUpTime(),
			context:  engine.Context{"ramp": map[string]any{"likes_norm": 0.8, "downloads_norm": 0.6, "recency_norm": 0.4}},
			expected: 0.6,
			used:     []string{"likes_norm", "downloads_norm", "recency_norm"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compute(t, tt.metric, tt.context)
			assert.InDelta(t, tt.expected, res.Value(), 1e-9)
			assert.Equal(t, tt.used, res.Details()["used"])
			assert.Len(t, res.Details()["components"], len(tt.used))
		})
	}
}

func TestCompositeMetrics_ValueIsPlainAverage(t *testing.T) {
	res := compute(t, NewCodeQuality(), engine.Context{"code_quality": map[string]any{"style_norm": 1.5, "comment_ratio_norm": 0.9}})
	assert.InDelta(t, 1.2, res.Value(), 1e-9)
	assert.Equal(t, []float64{1.5, 0.9}, res.Details()["components"])
	assert.Equal(t, 1, res.Binary())
}

func TestCompositeMetrics_NoComponents(t *testing.T) {
	metrics := []struct {
		metric engine.Metric
		scope  string
	}{
		{NewSize(), "size_components"},
		{NewCodeQuality(), "code_quality"},
		{NewDatasetQuality(), "dataset_quality"},
		{NewRampUpTime(), "ramp"},
	}

	for _, m := range metrics {
		t.Run(m.metric.ID(), func(t *testing.T) {
			for _, c := range []engine.Context{{}, {m.scope: map[string]any{}}, {m.scope: "not a mapping"}} {
				res := compute(t, m.metric, c)
				assert.Equal(t, 0.0, res.Value())
				assert.Equal(t, []float64{}, res.Details()["components"])
				assert.Equal(t, []string{}, res.Details()["used"])
				assert.Equal(t, 0, res.Binary())
			}
		})
	}
}

func TestRampUpTime_ComponentValues(t *testing.T) {
	res := compute(t, NewRampUpTime(), engine.Context{"ramp": map[string]any{"likes_norm": 0.9}})
	assert.InDelta(t, 0.9, res.Value(), 1e-9)
	assert.Equal(t, []float64{0.9}, res.Details()["components"])
	assert.Equal(t, 1, res.Binary())
}

func TestAvailability(t *testing.T) {
	all := compute(t, NewAvailability(), engine.Context{"availability": map[string]any{
		"has_code": true, "has_dataset": true, "links_ok": true,
	}})
	assert.Equal(t, 1.0, all.Value())
	assert.Equal(t, map[string]any{"has_code": true, "has_dataset": true, "links_ok": true}, all.Details())

	partial := compute(t, NewAvailability(), engine.Context{"availability": map[string]any{
		"has_code": true, "has_dataset": false, "links_ok": true,
	}})
	assert.InDelta(t, 2.0/3.0, partial.Value(), 1e-9)
	assert.Equal(t, false, partial.Details()["has_dataset"])

	none := compute(t, NewAvailability(), engine.Context{"availability": map[string]any{}})
	assert.Equal(t, 0.0, none.Value())
	assert.Equal(t, map[string]any{"has_code": false, "has_dataset": false, "links_ok": false}, none.Details())
}

func TestAvailability_MissingFlagCountsAsFalse(t *testing.T) {
	// A single present flag is averaged over all three, unlike composite metrics.
	res := compute(t, NewAvailability(), engine.Context{"availability": map[string]any{"has_code": true}})
	assert.InDelta(t, 1.0/3.0, res.Value(), 1e-9)
	assert.Equal(t, 0, res.Binary())

	typed := compute(t, NewAvailability(), engine.Context{"availability": map[string]bool{"has_code": true, "links_ok": true}})
	assert.InDelta(t, 2.0/3.0, typed.Value(), 1e-9)
}

func TestBusFactor(t *testing.T) {
	tests := []struct {
		name     string
		context  engine.Context
		expected float64
		pct      float64
	}{
		{"balanced", engine.Context{"repo_meta": map[string]any{"top_contributor_pct": 0.25}}, 0.75, 0.25},
		{"single contributor", engine.Context{"repo_meta": map[string]any{"top_contributor_pct": 1.0}}, 0.0, 1.0},
		{"string pct", engine.Context{"repo_meta": map[string]any{"top_contributor_pct": "0.4"}}, 0.6, 0.4},
		{"missing repo meta", engine.Context{}, 0.0, 1.0},
		{"malformed pct", engine.Context{"repo_meta": map[string]any{"top_contributor_pct": "many"}}, 0.0, 1.0},
		{"out of range pct", engine.Context{"repo_meta": map[string]any{"top_contributor_pct": 1.7}}, -0.7, 1.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compute(t, NewBusFactor(), tt.context)
			assert.InDelta(t, tt.expected, res.Value(), 1e-9)
			assert.Equal(t, tt.pct, res.Details()["top_contributor_pct"])
		})
	}
}

func TestPerformanceClaims(t *testing.T) {
	weighted := compute(t, NewPerformanceClaims(), engine.Context{"requirements_score": 0.75})
	assert.Equal(t, 0.75, weighted.Value())
	assert.Equal(t, ModeWeighted, weighted.Details()["mode"])

	simple := compute(t, NewPerformanceClaims(), engine.Context{"requirements_passed": 3, "requirements_total": 4})
	assert.InDelta(t, 0.75, simple.Value(), 1e-9)
	assert.Equal(t, ModeSimple, simple.Details()["mode"])
	assert.Equal(t, 3.0, simple.Details()["passed"])
	assert.Equal(t, 4.0, simple.Details()["total"])

	defaults := compute(t, NewPerformanceClaims(), engine.Context{})
	assert.Equal(t, 0.0, defaults.Value())
	assert.Equal(t, 1.0, defaults.Details()["total"])

	zeroTotal := compute(t, NewPerformanceClaims(), engine.Context{"requirements_passed": 2, "requirements_total": 0})
	assert.Equal(t, 0.0, zeroTotal.Value())
}

func TestLicenseCompliance(t *testing.T) {
	mit := compute(t, NewLicenseCompliance(), engine.Context{"license": "MIT"})
	assert.Equal(t, 1.0, mit.Value())
	assert.Equal(t, "mit", mit.Details()["license"])
	assert.Equal(t, 1, mit.Binary())

	proprietary := compute(t, NewLicenseCompliance(), engine.Context{"license": "proprietary"})
	assert.Equal(t, 0.0, proprietary.Value())
	assert.Equal(t, "proprietary", proprietary.Details()["license"])

	custom := compute(t, NewLicenseCompliance(), engine.Context{
		"license":             "weirdlicense",
		"compatible_licenses": []any{"weird"},
	})
	assert.Equal(t, 1.0, custom.Value())
	assert.Equal(t, "weirdlicense", custom.Details()["license"])

	customOnly := compute(t, NewLicenseCompliance(), engine.Context{
		"license":             "MIT",
		"compatible_licenses": []string{"Apache-2.0"},
	})
	assert.Equal(t, 0.0, customOnly.Value())

	empty := compute(t, NewLicenseCompliance(), engine.Context{})
	assert.Equal(t, 0.0, empty.Value())
	assert.Equal(t, "", empty.Details()["license"])
}

func TestLicenseCompliance_Matching(t *testing.T) {
	tests := []struct {
		license string
		want    float64
		matched string
	}{
		{"Apache-2.0", 1, "apache-2.0"},
		{"MIT License", 1, "mit"},
		{"dual: GPL-3.0 or MIT", 1, "mit"},
		{"BSD-3-Clause-Clear", 1, "bsd-3-clause"},
		{"Commercial use not permitted", 0, ""},
		{"proprietary-submit-only", 0, ""},
		{"summit-eula", 0, ""},
		{"gpl-3.0", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.license, func(t *testing.T) {
			res := compute(t, NewLicenseCompliance(), engine.Context{"license": tt.license})
			assert.Equal(t, tt.want, res.Value())
			assert.Equal(t, tt.matched, res.Details()["matched"])
		})
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, []string{
		RampUpTimeID, BusFactorID, PerformanceClaimsID, LicenseComplianceID,
		SizeID, AvailabilityID, DatasetQualityID, CodeQualityID,
	}, reg.IDs())

	for _, id := range reg.IDs() {
		f, err := reg.Resolve(id)
		require.NoError(t, err)
		assert.Equal(t, id, f().ID())
	}
}

func TestRunMetrics_WithBuiltins(t *testing.T) {
	ops := []engine.Operationalization{
		engine.NewOperationalization(SizeID, 1),
		engine.NewOperationalization(BusFactorID, 1),
	}
	c := engine.Context{
		"size_components": map[string]any{"loc_norm": 0.5, "db_norm": 0.8, "params_norm": 0.2, "artifacts_norm": 1.0},
		"repo_meta":       map[string]any{"top_contributor_pct": 1.0},
	}

	results, summary, err := engine.RunMetrics(ops, c, NewRegistry(), engine.DefaultThresholds())
	require.NoError(t, err)
	assert.InDelta(t, 0.625, results[SizeID].Value(), 1e-9)
	assert.Equal(t, 0.0, results[BusFactorID].Value())
	assert.InDelta(t, 0.5, summary.Weighted, 1e-9)
	assert.Equal(t, 1, summary.Binary)
}
