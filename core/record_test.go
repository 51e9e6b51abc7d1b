package core

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/huangsam/trustscore/internal/urlparse"
	"github.com/huangsam/trustscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatencyMs(t *testing.T) {
	assert.Equal(t, int64(0), latencyMs(0))
	assert.Equal(t, int64(0), latencyMs(-1))
	assert.Equal(t, int64(0), latencyMs(math.NaN()))
	assert.Equal(t, int64(3), latencyMs(0.0026))
	assert.Equal(t, int64(1250), latencyMs(1.25))
}

func TestSizeScores(t *testing.T) {
	scores := sizeScores(0.2)
	assert.InDelta(t, 0.2, float64(*scores.RaspberryPi), 1e-9)
	assert.InDelta(t, 0.6, float64(*scores.JetsonNano), 1e-9)
	assert.InDelta(t, 0.75, float64(*scores.DesktopPC), 1e-9)
	assert.InDelta(t, 0.8, float64(*scores.AWSServer), 1e-9)

	// Above capacity clamps to zero
	scores = sizeScores(0.9)
	assert.Equal(t, schema.Score(0), *scores.RaspberryPi)
	assert.Equal(t, schema.Score(0), *scores.DesktopPC)
	assert.InDelta(t, 0.1, float64(*scores.AWSServer), 1e-9)

	scores = sizeScores(0)
	for _, target := range schema.AllHardwareTargets {
		assert.Equal(t, schema.Score(1), *scores.Get(target), target)
	}
}

func TestBuildRecord(t *testing.T) {
	plan := metrics.DefaultPlan()
	results, summary, err := engine.RunMetrics(plan, widgetsContext(), metrics.NewRegistry(), engine.DefaultThresholds())
	require.NoError(t, err)

	record := buildRecord(urlparse.Classify(widgetsURL), results, summary)

	assert.Equal(t, "widgets", record.Name)
	require.NotNil(t, record.Category)
	assert.Equal(t, schema.CodeCategory, *record.Category)

	assert.InDelta(t, 0.85, float64(*record.NetScore), 1e-9)
	assert.InDelta(t, 0.5, float64(*record.RampUpTime), 1e-9)
	assert.InDelta(t, 0.75, float64(*record.BusFactor), 1e-9)
	assert.Equal(t, schema.Score(1), *record.PerformanceClaims)
	assert.Equal(t, schema.Score(1), *record.License)
	assert.Equal(t, schema.Score(1), *record.DatasetAndCodeScore)
	assert.InDelta(t, 0.5, float64(*record.DatasetQuality), 1e-9)
	assert.InDelta(t, 0.4, float64(*record.CodeQuality), 1e-9)
	assert.InDelta(t, 0.8, float64(*record.SizeScore.AWSServer), 1e-9)

	for _, l := range []*int64{
		record.NetScoreLatency, record.RampUpTimeLatency, record.BusFactorLatency,
		record.PerformanceClaimsLatency, record.LicenseLatency, record.SizeScoreLatency,
		record.DatasetAndCodeScoreLatency, record.DatasetQualityLatency, record.CodeQualityLatency,
	} {
		require.NotNil(t, l)
		assert.GreaterOrEqual(t, *l, int64(0))
	}
	assert.NoError(t, record.Validate())
}

func TestBuildRecord_PartialPlan(t *testing.T) {
	plan := []engine.Operationalization{engine.NewOperationalization(metrics.BusFactorID, 1)}
	results, summary, err := engine.RunMetrics(plan, widgetsContext(), metrics.NewRegistry(), engine.DefaultThresholds())
	require.NoError(t, err)

	record := buildRecord(urlparse.Classify(widgetsURL), results, summary)
	assert.InDelta(t, 1.0, float64(*record.NetScore), 1e-9)
	assert.NotNil(t, record.BusFactor)
	assert.Nil(t, record.RampUpTime)
	assert.Nil(t, record.RampUpTimeLatency)
	assert.Nil(t, record.SizeScore.RaspberryPi)
	assert.NoError(t, record.Validate())
}

func TestNewNullRecord(t *testing.T) {
	known := newNullRecord(urlparse.Classify("https://huggingface.co/acme/tiny"))
	assert.Equal(t, "tiny", known.Name)
	require.NotNil(t, known.Category)
	assert.Equal(t, schema.ModelCategory, *known.Category)
	assert.Nil(t, known.NetScore)
	assert.NoError(t, known.Validate())

	unknown := newNullRecord(urlparse.Classify("https://example.com/thing"))
	assert.Equal(t, "https://example.com/thing", unknown.Name)
	assert.Nil(t, unknown.Category)
	assert.NoError(t, unknown.Validate())
}

func TestBreakdownOf(t *testing.T) {
	summary := engine.Summary{Components: []engine.Component{
		{MetricID: "a", Value: 0.4, Weight: 2, Binary: 0, Seconds: 0.003},
		{MetricID: "b", Value: 0.9, Weight: 1, Binary: 1, Seconds: 0},
	}}
	got := breakdownOf(summary)
	require.Len(t, got, 2)
	assert.Equal(t, schema.MetricScore{MetricID: "a", Value: 0.4, Weight: 2, Binary: 0, LatencyMs: 3}, got[0])
	assert.Equal(t, "b", got[1].MetricID)
	assert.Equal(t, 1, got[1].Binary)
}

func TestToEvaluationRecord(t *testing.T) {
	results, summary, err := engine.RunMetrics(metrics.DefaultPlan(), widgetsContext(), metrics.NewRegistry(), engine.DefaultThresholds())
	require.NoError(t, err)

	target := urlparse.Classify(widgetsURL)
	binary := summary.Binary
	now := time.Now()
	ev := schema.Evaluation{
		Target:         target,
		Record:         buildRecord(target, results, summary),
		NetScoreBinary: &binary,
		EvaluatedAt:    now,
	}

	row := toEvaluationRecord(7, widgetsURL, ev)
	assert.Equal(t, int64(7), row.RunID)
	assert.Equal(t, widgetsURL, row.URL)
	assert.Equal(t, "widgets", row.Name)
	assert.Equal(t, "CODE", *row.Category)
	assert.Equal(t, now, row.EvaluatedAt)
	assert.InDelta(t, 0.85, *row.NetScore, 1e-9)
	assert.Equal(t, int32(1), *row.NetScoreBinary)
	require.NotNil(t, row.SizeScore)

	var size map[string]float64
	require.NoError(t, json.Unmarshal([]byte(*row.SizeScore), &size))
	assert.Len(t, size, 4)
	assert.InDelta(t, 0.8, size["aws_server"], 1e-9)

	empty := toEvaluationRecord(7, "https://example.com/x", schema.Evaluation{Record: schema.NewEmptyRecord("x")})
	assert.Nil(t, empty.Category)
	assert.Nil(t, empty.NetScore)
	assert.Nil(t, empty.NetScoreBinary)
	assert.Nil(t, empty.SizeScore)
}
