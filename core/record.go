package core

import (
	"encoding/json"
	"math"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/huangsam/trustscore/schema"
)

// SizeCapacities is the largest size value each hardware target hosts comfortably.
var SizeCapacities = map[schema.HardwareTarget]float64{
	schema.RaspberryPi: 0.25,
	schema.JetsonNano:  0.5,
	schema.DesktopPC:   0.8,
	schema.AWSServer:   1.0,
}

type recordSetter func(r *schema.Record, score *schema.Score, latency *int64)

// recordFields maps metric ids onto record fields. Size is handled separately
// because it fans out to one score per hardware target.
var recordFields = map[string]recordSetter{
	metrics.RampUpTimeID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.RampUpTime, r.RampUpTimeLatency = s, l
	},
	metrics.BusFactorID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.BusFactor, r.BusFactorLatency = s, l
	},
	metrics.PerformanceClaimsID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.PerformanceClaims, r.PerformanceClaimsLatency = s, l
	},
	metrics.LicenseComplianceID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.License, r.LicenseLatency = s, l
	},
	metrics.AvailabilityID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.DatasetAndCodeScore, r.DatasetAndCodeScoreLatency = s, l
	},
	metrics.DatasetQualityID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.DatasetQuality, r.DatasetQualityLatency = s, l
	},
	metrics.CodeQualityID: func(r *schema.Record, s *schema.Score, l *int64) {
		r.CodeQuality, r.CodeQualityLatency = s, l
	},
}

// latencyMs converts seconds to whole milliseconds.
func latencyMs(seconds float64) int64 {
	if seconds <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int64(math.Round(seconds * 1000))
}

// sizeScores rates a size value against each target's capacity.
func sizeScores(value float64) schema.SizeScore {
	var out schema.SizeScore
	for _, target := range schema.AllHardwareTargets {
		op := engine.NewOperationalization(metrics.SizeID, 0).WithNormalization(engine.InvertMinMax, map[string]float64{
			engine.NormMin: 0,
			engine.NormMax: SizeCapacities[target],
		})
		v, err := engine.Normalize(value, op)
		if err != nil {
			continue
		}
		out.Set(target, schema.ScorePtr(v))
	}
	return out
}

// buildRecord assembles the wire record from one run. Metrics the plan did
// not run stay null.
func buildRecord(target schema.Target, results map[string]engine.MetricResult, summary engine.Summary) schema.Record {
	record := newNullRecord(target)

	for id, res := range results {
		latency := latencyMs(res.Seconds())
		if id == metrics.SizeID {
			record.SizeScore = sizeScores(res.Value())
			record.SizeScoreLatency = &latency
			continue
		}
		if set, ok := recordFields[id]; ok {
			set(&record, schema.ScorePtr(res.Value()), &latency)
		}
	}

	var netLatency int64
	for _, c := range summary.Components {
		netLatency += latencyMs(c.Seconds)
	}
	record.NetScore = schema.ScorePtr(summary.Weighted)
	record.NetScoreLatency = &netLatency
	return record
}

// newNullRecord is the record for a target that could not be scored.
func newNullRecord(target schema.Target) schema.Record {
	name := target.Name
	if name == "" {
		name = target.URL
	}
	record := schema.NewEmptyRecord(name)
	record.Category = target.Category
	return record
}

// breakdownOf converts summary components for output and history.
func breakdownOf(summary engine.Summary) []schema.MetricScore {
	out := make([]schema.MetricScore, len(summary.Components))
	for i, c := range summary.Components {
		out[i] = schema.MetricScore{
			MetricID:  c.MetricID,
			Value:     c.Value,
			Weight:    c.Weight,
			Binary:    c.Binary,
			LatencyMs: latencyMs(c.Seconds),
		}
	}
	return out
}

// toEvaluationRecord flattens an evaluation into a history row.
func toEvaluationRecord(runID int64, url string, ev schema.Evaluation) schema.EvaluationRecord {
	r := ev.Record
	row := schema.EvaluationRecord{
		RunID:               runID,
		URL:                 url,
		Name:                r.Name,
		EvaluatedAt:         ev.EvaluatedAt,
		NetScore:            scoreFloat(r.NetScore),
		RampUpTime:          scoreFloat(r.RampUpTime),
		BusFactor:           scoreFloat(r.BusFactor),
		PerformanceClaims:   scoreFloat(r.PerformanceClaims),
		License:             scoreFloat(r.License),
		DatasetAndCodeScore: scoreFloat(r.DatasetAndCodeScore),
		DatasetQuality:      scoreFloat(r.DatasetQuality),
		CodeQuality:         scoreFloat(r.CodeQuality),
		NetLatencyMs:        r.NetScoreLatency,
	}
	if r.Category != nil {
		category := string(*r.Category)
		row.Category = &category
	}
	if ev.NetScoreBinary != nil {
		binary := int32(*ev.NetScoreBinary)
		row.NetScoreBinary = &binary
	}
	if r.SizeScore != (schema.SizeScore{}) {
		if data, err := json.Marshal(r.SizeScore); err == nil {
			size := string(data)
			row.SizeScore = &size
		}
	}
	return row
}

func scoreFloat(s *schema.Score) *float64 {
	if s == nil {
		return nil
	}
	f := float64(*s)
	return &f
}
