package schema

import "time"

// RunRecord represents a row from the trustscore_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	TotalURLs     int32
	ConfigParams  *string
}

// EvaluationRecord represents a row from the trustscore_evaluations table.
type EvaluationRecord struct {
	RunID               int64
	URL                 string
	Name                string
	Category            *string
	EvaluatedAt         time.Time
	NetScore            *float64
	NetScoreBinary      *int32
	RampUpTime          *float64
	BusFactor           *float64
	PerformanceClaims   *float64
	License             *float64
	SizeScore           *string // JSON object keyed by hardware target
	DatasetAndCodeScore *float64
	DatasetQuality      *float64
	CodeQuality         *float64
	NetLatencyMs        *int64
}
