// Package parquet exports run history to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/trustscore/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single scoring run with metadata.
// This struct maps to the trustscore_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// TotalURLs is the number of URLs scored in this run
	TotalURLs int32 `parquet:"total_urls,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Evaluation is one scored URL within a run.
// This struct maps to the trustscore_evaluations database table.
// Scores are nullable because an unscored URL keeps null fields.
type Evaluation struct {
	RunID               int64     `parquet:"run_id,snappy"`
	URL                 string    `parquet:"url,snappy"`
	Name                string    `parquet:"name,snappy"`
	Category            *string   `parquet:"category,optional,snappy"`
	EvaluatedAt         time.Time `parquet:"evaluated_at,snappy"`
	NetScore            *float64  `parquet:"net_score,optional,snappy"`
	NetScoreBinary      *int32    `parquet:"net_score_binary,optional,snappy"`
	RampUpTime          *float64  `parquet:"ramp_up_time,optional,snappy"`
	BusFactor           *float64  `parquet:"bus_factor,optional,snappy"`
	PerformanceClaims   *float64  `parquet:"performance_claims,optional,snappy"`
	License             *float64  `parquet:"license,optional,snappy"`
	SizeScore           *string   `parquet:"size_score,optional,snappy"` // JSON object keyed by hardware target
	DatasetAndCodeScore *float64  `parquet:"dataset_and_code_score,optional,snappy"`
	DatasetQuality      *float64  `parquet:"dataset_quality,optional,snappy"`
	CodeQuality         *float64  `parquet:"code_quality,optional,snappy"`
	NetLatencyMs        *int64    `parquet:"net_latency_ms,optional,snappy"`
}

// WriteRunsParquet writes runs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteEvaluationsParquet writes evaluations to a Parquet file.
func WriteEvaluationsParquet(data []Evaluation, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows using struct schema inference; the schema is
// derived from the row type's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}

	return nil
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			TotalURLs:     record.TotalURLs,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertEvaluationRecords converts schema.EvaluationRecord to Evaluation for Parquet export.
func ConvertEvaluationRecords(records []schema.EvaluationRecord) []Evaluation {
	result := make([]Evaluation, len(records))
	for i, r := range records {
		result[i] = Evaluation{
			RunID:               r.RunID,
			URL:                 r.URL,
			Name:                r.Name,
			Category:            r.Category,
			EvaluatedAt:         r.EvaluatedAt,
			NetScore:            r.NetScore,
			NetScoreBinary:      r.NetScoreBinary,
			RampUpTime:          r.RampUpTime,
			BusFactor:           r.BusFactor,
			PerformanceClaims:   r.PerformanceClaims,
			License:             r.License,
			SizeScore:           r.SizeScore,
			DatasetAndCodeScore: r.DatasetAndCodeScore,
			DatasetQuality:      r.DatasetQuality,
			CodeQuality:         r.CodeQuality,
			NetLatencyMs:        r.NetLatencyMs,
		}
	}
	return result
}
