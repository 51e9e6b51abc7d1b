// Package schema has configs, models and wire records for all parts of trustscore.
package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score is a value in [0,1]. It always serializes with a decimal point so
// that consumers see a float even for 0 and 1.
type Score float64

// NewScore clamps v into [0,1]. NaN becomes 0.
func NewScore(v float64) Score {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return Score(v)
	}
}

// ScorePtr is NewScore for optional record fields.
func ScorePtr(v float64) *Score {
	s := NewScore(v)
	return &s
}

// MarshalJSON implements json.Marshaler.
func (s Score) MarshalJSON() ([]byte, error) {
	return []byte(FormatScore(float64(s))), nil
}

// FormatScore renders v with the shortest exact representation and a
// decimal point.
func FormatScore(v float64) string {
	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(out, ".eE") {
		out += ".0"
	}
	return out
}

// SizeScore holds the size score per hardware target.
type SizeScore struct {
	RaspberryPi *Score `json:"raspberry_pi"`
	JetsonNano  *Score `json:"jetson_nano"`
	DesktopPC   *Score `json:"desktop_pc"`
	AWSServer   *Score `json:"aws_server"`
}

// Get returns the score for a target.
func (s SizeScore) Get(target HardwareTarget) *Score {
	switch target {
	case RaspberryPi:
		return s.RaspberryPi
	case JetsonNano:
		return s.JetsonNano
	case DesktopPC:
		return s.DesktopPC
	case AWSServer:
		return s.AWSServer
	default:
		return nil
	}
}

// Set stores the score for a target.
func (s *SizeScore) Set(target HardwareTarget, v *Score) {
	switch target {
	case RaspberryPi:
		s.RaspberryPi = v
	case JetsonNano:
		s.JetsonNano = v
	case DesktopPC:
		s.DesktopPC = v
	case AWSServer:
		s.AWSServer = v
	}
}

// Record is the flat per-URL output. Nil scores and latencies encode as null.
type Record struct {
	Name     string    `json:"name"`
	Category *Category `json:"category"`

	NetScore        *Score `json:"net_score"`
	NetScoreLatency *int64 `json:"net_score_latency"`

	RampUpTime        *Score `json:"ramp_up_time"`
	RampUpTimeLatency *int64 `json:"ramp_up_time_latency"`

	BusFactor        *Score `json:"bus_factor"`
	BusFactorLatency *int64 `json:"bus_factor_latency"`

	PerformanceClaims        *Score `json:"performance_claims"`
	PerformanceClaimsLatency *int64 `json:"performance_claims_latency"`

	License        *Score `json:"license"`
	LicenseLatency *int64 `json:"license_latency"`

	SizeScore        SizeScore `json:"size_score"`
	SizeScoreLatency *int64    `json:"size_score_latency"`

	DatasetAndCodeScore        *Score `json:"dataset_and_code_score"`
	DatasetAndCodeScoreLatency *int64 `json:"dataset_and_code_score_latency"`

	DatasetQuality        *Score `json:"dataset_quality"`
	DatasetQualityLatency *int64 `json:"dataset_quality_latency"`

	CodeQuality        *Score `json:"code_quality"`
	CodeQualityLatency *int64 `json:"code_quality_latency"`
}

// NewEmptyRecord returns a record with every score and latency null.
func NewEmptyRecord(name string) Record {
	return Record{Name: name}
}

// ToMap encodes the record and decodes it into a generic map with numbers
// kept as json.Number, which is what ValidateRecord expects.
func (r Record) ToMap() (map[string]any, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(data)
}

// Validate checks the record against the wire shape.
func (r Record) Validate() error {
	m, err := r.ToMap()
	if err != nil {
		return err
	}
	return ValidateRecord(m)
}
