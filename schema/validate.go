package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
)

// ErrInvalidRecord is returned for records that do not match the wire shape.
var ErrInvalidRecord = errors.New("invalid record")

// Record field groups.
var (
	RecordStringFields = []string{"name", "category"}
	RecordScoreFields  = []string{
		"net_score", "ramp_up_time", "bus_factor", "performance_claims", "license",
		"size_score", "dataset_and_code_score", "dataset_quality", "code_quality",
	}
)

// RecordLatencyFields are the score fields with a _latency suffix.
var RecordLatencyFields = func() []string {
	out := make([]string, len(RecordScoreFields))
	for i, f := range RecordScoreFields {
		out[i] = f + "_latency"
	}
	return out
}()

// RecordKeys is the exact key set of a record.
var RecordKeys = slices.Concat(RecordStringFields, RecordScoreFields, RecordLatencyFields)

// DecodeRecord decodes one JSON object keeping numbers as json.Number.
func DecodeRecord(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: not an object", ErrInvalidRecord)
	}
	return m, nil
}

// ValidateRecord checks that rec has exactly the record keys, string fields
// hold strings or null, scores are floats in [0,1] or null, size_score is a
// mapping of hardware targets to such scores, and latencies are non-negative
// integers or null.
func ValidateRecord(rec map[string]any) error {
	for _, k := range RecordKeys {
		if _, ok := rec[k]; !ok {
			return fmt.Errorf("%w: missing key %q", ErrInvalidRecord, k)
		}
	}
	if len(rec) != len(RecordKeys) {
		for k := range rec {
			if !slices.Contains(RecordKeys, k) {
				return fmt.Errorf("%w: unknown key %q", ErrInvalidRecord, k)
			}
		}
	}

	for _, k := range RecordStringFields {
		if v := rec[k]; v != nil {
			if _, ok := v.(string); !ok {
				return fmt.Errorf("%w: %s must be a string or null", ErrInvalidRecord, k)
			}
		}
	}

	for _, k := range RecordScoreFields {
		v := rec[k]
		if k == "size_score" {
			if err := validateSizeScore(v); err != nil {
				return err
			}
			continue
		}
		if !isScore(v) {
			return fmt.Errorf("%w: %s must be a float in [0,1] or null", ErrInvalidRecord, k)
		}
	}

	for _, k := range RecordLatencyFields {
		if !isLatency(rec[k]) {
			return fmt.Errorf("%w: %s must be a non-negative integer or null", ErrInvalidRecord, k)
		}
	}
	return nil
}

func validateSizeScore(v any) error {
	if v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: size_score must be an object or null", ErrInvalidRecord)
	}
	for k, inner := range m {
		if !slices.Contains(AllHardwareTargets, HardwareTarget(k)) {
			return fmt.Errorf("%w: unknown size_score target %q", ErrInvalidRecord, k)
		}
		if !isScore(inner) {
			return fmt.Errorf("%w: size_score.%s must be a float in [0,1] or null", ErrInvalidRecord, k)
		}
	}
	for _, target := range AllHardwareTargets {
		if _, ok := m[string(target)]; !ok {
			return fmt.Errorf("%w: missing size_score target %q", ErrInvalidRecord, target)
		}
	}
	return nil
}

func isScore(v any) bool {
	var f float64
	switch n := v.(type) {
	case nil:
		return true
	case json.Number:
		// Integers such as 1 are not floats on the wire.
		if !strings.ContainsAny(n.String(), ".eE") {
			return false
		}
		parsed, err := n.Float64()
		if err != nil {
			return false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case Score:
		f = float64(n)
	default:
		return false
	}
	return !math.IsNaN(f) && f >= 0 && f <= 1
}

func isLatency(v any) bool {
	switch n := v.(type) {
	case nil:
		return true
	case json.Number:
		i, err := n.Int64()
		return err == nil && i >= 0
	case int:
		return n >= 0
	case int32:
		return n >= 0
	case int64:
		return n >= 0
	default:
		return false
	}
}
