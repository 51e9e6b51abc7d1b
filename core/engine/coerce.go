package engine

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ToFloat is the single numeric coercion used by every metric.
// Numbers and numeric strings convert; anything else, including NaN and
// infinities, reports false so the caller can leave it out of an average.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return parseFinite(n.String())
	case string:
		return parseFinite(n)
	default:
		return 0, false
	}
	if !isFinite(f) {
		return 0, false
	}
	return f, true
}

// ToBool coerces a flag. Missing or unrecognized values are false.
func ToBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err == nil {
			return parsed
		}
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "yes", "y", "on":
			return true
		}
		return false
	default:
		if f, ok := ToFloat(v); ok {
			return f != 0
		}
		return false
	}
}

// AverageOf averages the coercible values of keys in scope, in key order.
// Missing or unparsable keys are skipped, not counted as zero. With nothing
// usable it returns 0.0 and empty, non-nil slices.
func AverageOf(scope map[string]any, keys []string) (avg float64, used []string, values []float64) {
	used = []string{}
	values = []float64{}
	for _, k := range keys {
		raw, ok := scope[k]
		if !ok {
			continue
		}
		f, ok := ToFloat(raw)
		if !ok {
			continue
		}
		used = append(used, k)
		values = append(values, f)
	}
	if len(values) == 0 {
		return 0.0, used, values
	}
	var sum float64
	for _, f := range values {
		sum += f
	}
	return sum / float64(len(values)), used, values
}
