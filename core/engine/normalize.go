package engine

import "fmt"

// Normalize maps a raw metric value onto the scale selected by op.
// Degenerate ranges (max == min, sigma == 0) yield 0.0 rather than an error.
// An unknown strategy is a configuration error.
func Normalize(raw float64, op Operationalization) (float64, error) {
	switch op.Normalization {
	case "", Identity:
		if op.GreaterIsBetter {
			return raw, nil
		}
		return -raw, nil

	case MinMax:
		return minMax(raw, op.normParam(NormMin), op.normParam(NormMax)), nil

	case InvertMinMax:
		lo, hi := op.normParam(NormMin), op.normParam(NormMax)
		if hi == lo {
			return 0.0, nil
		}
		return 1 - minMax(raw, lo, hi), nil

	case ZScore:
		sigma := op.normParam(NormSigma)
		if sigma == 0 {
			return 0.0, nil
		}
		return (raw - op.normParam(NormMu)) / sigma, nil

	default:
		return 0, fmt.Errorf("%w: unknown normalization strategy %q", ErrInvalidConfiguration, op.Normalization)
	}
}

func minMax(raw, lo, hi float64) float64 {
	if hi == lo {
		return 0.0
	}
	return (raw - lo) / (hi - lo)
}
