package engine

import (
	"fmt"
	"maps"
	"strings"
)

// Normalization names the strategy applied to a raw value before weighting.
type Normalization string

// Supported normalization strategies. The empty value behaves like Identity.
const (
	Identity     Normalization = "identity"
	MinMax       Normalization = "minmax"
	InvertMinMax Normalization = "invert_minmax"
	ZScore       Normalization = "zscore"
)

// Norm parameter keys.
const (
	NormMin   = "min"
	NormMax   = "max"
	NormMu    = "mu"
	NormSigma = "sigma"
)

// ValidNormalizations lists every known strategy.
var ValidNormalizations = map[Normalization]struct{}{
	"":           {},
	Identity:     {},
	MinMax:       {},
	InvertMinMax: {},
	ZScore:       {},
}

// Operationalization binds a metric id to a weight and a normalization strategy.
type Operationalization struct {
	MetricID        string             `json:"metric_id"`
	Weight          float64            `json:"weight"`
	Params          map[string]any     `json:"params,omitempty"`
	Normalization   Normalization      `json:"normalization"`
	NormParams      map[string]float64 `json:"norm_params,omitempty"`
	GreaterIsBetter bool               `json:"greater_is_better"`
}

// NewOperationalization returns an identity-normalized operationalization
// where greater is better.
func NewOperationalization(metricID string, weight float64) Operationalization {
	return Operationalization{
		MetricID:        metricID,
		Weight:          weight,
		Normalization:   Identity,
		GreaterIsBetter: true,
	}
}

// WithNormalization returns a copy using the given strategy and parameters.
func (op Operationalization) WithNormalization(n Normalization, params map[string]float64) Operationalization {
	op.Normalization = n
	op.NormParams = maps.Clone(params)
	return op
}

// Validate checks the strategy name. It does not look at the registry.
func (op Operationalization) Validate() error {
	if strings.TrimSpace(op.MetricID) == "" {
		return fmt.Errorf("%w: operationalization without metric id", ErrInvalidConfiguration)
	}
	if _, ok := ValidNormalizations[op.Normalization]; !ok {
		return fmt.Errorf("%w: unknown normalization strategy %q for metric %q", ErrInvalidConfiguration, op.Normalization, op.MetricID)
	}
	return nil
}

func (op Operationalization) normParam(key string) float64 {
	return op.NormParams[key]
}
