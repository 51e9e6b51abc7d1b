package metrics

import "github.com/huangsam/trustscore/core/engine"

// SizeID scores how heavy an artifact is from its normalized footprint.
const SizeID = "size"

// SizeKeys are read from the size_components scope.
var SizeKeys = []string{"loc_norm", "db_norm", "params_norm", "artifacts_norm"}

// NewSize returns the size metric.
func NewSize() engine.Metric {
	return composite{id: SizeID, scope: "size_components", keys: SizeKeys}
}
