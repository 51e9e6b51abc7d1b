package metrics

import "github.com/huangsam/trustscore/core/engine"

// Quality metric ids.
const (
	CodeQualityID    = "code_quality"
	DatasetQualityID = "dataset_quality"
)

// CodeQualityKeys are read from the code_quality scope.
var CodeQualityKeys = []string{"test_coverage_norm", "style_norm", "comment_ratio_norm", "maintainability_norm"}

// DatasetQualityKeys are read from the dataset_quality scope.
var DatasetQualityKeys = []string{"cleanliness", "documentation", "class_balance"}

// NewCodeQuality returns the code quality metric.
func NewCodeQuality() engine.Metric {
	return composite{id: CodeQualityID, scope: "code_quality", keys: CodeQualityKeys}
}

// NewDatasetQuality returns the dataset quality metric.
func NewDatasetQuality() engine.Metric {
	return composite{id: DatasetQualityID, scope: "dataset_quality", keys: DatasetQualityKeys}
}
