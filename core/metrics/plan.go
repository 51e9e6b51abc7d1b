package metrics

import "github.com/huangsam/trustscore/core/engine"

// DefaultPlan returns the built-in operationalizations. Weights sum to 1.
// Size is inverted because a smaller footprint is easier to deploy.
func DefaultPlan() []engine.Operationalization {
	return []engine.Operationalization{
		engine.NewOperationalization(RampUpTimeID, 0.15),
		engine.NewOperationalization(BusFactorID, 0.10),
		engine.NewOperationalization(PerformanceClaimsID, 0.15),
		engine.NewOperationalization(LicenseComplianceID, 0.15),
		engine.NewOperationalization(SizeID, 0.10).WithNormalization(engine.InvertMinMax, map[string]float64{
			engine.NormMin: 0,
			engine.NormMax: 1,
		}),
		engine.NewOperationalization(AvailabilityID, 0.10),
		engine.NewOperationalization(DatasetQualityID, 0.10),
		engine.NewOperationalization(CodeQualityID, 0.15),
	}
}

// ValidatePlan checks every operationalization and that each id resolves in
// reg. It returns the ids that appear more than once; those are allowed and
// the last result wins.
func ValidatePlan(plan []engine.Operationalization, reg *engine.Registry) (duplicates []string, err error) {
	seen := make(map[string]int, len(plan))
	for _, op := range plan {
		if err := op.Validate(); err != nil {
			return nil, err
		}
		if _, err := reg.Resolve(op.MetricID); err != nil {
			return nil, err
		}
		seen[op.MetricID]++
		if seen[op.MetricID] == 2 {
			duplicates = append(duplicates, op.MetricID)
		}
	}
	return duplicates, nil
}
