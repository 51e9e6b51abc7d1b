package metrics

import "github.com/huangsam/trustscore/core/engine"

// NewRegistry returns a registry holding every built-in metric.
func NewRegistry() *engine.Registry {
	reg := engine.NewRegistry()
	reg.MustRegister(RampUpTimeID, NewRampUpTime)
	reg.MustRegister(BusFactorID, NewBusFactor)
	reg.MustRegister(PerformanceClaimsID, NewPerformanceClaims)
	reg.MustRegister(LicenseComplianceID, NewLicenseCompliance)
	reg.MustRegister(SizeID, NewSize)
	reg.MustRegister(AvailabilityID, NewAvailability)
	reg.MustRegister(DatasetQualityID, NewDatasetQuality)
	reg.MustRegister(CodeQualityID, NewCodeQuality)
	return reg
}
