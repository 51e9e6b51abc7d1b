package metrics

import (
	"strings"
	"unicode"

	"github.com/huangsam/trustscore/core/engine"
)

// LicenseComplianceID checks the artifact license against a compatible set.
const LicenseComplianceID = "license_compliance"

// DefaultCompatibleLicenses applies when the context carries no compatible_licenses.
var DefaultCompatibleLicenses = []string{
	"mit",
	"apache-2.0",
	"apache",
	"bsd-2-clause",
	"bsd-3-clause",
	"bsd",
	"lgpl-2.1",
	"lgpl-3.0",
	"mpl-2.0",
	"isc",
	"unlicense",
	"cc0-1.0",
	"cc-by-4.0",
}

type licenseCompliance struct{}

// NewLicenseCompliance returns the license compliance metric.
func NewLicenseCompliance() engine.Metric { return licenseCompliance{} }

func (licenseCompliance) ID() string { return LicenseComplianceID }

// Compute passes when the lower-cased license equals a compatible entry or
// starts with one, either as a whole or in one of its alphanumeric tokens.
func (licenseCompliance) Compute(c engine.Context, p engine.Params) (engine.MetricResult, error) {
	license, _ := c["license"].(string)
	license = strings.ToLower(strings.TrimSpace(license))

	compatible := compatibleLicenses(c["compatible_licenses"])
	var matched string
	if license != "" {
		for _, entry := range compatible {
			if licenseMatches(license, entry) {
				matched = entry
				break
			}
		}
	}

	value := 0.0
	if matched != "" {
		value = 1.0
	}
	details := map[string]any{"license": license, "matched": matched}
	return engine.NewMetricResult(LicenseComplianceID, value, engine.Binarize(value, p.Threshold), details, 0), nil
}

func licenseMatches(license, entry string) bool {
	if entry == "" {
		return false
	}
	if strings.HasPrefix(license, entry) {
		return true
	}
	tokens := strings.FieldsFunc(license, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, token := range tokens {
		if strings.HasPrefix(token, entry) {
			return true
		}
	}
	return false
}

func compatibleLicenses(raw any) []string {
	var in []string
	switch v := raw.(type) {
	case []string:
		in = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				in = append(in, s)
			}
		}
	default:
		return DefaultCompatibleLicenses
	}
	if len(in) == 0 {
		return DefaultCompatibleLicenses
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
