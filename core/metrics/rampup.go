package metrics

import "github.com/huangsam/trustscore/core/engine"

// RampUpTimeID estimates how quickly a newcomer can start using an artifact.
const RampUpTimeID = "ramp_up_time"

// RampUpKeys are read from the ramp scope.
var RampUpKeys = []string{"likes_norm", "downloads_norm", "recency_norm"}

// NewRampUpTime returns the ramp-up metric.
func NewRampUpTime() engine.Metric {
	return composite{id: RampUpTimeID, scope: "ramp", keys: RampUpKeys}
}
