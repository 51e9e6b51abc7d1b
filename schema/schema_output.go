package schema

import "time"

// Pass/fail labels.
const (
	PassLabel = "PASS"
	FailLabel = "FAIL"
	NoneLabel = "N/A"
)

// GetPlainLabel returns the label for a binary decision. A nil decision
// means the artifact could not be scored.
func GetPlainLabel(binary *int) string {
	switch {
	case binary == nil:
		return NoneLabel
	case *binary == 1:
		return PassLabel
	default:
		return FailLabel
	}
}

// MetricScore is one metric's entry in an evaluation breakdown.
type MetricScore struct {
	MetricID  string  `json:"metric_id"`
	Value     float64 `json:"value"`
	Weight    float64 `json:"weight"`
	Binary    int     `json:"binary"`
	LatencyMs int64   `json:"latency_ms"`
}

// Evaluation is everything produced for one URL. Record is the wire output;
// the rest feeds the text table, history and the MCP tools.
type Evaluation struct {
	Target         Target        `json:"target"`
	Record         Record        `json:"record"`
	NetScoreBinary *int          `json:"net_score_binary"`
	Breakdown      []MetricScore `json:"breakdown"`
	EvaluatedAt    time.Time     `json:"evaluated_at"`
	Warning        string        `json:"warning,omitempty"`
}

// Scored reports whether metrics ran for the evaluation.
func (e Evaluation) Scored() bool {
	return e.NetScoreBinary != nil
}
