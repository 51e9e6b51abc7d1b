// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteEvaluations prints evaluation records using the configured output format.
func (ow *OutWriter) WriteEvaluations(evals []schema.Evaluation, cfg *contract.Config, duration time.Duration) error {
	return WriteEvaluationResults(evals, cfg, duration)
}

// WritePlan prints the active operationalizations using the configured output format.
func (ow *OutWriter) WritePlan(plan []engine.Operationalization, cfg *contract.Config) error {
	return WritePlanResults(plan, cfg)
}

// Table layout bounds for the name column.
const (
	defaultTermWidth = 80
	minNameWidth     = 12
	maxNameWidth     = 48
	fixedColumnWidth = 110 // Category through Latency with borders and padding
)

// GetMaxTableNameWidth calculates the maximum width for artifact names in
// table output based on terminal width.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = defaultTermWidth // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	available := termWidth - fixedColumnWidth
	return min(max(available, minNameWidth), maxNameWidth)
}
