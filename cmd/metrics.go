package cmd

import (
	"github.com/huangsam/trustscore/core"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the active metric plan.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the metric plan used to compute net scores",
	Long: `Show every operationalization in the active plan.

Each row lists:
- Metric id and weight in the net score
- Normalization strategy and its parameters
- Whether a greater raw value is better
- The pass threshold applied to the metric

The default plan can be replaced with a 'plan' list in .trustscore.yaml.
No URLs are fetched. This command is purely informational.

Examples:
  # Show the default plan
  trustscore metrics

  # Inspect a custom plan as JSON
  trustscore metrics --config .trustscore.yaml --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
