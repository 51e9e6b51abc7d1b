package cmd

import (
	"github.com/huangsam/trustscore/core"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd evaluates the given URLs. It behaves like the root command.
var scoreCmd = &cobra.Command{
	Use:   "score <url>...",
	Short: "Score models, datasets and code repositories by URL",
	Long: `Evaluate each URL with the active metric plan and print one record per URL.

Every URL is classified as a model, dataset or code repository. A context is
gathered from the context file, GitHub and Hugging Face (unless --offline),
and each metric in the plan is computed against it. The weighted net score is
compared to the net score threshold to produce a PASS or FAIL label.

URLs that cannot be classified or fetched still produce a record with null
scores and a warning on stderr.

Examples:
  # Score two artifacts with a table
  trustscore score https://huggingface.co/google/gemma-2b https://github.com/google/gemma_pytorch

  # Use a local context file and skip the network
  trustscore score --offline --context-file contexts.yaml https://huggingface.co/google/gemma-2b

  # Write CSV for a spreadsheet
  trustscore score --output csv --output-file scores.csv https://huggingface.co/datasets/squad`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteScore(rootCtx, cfg, historyManager); err != nil {
			contract.LogFatal("Cannot score URLs", err)
		}
	},
}
