package cmd

import (
	"runtime"

	"github.com/huangsam/trustscore/core/engine"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of trustscore.",
	Long: `Display version information including build details and the scoring
engine defaults compiled into this binary.

Shows the release version, Git commit hash, build timestamp, Go runtime
version, the registered metrics, the default plan and the default thresholds.
Include this output when reporting a score that looks wrong.`,
	Run: func(cmd *cobra.Command, _ []string) {
		plan := metrics.DefaultPlan()
		var totalWeight float64
		for _, op := range plan {
			totalWeight += op.Weight
		}
		th := engine.DefaultThresholds()

		cmd.Printf("trustscore CLI\n")
		cmd.Printf("  Version:    %s\n", version)
		cmd.Printf("  Commit:     %s\n", commit)
		cmd.Printf("  Built:      %s\n", date)
		cmd.Printf("  Runtime:    %s\n", runtime.Version())
		cmd.Printf("  Metrics:    %d registered\n", len(metrics.NewRegistry().IDs()))
		cmd.Printf("  Plan:       %d operationalizations (total weight %.2f)\n", len(plan), totalWeight)
		cmd.Printf("  Thresholds: metric %.2f, net score %.2f\n", th.Metric, th.NetScore)
	},
}
