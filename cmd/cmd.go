// Package cmd defines the command-line interface for trustscore.
package cmd

import (
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(testCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or json or ndjson or csv")
	rootCmd.PersistentFlags().Bool("ndjson", false, "Emit NDJSON records (same as --output ndjson)")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().IntP("verbosity", "v", 0, "Log verbosity: 0 errors, 1 info, 2 debug (env LOG_VERBOSITY)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for scores in tables and CSV (1 or 2)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("context-file", "", "YAML or JSON file mapping URLs to evaluation contexts")
	rootCmd.PersistentFlags().Bool("offline", false, "Skip the GitHub and Hugging Face providers")
	rootCmd.PersistentFlags().String("timeout", contract.DefaultHTTPTimeout.String(), "HTTP timeout for remote providers")
	rootCmd.PersistentFlags().String("github-api-url", "", "GitHub API base URL (for GitHub Enterprise)")
	rootCmd.PersistentFlags().String("hf-endpoint", contract.DefaultHFEndpoint, "Hugging Face endpoint")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// install and test only need a dry-run switch
	installCmd.Flags().Bool("dry-run", false, "Print the command without running it")
	testCmd.Flags().Bool("dry-run", false, "Print the command without running it")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
