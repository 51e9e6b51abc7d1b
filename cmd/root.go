package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/trustscore/core"
	"github.com/huangsam/trustscore/core/metrics"
	"github.com/huangsam/trustscore/internal/contract"
	"github.com/huangsam/trustscore/internal/history"
	"github.com/huangsam/trustscore/internal/logging"
	"github.com/huangsam/trustscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ErrNoInput is returned when neither a command nor URLs are given.
var ErrNoInput = errors.New("No command or URLs provided") //nolint:staticcheck // printed verbatim

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// historyManager is the global run history manager instance.
var historyManager contract.HistoryManager

// rootCmd is the command-line entrypoint for all other commands.
// Positional arguments are URLs to score.
var rootCmd = &cobra.Command{
	Use:   "trustscore [urls...]",
	Short: "Score machine learning models, datasets and code repositories for trustworthy re-use.",
	Long: `Trustscore evaluates Hugging Face models, Hugging Face datasets and GitHub
repositories with a configurable set of metrics and combines them into a weighted net score.

Examples:
  # Score a model and print a table
  trustscore https://huggingface.co/google/gemma-2b

  # Emit validated NDJSON records
  trustscore --ndjson https://github.com/huggingface/transformers`,
	Version:            version,
	Args:               cobra.ArbitraryArgs,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return ErrNoInput
		}
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteScore(rootCtx, cfg, historyManager)
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("TRUSTSCORE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Unprefixed variables shared with other tooling
	_ = viper.BindEnv("metric-threshold", "TRUSTSCORE_METRIC_THRESHOLD", "METRIC_THRESHOLD")
	_ = viper.BindEnv("netscore-threshold", "TRUSTSCORE_NETSCORE_THRESHOLD", "NETSCORE_THRESHOLD")
	_ = viper.BindEnv("verbosity", "TRUSTSCORE_VERBOSITY", "LOG_VERBOSITY")
	_ = viper.BindEnv("github-token", "TRUSTSCORE_GITHUB_TOKEN", "GITHUB_TOKEN")

	// Set defaults in Viper
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", string(schema.TextOut))
	viper.SetDefault("timeout", contract.DefaultHTTPTimeout.String())
	viper.SetDefault("hf-endpoint", contract.DefaultHFEndpoint)
	viper.SetDefault("history-backend", string(schema.NoneBackend))
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.URLs = args

	// 4. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, metrics.NewRegistry(), input); err != nil {
		return err
	}
	logging.SetDefaultCLILogger(cfg.Verbosity)
	color.NoColor = !cfg.UseColors

	// 5. Initialize run history with validated config
	if err := history.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".trustscore") // Name of config file (without extension)
		viper.SetConfigType("yaml")        // We'll use YAML format
		viper.AddConfigPath(".")           // Look in the current directory
		viper.AddConfigPath("$HOME")       // Look in the home directory
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetHistoryManager sets the global run history manager.
func SetHistoryManager(mgr contract.HistoryManager) {
	historyManager = mgr
}
