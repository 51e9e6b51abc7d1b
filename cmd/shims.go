package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/huangsam/trustscore/internal/contract"
	"github.com/spf13/cobra"
)

// shim is a thin wrapper around a go toolchain command.
type shim struct {
	banner string
	name   string
	args   []string
}

var (
	installShim = shim{banner: "Installing dependencies...", name: "go", args: []string{"mod", "download"}}
	testShim    = shim{banner: "Running tests...", name: "go", args: []string{"test", "./...", "-cover"}}
)

// run prints the banner and then runs the command, or only echoes it when dryRun is set.
func (s shim) run(ctx context.Context, stdout, stderr io.Writer, dryRun bool) error {
	_, _ = fmt.Fprintln(stdout, s.banner)
	if dryRun {
		_, _ = fmt.Fprintf(stdout, "%s %s\n", s.name, strings.Join(s.args, " "))
		return nil
	}
	c := exec.CommandContext(ctx, s.name, s.args...)
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", s.name, strings.Join(s.args, " "), err)
	}
	return nil
}

func runShim(s shim) func(cmd *cobra.Command, _ []string) {
	return func(cmd *cobra.Command, _ []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if err := s.run(rootCtx, cmd.OutOrStdout(), os.Stderr, dryRun); err != nil {
			contract.LogFatal("Command failed", err)
		}
	}
}

// installCmd downloads module dependencies.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download module dependencies",
	Long: `Download every module dependency so later runs work offline.

Runs 'go mod download' in the current directory. Use --dry-run to print the
command without running it.`,
	Args: cobra.NoArgs,
	Run:  runShim(installShim),
}

// testCmd runs the test suite with coverage.
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Run the test suite with coverage",
	Long: `Run 'go test ./... -cover' in the current directory.

Use --dry-run to print the command without running it.`,
	Args: cobra.NoArgs,
	Run:  runShim(testShim),
}
