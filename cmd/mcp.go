package cmd

import (
	"github.com/huangsam/trustscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the trustscore MCP server",
	Long: `Launch an MCP server over stdio that lets agents score URLs and list metrics
with the score_url and list_metrics tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyManager)
	},
}
