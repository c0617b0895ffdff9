package cmd

import (
	"github.com/capsight/capsight/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Capsight MCP server",
	Long:  `Launch an MCP server that allows AI agents to run capacity and sprint analytics via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The protocol owns stdio, so no report headers are printed in this mode.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, sourceClient, overrideStore)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
