package cmd

import (
	"github.com/huangsam/replaystat/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the replaystat MCP server",
	Long:  `Launch an MCP server that allows AI agents to analyze replays and build skill timelines via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Headers are suppressed per tool call since stdio carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
