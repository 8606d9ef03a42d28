package cmd

import (
	"context"

	"github.com/jreiser/trendreport/internal/mcp"
	"github.com/jreiser/trendreport/internal/parquet"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp [data-dir]",
	Short:   "Start the trendreport MCP server",
	Long:    `Launch an MCP server that allows AI agents to run cohort behavior reports via standard tools.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(context.Background(), cfg, parquet.FileSource{})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
