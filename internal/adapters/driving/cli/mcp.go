package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	mcpserver "github.com/custodia-labs/docmcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docmcp/internal/logger"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the MCP server. By default it speaks over stdio for use as a
subprocess of an MCP client. With --port it serves streamable HTTP
instead.`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if libraryService == nil || searchService == nil || documentService == nil {
		return errors.New("services not configured")
	}

	server, err := mcpserver.NewServer(&mcpserver.Ports{
		Library:  libraryService,
		Search:   searchService,
		Document: documentService,
		Sync:     syncOrchestrator,
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	if mcpPort > 0 {
		// Stdout stays free for command output; the notice goes to stderr
		// like the rest of the logging.
		cmd.PrintErrf("MCP server listening on :%d\n", mcpPort)
		return server.RunHTTP(cmd.Context(), fmt.Sprintf(":%d", mcpPort))
	}

	logger.Debug("Starting MCP server on stdio")
	return server.Run(cmd.Context())
}
