package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paperchat/paperchat/internal/adapters/driven/ai"
	"github.com/paperchat/paperchat/internal/adapters/driven/vectorcache"
	"github.com/paperchat/paperchat/internal/adapters/driving/mcp"
	"github.com/paperchat/paperchat/internal/core/services"
	"github.com/paperchat/paperchat/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead.

Example Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "paperchat": {
        "command": "/path/to/paperchat",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	in, err := getInfra()
	if err != nil {
		return err
	}
	settings := in.config.Settings()

	// The server is long-running; create the AI services once and keep
	// them for its lifetime.
	embedder, err := ai.CreateAndValidateEmbeddingService(settings)
	if err != nil {
		return friendlyError(err)
	}
	defer embedder.Close()

	llm, err := ai.CreateAndValidateLLMService(settings)
	if err != nil {
		return friendlyError(err)
	}
	defer llm.Close()

	ch := newChunker(settings)
	ingestor := services.NewIngestService(in.catalog, in.extractor, embedder, in.docStore, in.vectors, ch)
	querier := services.NewQueryService(in.docStore, in.vectors, embedder, llm, in.sessions, ch, settings.TopK)

	// Flag documents whose store file vanishes while serving.
	watcher, err := vectorcache.NewWatcher(in.vectors)
	if err != nil {
		logger.Warn("Cache watcher unavailable: %v", err)
	} else {
		defer watcher.Close()
		go func() {
			for docID := range watcher.Invalidations() {
				in.documents.Invalidate(cmd.Context(), docID)
			}
		}()
	}

	ports := &mcp.Ports{
		Querier:   querier,
		Ingestor:  ingestor,
		Documents: in.documents,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
