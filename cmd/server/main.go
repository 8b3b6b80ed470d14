// Command server is the main entry point for the Figma bridge MCP server.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/pixelmachine/mcp-server-figma-bridge/core"
	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/config"
	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/figma"
	figmatools "github.com/pixelmachine/mcp-server-figma-bridge/pkg/tools/figma"
	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/transport"
)

const version = "1.0.0"

var (
	transportFlag string
	portFlag      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "figma-bridge",
		Short:        "Expose the Figma API as MCP tools",
		Long:         "An MCP server that lets clients fetch simplified Figma documents and download image assets through schema-validated tools.",
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&transportFlag, "transport", "", "Transport to serve on: stdio (default) or sse; overrides the TRANSPORT environment variable")
	rootCmd.Flags().IntVar(&portFlag, "port", 0, "Port for network transports; overrides the PORT environment variable")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-bridge version %s\n", version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if transportFlag != "" {
		cfg.Server.Transport = transportFlag
	}
	if portFlag != 0 {
		cfg.Server.Port = portFlag
	}

	// Flag overrides may change the transport after Load applied the port
	// sentinel, so normalize again.
	if cfg.Server.Transport == config.TransportStdio {
		cfg.Server.Port = config.PortUnused
	} else if cfg.Server.Port == config.PortUnused {
		cfg.Server.Port = config.DefaultPort
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	// The stdio transport owns stdout, so logs go to stderr.
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "figma-bridge",
	})
	logger = logger.With("environment", cfg.Environment, "host", cfg.Server.Host)

	logger.Info("starting server", "version", version, "transport", cfg.Server.Transport)

	clientOpts := []figma.Option{}
	if cfg.Figma.APIBase != "" {
		clientOpts = append(clientOpts, figma.WithBaseURL(cfg.Figma.APIBase))
	}
	client := figma.NewClient(cfg.Figma.APIKey, logger, clientOpts...)

	mcpServer := server.NewMCPServer(
		"Figma Bridge MCP Server",
		version,
		server.WithResourceCapabilities(false, false),
		server.WithLogging(),
	)

	registry := core.NewToolRegistry(mcpServer)
	for _, tool := range []core.Tool{
		figmatools.NewGetDocumentDataTool(client, logger),
		figmatools.NewDownloadImagesTool(client, logger),
	} {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	logger.Info("tools registered", "tools", registry.Names())

	if err := transport.Serve(cfg.Server.Transport, mcpServer); err != nil {
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}
