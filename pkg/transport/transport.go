// Package transport selects and runs the channel the MCP server speaks over.
package transport

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/config"
)

// Serve attaches the server to the channel selected by mode and blocks until
// the channel closes. The SSE/HTTP transport is intentionally not wired up;
// requesting it fails loudly instead of silently doing nothing.
func Serve(mode string, mcpServer *server.MCPServer) error {
	switch mode {
	case config.TransportStdio:
		return server.ServeStdio(mcpServer)
	case config.TransportSSE:
		return fmt.Errorf("the %q transport is not supported yet; use %q", mode, config.TransportStdio)
	default:
		return fmt.Errorf("unknown transport %q (supported: %q)", mode, config.TransportStdio)
	}
}
