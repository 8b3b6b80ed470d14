// Package core provides the tool interface and registry for the Figma bridge.
package core

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
)

// Standard errors for consistent error handling across tools.
var (
	ErrInvalidParams    = errors.New("invalid parameters")
	ErrExternalAPIError = errors.New("external API error")
)

// Tool defines the interface for all tools exposed by the server.
type Tool interface {
	// Handle returns the underlying MCP tool definition
	Handle() mcp.Tool

	// Handler processes tool requests and returns responses
	Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// NewErrorResult creates a standard error result.
func NewErrorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(err.Error())
}

// NewTextResult creates a standard text result.
func NewTextResult(text string) *mcp.CallToolResult {
	return mcp.NewToolResultText(text)
}
