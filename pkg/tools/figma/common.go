// Package figma exposes the Figma REST API as MCP tools.
package figma

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pixelmachine/mcp-server-figma-bridge/core"
	figmaapi "github.com/pixelmachine/mcp-server-figma-bridge/pkg/figma"
)

// API is the surface of the Figma client the tools depend on. Tests supply
// a fake to observe that invalid requests never reach the network.
type API interface {
	GetFile(ctx context.Context, fileKey string, depth int) (*figmaapi.FileResponse, error)
	GetFileNodes(ctx context.Context, fileKey, nodeID string, depth int) (*figmaapi.NodesResponse, error)
	DownloadAssets(ctx context.Context, fileKey string, tasks []figmaapi.DownloadTask, destDir string) ([]figmaapi.DownloadResult, error)
}

// Node ids look like "1:2"; clients copying from Figma URLs often carry the
// "1-2" form instead.
var nodeIDPattern = regexp.MustCompile(`^\d+[:-]\d+$`)

// normalizeNodeID validates a node id argument and canonicalizes the URL
// form to the API form.
func normalizeNodeID(nodeID string) (string, error) {
	if !nodeIDPattern.MatchString(nodeID) {
		return "", fmt.Errorf("%w: invalid nodeId %q: expected the form '1:2' or '1-2'", core.ErrInvalidParams, nodeID)
	}
	return strings.ReplaceAll(nodeID, "-", ":"), nil
}

// resolveFileKey accepts either a bare file key or a full Figma URL.
func resolveFileKey(fileKey string) (string, error) {
	if strings.HasPrefix(fileKey, "http://") || strings.HasPrefix(fileKey, "https://") {
		return figmaapi.ExtractFileKey(fileKey)
	}
	if fileKey == "" {
		return "", fmt.Errorf("%w: fileKey must not be empty", core.ErrInvalidParams)
	}
	return fileKey, nil
}

// recoverToResult converts a handler panic into an error result so a single
// bad request cannot take down the server.
func recoverToResult(result **mcp.CallToolResult) {
	if r := recover(); r != nil {
		*result = mcp.NewToolResultError(fmt.Sprintf("internal error: %v", r))
	}
}
