package figma

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pixelmachine/mcp-server-figma-bridge/core"
	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/simplify"
	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/tools/utils"
)

// GetDocumentDataTool fetches a Figma file (or a single node subtree) and
// returns its simplified representation as one JSON text block.
type GetDocumentDataTool struct {
	handle mcp.Tool
	client API
	logger *log.Logger
}

// NewGetDocumentDataTool creates the get_document_data tool.
func NewGetDocumentDataTool(client API, logger *log.Logger) core.Tool {
	t := &GetDocumentDataTool{
		client: client,
		logger: logger,
	}

	t.handle = mcp.NewTool(
		"get_document_data",
		mcp.WithDescription("Fetch layout and styling information from a Figma file, simplified and deduplicated for downstream consumption."),
		mcp.WithString(
			"fileKey",
			mcp.Required(),
			mcp.Description("The Figma file key, or a full figma.com file/design URL."),
		),
		mcp.WithString(
			"nodeId",
			mcp.Description("Optional. A node id such as '1:2' to fetch only that subtree."),
		),
		mcp.WithNumber(
			"depth",
			mcp.Description("Optional. Maximum tree depth to descend; omit for the full tree."),
		),
	)

	return t
}

// Handle returns the tool's definition.
func (t *GetDocumentDataTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool. Argument validation happens before any network
// call; all failures come back as error results, never as a crashed server.
func (t *GetDocumentDataTool) Handler(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer recoverToResult(&result)

	logger := t.logger.With("tool", "get_document_data", "request_id", uuid.NewString())

	rawKey, err := utils.GetRequiredStringParam(request, "fileKey")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	fileKey, err := resolveFileKey(rawKey)
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	nodeID, err := utils.GetOptionalStringParam(request, "nodeId")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	if nodeID != "" {
		if nodeID, err = normalizeNodeID(nodeID); err != nil {
			return utils.HandleParameterError(err), nil
		}
	}

	depth, err := utils.GetOptionalIntParam(request, "depth")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	if depth < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid depth %d: must not be negative", depth)), nil
	}

	logger.Info("fetching document", "file", fileKey, "node", nodeID, "depth", depth)

	var design *simplify.Design
	if nodeID != "" {
		nodesResp, apiErr := t.client.GetFileNodes(ctx, fileKey, nodeID, depth)
		if apiErr != nil {
			logger.Error("node fetch failed", "error", apiErr)
			return core.NewErrorResult(fmt.Errorf("%w: failed to fetch node: %v", core.ErrExternalAPIError, apiErr)), nil
		}
		design = simplify.SimplifyNodes(nodesResp, depth)
	} else {
		fileResp, apiErr := t.client.GetFile(ctx, fileKey, depth)
		if apiErr != nil {
			logger.Error("file fetch failed", "error", apiErr)
			return core.NewErrorResult(fmt.Errorf("%w: failed to fetch file: %v", core.ErrExternalAPIError, apiErr)), nil
		}
		design = simplify.Simplify(fileResp, depth)
	}

	// One pre-assembled payload bounds peak memory to a single response body.
	payload, err := json.Marshal(design)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to serialize document: %v", err)), nil
	}

	logger.Info("document simplified", "nodes", len(design.Nodes), "styles", len(design.GlobalVars.Styles))
	return core.NewTextResult(string(payload)), nil
}
