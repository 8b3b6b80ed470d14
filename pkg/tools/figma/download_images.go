package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pixelmachine/mcp-server-figma-bridge/core"
	figmaapi "github.com/pixelmachine/mcp-server-figma-bridge/pkg/figma"
	"github.com/pixelmachine/mcp-server-figma-bridge/pkg/tools/utils"
)

// ImageNode is one requested asset: a node to render, or an image fill
// resolved via imageRef, saved under fileName.
type ImageNode struct {
	NodeID   string `json:"nodeId"`
	ImageRef string `json:"imageRef,omitempty"`
	FileName string `json:"fileName"`
}

var allowedExtensions = map[string]bool{
	".svg":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".pdf":  true,
}

// DownloadImagesTool saves rendered nodes and image fills from a Figma file
// into a local directory.
type DownloadImagesTool struct {
	handle mcp.Tool
	client API
	logger *log.Logger
}

// NewDownloadImagesTool creates the download_images tool.
func NewDownloadImagesTool(client API, logger *log.Logger) core.Tool {
	t := &DownloadImagesTool{
		client: client,
		logger: logger,
	}

	t.handle = mcp.NewTool(
		"download_images",
		mcp.WithDescription("Download rendered nodes (SVG/PNG/JPG/PDF by file extension) and image fills from a Figma file into a local directory."),
		mcp.WithString(
			"fileKey",
			mcp.Required(),
			mcp.Description("The Figma file key, or a full figma.com file/design URL."),
		),
		mcp.WithString(
			"nodes",
			mcp.Required(),
			mcp.Description(`A JSON array of assets to download. Each element is an object with 'nodeId' (e.g. "1:2"), 'fileName' (destination name, extension picks the format) and optionally 'imageRef' for image fills.`),
		),
		mcp.WithString(
			"localPath",
			mcp.Required(),
			mcp.Description("Absolute directory to save the assets into; created if it does not exist."),
		),
	)

	return t
}

// Handle returns the tool's definition.
func (t *DownloadImagesTool) Handle() mcp.Tool {
	return t.handle
}

// Handler executes the tool. Every node entry is validated before any
// network call; per-asset failures are aggregated rather than aborting the
// remaining downloads.
func (t *DownloadImagesTool) Handler(ctx context.Context, request mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer recoverToResult(&result)

	logger := t.logger.With("tool", "download_images", "request_id", uuid.NewString())

	rawKey, err := utils.GetRequiredStringParam(request, "fileKey")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	fileKey, err := resolveFileKey(rawKey)
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	localPath, err := utils.GetRequiredStringParam(request, "localPath")
	if err != nil {
		return utils.HandleParameterError(err), nil
	}

	nodes, err := parseImageNodes(request)
	if err != nil {
		return utils.HandleParameterError(err), nil
	}
	if len(nodes) == 0 {
		return mcp.NewToolResultError("nodes must contain at least one entry"), nil
	}

	tasks := make([]figmaapi.DownloadTask, 0, len(nodes))
	for _, node := range nodes {
		nodeID, err := normalizeNodeID(node.NodeID)
		if err != nil {
			return utils.HandleParameterError(err), nil
		}
		if node.FileName == "" {
			return mcp.NewToolResultError(fmt.Sprintf("node %s: fileName is required", node.NodeID)), nil
		}
		if ext := strings.ToLower(filepath.Ext(node.FileName)); !allowedExtensions[ext] {
			return mcp.NewToolResultError(fmt.Sprintf("node %s: unsupported file extension %q (svg, png, jpg, pdf)", node.NodeID, ext)), nil
		}

		tasks = append(tasks, figmaapi.DownloadTask{
			NodeID:   nodeID,
			ImageRef: node.ImageRef,
			FileName: node.FileName,
		})
	}

	logger.Info("downloading assets", "file", fileKey, "count", len(tasks), "dest", localPath)

	results, err := t.client.DownloadAssets(ctx, fileKey, tasks, localPath)
	if err != nil {
		logger.Error("download failed", "error", err)
		return core.NewErrorResult(fmt.Errorf("%w: failed to download images: %v", core.ErrExternalAPIError, err)), nil
	}

	var failures []string
	for _, res := range results {
		if res.Err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", res.Task.FileName, res.Err))
		}
	}

	if len(failures) > 0 {
		logger.Error("downloads incomplete", "failed", len(failures), "total", len(results))
		return mcp.NewToolResultError(fmt.Sprintf(
			"%d of %d images failed to download:\n%s",
			len(failures), len(results), strings.Join(failures, "\n"),
		)), nil
	}

	logger.Info("downloads complete", "count", len(results))
	return core.NewTextResult(fmt.Sprintf("%d images downloaded to %s", len(results), localPath)), nil
}

// parseImageNodes accepts the nodes argument either as a JSON array value or
// as a string containing the encoded array.
func parseImageNodes(request mcp.CallToolRequest) ([]ImageNode, error) {
	raw, exists := request.Params.Arguments["nodes"]
	if !exists || raw == nil {
		return nil, fmt.Errorf("missing required parameter: 'nodes'")
	}

	var encoded []byte
	switch v := raw.(type) {
	case string:
		encoded = []byte(v)
	case []any:
		var err error
		if encoded, err = json.Marshal(v); err != nil {
			return nil, fmt.Errorf("parameter 'nodes' is not encodable: %v", err)
		}
	default:
		return nil, fmt.Errorf("parameter 'nodes' must be a JSON array or an encoded JSON array string")
	}

	var nodes []ImageNode
	if err := json.Unmarshal(encoded, &nodes); err != nil {
		return nil, fmt.Errorf("invalid nodes array: %v", err)
	}
	return nodes, nil
}
