// Package figma provides a thin authenticated client for the Figma REST API
// and a concurrent pipeline for downloading image assets to local storage.
package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the production Figma REST API endpoint.
const DefaultBaseURL = "https://api.figma.com/v1"

// APIError describes a failed Figma API call. Every remote failure, whether
// a non-2xx status or a malformed body, surfaces as an APIError so callers
// can convert it into their own error envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("figma API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("figma API error: %s", e.Message)
}

// Client is an authenticated Figma API client. Each call is a single
// round trip; failures are not retried and propagate to the caller.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Figma API client authenticated with the given
// personal access token.
func NewClient(apiKey string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
		logger: logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var fileURLPattern = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$)`)

// ExtractFileKey extracts the file key from a Figma URL. Both /file/ and
// /design/ URL shapes are supported.
func ExtractFileKey(figmaURL string) (string, error) {
	matches := fileURLPattern.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL: expected a figma.com URL with a /file/ or /design/ path")
	}
	return matches[1], nil
}

// get performs a single authenticated GET request and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("X-Figma-Token", c.apiKey)

	c.logger.Debug("figma API request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Message: fmt.Sprintf("failed to parse response: %v", err)}
	}

	return nil
}

// GetFile retrieves a file's document tree and metadata. A depth greater
// than zero limits how many levels of the tree the API returns.
func (c *Client) GetFile(ctx context.Context, fileKey string, depth int) (*FileResponse, error) {
	query := url.Values{}
	if depth > 0 {
		query.Set("depth", strconv.Itoa(depth))
	}

	var fileResp FileResponse
	if err := c.get(ctx, "/files/"+fileKey, query, &fileResp); err != nil {
		return nil, err
	}
	return &fileResp, nil
}

// GetFileNodes retrieves a specific node (and its subtree) from a file.
func (c *Client) GetFileNodes(ctx context.Context, fileKey, nodeID string, depth int) (*NodesResponse, error) {
	query := url.Values{}
	query.Set("ids", nodeID)
	if depth > 0 {
		query.Set("depth", strconv.Itoa(depth))
	}

	var nodesResp NodesResponse
	if err := c.get(ctx, "/files/"+fileKey+"/nodes", query, &nodesResp); err != nil {
		return nil, err
	}
	return &nodesResp, nil
}

// GetImageRenders asks the API to render the given nodes and returns a map
// of node id to download URL. Nodes that could not be rendered map to an
// empty URL.
func (c *Client) GetImageRenders(ctx context.Context, fileKey string, nodeIDs []string, format string, scale float64) (map[string]string, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(nodeIDs, ","))
	query.Set("format", format)
	if format != "svg" && format != "pdf" {
		query.Set("scale", strconv.FormatFloat(scale, 'g', -1, 64))
	}

	var imagesResp ImagesResponse
	if err := c.get(ctx, "/images/"+fileKey, query, &imagesResp); err != nil {
		return nil, err
	}
	if imagesResp.Err != "" {
		return nil, &APIError{Message: imagesResp.Err}
	}
	return imagesResp.Images, nil
}

// GetImageFills returns the download URLs for all image fills in a file,
// keyed by image ref.
func (c *Client) GetImageFills(ctx context.Context, fileKey string) (map[string]string, error) {
	var fillsResp ImageFillsResponse
	if err := c.get(ctx, "/files/"+fileKey+"/images", nil, &fillsResp); err != nil {
		return nil, err
	}
	if fillsResp.Error {
		return nil, &APIError{StatusCode: fillsResp.Status, Message: "image fills request failed"}
	}
	return fillsResp.Meta.Images, nil
}
