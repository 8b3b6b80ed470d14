package figma

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	maxParallelDownloads = 5

	// Raster renders are exported at 2x for crisp output on dense displays.
	defaultRasterScale = 2
)

// DownloadTask describes one asset to save locally. A task either renders a
// node (ImageRef empty) or resolves an image fill by its ref.
type DownloadTask struct {
	NodeID   string
	ImageRef string
	FileName string
}

// Format infers the export format from the destination file extension.
func (t DownloadTask) Format() string {
	switch strings.ToLower(filepath.Ext(t.FileName)) {
	case ".svg":
		return "svg"
	case ".jpg", ".jpeg":
		return "jpg"
	case ".pdf":
		return "pdf"
	default:
		return "png"
	}
}

// DownloadResult is the per-task outcome. Exactly one of Path or Err is set.
type DownloadResult struct {
	Task DownloadTask
	Path string
	Err  error
}

// DownloadAssets resolves download URLs for every task and saves the assets
// under destDir, creating it if needed. Render targets and image fills are
// resolved with concurrent API calls, then assets download in parallel under
// a small semaphore. A failed item never aborts its siblings; each task gets
// its own result. Existing files at a destination are overwritten.
func (c *Client) DownloadAssets(ctx context.Context, fileKey string, tasks []DownloadTask, destDir string) ([]DownloadResult, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", destDir, err)
	}

	urls := make([]string, len(tasks))
	errs := make([]error, len(tasks))

	// Partition: render tasks grouped by format, fill tasks as one batch.
	renderGroups := make(map[string][]int)
	var fillIdx []int
	for i, task := range tasks {
		if task.ImageRef != "" {
			fillIdx = append(fillIdx, i)
			continue
		}
		format := task.Format()
		renderGroups[format] = append(renderGroups[format], i)
	}

	var wg sync.WaitGroup

	if len(fillIdx) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fills, err := c.GetImageFills(ctx, fileKey)
			for _, i := range fillIdx {
				if err != nil {
					errs[i] = err
					continue
				}
				fillURL, ok := fills[tasks[i].ImageRef]
				if !ok || fillURL == "" {
					errs[i] = fmt.Errorf("no image fill found for ref %s", tasks[i].ImageRef)
					continue
				}
				urls[i] = fillURL
			}
		}()
	}

	for format, indexes := range renderGroups {
		wg.Add(1)
		go func(format string, indexes []int) {
			defer wg.Done()
			nodeIDs := make([]string, len(indexes))
			for j, i := range indexes {
				nodeIDs[j] = tasks[i].NodeID
			}
			renders, err := c.GetImageRenders(ctx, fileKey, nodeIDs, format, defaultRasterScale)
			for _, i := range indexes {
				if err != nil {
					errs[i] = err
					continue
				}
				renderURL := renders[tasks[i].NodeID]
				if renderURL == "" {
					errs[i] = fmt.Errorf("no render URL returned for node %s", tasks[i].NodeID)
					continue
				}
				urls[i] = renderURL
			}
		}(format, indexes)
	}

	wg.Wait()

	// Download resolved assets concurrently, bounded by a semaphore.
	sem := make(chan struct{}, maxParallelDownloads)
	for i := range tasks {
		if errs[i] != nil || urls[i] == "" {
			continue
		}

		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			destPath := filepath.Join(destDir, tasks[i].FileName)
			if err := c.downloadFile(ctx, urls[i], destPath); err != nil {
				errs[i] = err
				return
			}
			urls[i] = destPath
		}(i)
	}
	wg.Wait()

	results := make([]DownloadResult, len(tasks))
	for i, task := range tasks {
		results[i] = DownloadResult{Task: task}
		if errs[i] != nil {
			results[i].Err = errs[i]
			c.logger.Error("asset download failed", "node", task.NodeID, "file", task.FileName, "error", errs[i])
			continue
		}
		results[i].Path = urls[i]
		c.logger.Debug("asset downloaded", "node", task.NodeID, "path", urls[i])
	}

	return results, nil
}

// downloadFile saves the body of a GET request to destPath, overwriting any
// existing file.
func (c *Client) downloadFile(ctx context.Context, srcURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d downloading asset", resp.StatusCode)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", destPath, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("failed to write file %q: %w", destPath, err)
	}

	return nil
}
