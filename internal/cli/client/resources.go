package client

import (
	"context"
	"fmt"

	"github.com/modelverse-dev/modelverse/internal/models"
)

// ListResources returns all models and datasets tracked by the platform
func (c *Client) ListResources(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := c.get(ctx, "/resources", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// GetResource returns a single resource by ID
func (c *Client) GetResource(ctx context.Context, id int64) (*models.Resource, error) {
	var resource models.Resource
	if err := c.get(ctx, fmt.Sprintf("/resources/%d", id), &resource); err != nil {
		return nil, err
	}
	return &resource, nil
}

// DownloadResource requests a server-side download of the resource from the
// given source ("OFFICIAL" by convention when empty).
func (c *Client) DownloadResource(ctx context.Context, id int64, source string) error {
	if source == "" {
		source = "OFFICIAL"
	}
	body := map[string]string{"source": source}
	return c.post(ctx, fmt.Sprintf("/resources/%d/download", id), body, nil)
}

// CancelDownload stops an in-flight resource download
func (c *Client) CancelDownload(ctx context.Context, id int64) error {
	return c.post(ctx, fmt.Sprintf("/resources/%d/stop", id), nil, nil)
}

// RetryDownload restarts a failed resource download
func (c *Client) RetryDownload(ctx context.Context, id int64, source string) error {
	if source == "" {
		source = "OFFICIAL"
	}
	body := map[string]string{"source": source}
	return c.post(ctx, fmt.Sprintf("/resources/%d/retry", id), body, nil)
}

// DeleteResource removes a resource and its local files
func (c *Client) DeleteResource(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/resources/%d", id))
}

// DownloadProgress polls the progress of a resource download
func (c *Client) DownloadProgress(ctx context.Context, id int64) (*models.DownloadProgress, error) {
	var progress models.DownloadProgress
	if err := c.get(ctx, fmt.Sprintf("/resources/%d/progress", id), &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ScanLocalResources asks the server to rescan its local resource
// directories. Anonymous endpoint.
func (c *Client) ScanLocalResources(ctx context.Context) ([]models.Resource, error) {
	var resources []models.Resource
	if err := c.get(ctx, "/resources/scan", &resources); err != nil {
		return nil, err
	}
	return resources, nil
}
