package apiclient

import (
	"context"
	"fmt"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const batchesPath = "/api/batches/"

// ListBatches fetches the full batch collection.
func (c *Client) ListBatches(ctx context.Context) ([]model.Batch, error) {
	var out []model.Batch
	if err := c.getJSON(ctx, batchesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateBatch creates a batch and returns the server's representation,
// including the assigned id.
func (c *Client) CreateBatch(ctx context.Context, req model.CreateBatchRequest) (model.Batch, error) {
	var out model.Batch
	if err := c.postJSON(ctx, batchesPath, req, &out); err != nil {
		return model.Batch{}, err
	}
	return out, nil
}

// UpdateBatch applies a partial update and returns the server's
// representation of the mutated record.
func (c *Client) UpdateBatch(ctx context.Context, id int, req model.UpdateBatchRequest) (model.Batch, error) {
	var out model.Batch
	if err := c.putJSON(ctx, fmt.Sprintf("/api/batches/%d", id), req, &out); err != nil {
		return model.Batch{}, err
	}
	return out, nil
}

// DeleteBatch removes a batch.
func (c *Client) DeleteBatch(ctx context.Context, id int) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/batches/%d", id))
}
