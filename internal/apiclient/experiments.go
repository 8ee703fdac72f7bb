package apiclient

import (
	"context"
	"fmt"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const experimentsPath = "/api/experiments/"

// ListExperiments fetches the full experiment collection, members included.
func (c *Client) ListExperiments(ctx context.Context) ([]model.Experiment, error) {
	var out []model.Experiment
	if err := c.getJSON(ctx, experimentsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateExperiment creates an experiment and returns the server's
// representation.
func (c *Client) CreateExperiment(ctx context.Context, req model.CreateExperimentRequest) (model.Experiment, error) {
	var out model.Experiment
	if err := c.postJSON(ctx, experimentsPath, req, &out); err != nil {
		return model.Experiment{}, err
	}
	return out, nil
}

// UpdateExperiment applies a partial update and returns the mutated record.
func (c *Client) UpdateExperiment(ctx context.Context, id int, req model.UpdateExperimentRequest) (model.Experiment, error) {
	var out model.Experiment
	if err := c.putJSON(ctx, fmt.Sprintf("/api/experiments/%d", id), req, &out); err != nil {
		return model.Experiment{}, err
	}
	return out, nil
}

// DeleteExperiment removes an experiment.
func (c *Client) DeleteExperiment(ctx context.Context, id int) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/experiments/%d", id))
}
