package apiclient

import (
	"context"
	"fmt"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const sensorsPath = "/api/sensors/"

// ListSensors fetches the full sensor collection.
func (c *Client) ListSensors(ctx context.Context) ([]model.Sensor, error) {
	var out []model.Sensor
	if err := c.getJSON(ctx, sensorsPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSensor registers a sensor and returns the server's representation.
func (c *Client) CreateSensor(ctx context.Context, req model.CreateSensorRequest) (model.Sensor, error) {
	var out model.Sensor
	if err := c.postJSON(ctx, sensorsPath, req, &out); err != nil {
		return model.Sensor{}, err
	}
	return out, nil
}

// UpdateSensor applies a partial update and returns the mutated record.
func (c *Client) UpdateSensor(ctx context.Context, id int, req model.UpdateSensorRequest) (model.Sensor, error) {
	var out model.Sensor
	if err := c.putJSON(ctx, fmt.Sprintf("/api/sensors/%d", id), req, &out); err != nil {
		return model.Sensor{}, err
	}
	return out, nil
}

// DeleteSensor removes a sensor.
func (c *Client) DeleteSensor(ctx context.Context, id int) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/sensors/%d", id))
}
