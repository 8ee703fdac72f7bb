package apiclient

import (
	"context"
	"strconv"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const activitiesPath = "/api/activities/"

// ListActivities fetches the newest audit-trail entries, up to limit.
// A limit of zero or less defers to the server's default page size.
func (c *Client) ListActivities(ctx context.Context, limit int) ([]model.Activity, error) {
	path := activitiesPath
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out []model.Activity
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateActivity appends an entry to the audit trail and returns the
// server's record with the denormalized username filled in.
func (c *Client) CreateActivity(ctx context.Context, req model.CreateActivityRequest) (model.Activity, error) {
	var out model.Activity
	if err := c.postJSON(ctx, activitiesPath, req, &out); err != nil {
		return model.Activity{}, err
	}
	return out, nil
}
