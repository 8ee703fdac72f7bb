package apiclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const fingerBloodPath = "/api/fingerBloodData/"

// ListFingerBloodRecords fetches the full finger-blood collection.
func (c *Client) ListFingerBloodRecords(ctx context.Context) ([]model.FingerBloodRecord, error) {
	var out []model.FingerBloodRecord
	if err := c.getJSON(ctx, fingerBloodPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateFingerBloodRecord records a measurement and returns the server's
// representation.
func (c *Client) CreateFingerBloodRecord(ctx context.Context, req model.CreateFingerBloodRequest) (model.FingerBloodRecord, error) {
	var out model.FingerBloodRecord
	if err := c.postJSON(ctx, fingerBloodPath, req, &out); err != nil {
		return model.FingerBloodRecord{}, err
	}
	return out, nil
}

// UpdateFingerBloodRecord applies a partial update and returns the mutated
// record.
func (c *Client) UpdateFingerBloodRecord(ctx context.Context, id int, req model.UpdateFingerBloodRequest) (model.FingerBloodRecord, error) {
	var out model.FingerBloodRecord
	if err := c.putJSON(ctx, fmt.Sprintf("/api/fingerBloodData/%d", id), req, &out); err != nil {
		return model.FingerBloodRecord{}, err
	}
	return out, nil
}

// DeleteFingerBloodRecord removes a measurement.
func (c *Client) DeleteFingerBloodRecord(ctx context.Context, id int) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/fingerBloodData/%d", id))
}

// ExportFingerBloodExcel streams the server-generated spreadsheet for the
// filtered records. Callers own closing the body.
func (c *Client) ExportFingerBloodExcel(ctx context.Context, filter model.FingerBloodExportFilter) (io.ReadCloser, error) {
	params := url.Values{}
	if filter.BatchID > 0 {
		params.Set("batch_id", strconv.Itoa(filter.BatchID))
	}
	if filter.PersonID > 0 {
		params.Set("person_id", strconv.Itoa(filter.PersonID))
	}
	if !filter.StartTime.IsZero() {
		params.Set("start_time", filter.StartTime.String())
	}
	if !filter.EndTime.IsZero() {
		params.Set("end_time", filter.EndTime.String())
	}

	path := "/api/fingerBloodData/export/excel"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.doRaw(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
