package apiclient

import (
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/glucolab/labconsole/internal/domain/model"
)

const competitorFilesPath = "/api/competitorFiles/"

// ListCompetitorFiles fetches the full competitor file collection.
func (c *Client) ListCompetitorFiles(ctx context.Context) ([]model.CompetitorFile, error) {
	var out []model.CompetitorFile
	if err := c.getJSON(ctx, competitorFilesPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadCompetitorFile streams a multipart upload: person_id and batch_id
// as form fields, the content as the "file" part.
func (c *Client) UploadCompetitorFile(ctx context.Context, req model.UploadCompetitorFileRequest, content io.Reader) (model.CompetitorFile, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadParts(mw, req, content)
		if closeErr := mw.Close(); err == nil {
			err = closeErr
		}
		pw.CloseWithError(err)
	}()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/competitorFiles/upload"), pr)
	if err != nil {
		return model.CompetitorFile{}, fmt.Errorf("create upload request: %w", err)
	}
	httpReq.Header.Set("Content-Type", mw.FormDataContentType())
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return model.CompetitorFile{}, fmt.Errorf("upload competitor file: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.CompetitorFile{}, decodeError(resp)
	}

	var out model.CompetitorFile
	if err := decodeBody(resp.Body, &out); err != nil {
		return model.CompetitorFile{}, fmt.Errorf("decode upload response: %w", err)
	}
	return out, nil
}

func writeUploadParts(mw *multipart.Writer, req model.UploadCompetitorFileRequest, content io.Reader) error {
	if err := mw.WriteField("person_id", strconv.Itoa(req.PersonID)); err != nil {
		return fmt.Errorf("write person_id field: %w", err)
	}
	if err := mw.WriteField("batch_id", strconv.Itoa(req.BatchID)); err != nil {
		return fmt.Errorf("write batch_id field: %w", err)
	}
	part, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("copy file content: %w", err)
	}
	return nil
}

// DownloadCompetitorFile streams the file content. The returned name comes
// from Content-Disposition when the server set one. Callers own closing
// the body.
func (c *Client) DownloadCompetitorFile(ctx context.Context, id int) (io.ReadCloser, string, error) {
	resp, err := c.doRaw(ctx, http.MethodGet, fmt.Sprintf("/api/competitorFiles/download/%d", id))
	if err != nil {
		return nil, "", err
	}

	filename := ""
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, parseErr := mime.ParseMediaType(cd); parseErr == nil {
			filename = params["filename"]
		}
	}
	return resp.Body, filename, nil
}

// DeleteCompetitorFile removes a file record and its stored content.
func (c *Client) DeleteCompetitorFile(ctx context.Context, id int) error {
	return c.deletePath(ctx, fmt.Sprintf("/api/competitorFiles/%d", id))
}

// RenameCompetitorFile renames a stored file and returns the updated
// record.
func (c *Client) RenameCompetitorFile(ctx context.Context, id int, req model.RenameCompetitorFileRequest) (model.CompetitorFile, error) {
	var out model.CompetitorFile
	if err := c.putJSON(ctx, fmt.Sprintf("/api/competitorFiles/%d/rename", id), req, &out); err != nil {
		return model.CompetitorFile{}, err
	}
	return out, nil
}
