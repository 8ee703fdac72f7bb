package model

import (
	"errors"
	"path"
	"strings"
)

// CompetitorFile is one uploaded competitor-device data file. The server
// owns the storage path; the console only ever references files by id.
type CompetitorFile struct {
	CompetitorFileID int      `json:"competitor_file_id"`
	PersonID         int      `json:"person_id"`
	BatchID          int      `json:"batch_id"`
	FilePath         string   `json:"file_path"`
	UploadTime       DateTime `json:"upload_time,omitzero"`
	PersonName       string   `json:"person_name,omitempty"`
	BatchNumber      string   `json:"batch_number,omitempty"`
	FileSize         *int64   `json:"file_size,omitempty"`
	Filename         string   `json:"filename,omitempty"`
}

// DisplayName returns the server-provided filename, falling back to the
// final path segment when the server omitted it.
func (f CompetitorFile) DisplayName() string {
	if f.Filename != "" {
		return f.Filename
	}
	return path.Base(strings.ReplaceAll(f.FilePath, "\\", "/"))
}

// UploadCompetitorFileRequest carries the multipart upload metadata. The
// file content travels alongside as the multipart "file" part.
type UploadCompetitorFileRequest struct {
	PersonID int    `validate:"required,gt=0"`
	BatchID  int    `validate:"required,gt=0"`
	Filename string `validate:"required"`
}

// RenameCompetitorFileRequest carries the new file name for the rename
// endpoint.
type RenameCompetitorFileRequest struct {
	NewFileName string `json:"new_file_name" validate:"required,max=255"`
}

// Validate checks the upload metadata.
func (r *UploadCompetitorFileRequest) Validate() error {
	if r.PersonID <= 0 {
		return errors.New("person is required")
	}
	if r.BatchID <= 0 {
		return errors.New("batch is required")
	}
	if strings.TrimSpace(r.Filename) == "" {
		return errors.New("file name is required")
	}
	return nil
}

// Normalize trims the requested name.
func (r *RenameCompetitorFileRequest) Normalize() {
	r.NewFileName = strings.TrimSpace(r.NewFileName)
}

// Validate checks the rename request.
func (r *RenameCompetitorFileRequest) Validate() error {
	if r.NewFileName == "" {
		return errors.New("new file name is required")
	}
	return nil
}
