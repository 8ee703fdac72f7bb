package store

import (
	"context"
	"io"
	"slices"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// CompetitorFiles returns a copy of the cached competitor file collection.
func (d *DataStore) CompetitorFiles() []model.CompetitorFile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.competitorFiles)
}

// RefreshCompetitorFiles replaces the cached competitor files with the
// server's list.
func (d *DataStore) RefreshCompetitorFiles(ctx context.Context) error {
	d.clearError()
	return d.refreshCompetitorFiles(ctx)
}

func (d *DataStore) refreshCompetitorFiles(ctx context.Context) error {
	files, err := d.api.ListCompetitorFiles(ctx)
	if err != nil {
		return d.fail("refresh competitor files", err)
	}
	d.mu.Lock()
	d.competitorFiles = files
	d.mu.Unlock()
	return nil
}

// UploadCompetitorFile streams the file to the server and appends the
// resulting record to the cache.
func (d *DataStore) UploadCompetitorFile(ctx context.Context, req model.UploadCompetitorFileRequest, content io.Reader) (model.CompetitorFile, error) {
	d.clearError()
	file, err := d.api.UploadCompetitorFile(ctx, req, content)
	if err != nil {
		return model.CompetitorFile{}, d.fail("upload competitor file", err)
	}
	d.mu.Lock()
	d.competitorFiles = append(d.competitorFiles, file)
	d.mu.Unlock()
	return file, nil
}

// RenameCompetitorFile renames the stored file and swaps the cached
// record in place.
func (d *DataStore) RenameCompetitorFile(ctx context.Context, id int, req model.RenameCompetitorFileRequest) (model.CompetitorFile, error) {
	d.clearError()
	file, err := d.api.RenameCompetitorFile(ctx, id, req)
	if err != nil {
		return model.CompetitorFile{}, d.fail("rename competitor file", err)
	}
	d.mu.Lock()
	replaceWhere(d.competitorFiles, func(f model.CompetitorFile) bool { return f.CompetitorFileID == id }, file)
	d.mu.Unlock()
	return file, nil
}

// DeleteCompetitorFile deletes the stored file and drops it from the
// cache.
func (d *DataStore) DeleteCompetitorFile(ctx context.Context, id int) error {
	d.clearError()
	if err := d.api.DeleteCompetitorFile(ctx, id); err != nil {
		return d.fail("delete competitor file", err)
	}
	d.mu.Lock()
	d.competitorFiles = deleteWhere(d.competitorFiles, func(f model.CompetitorFile) bool { return f.CompetitorFileID == id })
	d.mu.Unlock()
	return nil
}
