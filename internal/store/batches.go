package store

import (
	"context"
	"slices"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// Batches returns a copy of the cached batch collection.
func (d *DataStore) Batches() []model.Batch {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.batches)
}

// BatchByID looks up one cached batch.
func (d *DataStore) BatchByID(id int) (model.Batch, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, b := range d.batches {
		if b.BatchID == id {
			return b, true
		}
	}
	return model.Batch{}, false
}

// RefreshBatches replaces the cached batches with the server's list.
func (d *DataStore) RefreshBatches(ctx context.Context) error {
	d.clearError()
	return d.refreshBatches(ctx)
}

func (d *DataStore) refreshBatches(ctx context.Context) error {
	batches, err := d.api.ListBatches(ctx)
	if err != nil {
		return d.fail("refresh batches", err)
	}
	d.mu.Lock()
	d.batches = batches
	d.mu.Unlock()
	return nil
}

// AddBatch creates a batch and appends the server's record to the cache.
func (d *DataStore) AddBatch(ctx context.Context, req model.CreateBatchRequest) (model.Batch, error) {
	d.clearError()
	batch, err := d.api.CreateBatch(ctx, req)
	if err != nil {
		return model.Batch{}, d.fail("add batch", err)
	}
	d.mu.Lock()
	d.batches = append(d.batches, batch)
	d.mu.Unlock()
	return batch, nil
}

// UpdateBatch updates a batch and swaps the cached record in place.
func (d *DataStore) UpdateBatch(ctx context.Context, id int, req model.UpdateBatchRequest) (model.Batch, error) {
	d.clearError()
	batch, err := d.api.UpdateBatch(ctx, id, req)
	if err != nil {
		return model.Batch{}, d.fail("update batch", err)
	}
	d.mu.Lock()
	replaceWhere(d.batches, func(b model.Batch) bool { return b.BatchID == id }, batch)
	d.mu.Unlock()
	return batch, nil
}

// DeleteBatch deletes a batch and drops it from the cache.
func (d *DataStore) DeleteBatch(ctx context.Context, id int) error {
	d.clearError()
	if err := d.api.DeleteBatch(ctx, id); err != nil {
		return d.fail("delete batch", err)
	}
	d.mu.Lock()
	d.batches = deleteWhere(d.batches, func(b model.Batch) bool { return b.BatchID == id })
	d.mu.Unlock()
	return nil
}
