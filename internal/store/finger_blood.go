package store

import (
	"context"
	"slices"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// FingerBloodRecords returns a copy of the cached measurement collection.
func (d *DataStore) FingerBloodRecords() []model.FingerBloodRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.fingerBlood)
}

// FilterFingerBlood returns the cached measurements matching the filter.
// Zero filter fields match everything; the time bounds are inclusive.
func (d *DataStore) FilterFingerBlood(filter model.FingerBloodExportFilter) []model.FingerBloodRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]model.FingerBloodRecord, 0, len(d.fingerBlood))
	for _, rec := range d.fingerBlood {
		if filter.BatchID != 0 && rec.BatchID != filter.BatchID {
			continue
		}
		if filter.PersonID != 0 && rec.PersonID != filter.PersonID {
			continue
		}
		if !filter.StartTime.IsZero() && rec.CollectionTime.Before(filter.StartTime.Time) {
			continue
		}
		if !filter.EndTime.IsZero() && rec.CollectionTime.After(filter.EndTime.Time) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// RefreshFingerBlood replaces the cached measurements with the server's
// list.
func (d *DataStore) RefreshFingerBlood(ctx context.Context) error {
	d.clearError()
	return d.refreshFingerBlood(ctx)
}

func (d *DataStore) refreshFingerBlood(ctx context.Context) error {
	records, err := d.api.ListFingerBloodRecords(ctx)
	if err != nil {
		return d.fail("refresh finger blood records", err)
	}
	d.mu.Lock()
	d.fingerBlood = records
	d.mu.Unlock()
	return nil
}

// AddFingerBloodRecord records a measurement and appends the server's
// record to the cache.
func (d *DataStore) AddFingerBloodRecord(ctx context.Context, req model.CreateFingerBloodRequest) (model.FingerBloodRecord, error) {
	d.clearError()
	rec, err := d.api.CreateFingerBloodRecord(ctx, req)
	if err != nil {
		return model.FingerBloodRecord{}, d.fail("add finger blood record", err)
	}
	d.mu.Lock()
	d.fingerBlood = append(d.fingerBlood, rec)
	d.mu.Unlock()
	return rec, nil
}

// UpdateFingerBloodRecord updates a measurement and swaps the cached
// record in place.
func (d *DataStore) UpdateFingerBloodRecord(ctx context.Context, id int, req model.UpdateFingerBloodRequest) (model.FingerBloodRecord, error) {
	d.clearError()
	rec, err := d.api.UpdateFingerBloodRecord(ctx, id, req)
	if err != nil {
		return model.FingerBloodRecord{}, d.fail("update finger blood record", err)
	}
	d.mu.Lock()
	replaceWhere(d.fingerBlood, func(r model.FingerBloodRecord) bool { return r.FingerBloodFileID == id }, rec)
	d.mu.Unlock()
	return rec, nil
}

// DeleteFingerBloodRecord deletes a measurement and drops it from the
// cache.
func (d *DataStore) DeleteFingerBloodRecord(ctx context.Context, id int) error {
	d.clearError()
	if err := d.api.DeleteFingerBloodRecord(ctx, id); err != nil {
		return d.fail("delete finger blood record", err)
	}
	d.mu.Lock()
	d.fingerBlood = deleteWhere(d.fingerBlood, func(r model.FingerBloodRecord) bool { return r.FingerBloodFileID == id })
	d.mu.Unlock()
	return nil
}
