package store

import (
	"context"
	"slices"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// Experiments returns a copy of the cached experiment collection.
func (d *DataStore) Experiments() []model.Experiment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.experiments)
}

// ExperimentByID looks up one cached experiment.
func (d *DataStore) ExperimentByID(id int) (model.Experiment, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, e := range d.experiments {
		if e.ExperimentID == id {
			return e, true
		}
	}
	return model.Experiment{}, false
}

// RefreshExperiments replaces the cached experiments with the server's
// list.
func (d *DataStore) RefreshExperiments(ctx context.Context) error {
	d.clearError()
	return d.refreshExperiments(ctx)
}

func (d *DataStore) refreshExperiments(ctx context.Context) error {
	experiments, err := d.api.ListExperiments(ctx)
	if err != nil {
		return d.fail("refresh experiments", err)
	}
	d.mu.Lock()
	d.experiments = experiments
	d.mu.Unlock()
	return nil
}

// AddExperiment creates an experiment, membership included, and appends
// the server's record to the cache.
func (d *DataStore) AddExperiment(ctx context.Context, req model.CreateExperimentRequest) (model.Experiment, error) {
	d.clearError()
	experiment, err := d.api.CreateExperiment(ctx, req)
	if err != nil {
		return model.Experiment{}, d.fail("add experiment", err)
	}
	d.mu.Lock()
	d.experiments = append(d.experiments, experiment)
	d.mu.Unlock()
	return experiment, nil
}

// UpdateExperiment updates an experiment and swaps the cached record in
// place. A non-nil MemberIDs in the request replaces the membership
// wholesale on the server; the returned record carries the new members.
func (d *DataStore) UpdateExperiment(ctx context.Context, id int, req model.UpdateExperimentRequest) (model.Experiment, error) {
	d.clearError()
	experiment, err := d.api.UpdateExperiment(ctx, id, req)
	if err != nil {
		return model.Experiment{}, d.fail("update experiment", err)
	}
	d.mu.Lock()
	replaceWhere(d.experiments, func(e model.Experiment) bool { return e.ExperimentID == id }, experiment)
	d.mu.Unlock()
	return experiment, nil
}

// DeleteExperiment deletes an experiment and drops it from the cache.
func (d *DataStore) DeleteExperiment(ctx context.Context, id int) error {
	d.clearError()
	if err := d.api.DeleteExperiment(ctx, id); err != nil {
		return d.fail("delete experiment", err)
	}
	d.mu.Lock()
	d.experiments = deleteWhere(d.experiments, func(e model.Experiment) bool { return e.ExperimentID == id })
	d.mu.Unlock()
	return nil
}
