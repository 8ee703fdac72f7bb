// Package store caches the lab entity collections in memory so views can
// render without a round-trip per navigation. All mutations write through
// the lab API first and only touch the cache once the server accepted the
// change.
package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/glucolab/labconsole/internal/apiclient"
	"github.com/glucolab/labconsole/internal/domain/model"
)

// Options groups dependencies for NewDataStore.
type Options struct {
	API    *apiclient.Client
	Logger *slog.Logger
}

// DataStore holds one in-memory copy of every entity collection plus a
// shared error slot and a loading flag. Safe for concurrent use.
type DataStore struct {
	api    *apiclient.Client
	logger *slog.Logger

	mu              sync.RWMutex
	batches         []model.Batch
	persons         []model.Person
	experiments     []model.Experiment
	competitorFiles []model.CompetitorFile
	fingerBlood     []model.FingerBloodRecord
	sensors         []model.Sensor
	lastError       string
	loading         bool
}

// NewDataStore constructs an empty cache backed by the given API client.
func NewDataStore(opts Options) *DataStore {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DataStore{api: opts.API, logger: logger}
}

// InitializeAll refreshes every collection concurrently. Collections
// refresh independently: a failing one leaves its previous contents in
// place while the others still load, so a partially reachable server
// yields a partially warm cache. The first failure is returned.
func (d *DataStore) InitializeAll(ctx context.Context) error {
	d.setLoading(true)
	defer d.setLoading(false)
	d.clearError()

	// The unexported refresh variants leave the error slot alone, so a
	// fast failure's message survives the slower successful fetches.
	g := new(errgroup.Group)
	g.Go(func() error { return d.refreshBatches(ctx) })
	g.Go(func() error { return d.refreshPersons(ctx) })
	g.Go(func() error { return d.refreshExperiments(ctx) })
	g.Go(func() error { return d.refreshCompetitorFiles(ctx) })
	g.Go(func() error { return d.refreshFingerBlood(ctx) })
	g.Go(func() error { return d.refreshSensors(ctx) })

	if err := g.Wait(); err != nil {
		d.logger.Warn("cache warm-up incomplete", slog.String("detail", apiclient.ErrorMessage(err)))
		return err
	}
	return nil
}

// LastError returns the message of the most recent failed operation, or
// the empty string. Cleared at the start of each operation.
func (d *DataStore) LastError() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastError
}

// Loading reports whether a full refresh is in flight.
func (d *DataStore) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

func (d *DataStore) setLoading(v bool) {
	d.mu.Lock()
	d.loading = v
	d.mu.Unlock()
}

func (d *DataStore) clearError() {
	d.mu.Lock()
	d.lastError = ""
	d.mu.Unlock()
}

// fail records the operation failure in the shared error slot and returns
// the error unchanged.
func (d *DataStore) fail(op string, err error) error {
	d.mu.Lock()
	d.lastError = apiclient.ErrorMessage(err)
	d.mu.Unlock()
	d.logger.Warn(op+" failed", slog.String("detail", apiclient.ErrorMessage(err)))
	return err
}

// replaceWhere swaps the first element matching the predicate. A missing
// element is a silent no-op: the server accepted the change, so a stale
// cache entry is corrected by the next refresh.
func replaceWhere[T any](items []T, match func(T) bool, repl T) {
	for i := range items {
		if match(items[i]) {
			items[i] = repl
			return
		}
	}
}

// deleteWhere removes the first element matching the predicate. Like
// replaceWhere, a missing element is a silent no-op.
func deleteWhere[T any](items []T, match func(T) bool) []T {
	for i := range items {
		if match(items[i]) {
			return slices.Delete(items, i, i+1)
		}
	}
	return items
}
