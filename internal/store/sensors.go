package store

import (
	"context"
	"slices"

	"github.com/glucolab/labconsole/internal/domain/model"
)

// Sensors returns a copy of the cached sensor collection.
func (d *DataStore) Sensors() []model.Sensor {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Clone(d.sensors)
}

// RefreshSensors replaces the cached sensors with the server's list.
func (d *DataStore) RefreshSensors(ctx context.Context) error {
	d.clearError()
	return d.refreshSensors(ctx)
}

func (d *DataStore) refreshSensors(ctx context.Context) error {
	sensors, err := d.api.ListSensors(ctx)
	if err != nil {
		return d.fail("refresh sensors", err)
	}
	d.mu.Lock()
	d.sensors = sensors
	d.mu.Unlock()
	return nil
}

// AddSensor registers a sensor and appends the server's record to the
// cache.
func (d *DataStore) AddSensor(ctx context.Context, req model.CreateSensorRequest) (model.Sensor, error) {
	d.clearError()
	sensor, err := d.api.CreateSensor(ctx, req)
	if err != nil {
		return model.Sensor{}, d.fail("add sensor", err)
	}
	d.mu.Lock()
	d.sensors = append(d.sensors, sensor)
	d.mu.Unlock()
	return sensor, nil
}

// UpdateSensor updates a sensor and swaps the cached record in place.
func (d *DataStore) UpdateSensor(ctx context.Context, id int, req model.UpdateSensorRequest) (model.Sensor, error) {
	d.clearError()
	sensor, err := d.api.UpdateSensor(ctx, id, req)
	if err != nil {
		return model.Sensor{}, d.fail("update sensor", err)
	}
	d.mu.Lock()
	replaceWhere(d.sensors, func(s model.Sensor) bool { return s.SensorID == id }, sensor)
	d.mu.Unlock()
	return sensor, nil
}

// DeleteSensor deletes a sensor and drops it from the cache.
func (d *DataStore) DeleteSensor(ctx context.Context, id int) error {
	d.clearError()
	if err := d.api.DeleteSensor(ctx, id); err != nil {
		return d.fail("delete sensor", err)
	}
	d.mu.Lock()
	d.sensors = deleteWhere(d.sensors, func(s model.Sensor) bool { return s.SensorID == id })
	d.mu.Unlock()
	return nil
}
