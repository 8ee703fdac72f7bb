package model

import (
	"errors"
	"strings"
)

// Sensor is one continuous glucose sensor wear period.
type Sensor struct {
	SensorID    int       `json:"sensor_id"`
	SensorName  string    `json:"sensor_name"`
	PersonID    int       `json:"person_id"`
	BatchID     int       `json:"batch_id"`
	StartTime   DateTime  `json:"start_time"`
	EndTime     *DateTime `json:"end_time,omitempty"`
	PersonName  string    `json:"person_name,omitempty"`
	BatchNumber string    `json:"batch_number,omitempty"`
}

// CreateSensorRequest carries the fields for registering a sensor.
type CreateSensorRequest struct {
	SensorName string    `json:"sensor_name" validate:"required,max=100"`
	PersonID   int       `json:"person_id"   validate:"required,gt=0"`
	BatchID    int       `json:"batch_id"    validate:"required,gt=0"`
	StartTime  DateTime  `json:"start_time"  validate:"required"`
	EndTime    *DateTime `json:"end_time,omitempty"`
}

// UpdateSensorRequest carries a partial sensor update.
type UpdateSensorRequest struct {
	SensorName *string   `json:"sensor_name,omitempty" validate:"omitempty,max=100"`
	PersonID   *int      `json:"person_id,omitempty"   validate:"omitempty,gt=0"`
	BatchID    *int      `json:"batch_id,omitempty"    validate:"omitempty,gt=0"`
	StartTime  *DateTime `json:"start_time,omitempty"`
	EndTime    *DateTime `json:"end_time,omitempty"`
}

// Normalize trims whitespace from user-entered fields.
func (r *CreateSensorRequest) Normalize() {
	r.SensorName = strings.TrimSpace(r.SensorName)
}

// Validate checks required fields and time ordering.
func (r *CreateSensorRequest) Validate() error {
	if r.SensorName == "" {
		return errors.New("sensor name is required")
	}
	if r.PersonID <= 0 {
		return errors.New("person is required")
	}
	if r.BatchID <= 0 {
		return errors.New("batch is required")
	}
	if r.StartTime.IsZero() {
		return errors.New("start time is required")
	}
	if r.EndTime != nil && !r.EndTime.IsZero() && r.EndTime.Before(r.StartTime.Time) {
		return errors.New("end time must not precede start time")
	}
	return nil
}
