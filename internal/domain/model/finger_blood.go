package model

import "errors"

// FingerBloodRecord is one finger-prick glucose measurement.
type FingerBloodRecord struct {
	FingerBloodFileID int      `json:"finger_blood_file_id"`
	PersonID          int      `json:"person_id"`
	BatchID           int      `json:"batch_id"`
	CollectionTime    DateTime `json:"collection_time"`
	BloodGlucoseValue float64  `json:"blood_glucose_value"`
	PersonName        string   `json:"person_name,omitempty"`
	BatchNumber       string   `json:"batch_number,omitempty"`
}

// CreateFingerBloodRequest carries the fields for recording a measurement.
type CreateFingerBloodRequest struct {
	PersonID          int      `json:"person_id"           validate:"required,gt=0"`
	BatchID           int      `json:"batch_id"            validate:"required,gt=0"`
	CollectionTime    DateTime `json:"collection_time"     validate:"required"`
	BloodGlucoseValue float64  `json:"blood_glucose_value" validate:"required,gt=0"`
}

// UpdateFingerBloodRequest carries a partial measurement update.
type UpdateFingerBloodRequest struct {
	PersonID          *int      `json:"person_id,omitempty"           validate:"omitempty,gt=0"`
	BatchID           *int      `json:"batch_id,omitempty"            validate:"omitempty,gt=0"`
	CollectionTime    *DateTime `json:"collection_time,omitempty"`
	BloodGlucoseValue *float64  `json:"blood_glucose_value,omitempty" validate:"omitempty,gt=0"`
}

// FingerBloodExportFilter narrows the server-side Excel export. Zero
// values mean "no filter" and are omitted from the query string.
type FingerBloodExportFilter struct {
	BatchID   int
	PersonID  int
	StartTime DateTime
	EndTime   DateTime
}

// Validate checks required fields and value ranges.
func (r *CreateFingerBloodRequest) Validate() error {
	if r.PersonID <= 0 {
		return errors.New("person is required")
	}
	if r.BatchID <= 0 {
		return errors.New("batch is required")
	}
	if r.CollectionTime.IsZero() {
		return errors.New("collection time is required")
	}
	if r.BloodGlucoseValue <= 0 {
		return errors.New("blood glucose value must be positive")
	}
	return nil
}
