package model

import (
	"errors"
	"strings"
)

const maxBatchNumberLen = 50

// Batch is one experiment batch. BatchNumber is unique server-side.
type Batch struct {
	BatchID     int       `json:"batch_id"`
	BatchNumber string    `json:"batch_number"`
	StartTime   DateTime  `json:"start_time"`
	EndTime     *DateTime `json:"end_time,omitempty"`
}

// CreateBatchRequest carries the fields for creating a batch. The server
// assigns the identity.
type CreateBatchRequest struct {
	BatchNumber string    `json:"batch_number" validate:"required,max=50"`
	StartTime   DateTime  `json:"start_time"   validate:"required"`
	EndTime     *DateTime `json:"end_time,omitempty"`
}

// UpdateBatchRequest carries a partial batch update; nil fields are left
// unchanged by the server.
type UpdateBatchRequest struct {
	BatchNumber *string   `json:"batch_number,omitempty" validate:"omitempty,max=50"`
	StartTime   *DateTime `json:"start_time,omitempty"`
	EndTime     *DateTime `json:"end_time,omitempty"`
}

// Normalize trims whitespace from user-entered fields.
func (r *CreateBatchRequest) Normalize() {
	r.BatchNumber = strings.TrimSpace(r.BatchNumber)
}

// Validate checks invariants the server would reject anyway, so the console
// can fail fast with a field-level message.
func (r *CreateBatchRequest) Validate() error {
	if r.BatchNumber == "" {
		return errors.New("batch number is required")
	}
	if len(r.BatchNumber) > maxBatchNumberLen {
		return errors.New("batch number exceeds 50 characters")
	}
	if r.StartTime.IsZero() {
		return errors.New("start time is required")
	}
	if r.EndTime != nil && !r.EndTime.IsZero() && r.EndTime.Before(r.StartTime.Time) {
		return errors.New("end time must not precede start time")
	}
	return nil
}
