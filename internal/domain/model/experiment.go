package model

import "errors"

// ExperimentMember links one person into an experiment. PersonName is
// denormalized by the server.
type ExperimentMember struct {
	ID           int    `json:"id"`
	ExperimentID int    `json:"experiment_id"`
	PersonID     int    `json:"person_id"`
	PersonName   string `json:"person_name,omitempty"`
}

// Experiment is one experiment run within a batch.
type Experiment struct {
	ExperimentID      int                `json:"experiment_id"`
	BatchID           int                `json:"batch_id"`
	ExperimentContent string             `json:"experiment_content,omitempty"`
	BatchNumber       string             `json:"batch_number,omitempty"`
	CreatedTime       *DateTime          `json:"created_time,omitempty"`
	Members           []ExperimentMember `json:"members,omitempty"`
	MemberIDs         []int              `json:"member_ids,omitempty"`
}

// CreateExperimentRequest carries the fields for creating an experiment.
// MemberIDs selects the participating persons.
type CreateExperimentRequest struct {
	BatchID           int    `json:"batch_id" validate:"required,gt=0"`
	ExperimentContent string `json:"experiment_content,omitempty"`
	MemberIDs         []int  `json:"member_ids,omitempty"`
}

// UpdateExperimentRequest carries a partial experiment update. A non-nil
// MemberIDs replaces the membership wholesale.
type UpdateExperimentRequest struct {
	BatchID           *int    `json:"batch_id,omitempty" validate:"omitempty,gt=0"`
	ExperimentContent *string `json:"experiment_content,omitempty"`
	MemberIDs         []int   `json:"member_ids,omitempty"`
}

// Validate checks required fields.
func (r *CreateExperimentRequest) Validate() error {
	if r.BatchID <= 0 {
		return errors.New("batch is required")
	}
	return nil
}
