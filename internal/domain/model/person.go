package model

import (
	"errors"
	"strings"
)

// Gender is the person gender enumeration used by the lab API.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Valid reports whether the gender value is supported.
func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ParseGender normalizes a gender string and reports whether it is
// supported. An empty input is valid and yields the empty value (the field
// is optional).
func ParseGender(value string) (Gender, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", true
	}
	g := Gender(strings.ToUpper(v[:1]) + strings.ToLower(v[1:]))
	if g.Valid() {
		return g, true
	}
	return "", false
}

// Person is one experiment subject. BatchNumber is denormalized by the
// server from the containing batch.
type Person struct {
	PersonID    int      `json:"person_id"`
	PersonName  string   `json:"person_name"`
	Gender      *Gender  `json:"gender,omitempty"`
	Age         *int     `json:"age,omitempty"`
	HeightCM    *float64 `json:"height_cm,omitempty"`
	WeightKG    *float64 `json:"weight_kg,omitempty"`
	BatchID     *int     `json:"batch_id,omitempty"`
	BatchNumber string   `json:"batch_number,omitempty"`
}

// CreatePersonRequest carries the fields for creating a person.
type CreatePersonRequest struct {
	PersonName string   `json:"person_name" validate:"required,max=100"`
	Gender     *Gender  `json:"gender,omitempty"`
	Age        *int     `json:"age,omitempty"       validate:"omitempty,gte=0,lte=150"`
	HeightCM   *float64 `json:"height_cm,omitempty" validate:"omitempty,gt=0"`
	WeightKG   *float64 `json:"weight_kg,omitempty" validate:"omitempty,gt=0"`
	BatchID    *int     `json:"batch_id,omitempty"`
}

// UpdatePersonRequest carries a partial person update.
type UpdatePersonRequest struct {
	PersonName *string  `json:"person_name,omitempty" validate:"omitempty,max=100"`
	Gender     *Gender  `json:"gender,omitempty"`
	Age        *int     `json:"age,omitempty"         validate:"omitempty,gte=0,lte=150"`
	HeightCM   *float64 `json:"height_cm,omitempty"   validate:"omitempty,gt=0"`
	WeightKG   *float64 `json:"weight_kg,omitempty"   validate:"omitempty,gt=0"`
	BatchID    *int     `json:"batch_id,omitempty"`
}

// Normalize trims whitespace from user-entered fields.
func (r *CreatePersonRequest) Normalize() {
	r.PersonName = strings.TrimSpace(r.PersonName)
}

// Validate checks required fields and enum membership.
func (r *CreatePersonRequest) Validate() error {
	if r.PersonName == "" {
		return errors.New("person name is required")
	}
	if r.Gender != nil && !r.Gender.Valid() {
		return errors.New("gender must be Male, Female, or Other")
	}
	return nil
}
