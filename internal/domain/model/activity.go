package model

import (
	"errors"
	"strings"
)

// Activity is one audit-trail entry the lab API records when data
// changes. The username is denormalized server-side and may be empty for
// system-generated entries.
type Activity struct {
	ActivityID   int      `json:"activity_id"`
	ActivityType string   `json:"activity_type"`
	Description  string   `json:"description"`
	CreateTime   DateTime `json:"createTime"`
	UserID       *int     `json:"user_id,omitempty"`
	Username     string   `json:"username,omitempty"`
}

// CreateActivityRequest carries a manual audit-trail entry.
type CreateActivityRequest struct {
	ActivityType string `json:"activity_type" validate:"required,max=50"`
	Description  string `json:"description"   validate:"required,max=500"`
	UserID       *int   `json:"user_id,omitempty"`
}

// Normalize trims whitespace from user-entered fields.
func (r *CreateActivityRequest) Normalize() {
	r.ActivityType = strings.TrimSpace(r.ActivityType)
	r.Description = strings.TrimSpace(r.Description)
}

// Validate checks required fields.
func (r *CreateActivityRequest) Validate() error {
	if r.ActivityType == "" {
		return errors.New("activity type is required")
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	return nil
}
