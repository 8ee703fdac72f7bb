package auth

import (
	"errors"
	"strings"
)

// CreateUserRequest carries the fields for creating a console user
// (admin-only endpoint).
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role"     validate:"required,oneof=Admin User"`
}

// UpdateUserRequest carries a partial user update. A nil password leaves
// the current one in place.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=50"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     *Role   `json:"role,omitempty"     validate:"omitempty,oneof=Admin User"`
}

// AssignPermissionsRequest replaces a user's module grants wholesale.
type AssignPermissionsRequest struct {
	UserID      int                `json:"user_id"     validate:"required,gt=0"`
	Permissions []ModulePermission `json:"permissions"`
}

// Normalize trims user-entered fields.
func (r *CreateUserRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}

// Validate checks required fields and role membership.
func (r *CreateUserRequest) Validate() error {
	if r.Username == "" {
		return errors.New("username is required")
	}
	if len(r.Password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if r.Role != RoleAdmin && r.Role != RoleUser {
		return errors.New("role must be Admin or User")
	}
	return nil
}
