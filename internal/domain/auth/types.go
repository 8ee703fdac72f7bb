// Package auth contains domain-level types for authentication, sessions,
// and per-module permissions. It is pure and free of transport concerns.
package auth

// Role represents an application's authorization role.
// Keep string form for easy persistence and JSON round-trips.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// PermissionKind selects which grant of a module permission is consulted.
type PermissionKind string

const (
	PermissionRead   PermissionKind = "read"
	PermissionWrite  PermissionKind = "write"
	PermissionDelete PermissionKind = "delete"
)

// Module names used as the unit of permission grant. These match the
// module identifiers the lab API stores on permission rows.
const (
	ModuleBatchManagement      = "batch_management"
	ModulePersonManagement     = "person_management"
	ModuleExperimentManagement = "experiment_management"
	ModuleCompetitorData       = "competitor_data"
	ModuleFingerBloodData      = "finger_blood_data"
	ModuleSensorData           = "sensor_data"
	ModuleUserManagement       = "user_management"
)

// ModulePermission is one module's grant row for a user. A module absent
// from a profile's permission list means no permission at all.
type ModulePermission struct {
	Module    string `json:"module"`
	CanRead   bool   `json:"can_read"`
	CanWrite  bool   `json:"can_write"`
	CanDelete bool   `json:"can_delete"`
}

// UserProfile is the authenticated principal as returned by the lab API's
// /api/auth/me endpoint. It is replaced wholesale on each refresh, never
// partially patched.
type UserProfile struct {
	UserID      int                `json:"user_id"`
	Username    string             `json:"username"`
	Role        Role               `json:"role"`
	Permissions []ModulePermission `json:"permissions"`
}

// IsAdmin reports whether the profile carries the admin role.
func (p *UserProfile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// HasModulePermission evaluates one grant for one module. The admin role
// short-circuits the list lookup and is always granted.
func (p *UserProfile) HasModulePermission(module string, kind PermissionKind) bool {
	if p == nil {
		return false
	}
	if p.Role == RoleAdmin {
		return true
	}
	for _, perm := range p.Permissions {
		if perm.Module != module {
			continue
		}
		switch kind {
		case PermissionRead:
			return perm.CanRead
		case PermissionWrite:
			return perm.CanWrite
		case PermissionDelete:
			return perm.CanDelete
		default:
			return false
		}
	}
	return false
}

// HasAnyPermission reports whether any of read/write/delete is granted for
// the module.
func (p *UserProfile) HasAnyPermission(module string) bool {
	return p.HasModulePermission(module, PermissionRead) ||
		p.HasModulePermission(module, PermissionWrite) ||
		p.HasModulePermission(module, PermissionDelete)
}

// Session is the console's view of the operator's authentication state.
// isLoggedIn==true implies Token is a non-empty string that was last
// validated by a profile fetch; expiry is detected lazily on the first
// rejected request, not proactively.
type Session struct {
	Token      string       `json:"token"`
	IsLoggedIn bool         `json:"is_logged_in"`
	User       *UserProfile `json:"user,omitempty"`
}

// Username returns the profile username, or the empty string when no
// profile has been fetched yet.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}
