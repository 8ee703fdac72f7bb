package apiclient

import (
	"context"
	"fmt"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
)

const (
	loginPath  = "/api/auth/login"
	mePath     = "/api/auth/me"
	logoutPath = "/api/auth/logout"
	usersPath  = "/api/auth/users"
)

// LoginResponse is the lab API's token grant.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for an access token. A 401 here means the
// credentials were rejected; the auth transport does not treat it as an
// expired session because no bearer token was attached.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResponse, error) {
	var out LoginResponse
	err := c.postJSON(ctx, loginPath, loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return LoginResponse{}, err
	}
	return out, nil
}

// Me fetches the profile of the bearer token's owner.
func (c *Client) Me(ctx context.Context) (domainauth.UserProfile, error) {
	var out domainauth.UserProfile
	if err := c.getJSON(ctx, mePath, &out); err != nil {
		return domainauth.UserProfile{}, err
	}
	return out, nil
}

// Logout invalidates the bearer token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.postJSON(ctx, logoutPath, struct{}{}, nil)
}

// ListUsers returns all console users (admin only).
func (c *Client) ListUsers(ctx context.Context) ([]domainauth.UserProfile, error) {
	var out []domainauth.UserProfile
	if err := c.getJSON(ctx, usersPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateUser creates a console user (admin only).
func (c *Client) CreateUser(ctx context.Context, req domainauth.CreateUserRequest) (domainauth.UserProfile, error) {
	var out domainauth.UserProfile
	if err := c.postJSON(ctx, usersPath, req, &out); err != nil {
		return domainauth.UserProfile{}, err
	}
	return out, nil
}

// UpdateUser updates a console user (admin only).
func (c *Client) UpdateUser(ctx context.Context, userID int, req domainauth.UpdateUserRequest) (domainauth.UserProfile, error) {
	var out domainauth.UserProfile
	if err := c.putJSON(ctx, fmt.Sprintf("%s/%d", usersPath, userID), req, &out); err != nil {
		return domainauth.UserProfile{}, err
	}
	return out, nil
}

// DeleteUser removes a console user (admin only).
func (c *Client) DeleteUser(ctx context.Context, userID int) error {
	return c.deletePath(ctx, fmt.Sprintf("%s/%d", usersPath, userID))
}

// UserPermissions returns a user's module grants (admin only).
func (c *Client) UserPermissions(ctx context.Context, userID int) ([]domainauth.ModulePermission, error) {
	var out []domainauth.ModulePermission
	if err := c.getJSON(ctx, fmt.Sprintf("%s/%d/permissions", usersPath, userID), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AssignPermissions replaces a user's module grants wholesale (admin only).
func (c *Client) AssignPermissions(ctx context.Context, req domainauth.AssignPermissionsRequest) error {
	return c.postJSON(ctx, "/api/auth/assign-permissions", req, nil)
}
