// Package session implements the console's authentication state machine:
// login against the lab API, bearer token lifecycle, profile refresh,
// per-module permission queries, and durable credential persistence so a
// console restart re-validates instead of re-prompting.
package session

import "context"

// Credentials is the durable slice of session state: the bearer token, the
// logged-in flag, and the operator's username. The three values are saved
// and cleared together.
type Credentials struct {
	Token      string
	IsLoggedIn bool
	Username   string
}

// CredentialStorage persists credentials across console restarts.
// Implementations live in this package (Redis, memory); the store only
// sees this port.
type CredentialStorage interface {
	Save(ctx context.Context, creds Credentials) error
	Load(ctx context.Context) (Credentials, error)
	Clear(ctx context.Context) error
}

// ErrNoCredentials is returned by Load when nothing is persisted.
type noCredentialsError struct{}

func (noCredentialsError) Error() string { return "no persisted credentials" }

var ErrNoCredentials error = noCredentialsError{}
