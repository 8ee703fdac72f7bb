package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/glucolab/labconsole/internal/apiclient"
	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
)

// State names the session lifecycle phases.
type State string

const (
	StateAnonymous      State = "anonymous"
	StateAuthenticating State = "authenticating"
	StateAuthenticated  State = "authenticated"
	StateInvalidating   State = "invalidating"
)

// AuthAPI is the slice of the lab API the session store needs.
// *apiclient.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (apiclient.LoginResponse, error)
	Me(ctx context.Context) (domainauth.UserProfile, error)
	Logout(ctx context.Context) error
}

// Options groups dependencies for NewStore.
type Options struct {
	API     AuthAPI
	Storage CredentialStorage
	Logger  *slog.Logger
}

// Store holds the console's single operator session: token, logged-in
// flag, profile, and loading state. Token expiry is detected lazily on the
// first rejected request, never proactively. Safe for concurrent use.
type Store struct {
	api     AuthAPI
	storage CredentialStorage
	logger  *slog.Logger

	mu      sync.RWMutex
	state   State
	token   string
	user    *domainauth.UserProfile
	loading bool
}

// NewStore constructs an anonymous session store.
func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		api:     opts.API,
		storage: opts.Storage,
		logger:  logger,
		state:   StateAnonymous,
	}
}

// Attach installs the bearer token source and forced-logout hook on the
// API client. The client guarantees at-most-once installation, so calling
// Attach repeatedly is harmless.
func (s *Store) Attach(c *apiclient.Client) {
	c.SetAuthHooks(s.Token, s.HandleUnauthorized)
}

// Login authenticates against the lab API. It returns true only when the
// server granted a token and the subsequent profile refresh succeeded.
// Rejected credentials and transport failures both return false with the
// detail logged; callers get no richer signal, matching the thin-client
// contract.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	if username == "" || password == "" {
		s.logger.Warn("login attempted with empty credentials")
		return false
	}

	s.setState(StateAuthenticating)
	s.setLoading(true)
	defer s.setLoading(false)

	grant, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login failed",
			slog.String("username", username),
			slog.String("detail", apiclient.ErrorMessage(err)),
		)
		s.setState(StateAnonymous)
		return false
	}

	s.mu.Lock()
	s.token = grant.AccessToken
	s.state = StateAuthenticated
	s.mu.Unlock()

	creds := Credentials{Token: grant.AccessToken, IsLoggedIn: true, Username: username}
	if err := s.storage.Save(ctx, creds); err != nil {
		// Persistence failure degrades restart behavior only; the live
		// session is intact.
		s.logger.Warn("persist credentials failed", slog.Any("error", err))
	}

	if _, err := s.GetCurrentUser(ctx, false); err != nil {
		return false
	}
	return true
}

// GetCurrentUser fetches the profile for the current token and replaces
// the cached profile wholesale. On failure with suppressAutoLogout false
// the token is assumed expired and the session is logged out before the
// error is returned; with true the error is returned without forcing
// logout (used by InitAuth to avoid a logout loop during startup
// re-validation).
func (s *Store) GetCurrentUser(ctx context.Context, suppressAutoLogout bool) (*domainauth.UserProfile, error) {
	profile, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn("profile fetch failed",
			slog.Bool("suppress_auto_logout", suppressAutoLogout),
			slog.String("detail", apiclient.ErrorMessage(err)),
		)
		if !suppressAutoLogout {
			s.Logout(ctx)
		}
		return nil, fmt.Errorf("fetch current user: %w", err)
	}

	s.mu.Lock()
	s.user = &profile
	s.mu.Unlock()
	return s.User(), nil
}

// Logout notifies the server best-effort (failure ignored: logout must
// always succeed locally), then unconditionally clears the session and the
// durable credential keys. Idempotent.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	if s.state == StateInvalidating {
		// Re-entered via the 401 hook while the server logout call is in
		// flight.
		s.mu.Unlock()
		return
	}
	hadToken := s.token != ""
	s.state = StateInvalidating
	s.mu.Unlock()

	if hadToken {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.Debug("server logout failed", slog.String("detail", apiclient.ErrorMessage(err)))
		}
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Warn("clear persisted credentials failed", slog.Any("error", err))
	}
}

// InitAuth restores a persisted session. With persisted credentials the
// store turns authenticated optimistically, then validates the token with
// a suppressed profile fetch; a rejected token clears everything and the
// failure propagates so the caller can redirect to login. Without
// persisted credentials the state is left fully cleared and nil is
// returned.
func (s *Store) InitAuth(ctx context.Context) error {
	creds, err := s.storage.Load(ctx)
	if errors.Is(err, ErrNoCredentials) {
		return nil
	}
	if err != nil {
		return err
	}
	if !creds.IsLoggedIn || creds.Token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = creds.Token
	s.state = StateAuthenticated
	s.mu.Unlock()

	if _, err := s.GetCurrentUser(ctx, true); err != nil {
		s.Logout(ctx)
		return fmt.Errorf("validate persisted token: %w", err)
	}
	return nil
}

// HandleUnauthorized is the 401 hook installed on the API client: the
// first rejected request is how token expiry is detected. The guard
// redirects the next navigation to the login view.
func (s *Store) HandleUnauthorized() {
	if !s.IsLoggedIn() {
		return
	}
	s.logger.Info("bearer token rejected, forcing logout")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.Logout(ctx)
}

// HasModulePermission evaluates one grant for one module; the admin role
// is always granted.
func (s *Store) HasModulePermission(module string, kind domainauth.PermissionKind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.HasModulePermission(module, kind)
}

// HasAnyPermission reports whether any grant exists for the module.
func (s *Store) HasAnyPermission(module string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.HasAnyPermission(module)
}

// IsAdmin reports whether the current profile carries the admin role.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.IsAdmin()
}

// IsLoggedIn reports whether the session holds a server-accepted token.
func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateAuthenticated && s.token != ""
}

// Token returns the current bearer token, empty when anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current lifecycle phase.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether a login is in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns a copy of the current profile, or nil when no profile has
// been fetched.
func (s *Store) User() *domainauth.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	cp.Permissions = append([]domainauth.ModulePermission(nil), s.user.Permissions...)
	return &cp
}

// Username returns the current profile's username, empty when anonymous.
func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

// Session returns a snapshot of the session for rendering.
func (s *Store) Session() domainauth.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := domainauth.Session{
		Token:      s.token,
		IsLoggedIn: s.state == StateAuthenticated && s.token != "",
	}
	if s.user != nil {
		cp := *s.user
		cp.Permissions = append([]domainauth.ModulePermission(nil), s.user.Permissions...)
		snap.User = &cp
	}
	return snap
}

func (s *Store) setState(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}
