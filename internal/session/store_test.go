package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/glucolab/labconsole/internal/apiclient"
	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/mocks"
	"github.com/glucolab/labconsole/internal/session"
)

// stubLabAPI is a minimal lab API: a login endpoint granting a fixed
// token, a profile endpoint validating the bearer, and a logout endpoint.
type stubLabAPI struct {
	token    string
	password string
	profile  domainauth.UserProfile

	meStatus    int // non-zero forces this status from /me
	logoutCalls atomic.Int32
}

func (s *stubLabAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != s.password {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": s.token, "token_type": "bearer"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if s.meStatus != 0 {
			w.WriteHeader(s.meStatus)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "profile unavailable"})
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "could not validate credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(s.profile)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.logoutCalls.Add(1)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "logged out"})
	})
	mux.HandleFunc("GET /api/batches/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "could not validate credentials"})
			return
		}
		_, _ = w.Write([]byte("[]"))
	})
	return mux
}

type fixture struct {
	api     *stubLabAPI
	client  *apiclient.Client
	storage *session.MemoryStorage
	store   *session.Store
}

func newFixture(t *testing.T, api *stubLabAPI) *fixture {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	storage := session.NewMemoryStorage()
	store := session.NewStore(session.Options{API: client, Storage: storage})
	store.Attach(client)

	return &fixture{api: api, client: client, storage: storage, store: store}
}

func adminAPI() *stubLabAPI {
	return &stubLabAPI{
		token:    "t1",
		password: "admin123",
		profile: domainauth.UserProfile{
			UserID:   1,
			Username: "admin",
			Role:     domainauth.RoleAdmin,
		},
	}
}

func TestStore_LoginSuccess(t *testing.T) {
	f := newFixture(t, adminAPI())
	ctx := context.Background()

	ok := f.store.Login(ctx, "admin", "admin123")
	require.True(t, ok)

	assert.True(t, f.store.IsLoggedIn())
	assert.Equal(t, session.StateAuthenticated, f.store.State())
	assert.Equal(t, "t1", f.store.Token())
	assert.True(t, f.store.IsAdmin())
	assert.True(t, f.store.HasAnyPermission("anything"))
	assert.True(t, f.store.HasModulePermission(domainauth.ModuleBatchManagement, domainauth.PermissionWrite))

	creds, err := f.storage.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Credentials{Token: "t1", IsLoggedIn: true, Username: "admin"}, creds)
}

func TestStore_LoginRejected(t *testing.T) {
	f := newFixture(t, adminAPI())
	ctx := context.Background()

	ok := f.store.Login(ctx, "admin", "wrong")
	require.False(t, ok)

	assert.False(t, f.store.IsLoggedIn())
	assert.Equal(t, session.StateAnonymous, f.store.State())
	assert.Empty(t, f.store.Token())
	assert.Nil(t, f.store.User())

	_, err := f.storage.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoCredentials)
}

func TestStore_LoginEmptyCredentials(t *testing.T) {
	f := newFixture(t, adminAPI())
	assert.False(t, f.store.Login(context.Background(), "", "admin123"))
	assert.False(t, f.store.Login(context.Background(), "admin", ""))
	assert.Equal(t, session.StateAnonymous, f.store.State())
}

func TestStore_UserPermissionsFromProfile(t *testing.T) {
	api := adminAPI()
	api.profile = domainauth.UserProfile{
		UserID:   2,
		Username: "tech",
		Role:     domainauth.RoleUser,
		Permissions: []domainauth.ModulePermission{
			{Module: domainauth.ModuleBatchManagement, CanRead: true, CanWrite: true},
		},
	}
	f := newFixture(t, api)

	require.True(t, f.store.Login(context.Background(), "tech", "admin123"))

	assert.False(t, f.store.IsAdmin())
	assert.True(t, f.store.HasModulePermission(domainauth.ModuleBatchManagement, domainauth.PermissionWrite))
	assert.False(t, f.store.HasModulePermission(domainauth.ModuleBatchManagement, domainauth.PermissionDelete))
	assert.False(t, f.store.HasAnyPermission(domainauth.ModuleSensorData))
}

func TestStore_LogoutClearsEverything(t *testing.T) {
	f := newFixture(t, adminAPI())
	ctx := context.Background()
	require.True(t, f.store.Login(ctx, "admin", "admin123"))

	f.store.Logout(ctx)

	assert.Empty(t, f.store.Token())
	assert.False(t, f.store.IsLoggedIn())
	assert.Nil(t, f.store.User())
	assert.Equal(t, session.StateAnonymous, f.store.State())
	_, err := f.storage.Load(ctx)
	assert.ErrorIs(t, err, session.ErrNoCredentials)
	assert.Equal(t, int32(1), f.api.logoutCalls.Load())

	// Idempotent: a second logout is a no-op, including server-side.
	f.store.Logout(ctx)
	assert.Equal(t, int32(1), f.api.logoutCalls.Load())
}

func TestStore_InitAuthRestoresPersistedSession(t *testing.T) {
	f := newFixture(t, adminAPI())
	ctx := context.Background()
	require.NoError(t, f.storage.Save(ctx, session.Credentials{Token: "t1", IsLoggedIn: true, Username: "admin"}))

	require.NoError(t, f.store.InitAuth(ctx))

	assert.True(t, f.store.IsLoggedIn())
	assert.Equal(t, "admin", f.store.Username())
}

func TestStore_InitAuthWithoutCredentials(t *testing.T) {
	f := newFixture(t, adminAPI())

	require.NoError(t, f.store.InitAuth(context.Background()))
	assert.False(t, f.store.IsLoggedIn())
	assert.Equal(t, session.StateAnonymous, f.store.State())
}

func TestStore_InitAuthRejectedTokenClearsState(t *testing.T) {
	f := newFixture(t, adminAPI())
	ctx := context.Background()
	require.NoError(t, f.storage.Save(ctx, session.Credentials{Token: "stale", IsLoggedIn: true, Username: "admin"}))

	err := f.store.InitAuth(ctx)
	require.Error(t, err)

	assert.False(t, f.store.IsLoggedIn())
	assert.Empty(t, f.store.Token())
	assert.Nil(t, f.store.User())
	_, loadErr := f.storage.Load(ctx)
	assert.ErrorIs(t, loadErr, session.ErrNoCredentials)
}

func TestStore_GetCurrentUserSuppressKeepsSession(t *testing.T) {
	api := adminAPI()
	f := newFixture(t, api)
	ctx := context.Background()
	require.True(t, f.store.Login(ctx, "admin", "admin123"))

	// A transient server failure must not end the session during startup
	// re-validation.
	api.meStatus = http.StatusInternalServerError
	_, err := f.store.GetCurrentUser(ctx, true)
	require.Error(t, err)
	assert.True(t, f.store.IsLoggedIn())

	// Without suppression the same failure forces logout.
	_, err = f.store.GetCurrentUser(ctx, false)
	require.Error(t, err)
	assert.False(t, f.store.IsLoggedIn())
}

func TestStore_RejectedRequestForcesLogout(t *testing.T) {
	f := newFixture(t, adminAPI())
	ctx := context.Background()
	require.True(t, f.store.Login(ctx, "admin", "admin123"))

	// Expire the token server-side; the next request's 401 is the lazy
	// expiry detection path.
	f.api.token = "rotated"

	_, err := f.client.ListBatches(ctx)
	require.Error(t, err)
	assert.True(t, apiclient.IsUnauthorized(err))
	assert.False(t, f.store.IsLoggedIn())
	_, loadErr := f.storage.Load(ctx)
	assert.ErrorIs(t, loadErr, session.ErrNoCredentials)
}

func TestStore_LoginPersistsCredentials_Mock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := adminAPI()
	srv := httptest.NewServer(api.handler())
	defer srv.Close()
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	storage := mocks.NewMockCredentialStorage(ctrl)
	storage.EXPECT().
		Save(gomock.Any(), session.Credentials{Token: "t1", IsLoggedIn: true, Username: "admin"}).
		Return(nil)

	store := session.NewStore(session.Options{API: client, Storage: storage})
	store.Attach(client)
	require.True(t, store.Login(context.Background(), "admin", "admin123"))
}

func TestStore_InitAuthPropagatesStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := adminAPI()
	srv := httptest.NewServer(api.handler())
	defer srv.Close()
	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	wantErr := errors.New("redis down")
	storage := mocks.NewMockCredentialStorage(ctrl)
	storage.EXPECT().Load(gomock.Any()).Return(session.Credentials{}, wantErr)

	store := session.NewStore(session.Options{API: client, Storage: storage})
	assert.ErrorIs(t, store.InitAuth(context.Background()), wantErr)
}

func TestStore_UserReturnsCopy(t *testing.T) {
	api := adminAPI()
	api.profile.Permissions = []domainauth.ModulePermission{
		{Module: domainauth.ModuleBatchManagement, CanRead: true},
	}
	f := newFixture(t, api)
	require.True(t, f.store.Login(context.Background(), "admin", "admin123"))

	u := f.store.User()
	require.NotNil(t, u)
	u.Permissions[0].CanRead = false
	u.Username = strings.ToUpper(u.Username)

	fresh := f.store.User()
	assert.True(t, fresh.Permissions[0].CanRead)
	assert.Equal(t, "admin", fresh.Username)
}
