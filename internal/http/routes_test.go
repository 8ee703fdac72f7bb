package httpx_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glucolab/labconsole/internal/apiclient"
	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
	httpx "github.com/glucolab/labconsole/internal/http"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

// stubConsoleAPI plays the lab API for router tests: one fixed token, a
// configurable profile, and small entity collections.
type stubConsoleAPI struct {
	token      string
	profile    domainauth.UserProfile
	batches    []model.Batch
	activities []model.Activity
}

func (s *stubConsoleAPI) handler() http.Handler {
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	empty := func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("[]")) }

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "incorrect username or password"})
			return
		}
		writeJSON(w, map[string]string{"access_token": s.token, "token_type": "bearer"})
	})
	mux.HandleFunc("GET /api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			w.WriteHeader(http.StatusUnauthorized)
			writeJSON(w, map[string]string{"detail": "could not validate credentials"})
			return
		}
		writeJSON(w, s.profile)
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"message": "logged out"})
	})
	mux.HandleFunc("GET /api/batches/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, s.batches)
	})
	mux.HandleFunc("POST /api/batches/", func(w http.ResponseWriter, r *http.Request) {
		var req model.CreateBatchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		batch := model.Batch{BatchID: len(s.batches) + 1, BatchNumber: req.BatchNumber, StartTime: req.StartTime}
		s.batches = append(s.batches, batch)
		writeJSON(w, batch)
	})
	mux.HandleFunc("GET /api/activities/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, s.activities)
	})
	mux.HandleFunc("GET /api/persons/", empty)
	mux.HandleFunc("GET /api/experiments/", empty)
	mux.HandleFunc("GET /api/competitorFiles/", empty)
	mux.HandleFunc("GET /api/fingerBloodData/", empty)
	mux.HandleFunc("GET /api/sensors/", empty)
	return mux
}

type routerFixture struct {
	handler http.Handler
	sess    *session.Store
}

func newRouterFixture(t *testing.T, api *stubConsoleAPI) *routerFixture {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)

	client, err := apiclient.New(apiclient.Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)

	sess := session.NewStore(session.Options{API: client, Storage: session.NewMemoryStorage()})
	sess.Attach(client)
	data := store.NewDataStore(store.Options{API: client})

	handler, err := httpx.NewRouter(httpx.RouterServices{
		Session: sess,
		Data:    data,
		API:     client,
		IsDev:   true,
	})
	require.NoError(t, err)

	return &routerFixture{handler: handler, sess: sess}
}

func adminProfileAPI() *stubConsoleAPI {
	return &stubConsoleAPI{
		token: "t1",
		profile: domainauth.UserProfile{
			UserID:   1,
			Username: "admin",
			Role:     domainauth.RoleAdmin,
		},
		batches: []model.Batch{{BatchID: 1, BatchNumber: "B-001"}},
	}
}

func (f *routerFixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *routerFixture) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) login(t *testing.T) {
	t.Helper()
	require.True(t, f.sess.Login(context.Background(), "admin", "admin123"))
}

func TestRouter_AnonymousRedirectedToLogin(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())

	w := f.get(t, "/batches")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect=%2Fbatches", w.Header().Get("Location"))
}

func TestRouter_LoginViewFlipsWhenAuthenticated(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.get(t, "/login")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouter_ModuleDenialLandsOnDashboard(t *testing.T) {
	api := adminProfileAPI()
	api.profile = domainauth.UserProfile{UserID: 2, Username: "tech", Role: domainauth.RoleUser}
	f := newRouterFixture(t, api)
	f.login(t)

	w := f.get(t, "/sensors")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouter_AdminOnlyView(t *testing.T) {
	api := adminProfileAPI()
	api.profile = domainauth.UserProfile{
		UserID:   2,
		Username: "tech",
		Role:     domainauth.RoleUser,
		Permissions: []domainauth.ModulePermission{
			{Module: domainauth.ModuleUserManagement, CanRead: true},
		},
	}
	f := newRouterFixture(t, api)
	f.login(t)

	// The grant does not matter: /users is admin-only.
	w := f.get(t, "/users")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouter_DashboardShowsRecentActivity(t *testing.T) {
	api := adminProfileAPI()
	created, err := model.ParseDateTime("2024-03-01T08:00:00")
	require.NoError(t, err)
	api.activities = []model.Activity{{
		ActivityID:   1,
		ActivityType: "create",
		Description:  "Created batch B-001",
		CreateTime:   created,
		Username:     "admin",
	}}
	f := newRouterFixture(t, api)
	f.login(t)

	w := f.get(t, "/dashboard")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Recent activity")
	assert.Contains(t, body, "Created batch B-001")
	assert.Contains(t, body, "2024-03-01 08:00:00")
}

func TestRouter_DashboardWithoutActivityFeed(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.get(t, "/dashboard")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "Recent activity")
}

func TestRouter_AdminSeesBatchView(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.get(t, "/batches")

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Batch Management")
	assert.Contains(t, body, "B-001")
}

func TestRouter_ReadOnlyUserCannotMutate(t *testing.T) {
	api := adminProfileAPI()
	api.profile = domainauth.UserProfile{
		UserID:   2,
		Username: "tech",
		Role:     domainauth.RoleUser,
		Permissions: []domainauth.ModulePermission{
			{Module: domainauth.ModuleBatchManagement, CanRead: true},
		},
	}
	f := newRouterFixture(t, api)
	f.login(t)

	// Reading is fine.
	assert.Equal(t, http.StatusOK, f.get(t, "/batches").Code)

	// Writing is not.
	w := f.postForm(t, "/batches", url.Values{
		"batch_number": {"B-002"},
		"start_time":   {"2024-03-01T08:00"},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRouter_CreateBatchRoundTrip(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.postForm(t, "/batches", url.Values{
		"batch_number": {"B-002"},
		"start_time":   {"2024-03-01T08:00"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/batches", w.Header().Get("Location"))

	list := f.get(t, "/batches")
	assert.Contains(t, list.Body.String(), "B-002")
}

func TestRouter_CreateBatchValidation(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.postForm(t, "/batches", url.Values{"batch_number": {""}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	loc, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/batches", loc.Path)
	assert.Equal(t, "batch number is required", loc.Query().Get("error"))
}

func TestRouter_HealthzIsUnguarded(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())

	w := f.get(t, "/healthz")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestRouter_LoginFormFlow(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())

	// Rejected credentials re-render the form with a banner.
	w := f.postForm(t, "/login", url.Values{
		"username": {"admin"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password")

	// Accepted credentials honor the recorded return path.
	w = f.postForm(t, "/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
		"redirect": {"/sensors"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/sensors", w.Header().Get("Location"))
}

func TestRouter_LoginRedirectSanitized(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())

	w := f.postForm(t, "/login", url.Values{
		"username": {"admin"},
		"password": {"admin123"},
		"redirect": {"https://evil.example/phish"},
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestRouter_ExportReturnsWorkbook(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.get(t, "/finger-blood-data/export")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "finger_blood_data_")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestRouter_LogoutClearsSession(t *testing.T) {
	f := newRouterFixture(t, adminProfileAPI())
	f.login(t)

	w := f.postForm(t, "/logout", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, f.sess.IsLoggedIn())
}
