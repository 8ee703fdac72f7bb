package apiclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/glucolab/labconsole/internal/domain/auth"
	"github.com/glucolab/labconsole/internal/domain/model"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "  "})
	require.Error(t, err)
}

func TestClient_StampsBearerToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Batch{})
	}))
	c.SetAuthHooks(func() string { return "t1" }, nil)

	_, err := c.ListBatches(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer t1", gotAuth)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]model.Batch{})
	}))
	c.SetAuthHooks(func() string { return "" }, nil)

	_, err := c.ListBatches(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_UnauthorizedFiresHookOnce(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Could not validate credentials"})
	}))

	fired := 0
	c.SetAuthHooks(func() string { return "expired" }, func() { fired++ })

	_, err := c.ListSensors(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Equal(t, 1, fired)
}

func TestClient_RejectedLoginDoesNotFireHook(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "bad credentials"})
	}))

	fired := 0
	// No token yet: login 401 means rejected credentials, not expiry.
	c.SetAuthHooks(func() string { return "" }, func() { fired++ })

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.Error(t, err)
	assert.True(t, IsUnauthorized(err))
	assert.Zero(t, fired)
}

func TestClient_SetAuthHooksInstallOnce(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]model.Batch{})
	}))

	c.SetAuthHooks(func() string { return "first" }, nil)
	c.SetAuthHooks(func() string { return "second" }, nil)

	assert.Equal(t, "first", c.currentToken())
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "validation rejection carries server detail",
			status: http.StatusBadRequest,
			body:   `{"detail":"batch number already exists"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsRejection(err))
				assert.Equal(t, "batch number already exists", ErrorMessage(err))
			},
		},
		{
			name:   "server failure",
			status: http.StatusInternalServerError,
			body:   `{"message":"boom"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsServerError(err))
				assert.False(t, IsRejection(err))
			},
		},
		{
			name:   "unauthorized is not a rejection",
			status: http.StatusUnauthorized,
			body:   `{"detail":"expired"}`,
			check: func(t *testing.T, err error) {
				assert.True(t, IsUnauthorized(err))
				assert.False(t, IsRejection(err))
			},
		},
		{
			name:   "non-json body still yields status",
			status: http.StatusBadGateway,
			body:   "<html>bad gateway</html>",
			check: func(t *testing.T, err error) {
				assert.True(t, IsServerError(err))
				assert.Contains(t, err.Error(), "502")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			_, err := c.ListBatches(context.Background())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestClient_CreateBatchRoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/batches/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.CreateBatchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(model.Batch{
			BatchID:     7,
			BatchNumber: req.BatchNumber,
			StartTime:   req.StartTime,
		})
	}))

	start, err := model.ParseDateTime("2024-03-05T09:30:00")
	require.NoError(t, err)

	created, err := c.CreateBatch(context.Background(), model.CreateBatchRequest{BatchNumber: "B-001", StartTime: start})
	require.NoError(t, err)
	assert.Equal(t, 7, created.BatchID)
	assert.Equal(t, "B-001", created.BatchNumber)
}

func TestClient_UploadCompetitorFile(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/competitorFiles/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "3", r.FormValue("person_id"))
		assert.Equal(t, "2", r.FormValue("batch_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer func() { _ = file.Close() }()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "time,glucose\n", string(content))

		_ = json.NewEncoder(w).Encode(model.CompetitorFile{
			CompetitorFileID: 11,
			PersonID:         3,
			BatchID:          2,
			Filename:         header.Filename,
		})
	}))

	uploaded, err := c.UploadCompetitorFile(context.Background(),
		model.UploadCompetitorFileRequest{PersonID: 3, BatchID: 2, Filename: "device.csv"},
		strings.NewReader("time,glucose\n"))
	require.NoError(t, err)
	assert.Equal(t, 11, uploaded.CompetitorFileID)
	assert.Equal(t, "device.csv", uploaded.Filename)
}

func TestClient_ExportFingerBloodExcelQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte("xlsx-bytes"))
	}))

	start, err := model.ParseDateTime("2024-03-01T00:00:00")
	require.NoError(t, err)

	body, err := c.ExportFingerBloodExcel(context.Background(), model.FingerBloodExportFilter{
		BatchID:   2,
		StartTime: start,
	})
	require.NoError(t, err)
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "xlsx-bytes", string(data))
	assert.Contains(t, gotQuery, "batch_id=2")
	assert.Contains(t, gotQuery, "start_time=2024-03-01T00%3A00%3A00")
	assert.NotContains(t, gotQuery, "person_id")
}

func TestClient_ListActivitiesLimit(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/activities/", r.URL.Path)
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"activity_id":1,"activity_type":"create","description":"Created batch B-001","createTime":"2024-03-01T08:00:00","username":"admin"}]`))
	}))

	activities, err := c.ListActivities(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, "limit=10", gotQuery)
	require.Len(t, activities, 1)
	assert.Equal(t, "Created batch B-001", activities[0].Description)
	assert.Equal(t, "admin", activities[0].Username)

	_, err = c.ListActivities(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestClient_CreateActivityRoundTrip(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/activities/", r.URL.Path)
		var req model.CreateActivityRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(model.Activity{
			ActivityID:   5,
			ActivityType: req.ActivityType,
			Description:  req.Description,
		})
	}))

	activity, err := c.CreateActivity(context.Background(), model.CreateActivityRequest{
		ActivityType: "delete",
		Description:  "Deleted sensor 3",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, activity.ActivityID)
	assert.Equal(t, "delete", activity.ActivityType)
}

func TestClient_UserPermissionFlow(t *testing.T) {
	var assigned domainauth.AssignPermissionsRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/assign-permissions":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&assigned))
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodGet && r.URL.Path == "/api/auth/users/3/permissions":
			_ = json.NewEncoder(w).Encode([]domainauth.ModulePermission{
				{Module: domainauth.ModuleBatchManagement, CanRead: true, CanWrite: true},
			})
		default:
			http.NotFound(w, r)
		}
	}))

	err := c.AssignPermissions(context.Background(), domainauth.AssignPermissionsRequest{
		UserID: 3,
		Permissions: []domainauth.ModulePermission{
			{Module: domainauth.ModuleBatchManagement, CanRead: true, CanWrite: true},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, assigned.UserID)

	perms, err := c.UserPermissions(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, perms, 1)
	assert.Equal(t, domainauth.ModuleBatchManagement, perms[0].Module)
	assert.True(t, perms[0].CanWrite)
	assert.False(t, perms[0].CanDelete)
}

func TestClient_DownloadCompetitorFileFilename(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="glucose_log.csv"`)
		_, _ = w.Write([]byte("data"))
	}))

	body, name, err := c.DownloadCompetitorFile(context.Background(), 5)
	require.NoError(t, err)
	defer func() { _ = body.Close() }()
	assert.Equal(t, "glucose_log.csv", name)
}
