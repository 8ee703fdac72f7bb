// Package httpx serves the lab console: server-rendered views over the
// session store and the entity cache, guarded by the route table.
package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/glucolab/labconsole/internal/apiclient"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Session *session.Store
	Data    *store.DataStore
	API     *apiclient.Client

	// Login throttling; zero values disable it.
	LoginRateLimit  int
	LoginRateWindow time.Duration

	IsDev  bool
	Logger *slog.Logger
}

// NewRouter creates and configures the console's HTTP handler.
func NewRouter(services RouterServices) (http.Handler, error) {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := NewTemplateRenderer(TemplateRendererConfig{Logger: logger})
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{Session: services.Session, Renderer: renderer, Logger: logger}
	postLogin := http.Handler(http.HandlerFunc(authHandlers.PostLogin))
	if services.LoginRateLimit > 0 {
		postLogin = httprate.LimitByIP(services.LoginRateLimit, services.LoginRateWindow)(postLogin)
	}
	mux.HandleFunc("GET /login", authHandlers.GetLogin)
	mux.Handle("POST /login", postLogin)
	mux.HandleFunc("POST /logout", authHandlers.PostLogout)

	dashboard := &DashboardHandlers{Session: services.Session, Data: services.Data, API: services.API, Renderer: renderer}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, landingPath, http.StatusSeeOther)
	})
	mux.HandleFunc("GET /dashboard", dashboard.Get)

	registerBatchRoutes(mux, &BatchHandlers{Session: services.Session, Data: services.Data, Renderer: renderer})
	registerPersonRoutes(mux, &PersonHandlers{Session: services.Session, Data: services.Data, Renderer: renderer})
	registerExperimentRoutes(mux, &ExperimentHandlers{Session: services.Session, Data: services.Data, Renderer: renderer})
	registerCompetitorFileRoutes(mux, &CompetitorFileHandlers{
		Session:  services.Session,
		Data:     services.Data,
		API:      services.API,
		Renderer: renderer,
		Logger:   logger,
	})
	registerFingerBloodRoutes(mux, &FingerBloodHandlers{
		Session:  services.Session,
		Data:     services.Data,
		API:      services.API,
		Renderer: renderer,
		Logger:   logger,
	})
	registerSensorRoutes(mux, &SensorHandlers{Session: services.Session, Data: services.Data, Renderer: renderer})
	registerUserRoutes(mux, &UserHandlers{Session: services.Session, API: services.API, Renderer: renderer, Logger: logger})

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	var handler http.Handler = mux
	handler = Guard(services.Session)(handler)
	handler = SecureHeaders(services.IsDev)(handler)
	handler = Logging(logger)(handler)
	handler = RequestID()(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
