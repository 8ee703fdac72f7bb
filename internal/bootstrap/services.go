package bootstrap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glucolab/labconsole/config"
	"github.com/glucolab/labconsole/internal/apiclient"
	"github.com/glucolab/labconsole/internal/session"
	"github.com/glucolab/labconsole/internal/store"
)

// Services bundles the console's core components.
type Services struct {
	API     *apiclient.Client
	Session *session.Store
	Data    *store.DataStore

	redisClient redis.UniversalClient
}

// ServiceDeps holds the dependencies for NewServices.
type ServiceDeps struct {
	Config *config.AppConfig
	Logger *slog.Logger
}

// NewServices constructs the API client, credential storage, session
// store, and entity cache, and installs the auth hooks on the client.
func NewServices(deps *ServiceDeps) (*Services, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client, err := apiclient.New(apiclient.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create api client: %w", err)
	}

	svcs := &Services{API: client}

	var storage session.CredentialStorage
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		svcs.redisClient = redisClient
		storage = session.NewRedisStorage(redisClient, cfg.Auth.StoragePrefix)
		logger.Info("credential storage: redis", slog.String("addr", cfg.Redis.Addr))
	} else {
		storage = session.NewMemoryStorage()
		logger.Info("credential storage: in-memory (sessions do not survive restarts)")
	}

	svcs.Session = session.NewStore(session.Options{
		API:     client,
		Storage: storage,
		Logger:  logger,
	})
	svcs.Session.Attach(client)

	svcs.Data = store.NewDataStore(store.Options{API: client, Logger: logger})
	return svcs, nil
}

// Close releases owned infrastructure clients.
func (s *Services) Close() error {
	if s.redisClient != nil {
		return s.redisClient.Close()
	}
	return nil
}

// WarmUp restores a persisted session and, when one is live, pre-loads
// the entity cache. Both steps are best-effort: the guard revalidates on
// the first navigation, and views refresh their own collections.
func (s *Services) WarmUp(logger *slog.Logger, timeout time.Duration) {
	ctx, cancel := contextWithTimeout(timeout)
	defer cancel()

	if err := s.Session.InitAuth(ctx); err != nil {
		logger.Warn("session restore failed", slog.Any("error", err))
		return
	}
	if !s.Session.IsLoggedIn() {
		return
	}
	logger.Info("session restored", slog.String("username", s.Session.Username()))

	if err := s.Data.InitializeAll(ctx); err != nil {
		logger.Warn("cache warm-up failed", slog.Any("error", err))
	}
}
