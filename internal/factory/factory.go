// Package factory wires the application's components together.
package factory

import (
	"io"
	"log/slog"

	"github.com/flooyd/gameserver/internal/config"
	"github.com/flooyd/gameserver/internal/dependencies/clock"
	"github.com/flooyd/gameserver/internal/services/auth"
	"github.com/flooyd/gameserver/internal/services/todo"
	"github.com/flooyd/gameserver/internal/session"
	"github.com/flooyd/gameserver/internal/storage"
	"github.com/flooyd/gameserver/internal/storage/memory"
	"github.com/flooyd/gameserver/internal/storage/postgres"
	redisstorage "github.com/flooyd/gameserver/internal/storage/redis"
	"github.com/flooyd/gameserver/internal/ws"
)

// App contains all wired application components
type App struct {
	Storage  storage.Storage
	Clock    clock.Clock
	Registry *session.Registry

	AuthService *auth.Service
	TodoService *todo.Service

	Hub     *ws.Hub
	Gateway *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "postgres" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// PostgresConfig holds Postgres settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
	// RedisConfig holds Redis settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired. The hub's
// event loop is started; callers own shutting it down via Close.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = config.StorageTypeMemory
	}

	var store storage.Storage
	switch storageType {
	case config.StorageTypeMemory:
		store = memory.New()
	case config.StorageTypePostgres:
		pgCfg := postgres.DefaultConfig()
		if cfg.PostgresConfig != nil {
			pgCfg = *cfg.PostgresConfig
		}
		pg, err := postgres.New(pgCfg)
		if err != nil {
			return nil, err
		}
		store = pg
	case config.StorageTypeRedis:
		redisCfg := redisstorage.DefaultConfig()
		if cfg.RedisConfig != nil {
			redisCfg = *cfg.RedisConfig
		}
		rs, err := redisstorage.New(redisCfg)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		return nil, &UnknownStorageTypeError{Type: storageType}
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies wires the application around the given storage and
// clock. Tests use this with mocked dependencies.
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	registry := session.NewRegistry()

	authService := auth.New(store, clk)
	todoService := todo.New(store, registry, clk)

	hub := ws.NewHub(logger)
	go hub.Run()

	gateway := ws.NewGateway(logger, hub, registry, authService, todoService, store)

	return &App{
		Storage:     store,
		Clock:       clk,
		Registry:    registry,
		AuthService: authService,
		TodoService: todoService,
		Hub:         hub,
		Gateway:     gateway,
	}
}

// Close releases the app's long-lived resources
func (a *App) Close() error {
	a.Hub.Close()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// UnknownStorageTypeError is returned for an unrecognized storage type
type UnknownStorageTypeError struct {
	Type string
}

func (e *UnknownStorageTypeError) Error() string {
	return "unknown storage type: " + e.Type
}
