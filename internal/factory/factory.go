package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/eggbreaker/internal/dependencies/clock"
	"github.com/mcoot/eggbreaker/internal/dependencies/random"
	"github.com/mcoot/eggbreaker/internal/services/auth"
	"github.com/mcoot/eggbreaker/internal/services/leaderboard"
	"github.com/mcoot/eggbreaker/internal/services/profile"
	"github.com/mcoot/eggbreaker/internal/services/session"
	"github.com/mcoot/eggbreaker/internal/storage"
	"github.com/mcoot/eggbreaker/internal/storage/local"
	localmemory "github.com/mcoot/eggbreaker/internal/storage/local/memory"
	"github.com/mcoot/eggbreaker/internal/storage/local/sqlite"
	"github.com/mcoot/eggbreaker/internal/storage/memory"
	redisstorage "github.com/mcoot/eggbreaker/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeNone   = "none"

	LocalStorageMemory = "memory"
	LocalStorageSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage is the remote store; nil when StorageType is "none"
	Storage      storage.Storage
	LocalStorage local.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService        *auth.Service
	ProfileService     *profile.Service
	LeaderboardService *leaderboard.Service
	Sessions           *session.Registry

	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the remote store ("memory", "redis" or "none")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// LocalStorage selects the local store ("memory" or "sqlite")
	// If empty, defaults to "memory"
	LocalStorage string
	// LocalDBPath is the sqlite file (required if LocalStorage is "sqlite")
	LocalDBPath string
	// AuthConfig holds configuration for the auth service (optional)
	AuthConfig auth.Config
	// SessionConfig holds debounce and expiry settings (optional)
	SessionConfig session.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var closers []io.Closer

	// Create remote storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig, logger)
		if err != nil {
			return nil, err
		}
		store = redisStore
		closers = append(closers, redisStore)
	case StorageTypeNone:
		logger.Warn("no remote store configured, progress is kept in local storage only")
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'none'", storageType)
	}

	// Create local storage
	var localStore local.Storage
	switch cfg.LocalStorage {
	case "", LocalStorageMemory:
		localStore = localmemory.New()
	case LocalStorageSQLite:
		if cfg.LocalDBPath == "" {
			closeAll(closers)
			return nil, errors.New("LocalDBPath required when LocalStorage is sqlite")
		}
		sqliteStore, err := sqlite.Open(cfg.LocalDBPath)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		localStore = sqliteStore
		closers = append(closers, sqliteStore)
	default:
		closeAll(closers)
		return nil, fmt.Errorf("invalid LocalStorage %q: must be 'memory' or 'sqlite'", cfg.LocalStorage)
	}

	app := newWithDependencies(store, localStore, clock.New(), random.New(), cfg.AuthConfig, cfg.SessionConfig, logger)
	app.closers = closers
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	localStore local.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	authService := auth.New(store, clk, authCfg, logger)
	profileService := profile.New(store, localStore, clk, logger)
	leaderboardService := leaderboard.New(store, logger)
	sessions := session.NewRegistry(profileService, clk, rnd, sessionCfg, logger)

	return &App{
		Storage:            store,
		LocalStorage:       localStore,
		Clock:              clk,
		Random:             rnd,
		AuthService:        authService,
		ProfileService:     profileService,
		LeaderboardService: leaderboardService,
		Sessions:           sessions,
	}
}

// Close releases storage connections. Shut down Sessions first so pending
// saves reach the stores.
func (a *App) Close() error {
	return closeAll(a.closers)
}

func closeAll(closers []io.Closer) error {
	var errs []error
	for _, c := range closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
