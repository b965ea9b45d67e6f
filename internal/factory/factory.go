package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/cardgame-go/internal/dependencies/clock"
	"github.com/mcoot/cardgame-go/internal/dependencies/random"
	"github.com/mcoot/cardgame-go/internal/dependencies/scheduler"
	"github.com/mcoot/cardgame-go/internal/messaging"
	"github.com/mcoot/cardgame-go/internal/services/cards"
	"github.com/mcoot/cardgame-go/internal/services/dispatch"
	"github.com/mcoot/cardgame-go/internal/services/session"
	"github.com/mcoot/cardgame-go/internal/storage"
	"github.com/mcoot/cardgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/cardgame-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	CardsService *cards.Service
	Dispatcher   *dispatch.Dispatcher
}

// Config holds configuration for the application factory
type Config struct {
	// SessionConfig holds the game rules (optional)
	// If zero value, defaults to session.DefaultConfig()
	SessionConfig session.Config
	// Sink receives all outbound chat traffic (optional)
	// If nil, a console sink is used
	Sink messaging.Sink
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
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
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	sink := cfg.Sink
	if sink == nil {
		sink = messaging.NewConsole()
	}

	sessionCfg := cfg.SessionConfig
	if sessionCfg.HandSize == 0 {
		sessionCfg = session.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), sink, sessionCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	sink messaging.Sink,
	sessionCfg session.Config,
	logger *slog.Logger,
) *App {
	cardsService := cards.New(logger)
	dispatcher := dispatch.New(sessionCfg, dispatch.Deps{
		Clock:        clk,
		Random:       rnd,
		Sink:         sink,
		Storage:      store,
		Cards:        cardsService,
		Logger:       logger,
		NewScheduler: func() scheduler.Scheduler { return scheduler.New() },
	})

	return &App{
		Storage:      store,
		Clock:        clk,
		Random:       rnd,
		CardsService: cardsService,
		Dispatcher:   dispatcher,
	}
}
