package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/HannanLK/code-red-server/internal/dependencies/clock"
	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/services/bot"
	"github.com/HannanLK/code-red-server/internal/services/dictionary"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/services/validation"
	"github.com/HannanLK/code-red-server/internal/storage"
	"github.com/HannanLK/code-red-server/internal/storage/memory"
	redisstorage "github.com/HannanLK/code-red-server/internal/storage/redis"
	"github.com/HannanLK/code-red-server/internal/transport/ws"
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
	DictionaryService *dictionary.Service
	ScoringService    *scoring.Service
	ValidationService *validation.Service
	Registry          *room.Registry
	BotService        *bot.Service
	HubManager        *ws.HubManager
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// RoomConfig holds per-room game settings (optional)
	// If zero value, defaults to room.DefaultConfig()
	RoomConfig room.Config
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
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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

	clk := clock.New()
	rnd := random.New()

	roomCfg := cfg.RoomConfig
	if roomCfg.TimePerPlayer == 0 {
		roomCfg = room.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, roomCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, roomCfg room.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	dictService := dictionary.New(store, logger)
	scoringService := scoring.New()
	validationService := validation.New(dictService, scoringService, logger)
	registry := room.NewRegistry(roomCfg, validationService, scoringService, store, clk, rnd, logger)
	botService := bot.New(registry, validationService, rnd, logger)
	hubManager := ws.NewHubManager(registry, logger)

	// The registry pushes events outward through both of these
	registry.SetScheduler(botService)
	registry.SetSink(hubManager)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		DictionaryService: dictService,
		ScoringService:    scoringService,
		ValidationService: validationService,
		Registry:          registry,
		BotService:        botService,
		HubManager:        hubManager,
	}
}
