package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/strengthsync/strengthsync/internal/dependencies/clock"
	"github.com/strengthsync/strengthsync/internal/dependencies/random"
	"github.com/strengthsync/strengthsync/internal/services/auth"
	"github.com/strengthsync/strengthsync/internal/services/badges"
	"github.com/strengthsync/strengthsync/internal/services/boardgen"
	"github.com/strengthsync/strengthsync/internal/services/challenge"
	"github.com/strengthsync/strengthsync/internal/services/notify"
	"github.com/strengthsync/strengthsync/internal/services/org"
	"github.com/strengthsync/strengthsync/internal/services/report"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
	"github.com/strengthsync/strengthsync/internal/storage"
	"github.com/strengthsync/strengthsync/internal/storage/memory"
	redisstorage "github.com/strengthsync/strengthsync/internal/storage/redis"
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
	AuthService         *auth.Service
	OrgService          *org.Service
	StrengthsService    *strengths.Service
	ReportService       *report.Service
	BadgeService        *badges.Service
	BoardgenService     *boardgen.Service
	NotifyService       *notify.Service
	ChallengeController *challenge.Controller
	Bot                 *notify.Bot
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ChatWebhookURL is the chat platform's incoming webhook (optional)
	// If empty, notifications go to the application log
	ChatWebhookURL string
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

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	var sender notify.Sender
	if cfg.ChatWebhookURL != "" {
		sender = notify.NewWebhookSender(cfg.ChatWebhookURL)
	} else {
		sender = notify.NewLogSender(logger)
	}

	return newWithDependencies(store, clk, rnd, authCfg, sender, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, sender notify.Sender, logger *slog.Logger) *App {
	// Create services
	authService := auth.New(store, clk, authCfg, logger)
	orgService := org.New(store, clk, logger)
	strengthsService := strengths.New(store, clk, logger)
	badgeService := badges.New(store, clk, logger)
	boardgenService := boardgen.New(rnd)
	notifyService := notify.New(sender, logger)
	reportService := report.New(report.PlainTextExtractor{}, strengthsService, badgeService, logger)
	challengeController := challenge.NewController(store, boardgenService, strengthsService, badgeService, notifyService, clk, logger)
	bot := notify.NewBot(strengthsService, challengeController, store)

	return &App{
		Storage:             store,
		Clock:               clk,
		Random:              rnd,
		AuthService:         authService,
		OrgService:          orgService,
		StrengthsService:    strengthsService,
		ReportService:       reportService,
		BadgeService:        badgeService,
		BoardgenService:     boardgenService,
		NotifyService:       notifyService,
		ChallengeController: challengeController,
		Bot:                 bot,
	}
}
