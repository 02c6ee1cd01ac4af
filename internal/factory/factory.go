package factory

import (
	"errors"
	"io"
	"log/slog"

	redispub "github.com/mcoot/truthdare-go/internal/broadcast/redis"

	"github.com/mcoot/truthdare-go/internal/broadcast"
	"github.com/mcoot/truthdare-go/internal/clients/truthdare"
	"github.com/mcoot/truthdare-go/internal/dependencies/clock"
	"github.com/mcoot/truthdare-go/internal/dependencies/random"
	"github.com/mcoot/truthdare-go/internal/services/codes"
	"github.com/mcoot/truthdare-go/internal/services/ids"
	"github.com/mcoot/truthdare-go/internal/services/question"
	"github.com/mcoot/truthdare-go/internal/services/registry"
	"github.com/mcoot/truthdare-go/internal/services/session"
	"github.com/mcoot/truthdare-go/internal/storage"
	"github.com/mcoot/truthdare-go/internal/storage/memory"
	"github.com/mcoot/truthdare-go/internal/web/sse"
	"github.com/mcoot/truthdare-go/internal/web/ws"
)

// App contains all wired application components
type App struct {
	// Storage
	Store storage.RoomStore

	// External dependencies
	Clock    clock.Clock
	Random   random.Random
	Provider question.Provider

	// Services
	Registry     *registry.Registry
	Selector     *question.Selector
	Orchestrator *session.Orchestrator

	// Transports
	HubManager     *sse.HubManager
	SSEBroadcaster *sse.Broadcaster
	WSManager      *ws.Manager
	WSBroadcaster  *ws.Broadcaster
	RedisPublisher *redispub.Publisher // nil unless Redis is configured
	Broadcaster    broadcast.Multi
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// QuestionAPIEnabled turns on the external question provider
	QuestionAPIEnabled bool
	// QuestionAPI holds provider client settings (optional)
	// If zero value, defaults to truthdare.DefaultConfig()
	QuestionAPI truthdare.Config
	// Redis enables the Redis publisher when non-nil
	Redis *redispub.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	var provider question.Provider = truthdare.Disabled{}
	questionCfg := cfg.QuestionAPI
	if questionCfg.BaseURL == "" {
		questionCfg = truthdare.DefaultConfig()
	}
	if cfg.QuestionAPIEnabled {
		provider = truthdare.New(questionCfg, logger)
	}

	var publisher *redispub.Publisher
	if cfg.Redis != nil {
		if cfg.Redis.URL == "" {
			return nil, errors.New("redis URL required when Redis is configured")
		}
		p, err := redispub.New(*cfg.Redis, clk, logger)
		if err != nil {
			return nil, err
		}
		publisher = p
	}

	app := newWithDependencies(memory.New(), clk, rnd, ids.UUID{}, provider, logger, question.WithTimeout(questionCfg.Timeout))
	if publisher != nil {
		app.RedisPublisher = publisher
		app.Broadcaster = append(app.Broadcaster, publisher)
	}
	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing).
// The orchestrator broadcasts through app.Broadcaster, so transports
// appended to it before the first operation receive every event.
func newWithDependencies(
	store storage.RoomStore,
	clk clock.Clock,
	rnd random.Random,
	idGen ids.Generator,
	provider question.Provider,
	logger *slog.Logger,
	selectorOpts ...question.Option,
) *App {
	hubManager := sse.NewHubManager(logger)
	sseBroadcaster := sse.NewBroadcaster(hubManager, clk, logger)
	wsManager := ws.NewManager(logger)
	wsBroadcaster := ws.NewBroadcaster(wsManager, clk, logger)

	app := &App{
		Store:          store,
		Clock:          clk,
		Random:         rnd,
		Provider:       provider,
		HubManager:     hubManager,
		SSEBroadcaster: sseBroadcaster,
		WSManager:      wsManager,
		WSBroadcaster:  wsBroadcaster,
		Broadcaster:    broadcast.NewMulti(sseBroadcaster, wsBroadcaster),
	}

	app.Registry = registry.New(store, codes.NewGenerator(rnd), idGen, clk, logger)
	app.Selector = question.NewSelector(provider, rnd, idGen, clk, logger, selectorOpts...)
	app.Orchestrator = session.New(app.Registry, app.Selector, app, idGen, clk, logger)
	return app
}

// Close disconnects every subscriber and releases external connections
func (a *App) Close() error {
	a.HubManager.CloseAll()
	a.WSManager.CloseAll()
	if a.RedisPublisher != nil {
		return a.RedisPublisher.Close()
	}
	return nil
}
