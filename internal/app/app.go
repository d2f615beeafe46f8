package app

import (
	"strings"

	"github.com/darvasboard/darvas-portal/internal/common"
	"github.com/darvasboard/darvas-portal/internal/config"
	"github.com/darvasboard/darvas-portal/internal/darvas"
	"github.com/darvasboard/darvas-portal/internal/handlers"
	"github.com/darvasboard/darvas-portal/internal/market"
	"github.com/darvasboard/darvas-portal/internal/mcp"
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Market  market.Client
	Service *darvas.Service

	// HTTP handlers
	DashboardHandler *handlers.DashboardHandler
	TickerHandler    *handlers.TickerHandler
	HealthHandler    *handlers.HealthHandler
	VersionHandler   *handlers.VersionHandler
	MCPHandler       *mcp.Handler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	a.Market = market.NewYahooClient(cfg.Market, logger)
	a.Service = darvas.NewService(a.Market, logger)

	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler(a.Logger)
	a.TickerHandler = handlers.NewTickerHandler(a.Logger, a.Service)
	a.DashboardHandler = handlers.NewDashboardHandler(a.Logger, a.Config.IsDevMode(), a.Service)

	if a.Config.MCP.Enabled {
		a.MCPHandler = mcp.NewHandler(a.Config, a.Logger, a.Service)
	}

	a.Logger.Debug().Msg("HTTP handlers initialized")
}

// Close closes all application resources.
func (a *App) Close() error {
	return nil
}
