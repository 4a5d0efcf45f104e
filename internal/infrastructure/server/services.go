package server

import (
	"github.com/redis/go-redis/v9"

	"github.com/housekeep/core/internal/adapters/repository"
	"github.com/housekeep/core/internal/adapters/textgen"
	"github.com/housekeep/core/internal/application/services"
	"github.com/housekeep/core/internal/infrastructure/clock"
	"github.com/housekeep/core/internal/infrastructure/config"
	"github.com/housekeep/core/internal/infrastructure/database"
	"github.com/housekeep/core/internal/infrastructure/logger"
	"github.com/housekeep/core/internal/infrastructure/metrics"
	"github.com/housekeep/core/internal/ports"
)

// Services is the application layer wired to its repositories. The HTTP
// server and the CLI commands share it.
type Services struct {
	Auth         *services.AuthService
	Tasks        *services.TaskService
	Spaces       *services.SpaceService
	Catalog      *services.CatalogService
	Dashboard    *services.DashboardService
	Provisioning *services.ProvisioningService
	Motivation   *services.MotivationService
}

// NewServices builds every service. redisClient and m may be nil.
func NewServices(cfg *config.Config, db *database.DB, redisClient *redis.Client, m *metrics.Metrics, appLogger *logger.Logger) (*Services, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, err
	}

	var cache ports.CacheRepository
	if redisClient != nil {
		cache = repository.NewCacheRepository(redisClient)
	}

	clk := clock.System{}

	taskRepo := repository.NewTaskRepository(db.DB)
	spaceRepo := repository.NewSpaceRepository(db.DB)
	catalogRepo := repository.NewCatalogRepository(db.DB)
	messageRepo := repository.NewMessageRepository(db.DB)

	return &Services{
		Auth:         services.NewAuthService(cfg.JWT, clk, appLogger),
		Tasks:        services.NewTaskService(taskRepo, spaceRepo, clk, m, appLogger),
		Spaces:       services.NewSpaceService(spaceRepo, catalogRepo, clk, appLogger),
		Catalog:      services.NewCatalogService(catalogRepo, cache, cfg.Catalog.CacheTTL, appLogger),
		Dashboard:    services.NewDashboardService(taskRepo, clk, loc, cfg.Dashboard.DefaultDaysAhead, m, appLogger),
		Provisioning: services.NewProvisioningService(taskRepo, spaceRepo, catalogRepo, clk, cfg.Provisioning.Concurrency, m, appLogger),
		Motivation: services.NewMotivationService(taskRepo, messageRepo, newGenerator(cfg.TextGen, appLogger), cache, clk, services.MotivationOptions{
			RateLimit:  cfg.Motivation.RateLimit,
			RateWindow: cfg.Motivation.RateWindow,
			LatestTTL:  cfg.Motivation.LatestTTL,
		}, appLogger),
	}, nil
}

// newGenerator returns the offline template generator, or OpenRouter
// backed by it when configured.
func newGenerator(cfg config.TextGenConfig, appLogger *logger.Logger) ports.TextGenerator {
	templates := textgen.NewTemplateGenerator()
	if cfg.Provider != "openrouter" {
		return templates
	}
	return textgen.NewFallback(textgen.NewOpenRouterClient(cfg), templates, appLogger.WithComponent("textgen"))
}
