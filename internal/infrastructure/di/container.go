package di

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/adapters/zerion"
	"github.com/folio-service/folio_service/internal/domain/services"
	"github.com/folio-service/folio_service/internal/infrastructure/cache"
	"github.com/folio-service/folio_service/internal/infrastructure/config"
	"github.com/folio-service/folio_service/internal/workers/cachestats"
	"github.com/folio-service/folio_service/pkg/logger"
)

// Container wires configuration, infrastructure, and services together
type Container struct {
	Config *config.Config
	Logger *logger.Logger
	ZapLog *zap.Logger

	Redis        cache.RedisClient
	ZerionClient *zerion.Client

	portfolioService  *services.PortfolioService
	imageCacheService *services.ImageCacheService
	cacheStatsWorker  *cachestats.Worker
}

// NewContainer builds the dependency graph from configuration
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	redisClient, err := cache.NewRedisClient(&cfg.Redis, log.Zap())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}

	zerionClient := zerion.NewClient(zerion.Config{
		APIKey:     cfg.Zerion.APIKey,
		BaseURL:    cfg.Zerion.BaseURL,
		Currency:   cfg.Zerion.Currency,
		Timeout:    time.Duration(cfg.Zerion.Timeout) * time.Second,
		MaxRetries: cfg.Zerion.MaxRetries,
	}, log)

	c := &Container{
		Config:       cfg,
		Logger:       log,
		ZapLog:       log.Zap(),
		Redis:        redisClient,
		ZerionClient: zerionClient,
	}

	c.portfolioService = services.NewPortfolioService(
		zerionClient,
		cfg.Chart.TopN,
		time.Duration(cfg.Portfolio.SnapshotTTLSeconds)*time.Second,
		log,
	)

	c.imageCacheService = services.NewImageCacheService(
		redisClient,
		time.Duration(cfg.ImageCache.TTLDays)*24*time.Hour,
		cfg.ImageCache.MaxDocumentBytes,
		log,
	)

	c.cacheStatsWorker = cachestats.NewWorker(redisClient, cfg.Workers.CacheStatsSchedule, log.Zap())

	return c, nil
}

// GetPortfolioService returns the portfolio snapshot service
func (c *Container) GetPortfolioService() *services.PortfolioService {
	return c.portfolioService
}

// GetImageCacheService returns the image cache service
func (c *Container) GetImageCacheService() *services.ImageCacheService {
	return c.imageCacheService
}

// GetCacheStatsWorker returns the cache stats background worker
func (c *Container) GetCacheStatsWorker() *cachestats.Worker {
	return c.cacheStatsWorker
}

// Close releases held infrastructure resources
func (c *Container) Close() error {
	return c.Redis.Close()
}
