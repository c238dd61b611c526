package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/internal/api/handlers"
	"github.com/folio-service/folio_service/internal/api/middleware"
	"github.com/folio-service/folio_service/internal/infrastructure/di"
)

// SetupRoutes configures all application routes
func SetupRoutes(container *di.Container) *gin.Engine {
	router := gin.New()

	// Global middleware - order matters
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestSizeLimit())
	router.Use(middleware.Logger(container.Logger))
	router.Use(middleware.Recovery(container.Logger))
	router.Use(middleware.CORS(container.Config.Server.AllowedOrigins))
	router.Use(middleware.RateLimit(container.Config.Server.RateLimitPerMin))
	router.Use(middleware.SecurityHeaders())

	coreHandlers := handlers.NewCoreHandlers(container.Redis, container.Logger)
	portfolioHandlers := handlers.NewPortfolioHandlers(
		container.GetPortfolioService(),
		container.Config.Chart,
		container.Logger,
	)
	imageHandlers := handlers.NewImageHandlers(
		container.GetImageCacheService(),
		container.Config.ImageCache.FallbackImageURL,
		container.Logger,
	)

	// Health checks and operational endpoints
	router.GET("/health", coreHandlers.Health)
	router.GET("/ready", coreHandlers.Ready)
	router.GET("/live", coreHandlers.Live)
	router.GET("/version", coreHandlers.Version)
	router.GET("/metrics", coreHandlers.Metrics)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/portfolio", portfolioHandlers.GetPortfolio)
		v1.GET("/portfolio/chart", portfolioHandlers.GetPortfolioChart)

		v1.GET("/embed/image", imageHandlers.GetImage)
		v1.POST("/embed/image", imageHandlers.CacheImage)
	}

	return router
}
