package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/internal/domain/entities"
	domainerrors "github.com/folio-service/folio_service/internal/domain/errors"
	"github.com/folio-service/folio_service/internal/domain/services"
	"github.com/folio-service/folio_service/internal/infrastructure/config"
	"github.com/folio-service/folio_service/pkg/logger"
)

// PortfolioProvider builds portfolio snapshots per wallet address
type PortfolioProvider interface {
	GetPortfolio(ctx context.Context, address string) (*entities.PortfolioData, error)
}

// PortfolioHandlers serves portfolio data and rendered charts
type PortfolioHandlers struct {
	portfolioService PortfolioProvider
	chartConfig      config.ChartConfig
	logger           *logger.Logger
}

// NewPortfolioHandlers creates a new portfolio handlers instance
func NewPortfolioHandlers(portfolioService PortfolioProvider, chartConfig config.ChartConfig, logger *logger.Logger) *PortfolioHandlers {
	return &PortfolioHandlers{
		portfolioService: portfolioService,
		chartConfig:      chartConfig,
		logger:           logger,
	}
}

// GetPortfolio returns the normalized portfolio snapshot as JSON
func (h *PortfolioHandlers) GetPortfolio(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}

	data, err := h.portfolioService.GetPortfolio(c.Request.Context(), address)
	if err != nil {
		h.respondFetchError(c, address, err)
		return
	}

	respondSuccess(c, data)
}

// GetPortfolioChart renders the portfolio as an SVG donut chart.
// Query parameters: theme, size, stroke_width, interactive, background.
func (h *PortfolioHandlers) GetPortfolioChart(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}

	data, err := h.portfolioService.GetPortfolio(c.Request.Context(), address)
	if err != nil {
		h.respondFetchError(c, address, err)
		return
	}

	theme := c.DefaultQuery("theme", h.chartConfig.Theme)
	if theme != "light" && theme != "dark" {
		respondBadRequest(c, "Theme must be light or dark", nil)
		return
	}

	size := parseIntParam(c, "size", h.chartConfig.Size)
	strokeWidth := parseIntParam(c, "stroke_width", h.chartConfig.StrokeWidth)
	if size <= strokeWidth {
		respondBadRequest(c, "Size must be larger than stroke width", map[string]interface{}{
			"size":         size,
			"stroke_width": strokeWidth,
		})
		return
	}

	opts := services.ChartOptions{
		Size:              size,
		StrokeWidth:       strokeWidth,
		IncludeBackground: parseBoolParam(c, "background", true),
		Theme:             theme,
	}

	positions := data.ChartPositions()

	var svg string
	if parseBoolParam(c, "interactive", false) {
		svg = services.RenderInteractiveSVG(positions, opts)
	} else {
		svg = services.RenderStandaloneSVG(positions, opts)
	}

	c.Data(http.StatusOK, services.SVGContentType, []byte(svg))
}

func (h *PortfolioHandlers) respondFetchError(c *gin.Context, address string, err error) {
	h.logger.Error("Portfolio fetch failed",
		"request_id", getRequestID(c),
		"address", address,
		"error", err)

	switch {
	case domainerrors.IsSchemaValidation(err):
		respondBadGateway(c, domainerrors.GetErrorCode(err), "Upstream returned an invalid response")
	case domainerrors.IsUpstream(err):
		respondBadGateway(c, domainerrors.GetErrorCode(err), "Upstream portfolio fetch failed")
	default:
		respondInternalError(c, "Failed to build portfolio")
	}
}
