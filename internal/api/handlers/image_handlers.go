package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio-service/folio_service/internal/domain/entities"
	domainerrors "github.com/folio-service/folio_service/internal/domain/errors"
	"github.com/folio-service/folio_service/pkg/logger"
)

// ImageCache is the address-keyed store of rendered chart documents
type ImageCache interface {
	GetImage(ctx context.Context, address string) (*entities.CachedImage, bool)
	PutImage(ctx context.Context, address, document string) error
}

// ImageHandlers serves and accepts cached chart images for embeds
type ImageHandlers struct {
	imageCache  ImageCache
	fallbackURL string
	logger      *logger.Logger
}

// NewImageHandlers creates a new image handlers instance
func NewImageHandlers(imageCache ImageCache, fallbackURL string, logger *logger.Logger) *ImageHandlers {
	return &ImageHandlers{
		imageCache:  imageCache,
		fallbackURL: fallbackURL,
		logger:      logger,
	}
}

// GetImage serves the cached chart for an address, or redirects to the
// fallback image when nothing is cached.
func (h *ImageHandlers) GetImage(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}

	image, found := h.imageCache.GetImage(c.Request.Context(), address)
	if !found {
		c.Redirect(http.StatusFound, h.fallbackURL)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, image.ContentType, []byte(image.Content))
}

// CacheImage validates and stores a rendered chart document for an
// address. The previously cached document survives any rejected write.
func (h *ImageHandlers) CacheImage(c *gin.Context) {
	address, ok := requireAddress(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
				"SVG data too large - maximum 1MB allowed", nil)
			return
		}
		respondBadRequest(c, "Failed to read request body", nil)
		return
	}

	if err := h.imageCache.PutImage(c.Request.Context(), address, string(body)); err != nil {
		h.respondWriteError(c, address, err)
		return
	}

	respondSuccess(c, entities.CacheWriteResponse{
		Success: true,
		Message: "Image cached successfully",
	})
}

func (h *ImageHandlers) respondWriteError(c *gin.Context, address string, err error) {
	switch {
	case domainerrors.IsPayloadTooLarge(err):
		respondError(c, http.StatusRequestEntityTooLarge, domainerrors.GetErrorCode(err),
			"SVG data too large - maximum 1MB allowed", nil)
	case domainerrors.IsInvalidInput(err):
		respondBadRequest(c, err.Error(), nil)
	default:
		h.logger.Error("Image cache write failed",
			"request_id", getRequestID(c),
			"address", address,
			"error", err)
		c.JSON(http.StatusInternalServerError, entities.CacheWriteResponse{
			Success: false,
			Message: "Failed to cache image",
		})
	}
}
