package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/folio-service/folio_service/internal/domain/entities"
	domainerrors "github.com/folio-service/folio_service/internal/domain/errors"
	"github.com/folio-service/folio_service/internal/infrastructure/cache"
	"github.com/folio-service/folio_service/pkg/logger"
	"github.com/folio-service/folio_service/pkg/metrics"
)

const (
	imageKeyPrefix = "image:"

	// SVGContentType is the media type served for cached charts
	SVGContentType = "image/svg+xml"
)

// ImageCacheService stores one rendered vector document per wallet
// address. Keys are case-insensitive; each accepted write overwrites the
// prior entry and restarts the retention window.
type ImageCacheService struct {
	store    cache.RedisClient
	group    singleflight.Group
	ttl      time.Duration
	maxBytes int
	logger   *logger.Logger
}

// NewImageCacheService creates a new image cache service
func NewImageCacheService(store cache.RedisClient, ttl time.Duration, maxBytes int, log *logger.Logger) *ImageCacheService {
	if maxBytes <= 0 {
		maxBytes = 1 << 20
	}

	return &ImageCacheService{
		store:    store,
		ttl:      ttl,
		maxBytes: maxBytes,
		logger:   log,
	}
}

// ImageKey returns the storage key for a wallet address
func ImageKey(address string) string {
	return imageKeyPrefix + strings.ToLower(address)
}

// GetImage returns the cached document for an address and whether one
// exists. Store failures degrade to a miss so callers can always fall
// back to the default image; they are logged, never surfaced.
// Simultaneous lookups for the same address collapse into one store
// round trip.
func (s *ImageCacheService) GetImage(ctx context.Context, address string) (*entities.CachedImage, bool) {
	key := ImageKey(address)

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.store.GetString(ctx, key)
	})
	if err != nil {
		if errors.Is(err, cache.ErrNil) {
			metrics.ImageCacheLookupsTotal.WithLabelValues("miss").Inc()
			return nil, false
		}
		s.logger.Warn("Image cache read failed, serving fallback", "address", address, "error", err)
		metrics.ImageCacheLookupsTotal.WithLabelValues("error").Inc()
		return nil, false
	}

	metrics.ImageCacheLookupsTotal.WithLabelValues("hit").Inc()
	return &entities.CachedImage{
		Address:     strings.ToLower(address),
		Content:     result.(string),
		ContentType: SVGContentType,
	}, true
}

// PutImage validates and stores a rendered document for an address.
// Malformed documents and documents over the size bound are rejected
// before the store is touched, so a failed write never disturbs the
// previously cached value.
func (s *ImageCacheService) PutImage(ctx context.Context, address, document string) error {
	trimmed := strings.TrimSpace(document)

	if err := s.validateDocument(trimmed); err != nil {
		metrics.ImageCacheWritesTotal.WithLabelValues("rejected").Inc()
		return err
	}

	key := ImageKey(address)
	if err := s.store.SetString(ctx, key, trimmed, s.ttl); err != nil {
		s.logger.Error("Image cache write failed", "address", address, "error", err)
		metrics.ImageCacheWritesTotal.WithLabelValues("error").Inc()
		return domainerrors.InternalError("Failed to cache image", err)
	}

	metrics.ImageCacheWritesTotal.WithLabelValues("success").Inc()
	s.logger.Info("Image cached", "address", strings.ToLower(address), "size_bytes", len(trimmed))
	return nil
}

// validateDocument checks that the payload is a complete vector image:
// an svg root element, optionally preceded by an XML declaration, with
// the matching closing tag, within the size bound.
func (s *ImageCacheService) validateDocument(trimmed string) error {
	if trimmed == "" {
		return domainerrors.ValidationError("body", "SVG data is required")
	}

	hasXMLDeclaration := strings.HasPrefix(trimmed, "<?xml")
	hasDirectSVG := strings.HasPrefix(trimmed, "<svg")
	containsSVGTag := strings.Contains(trimmed, "<svg")
	endsWithSVG := strings.HasSuffix(trimmed, "</svg>")

	isValid := (hasXMLDeclaration && containsSVGTag && endsWithSVG) ||
		(hasDirectSVG && endsWithSVG)
	if !isValid {
		return domainerrors.ValidationError("body",
			"Invalid SVG format - must be a complete SVG element with optional XML declaration")
	}

	if len(trimmed) > s.maxBytes {
		return domainerrors.PayloadTooLargeError(s.maxBytes)
	}

	return nil
}
