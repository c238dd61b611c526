package services

import (
	"context"
	"errors"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/folio-service/folio_service/internal/adapters/zerion"
	"github.com/folio-service/folio_service/internal/domain/entities"
	domainerrors "github.com/folio-service/folio_service/internal/domain/errors"
	"github.com/folio-service/folio_service/pkg/logger"
)

// ZerionAPI is the upstream collaborator the portfolio service reads from
type ZerionAPI interface {
	GetPositions(ctx context.Context, address string) (*zerion.PositionsResponse, error)
	GetPortfolio(ctx context.Context, address string) (*zerion.PortfolioResponse, error)
	GetPnL(ctx context.Context, address string) (*zerion.PnLResponse, error)
}

// PortfolioService builds complete visualization snapshots per wallet.
// Snapshots are memoized briefly so bursts of requests for the same
// wallet hit the upstream once.
type PortfolioService struct {
	client    ZerionAPI
	snapshots *gocache.Cache
	group     singleflight.Group
	topN      int
	logger    *logger.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(client ZerionAPI, topN int, snapshotTTL time.Duration, log *logger.Logger) *PortfolioService {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if snapshotTTL <= 0 {
		snapshotTTL = time.Minute
	}

	return &PortfolioService{
		client:    client,
		snapshots: gocache.New(snapshotTTL, 2*snapshotTTL),
		topN:      topN,
		logger:    log,
	}
}

// GetPortfolio returns the portfolio snapshot for a wallet address,
// fetching from the upstream when no fresh snapshot exists. Concurrent
// requests for the same address coalesce into a single fetch.
func (s *PortfolioService) GetPortfolio(ctx context.Context, address string) (*entities.PortfolioData, error) {
	key := strings.ToLower(address)

	if cached, ok := s.snapshots.Get(key); ok {
		return cached.(*entities.PortfolioData), nil
	}

	result, err, shared := s.group.Do(key, func() (interface{}, error) {
		if cached, ok := s.snapshots.Get(key); ok {
			return cached, nil
		}
		data, err := s.fetchPortfolio(ctx, address)
		if err != nil {
			return nil, err
		}
		s.snapshots.SetDefault(key, data)
		return data, nil
	})
	if err != nil {
		return nil, s.mapFetchError(err)
	}
	if shared {
		s.logger.Debug("Coalesced portfolio fetch", "address", key)
	}

	return result.(*entities.PortfolioData), nil
}

// fetchPortfolio pulls the three upstream resources in parallel and
// composes the snapshot.
func (s *PortfolioService) fetchPortfolio(ctx context.Context, address string) (*entities.PortfolioData, error) {
	start := time.Now()

	var (
		positionsResp *zerion.PositionsResponse
		portfolioResp *zerion.PortfolioResponse
		pnlResp       *zerion.PnLResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		positionsResp, err = s.client.GetPositions(gctx, address)
		return err
	})
	g.Go(func() error {
		var err error
		portfolioResp, err = s.client.GetPortfolio(gctx, address)
		return err
	})
	g.Go(func() error {
		var err error
		pnlResp, err = s.client.GetPnL(gctx, address)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Portfolio fetch failed", "address", address, "error", err)
		return nil, err
	}

	totalValue := portfolioResp.Data.Attributes.Total.Positions

	positions := NormalizePositions(positionsResp, totalValue)
	grouped := GroupPositions(positions, s.topN)
	realized, unrealized := NormalizePnL(pnlResp, totalValue)

	s.logger.Info("Portfolio snapshot built",
		"address", address,
		"positions", len(positions),
		"total_value", totalValue,
		"duration_ms", time.Since(start).Milliseconds())

	return &entities.PortfolioData{
		Positions:             positions,
		TopPositions:          grouped.TopPositions,
		Others:                grouped.Others,
		TotalValue:            totalValue,
		RealizedGainPercent:   realized,
		UnrealizedGainPercent: unrealized,
	}, nil
}

// mapFetchError translates adapter failures into domain errors
func (s *PortfolioService) mapFetchError(err error) error {
	var valErr *zerion.ValidationError
	if errors.As(err, &valErr) {
		return domainerrors.SchemaValidationError(valErr.Endpoint, valErr.Detail)
	}

	var apiErr *zerion.APIError
	if errors.As(err, &apiErr) {
		return domainerrors.UpstreamError(apiErr.Endpoint, apiErr)
	}

	return domainerrors.UpstreamError("zerion", err)
}
