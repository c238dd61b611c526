package cachestats

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/folio-service/folio_service/internal/infrastructure/cache"
	"github.com/folio-service/folio_service/pkg/metrics"
)

// Worker periodically counts the cached chart images and publishes the
// count as a gauge so retention behavior is observable.
type Worker struct {
	store    cache.RedisClient
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewWorker(store cache.RedisClient, schedule string, logger *zap.Logger) *Worker {
	if schedule == "" {
		schedule = "@every 5m"
	}
	return &Worker{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
	}
}

func (w *Worker) Start() error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := w.sweep(ctx); err != nil {
			w.logger.Error("Failed to sweep image cache stats", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	w.cron.Start()
	w.logger.Info("Cache stats worker started", zap.String("schedule", w.schedule))
	return nil
}

func (w *Worker) Stop() {
	w.cron.Stop()
	w.logger.Info("Cache stats worker stopped")
}

// sweep counts image keys with a cursor scan so large keyspaces never
// block the store.
func (w *Worker) sweep(ctx context.Context) error {
	start := time.Now()

	var count int64
	iter := w.store.Client().Scan(ctx, 0, "image:*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return err
	}

	metrics.CachedImagesGauge.Set(float64(count))
	metrics.CacheSweepDuration.Observe(time.Since(start).Seconds())

	w.logger.Debug("Image cache swept",
		zap.Int64("cached_images", count),
		zap.Duration("duration", time.Since(start)))
	return nil
}
