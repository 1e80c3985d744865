// Package maintenance holds the periodic jobs of the gateway: catalog
// warming, session eviction and expired key cleanup.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/worker"
)

// CatalogRefresher reloads the normalized catalog into the shared cache.
type CatalogRefresher interface {
	Refresh(ctx context.Context, sess repository.Session) ([]domain.Attraction, error)
}

// CatalogWorker прогревает кеш каталога, чтобы первая страница Browse не ждала бэкенд
type CatalogWorker struct {
	*worker.BaseWorker
	catalog CatalogRefresher
	sess    repository.Session
}

// NewCatalogWorker - sess is the anonymous session the catalog is fetched with.
func NewCatalogWorker(catalog CatalogRefresher, sess repository.Session, interval time.Duration, logger *zap.Logger) *CatalogWorker {
	return &CatalogWorker{
		BaseWorker: worker.NewBaseWorker("catalog-refresh", interval, logger),
		catalog:    catalog,
		sess:       sess,
	}
}

func (w *CatalogWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting CatalogWorker", zap.Duration("interval", w.Interval()))
	return w.RunEvery(ctx, w.refresh)
}

func (w *CatalogWorker) refresh(ctx context.Context) error {
	items, err := w.catalog.Refresh(ctx, w.sess)
	if err != nil {
		return fmt.Errorf("refresh catalog: %w", err)
	}
	w.Logger().Info("Catalog refreshed", zap.Int("attractions", len(items)))
	return nil
}
