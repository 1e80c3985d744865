package maintenance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/worker"
)

// PurgeWorker удаляет просроченные ключи из SQL хранилищ, у которых нет собственного TTL
type PurgeWorker struct {
	*worker.BaseWorker
	store kv.Purger
}

func NewPurgeWorker(store kv.Purger, interval time.Duration, logger *zap.Logger) *PurgeWorker {
	return &PurgeWorker{
		BaseWorker: worker.NewBaseWorker("kv-purge", interval, logger),
		store:      store,
	}
}

func (w *PurgeWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting PurgeWorker", zap.Duration("interval", w.Interval()))
	return w.RunEvery(ctx, w.purge)
}

func (w *PurgeWorker) purge(ctx context.Context) error {
	n, err := w.store.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge expired keys: %w", err)
	}
	if n > 0 {
		w.Logger().Info("Expired keys purged", zap.Int64("count", n))
	}
	return nil
}
