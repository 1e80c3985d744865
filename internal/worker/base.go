package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker содержит общую логику периодических воркеров
type BaseWorker struct {
	name     string
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewBaseWorker создает новый BaseWorker
func NewBaseWorker(name string, interval time.Duration, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		interval: interval,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

// Name возвращает имя воркера
func (w *BaseWorker) Name() string {
	return w.name
}

// Interval возвращает период запуска
func (w *BaseWorker) Interval() time.Duration {
	return w.interval
}

// Stop останавливает воркер
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

// IsStopped проверяет, остановлен ли воркер
func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// StopChan возвращает канал остановки
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Logger возвращает логгер
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// RunEvery runs task once right away and then every interval until the
// worker is stopped or ctx is done. A failed run is logged and the loop goes on.
func (w *BaseWorker) RunEvery(ctx context.Context, task Task) error {
	if w.interval <= 0 {
		w.logger.Warn("Worker has no interval, not scheduling")
		return nil
	}

	w.runOnce(ctx, task)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.StopChan():
			w.logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			w.logger.Info("Context cancelled")
			return ctx.Err()

		case <-ticker.C:
			w.runOnce(ctx, task)
		}
	}
}

func (w *BaseWorker) runOnce(ctx context.Context, task Task) {
	start := time.Now()
	if err := task(ctx); err != nil {
		w.logger.Error("Worker run failed",
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return
	}
	w.logger.Debug("Worker run done", zap.Duration("duration", time.Since(start)))
}
