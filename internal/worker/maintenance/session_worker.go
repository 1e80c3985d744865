package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/worker"
)

// SessionEvicter forgets in-memory sessions that are signed out.
type SessionEvicter interface {
	Evict() int
	Len() int
}

// Sweeper drops per-client state idle for longer than idle.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SessionWorker освобождает память шлюза: анонимные сессии и лимитеры входа
type SessionWorker struct {
	*worker.BaseWorker
	sessions SessionEvicter
	limiter  Sweeper
	idle     time.Duration
}

// NewSessionWorker - limiter may be nil.
func NewSessionWorker(sessions SessionEvicter, limiter Sweeper, interval, idle time.Duration, logger *zap.Logger) *SessionWorker {
	return &SessionWorker{
		BaseWorker: worker.NewBaseWorker("session-evict", interval, logger),
		sessions:   sessions,
		limiter:    limiter,
		idle:       idle,
	}
}

func (w *SessionWorker) Start(ctx context.Context) error {
	w.Logger().Info("Starting SessionWorker", zap.Duration("interval", w.Interval()))
	return w.RunEvery(ctx, w.sweep)
}

func (w *SessionWorker) sweep(ctx context.Context) error {
	evicted := w.sessions.Evict()
	swept := 0
	if w.limiter != nil {
		swept = w.limiter.Sweep(w.idle)
	}
	if evicted > 0 || swept > 0 {
		w.Logger().Info("Idle client state released",
			zap.Int("sessions_evicted", evicted),
			zap.Int("sessions_live", w.sessions.Len()),
			zap.Int("limiters_swept", swept))
	}
	return nil
}
