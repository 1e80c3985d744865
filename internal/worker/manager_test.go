package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type tickWorker struct {
	*BaseWorker
	ticks atomic.Int32
}

func (w *tickWorker) Start(ctx context.Context) error {
	return w.RunEvery(ctx, func(context.Context) error {
		w.ticks.Add(1)
		return nil
	})
}

// blockingWorker ignores Stop.
type blockingWorker struct {
	*BaseWorker
	release chan struct{}
}

func (w *blockingWorker) Start(ctx context.Context) error {
	<-w.release
	return nil
}

// returnWorker exits right away with err.
type returnWorker struct {
	*BaseWorker
	err error
}

func (w *returnWorker) Start(context.Context) error {
	return w.err
}

func TestWorkerManager_CancellationIsNotAFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	m := NewWorkerManager(zap.New(core))
	m.Register(&returnWorker{
		BaseWorker: NewBaseWorker("cancelled", time.Second, zap.NewNop()),
		err:        fmt.Errorf("refresh catalog: %w", context.Canceled),
	})
	m.Register(&returnWorker{
		BaseWorker: NewBaseWorker("broken", time.Second, zap.NewNop()),
		err:        errors.New("backend down"),
	})

	require.NoError(t, m.Start(context.Background()))
	require.NoError(t, m.Stop())

	failed := logs.FilterMessage("Worker failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "broken", failed[0].ContextMap()["name"])
}

func TestWorkerManager_NoWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	a := &tickWorker{BaseWorker: NewBaseWorker("a", 5*time.Millisecond, zap.NewNop())}
	b := &tickWorker{BaseWorker: NewBaseWorker("b", time.Hour, zap.NewNop())}
	m.Register(a)
	m.Register(b)
	assert.Equal(t, 2, m.Len())

	require.NoError(t, m.Start(context.Background()))
	assert.Eventually(t, func() bool { return a.ticks.Load() >= 3 }, time.Second, time.Millisecond)
	assert.Eventually(t, func() bool { return b.ticks.Load() == 1 }, time.Second, time.Millisecond)

	require.NoError(t, m.Stop())
	assert.True(t, a.IsStopped())
	assert.True(t, b.IsStopped())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.SetShutdownTimeout(20 * time.Millisecond)
	w := &blockingWorker{BaseWorker: NewBaseWorker("stuck", time.Second, zap.NewNop()), release: make(chan struct{})}
	m.Register(w)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Stop())
	close(w.release)
}

func TestBaseWorker_NoInterval(t *testing.T) {
	w := NewBaseWorker("idle", 0, zap.NewNop())
	called := false
	err := w.RunEvery(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}
