package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/metrics"
)

// NamespacePrefix - storage namespace prefix of gateway sessions
const NamespacePrefix = "session:"

// Manager maps opaque session ids (cookie values) to Stores and keeps live
// Stores in memory so concurrent requests of one client share state.
type Manager struct {
	kv     repository.KVStore
	sealer *Sealer
	ttl    time.Duration
	logger *zap.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewManager(kv repository.KVStore, sealer *Sealer, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		kv:     kv,
		sealer: sealer,
		ttl:    ttl,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// NewID returns a fresh session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape of an id issued by NewID.
func (m *Manager) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the Store of session id, loading it from storage on first use.
func (m *Manager) Get(ctx context.Context, id string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if st, ok := m.stores[id]; ok {
		return st, nil
	}

	st, err := New(ctx, m.kv, NamespacePrefix+id,
		WithSealer(m.sealer),
		WithTTL(m.ttl),
		WithLogger(m.logger),
	)
	if err != nil {
		return nil, err
	}
	m.stores[id] = st
	metrics.ActiveSessions.Set(float64(len(m.stores)))
	return st, nil
}

// Drop destroys the session and forgets it.
func (m *Manager) Drop(ctx context.Context, id string) error {
	m.mu.Lock()
	st, ok := m.stores[id]
	delete(m.stores, id)
	metrics.ActiveSessions.Set(float64(len(m.stores)))
	m.mu.Unlock()

	if !ok {
		var err error
		st, err = New(ctx, m.kv, NamespacePrefix+id, WithSealer(m.sealer), WithLogger(m.logger))
		if err != nil {
			return err
		}
	}
	return st.Destroy(ctx)
}

// Rotate opens a Store under a fresh id. The dark-mode flag of oldID and
// its values under the carry key suffixes are copied over; oldID is untouched.
func (m *Manager) Rotate(ctx context.Context, oldID string, carry ...string) (string, *Store, error) {
	old, err := m.Get(ctx, oldID)
	if err != nil {
		return "", nil, err
	}
	id := m.NewID()
	st, err := m.Get(ctx, id)
	if err != nil {
		return "", nil, err
	}

	if err := m.copyOver(ctx, old, st, carry); err != nil {
		if rerr := m.Retire(ctx, id, carry...); rerr != nil {
			m.logger.Warn("Failed to drop rotated session", zap.Error(rerr))
		}
		return "", nil, err
	}
	return id, st, nil
}

func (m *Manager) copyOver(ctx context.Context, from, to *Store, carry []string) error {
	if from.DarkMode() {
		if err := to.SetDarkMode(ctx, true); err != nil {
			return err
		}
	}
	for _, suffix := range carry {
		v, ok, err := m.kv.Get(ctx, from.key(suffix))
		if err != nil {
			return fmt.Errorf("read %s: %w", suffix, err)
		}
		if !ok {
			continue
		}
		if err := m.kv.Set(ctx, to.key(suffix), v, 0); err != nil {
			return fmt.Errorf("copy %s: %w", suffix, err)
		}
	}
	return nil
}

// Retire drops the session and its values under the carry key suffixes.
func (m *Manager) Retire(ctx context.Context, id string, carry ...string) error {
	if err := m.Drop(ctx, id); err != nil {
		return err
	}
	if len(carry) == 0 {
		return nil
	}
	keys := make([]string, len(carry))
	for i, suffix := range carry {
		keys[i] = NamespacePrefix + id + ":" + suffix
	}
	if err := m.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("retire session %s: %w", id, err)
	}
	return nil
}

// Evict forgets every in-memory Store that is logged out. Stored state is untouched.
func (m *Manager) Evict() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for id, st := range m.stores {
		if !st.IsAuthenticated() {
			delete(m.stores, id)
			n++
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.stores)))
	return n
}

// Len returns the number of live Stores.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}
