// Package kv provides the durable key-value stores behind sessions, local
// favorites and response caches.
package kv

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/cairogo-gateway/internal/domain/repository"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory - process-local store for tests and single-run terminal sessions
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ repository.KVStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *Memory) live(e memoryEntry) bool {
	return e.expiresAt.IsZero() || m.now().Before(e.expiresAt)
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok || !m.live(e) {
		return nil, false, nil
	}
	return slices.Clone(e.value), true, nil
}

func (m *Memory) GetMany(_ context.Context, keys []string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make(map[string][]byte, len(keys))
	for _, k := range keys {
		if e, ok := m.entries[k]; ok && m.live(e) {
			out[k] = slices.Clone(e.value)
		}
	}
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{value: slices.Clone(value)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = e
	return nil
}

func (m *Memory) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

// Len returns the number of unexpired keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, e := range m.entries {
		if m.live(e) {
			n++
		}
	}
	return n
}
