package favorites

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain/repository"
)

// Selector hands out the ledger matching a session's capabilities: Remote
// once the session is signed in with a known user, Local otherwise.
type Selector struct {
	api    repository.FavoritesAPI
	cache  repository.CacheRepository
	ttl    time.Duration
	kv     repository.KVStore
	bus    *Bus
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSelector(api repository.FavoritesAPI, cache repository.CacheRepository, ttl time.Duration, kv repository.KVStore, bus *Bus, logger *zap.Logger) *Selector {
	return &Selector{
		api:    api,
		cache:  cache,
		ttl:    ttl,
		kv:     kv,
		bus:    bus,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *Selector) For(sess repository.Session) Ledger {
	if sess.IsAuthenticated() {
		if u := sess.User(); u != nil && u.ID != "" {
			return NewRemote(s.api, sess, s.cache, s.ttl, s.bus, s.logger)
		}
	}
	return NewLocal(s.kv, sess.Namespace(), s.lock(sess.Namespace()), s.bus, s.logger)
}

func (s *Selector) Bus() *Bus {
	return s.bus
}

func (s *Selector) lock(namespace string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[namespace]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[namespace] = mu
	}
	return mu
}
