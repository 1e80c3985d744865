// Package session holds the authentication state of one client and keeps it
// in lockstep with durable key-value storage.
package session

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

// Storage key suffixes under the session namespace.
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
	KeyUser         = "user"
	KeyDarkMode     = "darkMode"
)

// Store is the only writer of the access token, refresh token and user of a
// session. Every mutation persists first and updates memory only on success.
type Store struct {
	mu sync.RWMutex

	kv     repository.KVStore
	ns     string
	ttl    time.Duration
	sealer *Sealer
	logger *zap.Logger

	accessToken  string
	refreshToken string
	user         *domain.User
	darkMode     bool
}

var _ repository.Session = (*Store)(nil)

type Option func(*Store)

// WithSealer encrypts tokens at rest.
func WithSealer(s *Sealer) Option {
	return func(st *Store) { st.sealer = s }
}

// WithTTL expires persisted keys; zero keeps them forever.
func WithTTL(ttl time.Duration) Option {
	return func(st *Store) { st.ttl = ttl }
}

func WithLogger(l *zap.Logger) Option {
	return func(st *Store) { st.logger = l }
}

// New opens the session stored under namespace, loading any persisted state.
func New(ctx context.Context, kv repository.KVStore, namespace string, opts ...Option) (*Store, error) {
	s := &Store{
		kv:     kv,
		ns:     namespace,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) key(suffix string) string {
	return s.ns + ":" + suffix
}

func (s *Store) load(ctx context.Context) error {
	keys := []string{s.key(KeyAccessToken), s.key(KeyRefreshToken), s.key(KeyUser), s.key(KeyDarkMode)}
	values, err := s.kv.GetMany(ctx, keys)
	if err != nil {
		return fmt.Errorf("load session %s: %w", s.ns, err)
	}

	if v, ok := values[s.key(KeyAccessToken)]; ok {
		if s.accessToken, err = s.sealer.Unseal(string(v)); err != nil {
			s.logger.Warn("Dropping unreadable access token", zap.String("namespace", s.ns), zap.Error(err))
			s.accessToken = ""
		}
	}
	if v, ok := values[s.key(KeyRefreshToken)]; ok {
		if s.refreshToken, err = s.sealer.Unseal(string(v)); err != nil {
			s.logger.Warn("Dropping unreadable refresh token", zap.String("namespace", s.ns), zap.Error(err))
			s.refreshToken = ""
		}
	}
	if v, ok := values[s.key(KeyUser)]; ok {
		var u domain.User
		if err := json.Unmarshal(v, &u); err != nil {
			s.logger.Warn("Dropping unreadable user", zap.String("namespace", s.ns), zap.Error(err))
		} else {
			s.user = &u
		}
	}
	if v, ok := values[s.key(KeyDarkMode)]; ok {
		s.darkMode, _ = strconv.ParseBool(string(v))
	}
	return nil
}

func (s *Store) Namespace() string {
	return s.ns
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// User returns a copy of the current user, or nil when logged out.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}

// AccessTokenExpiry reads the exp claim of the access token without verifying it.
func (s *Store) AccessTokenExpiry() (time.Time, bool) {
	token := s.AccessToken()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) DarkMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.darkMode
}

type write struct {
	key   string
	value []byte
}

// SetCredentials applies every non-empty field of creds; empty tokens and a
// nil user keep the current values.
func (s *Store) SetCredentials(ctx context.Context, creds domain.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var writes []write
	if creds.AccessToken != "" {
		sealed, err := s.sealer.Seal(creds.AccessToken)
		if err != nil {
			return fmt.Errorf("seal access token: %w", err)
		}
		writes = append(writes, write{s.key(KeyAccessToken), []byte(sealed)})
	}
	if creds.RefreshToken != "" {
		sealed, err := s.sealer.Seal(creds.RefreshToken)
		if err != nil {
			return fmt.Errorf("seal refresh token: %w", err)
		}
		writes = append(writes, write{s.key(KeyRefreshToken), []byte(sealed)})
	}
	var user *domain.User
	if creds.User != nil {
		u := *creds.User
		user = &u
		data, err := json.Marshal(user)
		if err != nil {
			return fmt.Errorf("encode user: %w", err)
		}
		writes = append(writes, write{s.key(KeyUser), data})
	}

	if err := s.persist(ctx, writes); err != nil {
		return err
	}

	if creds.AccessToken != "" {
		s.accessToken = creds.AccessToken
	}
	if creds.RefreshToken != "" {
		s.refreshToken = creds.RefreshToken
	}
	if user != nil {
		s.user = user
	}
	return nil
}

// SetUser replaces the user only.
func (s *Store) SetUser(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.persist(ctx, []write{{s.key(KeyUser), data}}); err != nil {
		return err
	}
	s.user = &user
	return nil
}

func (s *Store) SetDarkMode(ctx context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, []write{{s.key(KeyDarkMode), []byte(strconv.FormatBool(on))}}); err != nil {
		return err
	}
	s.darkMode = on
	return nil
}

// LogOut clears both tokens and the user in storage and memory.
// The dark-mode preference survives.
func (s *Store) LogOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key(KeyAccessToken), s.key(KeyRefreshToken), s.key(KeyUser)); err != nil {
		return fmt.Errorf("clear session %s: %w", s.ns, err)
	}
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
	return nil
}

// Destroy removes every key of the session, including preferences.
func (s *Store) Destroy(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key(KeyAccessToken), s.key(KeyRefreshToken), s.key(KeyUser), s.key(KeyDarkMode)); err != nil {
		return fmt.Errorf("destroy session %s: %w", s.ns, err)
	}
	s.accessToken = ""
	s.refreshToken = ""
	s.user = nil
	s.darkMode = false
	return nil
}

// persist writes all entries or restores the ones already written.
// With a TTL every key the session holds is rewritten too, so the whole
// session expires at once. Callers hold s.mu.
func (s *Store) persist(ctx context.Context, writes []write) error {
	if len(writes) == 0 {
		return nil
	}
	if s.ttl > 0 {
		held, err := s.held()
		if err != nil {
			return err
		}
		writes = merge(writes, held)
	}

	keys := make([]string, len(writes))
	for i, w := range writes {
		keys[i] = w.key
	}
	previous, err := s.kv.GetMany(ctx, keys)
	if err != nil {
		return fmt.Errorf("read session %s: %w", s.ns, err)
	}

	for i, w := range writes {
		if err := s.kv.Set(ctx, w.key, w.value, s.ttl); err != nil {
			s.rollback(ctx, writes[:i], previous)
			return fmt.Errorf("write %s: %w", w.key, err)
		}
	}
	return nil
}

// held encodes the in-memory state. Callers hold s.mu.
func (s *Store) held() ([]write, error) {
	var out []write
	if s.accessToken != "" {
		sealed, err := s.sealer.Seal(s.accessToken)
		if err != nil {
			return nil, fmt.Errorf("seal access token: %w", err)
		}
		out = append(out, write{s.key(KeyAccessToken), []byte(sealed)})
	}
	if s.refreshToken != "" {
		sealed, err := s.sealer.Seal(s.refreshToken)
		if err != nil {
			return nil, fmt.Errorf("seal refresh token: %w", err)
		}
		out = append(out, write{s.key(KeyRefreshToken), []byte(sealed)})
	}
	if s.user != nil {
		data, err := json.Marshal(s.user)
		if err != nil {
			return nil, fmt.Errorf("encode user: %w", err)
		}
		out = append(out, write{s.key(KeyUser), data})
	}
	if s.darkMode {
		out = append(out, write{s.key(KeyDarkMode), []byte(strconv.FormatBool(true))})
	}
	return out, nil
}

// merge appends the held entries whose keys are not already written.
func merge(writes, held []write) []write {
	for _, h := range held {
		if !slices.ContainsFunc(writes, func(w write) bool { return w.key == h.key }) {
			writes = append(writes, h)
		}
	}
	return writes
}

func (s *Store) rollback(ctx context.Context, written []write, previous map[string][]byte) {
	for _, w := range written {
		var err error
		if v, ok := previous[w.key]; ok {
			err = s.kv.Set(ctx, w.key, v, s.ttl)
		} else {
			err = s.kv.Delete(ctx, w.key)
		}
		if err != nil {
			s.logger.Error("Session rollback failed",
				zap.String("key", w.key),
				zap.Error(err),
			)
		}
	}
}
