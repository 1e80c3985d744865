package favorites

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

// LocalKeySuffix - storage key suffix of the local favorites array
const LocalKeySuffix = "attraction_favorites"

// Local - ledger persisted as one array under <namespace>:attraction_favorites.
// Every mutation rewrites the whole array and then publishes on the bus.
type Local struct {
	mu     *sync.Mutex
	kv     repository.KVStore
	ns     string
	bus    *Bus
	now    func() time.Time
	logger *zap.Logger
}

var (
	_ Ledger         = (*Local)(nil)
	_ CategoryEditor = (*Local)(nil)
)

// NewLocal opens the local ledger of namespace. Ledgers sharing a namespace
// must share mu.
func NewLocal(kv repository.KVStore, namespace string, mu *sync.Mutex, bus *Bus, logger *zap.Logger) *Local {
	if mu == nil {
		mu = &sync.Mutex{}
	}
	return &Local{
		mu:     mu,
		kv:     kv,
		ns:     namespace,
		bus:    bus,
		now:    time.Now,
		logger: logger,
	}
}

func (l *Local) Mode() Mode {
	return ModeLocal
}

func (l *Local) storageKey() string {
	return l.ns + ":" + LocalKeySuffix
}

func parseLocalKey(key string) (int, error) {
	id, err := strconv.Atoi(key)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return id, nil
}

// load reads the stored array; a corrupt value reads as empty.
func (l *Local) load(ctx context.Context) ([]domain.LocalFavorite, error) {
	raw, ok, err := l.kv.Get(ctx, l.storageKey())
	if err != nil {
		return nil, fmt.Errorf("read local favorites: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var items []domain.LocalFavorite
	if err := json.Unmarshal(raw, &items); err != nil {
		l.logger.Warn("Local favorites unreadable, starting empty", zap.String("namespace", l.ns), zap.Error(err))
		return nil, nil
	}
	return items, nil
}

func (l *Local) save(ctx context.Context, items []domain.LocalFavorite) error {
	if items == nil {
		items = []domain.LocalFavorite{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode local favorites: %w", err)
	}
	if err := l.kv.Set(ctx, l.storageKey(), raw, 0); err != nil {
		return fmt.Errorf("write local favorites: %w", err)
	}
	return nil
}

func indexOf(items []domain.LocalFavorite, id int) int {
	return slices.IndexFunc(items, func(f domain.LocalFavorite) bool { return f.PlaceID == id })
}

// Add appends the attraction. On an existing favorite a non-nil category
// replaces the stored one; a nil category changes nothing.
func (l *Local) Add(ctx context.Context, key string, category *string) error {
	id, err := parseLocalKey(key)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return err
	}

	op := domain.FavoriteAdded
	if i := indexOf(items, id); i >= 0 {
		if category == nil || (items[i].UserCategory != nil && *items[i].UserCategory == *category) {
			return nil
		}
		items[i].UserCategory = category
		op = domain.FavoriteCategoryUpdated
	} else {
		items = append(items, domain.LocalFavorite{
			PlaceID:      id,
			UserCategory: category,
			CreatedAt:    l.now().UTC(),
		})
	}

	if err := l.save(ctx, items); err != nil {
		return err
	}
	l.announce(op, key)
	return nil
}

func (l *Local) Remove(ctx context.Context, key string) error {
	id, err := parseLocalKey(key)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil
	}
	items = slices.Delete(items, i, i+1)

	if err := l.save(ctx, items); err != nil {
		return err
	}
	l.announce(domain.FavoriteRemoved, key)
	return nil
}

// UpdateCategory re-labels an existing favorite; nil clears the label.
func (l *Local) UpdateCategory(ctx context.Context, key string, category *string) error {
	id, err := parseLocalKey(key)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return ErrNotFavorite
	}
	items[i].UserCategory = category

	if err := l.save(ctx, items); err != nil {
		return err
	}
	l.announce(domain.FavoriteCategoryUpdated, key)
	return nil
}

// List returns favorites in insertion order.
func (l *Local) List(ctx context.Context) ([]domain.Favorite, error) {
	l.mu.Lock()
	items, err := l.load(ctx)
	l.mu.Unlock()
	if err != nil {
		return nil, err
	}

	favs := make([]domain.Favorite, 0, len(items))
	for _, item := range items {
		favs = append(favs, item.Favorite())
	}
	return favs, nil
}

// Get returns the stored entry of key.
func (l *Local) Get(ctx context.Context, key string) (*domain.Favorite, bool, error) {
	id, err := parseLocalKey(key)
	if err != nil {
		return nil, false, err
	}

	l.mu.Lock()
	items, err := l.load(ctx)
	l.mu.Unlock()
	if err != nil {
		return nil, false, err
	}
	if i := indexOf(items, id); i >= 0 {
		fav := items[i].Favorite()
		return &fav, true, nil
	}
	return nil, false, nil
}

func (l *Local) IsFavorite(ctx context.Context, key string) (bool, error) {
	_, ok, err := l.Get(ctx, key)
	return ok, err
}

func (l *Local) Toggle(ctx context.Context, key string) (bool, error) {
	return toggle(ctx, l, key)
}

func (l *Local) announce(op domain.FavoriteOp, key string) {
	if err := announce(l.bus, ModeLocal, l.ns, op, key); err != nil {
		l.logger.Warn("Favorites event not delivered", zap.String("op", string(op)), zap.Error(err))
	}
}
