// Package favorites keeps the user's favorite attractions, either on the
// travel backend (signed in) or in durable local storage (anonymous).
package favorites

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/pkg/metrics"
)

type Mode string

const (
	ModeRemote Mode = "remote"
	ModeLocal  Mode = "local"
)

var (
	ErrInvalidKey  = errors.New("invalid favorite key")
	ErrNoUser      = errors.New("session has no user")
	ErrNotFavorite = errors.New("attraction is not a favorite")
)

// Ledger - favorites of one session. Keys are KeyOf(mode, attraction).
// Add on a favorite and Remove on a non-favorite leave the state unchanged.
type Ledger interface {
	Mode() Mode
	Add(ctx context.Context, key string, category *string) error
	Remove(ctx context.Context, key string) error
	List(ctx context.Context) ([]domain.Favorite, error)
	IsFavorite(ctx context.Context, key string) (bool, error)
	// Toggle flips the state and returns the new one.
	Toggle(ctx context.Context, key string) (bool, error)
}

// CategoryEditor is implemented by ledgers that can re-label a favorite.
type CategoryEditor interface {
	UpdateCategory(ctx context.Context, key string, category *string) error
}

// KeyOf returns the ledger key of a: the backend place id remotely, the
// catalog id locally.
func KeyOf(mode Mode, a domain.Attraction) string {
	if mode == ModeRemote {
		return a.PlaceID
	}
	return strconv.Itoa(a.ID)
}

// EntryKey returns the ledger key of a stored favorite.
func EntryKey(mode Mode, f domain.Favorite) string {
	if mode == ModeRemote {
		return f.PlaceID
	}
	return strconv.Itoa(f.LocalID)
}

func toggle(ctx context.Context, l Ledger, key string) (bool, error) {
	on, err := l.IsFavorite(ctx, key)
	if err != nil {
		return false, err
	}
	if on {
		return false, l.Remove(ctx, key)
	}
	return true, l.Add(ctx, key, nil)
}

func announce(bus *Bus, mode Mode, namespace string, op domain.FavoriteOp, key string) error {
	metrics.FavoriteMutations.WithLabelValues(string(mode), string(op)).Inc()
	return bus.Publish(domain.FavoritesUpdated{
		Namespace: namespace,
		Mode:      string(mode),
		Op:        op,
		Key:       key,
		At:        time.Now().UTC(),
	})
}
