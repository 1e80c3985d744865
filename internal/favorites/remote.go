package favorites

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
)

// Remote - ledger stored by the travel backend for the signed-in user.
// The user's list is cached and every mutation invalidates that user's entry only.
type Remote struct {
	api    repository.FavoritesAPI
	sess   repository.Session
	cache  repository.CacheRepository
	ttl    time.Duration
	bus    *Bus
	logger *zap.Logger
}

var _ Ledger = (*Remote)(nil)

func NewRemote(api repository.FavoritesAPI, sess repository.Session, cache repository.CacheRepository, ttl time.Duration, bus *Bus, logger *zap.Logger) *Remote {
	return &Remote{
		api:    api,
		sess:   sess,
		cache:  cache,
		ttl:    ttl,
		bus:    bus,
		logger: logger,
	}
}

func (r *Remote) Mode() Mode {
	return ModeRemote
}

func (r *Remote) userID() (string, error) {
	u := r.sess.User()
	if u == nil || u.ID == "" {
		return "", ErrNoUser
	}
	return u.ID, nil
}

// Add stores placeID as a favorite. A duplicate answer from the backend counts as success.
func (r *Remote) Add(ctx context.Context, placeID string, category *string) error {
	if placeID == "" {
		return ErrInvalidKey
	}
	userID, err := r.userID()
	if err != nil {
		return err
	}

	_, err = r.api.AddFavorite(ctx, r.sess, domain.RemoteFavoriteCreate{
		UserID:       userID,
		PlaceID:      placeID,
		UserCategory: category,
	})
	switch {
	case err == nil:
	case backend.IsAlreadyExists(err):
		r.logger.Debug("Favorite already exists", zap.String("user_id", userID), zap.String("place_id", placeID))
		r.invalidate(ctx, userID)
		return nil
	default:
		return fmt.Errorf("add favorite %s: %w", placeID, err)
	}

	r.invalidate(ctx, userID)
	r.announce(domain.FavoriteAdded, placeID)
	return nil
}

// Remove drops placeID from the favorites. A 404 from the backend counts as success.
func (r *Remote) Remove(ctx context.Context, placeID string) error {
	if placeID == "" {
		return ErrInvalidKey
	}
	userID, err := r.userID()
	if err != nil {
		return err
	}

	if err := r.api.RemoveFavorite(ctx, r.sess, userID, placeID); err != nil {
		if backend.IsNotFound(err) {
			r.logger.Debug("Favorite already absent", zap.String("user_id", userID), zap.String("place_id", placeID))
			r.invalidate(ctx, userID)
			return nil
		}
		return fmt.Errorf("remove favorite %s: %w", placeID, err)
	}

	r.invalidate(ctx, userID)
	r.announce(domain.FavoriteRemoved, placeID)
	return nil
}

func (r *Remote) List(ctx context.Context) ([]domain.Favorite, error) {
	userID, err := r.userID()
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		cached, ok, err := r.cache.GetFavorites(ctx, userID)
		if err != nil {
			r.logger.Warn("Favorites cache unavailable", zap.String("user_id", userID), zap.Error(err))
		} else if ok {
			return cached, nil
		}
	}

	remote, err := r.api.ListFavorites(ctx, r.sess, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	favs := make([]domain.Favorite, 0, len(remote))
	for _, f := range remote {
		favs = append(favs, f.Favorite())
	}

	if r.cache != nil {
		if err := r.cache.SetFavorites(ctx, userID, favs, r.ttl); err != nil {
			r.logger.Warn("Failed to cache favorites", zap.String("user_id", userID), zap.Error(err))
		}
	}
	return favs, nil
}

// IsFavorite answers from the cached list when present, otherwise asks the backend.
func (r *Remote) IsFavorite(ctx context.Context, placeID string) (bool, error) {
	if placeID == "" {
		return false, ErrInvalidKey
	}
	userID, err := r.userID()
	if err != nil {
		return false, err
	}

	if r.cache != nil {
		if cached, ok, err := r.cache.GetFavorites(ctx, userID); err == nil && ok {
			for _, f := range cached {
				if f.PlaceID == placeID {
					return true, nil
				}
			}
			return false, nil
		}
	}

	on, err := r.api.CheckFavorite(ctx, r.sess, userID, placeID)
	if err != nil {
		return false, fmt.Errorf("check favorite %s: %w", placeID, err)
	}
	return on, nil
}

func (r *Remote) Toggle(ctx context.Context, placeID string) (bool, error) {
	return toggle(ctx, r, placeID)
}

func (r *Remote) invalidate(ctx context.Context, userID string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.InvalidateFavorites(ctx, userID); err != nil {
		r.logger.Warn("Failed to invalidate favorites cache", zap.String("user_id", userID), zap.Error(err))
	}
}

func (r *Remote) announce(op domain.FavoriteOp, placeID string) {
	if err := announce(r.bus, ModeRemote, r.sess.Namespace(), op, placeID); err != nil {
		r.logger.Warn("Favorites event not delivered", zap.String("op", string(op)), zap.Error(err))
	}
}
