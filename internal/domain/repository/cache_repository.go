package repository

import (
	"context"
	"time"

	"github.com/cairogo-gateway/internal/domain"
)

// CacheRepository определяет методы кеширования ответов бэкенда
type CacheRepository interface {
	// GetCatalog returns the normalized catalog snapshot; ok is false on a miss.
	GetCatalog(ctx context.Context) (catalog []domain.Attraction, ok bool, err error)
	SetCatalog(ctx context.Context, catalog []domain.Attraction, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error

	// GetVibeTags returns cached tags for each place found; missing places are absent from the map.
	GetVibeTags(ctx context.Context, placeIDs []string) (map[string][]string, error)
	SetVibeTags(ctx context.Context, placeID string, tags []string, ttl time.Duration) error

	GetFavorites(ctx context.Context, userID string) (favorites []domain.Favorite, ok bool, err error)
	SetFavorites(ctx context.Context, userID string, favorites []domain.Favorite, ttl time.Duration) error
	// InvalidateFavorites drops only the given user's cached list.
	InvalidateFavorites(ctx context.Context, userID string) error

	GetRecommendations(ctx context.Context, namespace string) (recs []domain.MLRecommendation, ok bool, err error)
	SetRecommendations(ctx context.Context, namespace string, recs []domain.MLRecommendation, ttl time.Duration) error
	InvalidateRecommendations(ctx context.Context, namespace string) error
}
