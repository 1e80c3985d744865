// Package cache keeps short-lived copies of backend responses in the
// configured key-value store.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/metrics"
)

const (
	catalogKey         = "cache:catalog"
	vibeTagsPrefix     = "cache:vibetags:"
	favoritesPrefix    = "cache:favorites:"
	recommendationsKey = "cache:recommendations:"
)

type cacheRepository struct {
	kv     repository.KVStore
	logger *zap.Logger
}

func NewCacheRepository(kv repository.KVStore, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		kv:     kv,
		logger: logger,
	}
}

// get decodes the value at key into dst; ok is false on a miss.
// Undecodable entries are dropped and reported as a miss.
func (r *cacheRepository) get(ctx context.Context, entity, key string, dst interface{}) (bool, error) {
	val, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache get error: %w", err)
	}
	if !ok {
		metrics.RecordCache(entity, false)
		return false, nil
	}

	if err := json.Unmarshal(val, dst); err != nil {
		r.logger.Warn("Dropping corrupt cache entry", zap.String("key", key), zap.Error(err))
		_ = r.kv.Delete(ctx, key)
		metrics.RecordCache(entity, false)
		return false, nil
	}

	metrics.RecordCache(entity, true)
	r.logger.Debug("Cache hit", zap.String("key", key))
	return true, nil
}

func (r *cacheRepository) set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode error: %w", err)
	}
	if err := r.kv.Set(ctx, key, data, ttl); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) delete(ctx context.Context, keys ...string) error {
	if err := r.kv.Delete(ctx, keys...); err != nil {
		r.logger.Error("Failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}
	return nil
}

func (r *cacheRepository) GetCatalog(ctx context.Context) ([]domain.Attraction, bool, error) {
	var catalog []domain.Attraction
	ok, err := r.get(ctx, "catalog", catalogKey, &catalog)
	return catalog, ok, err
}

func (r *cacheRepository) SetCatalog(ctx context.Context, catalog []domain.Attraction, ttl time.Duration) error {
	return r.set(ctx, catalogKey, catalog, ttl)
}

func (r *cacheRepository) InvalidateCatalog(ctx context.Context) error {
	return r.delete(ctx, catalogKey)
}

func (r *cacheRepository) GetVibeTags(ctx context.Context, placeIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(placeIDs))
	if len(placeIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(placeIDs))
	for i, id := range placeIDs {
		keys[i] = vibeTagsPrefix + id
	}
	values, err := r.kv.GetMany(ctx, keys)
	if err != nil {
		r.logger.Error("Failed to get vibe tags from cache", zap.Int("places", len(placeIDs)), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	for i, id := range placeIDs {
		val, ok := values[keys[i]]
		if !ok {
			metrics.RecordCache("vibe_tags", false)
			continue
		}
		var tags []string
		if err := json.Unmarshal(val, &tags); err != nil {
			metrics.RecordCache("vibe_tags", false)
			continue
		}
		if tags == nil {
			tags = []string{}
		}
		metrics.RecordCache("vibe_tags", true)
		result[id] = tags
	}
	return result, nil
}

func (r *cacheRepository) SetVibeTags(ctx context.Context, placeID string, tags []string, ttl time.Duration) error {
	if tags == nil {
		tags = []string{}
	}
	return r.set(ctx, vibeTagsPrefix+placeID, tags, ttl)
}

func (r *cacheRepository) GetFavorites(ctx context.Context, userID string) ([]domain.Favorite, bool, error) {
	var favorites []domain.Favorite
	ok, err := r.get(ctx, "favorites", favoritesPrefix+userID, &favorites)
	return favorites, ok, err
}

func (r *cacheRepository) SetFavorites(ctx context.Context, userID string, favorites []domain.Favorite, ttl time.Duration) error {
	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return r.set(ctx, favoritesPrefix+userID, favorites, ttl)
}

func (r *cacheRepository) InvalidateFavorites(ctx context.Context, userID string) error {
	return r.delete(ctx, favoritesPrefix+userID)
}

func (r *cacheRepository) GetRecommendations(ctx context.Context, namespace string) ([]domain.MLRecommendation, bool, error) {
	var recs []domain.MLRecommendation
	ok, err := r.get(ctx, "recommendations", recommendationsKey+namespace, &recs)
	return recs, ok, err
}

func (r *cacheRepository) SetRecommendations(ctx context.Context, namespace string, recs []domain.MLRecommendation, ttl time.Duration) error {
	if recs == nil {
		recs = []domain.MLRecommendation{}
	}
	return r.set(ctx, recommendationsKey+namespace, recs, ttl)
}

func (r *cacheRepository) InvalidateRecommendations(ctx context.Context, namespace string) error {
	return r.delete(ctx, recommendationsKey+namespace)
}
