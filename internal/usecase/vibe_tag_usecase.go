package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

const vibeTagFetchConcurrency = 8

// VibeTagUseCase - mood tags of places, cached per place.
// Concurrent lookups of one place share a single backend call, and a failed
// lookup is cached as an empty list so it is not retried until the TTL ends.
type VibeTagUseCase struct {
	placesAPI repository.PlacesAPI
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	flight    singleflight.Group
	logger    *zap.Logger
}

// NewVibeTagUseCase - создание нового VibeTagUseCase
func NewVibeTagUseCase(placesAPI repository.PlacesAPI, cacheRepo repository.CacheRepository, ttl time.Duration, logger *zap.Logger) *VibeTagUseCase {
	return &VibeTagUseCase{
		placesAPI: placesAPI,
		cacheRepo: cacheRepo,
		ttl:       ttl,
		logger:    logger,
	}
}

// TagsFor returns the tag values of every requested place. Places whose tags
// could not be fetched map to an empty list.
func (uc *VibeTagUseCase) TagsFor(ctx context.Context, sess repository.Session, placeIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(placeIDs))
	if len(placeIDs) == 0 {
		return result, nil
	}

	cached, err := uc.cacheRepo.GetVibeTags(ctx, placeIDs)
	if err != nil {
		uc.logger.Warn("Vibe tag cache unavailable", zap.Error(err))
		cached = nil
	}

	var (
		mu      sync.Mutex
		missing []string
		seen    = make(map[string]struct{}, len(placeIDs))
	)
	for _, id := range placeIDs {
		if tags, ok := cached[id]; ok {
			result[id] = tags
			continue
		}
		if _, dup := seen[id]; !dup && id != "" {
			seen[id] = struct{}{}
			missing = append(missing, id)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(vibeTagFetchConcurrency)
	for _, id := range missing {
		g.Go(func() error {
			tags := uc.fetch(gctx, sess, id)
			mu.Lock()
			result[id] = tags
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return result, nil
}

func (uc *VibeTagUseCase) fetch(ctx context.Context, sess repository.Session, placeID string) []string {
	v, _, _ := uc.flight.Do(placeID, func() (interface{}, error) {
		tags, err := uc.placesAPI.VibeTags(ctx, sess, placeID)
		values := make([]string, 0, len(tags))
		if err != nil {
			uc.logger.Debug("Vibe tags unavailable, caching empty",
				zap.String("place_id", placeID),
				zap.Error(err),
			)
		} else {
			for _, t := range tags {
				if t.Value != "" {
					values = append(values, t.Value)
				}
			}
		}

		if ctx.Err() == nil {
			if err := uc.cacheRepo.SetVibeTags(ctx, placeID, values, uc.ttl); err != nil {
				uc.logger.Warn("Failed to cache vibe tags", zap.String("place_id", placeID), zap.Error(err))
			}
		}
		return values, nil
	})
	return v.([]string)
}

// Enrich fills Moods from vibe tags for attractions that carry none.
func (uc *VibeTagUseCase) Enrich(ctx context.Context, sess repository.Session, items []domain.Attraction) error {
	var ids []string
	for _, a := range items {
		if len(a.Moods) == 0 && a.PlaceID != "" {
			ids = append(ids, a.PlaceID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	tags, err := uc.TagsFor(ctx, sess, ids)
	if err != nil {
		return err
	}
	for i := range items {
		if len(items[i].Moods) == 0 {
			if t := tags[items[i].PlaceID]; len(t) > 0 {
				items[i].Moods = t
			}
		}
	}
	return nil
}
