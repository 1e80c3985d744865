package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/metrics"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// RecommendationUseCase - персональные рекомендации ML сервиса
type RecommendationUseCase struct {
	recsAPI   repository.RecommendationsAPI
	catalogUC *CatalogUseCase
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewRecommendationUseCase - создание нового RecommendationUseCase
func NewRecommendationUseCase(
	recsAPI repository.RecommendationsAPI,
	catalogUC *CatalogUseCase,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RecommendationUseCase {
	return &RecommendationUseCase{
		recsAPI:   recsAPI,
		catalogUC: catalogUC,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Generate - ранжированный список, сопоставленный с каталогом.
// The ML answer is cached per session until refresh is requested or the
// preferences change.
func (uc *RecommendationUseCase) Generate(ctx context.Context, sess repository.Session, refresh bool) (*dto.RecommendationsResponse, error) {
	userID, err := requireUser(sess)
	if err != nil {
		return nil, err
	}

	recs, cached := uc.cached(ctx, sess.Namespace(), refresh)
	if !cached {
		resp, err := uc.recsAPI.GenerateRecommendations(ctx, sess, userID)
		if err != nil {
			uc.logger.Error("Failed to generate recommendations", zap.String("user_id", userID), zap.Error(err))
			return nil, backendError(err, nil)
		}
		recs = resp.Recommendations
		if err := uc.cacheRepo.SetRecommendations(ctx, sess.Namespace(), recs, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache recommendations", zap.Error(err))
		}
	}

	items, err := uc.catalogUC.Catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	result := uc.match(recs, items)

	return &dto.RecommendationsResponse{
		Items:     dto.ToAttractions(result.Matched),
		Count:     len(result.Matched),
		Unmatched: names(result.Unmatched),
		Cached:    cached,
	}, nil
}

func (uc *RecommendationUseCase) cached(ctx context.Context, namespace string, refresh bool) ([]domain.MLRecommendation, bool) {
	if refresh {
		return nil, false
	}
	recs, ok, err := uc.cacheRepo.GetRecommendations(ctx, namespace)
	if err != nil {
		uc.logger.Warn("Recommendation cache unavailable", zap.Error(err))
		return nil, false
	}
	return recs, ok
}

// match joins recs with the catalog and reports join misses.
func (uc *RecommendationUseCase) match(recs []domain.MLRecommendation, items []domain.Attraction) catalog.MatchResult {
	result := catalog.Match(recs, items)
	metrics.RecommendationJoinHits.Add(float64(len(recs) - len(result.Unmatched)))
	if n := len(result.Unmatched); n > 0 {
		metrics.RecommendationJoinMisses.Add(float64(n))
		uc.logger.Info("Recommendations without catalog match",
			zap.Int("unmatched", n),
			zap.Strings("names", names(result.Unmatched)),
		)
	}
	return result
}

func names(recs []domain.MLRecommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Name)
	}
	return out
}
