package usecase

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// CatalogUseCase - каталог достопримечательностей (Home, Browse, детали)
type CatalogUseCase struct {
	placesAPI  repository.PlacesAPI
	cacheRepo  repository.CacheRepository
	normalizer *catalog.Normalizer
	vibeTags   *VibeTagUseCase
	cacheTTL   time.Duration
	pageSize   int
	flight     singleflight.Group
	logger     *zap.Logger
}

// NewCatalogUseCase - создание нового CatalogUseCase. vibeTags may be nil.
func NewCatalogUseCase(
	placesAPI repository.PlacesAPI,
	cacheRepo repository.CacheRepository,
	normalizer *catalog.Normalizer,
	vibeTags *VibeTagUseCase,
	cacheTTL time.Duration,
	pageSize int,
	logger *zap.Logger,
) *CatalogUseCase {
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	return &CatalogUseCase{
		placesAPI:  placesAPI,
		cacheRepo:  cacheRepo,
		normalizer: normalizer,
		vibeTags:   vibeTags,
		cacheTTL:   cacheTTL,
		pageSize:   pageSize,
		logger:     logger,
	}
}

// Catalog - нормализованный каталог: снимок из кеша или свежая загрузка
func (uc *CatalogUseCase) Catalog(ctx context.Context, sess repository.Session) ([]domain.Attraction, error) {
	items, ok, err := uc.cacheRepo.GetCatalog(ctx)
	if err != nil {
		uc.logger.Warn("Catalog cache unavailable", zap.Error(err))
	} else if ok {
		return items, nil
	}

	// shared by every waiting caller, so not bound to the first one's cancellation
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := uc.flight.Do("catalog", func() (interface{}, error) {
		return uc.Refresh(loadCtx, sess)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Attraction), nil
}

// Refresh - загрузка /api/places, нормализация и сохранение снимка
func (uc *CatalogUseCase) Refresh(ctx context.Context, sess repository.Session) ([]domain.Attraction, error) {
	start := time.Now()

	raws, err := uc.placesAPI.ListPlaces(ctx, sess)
	if err != nil {
		uc.logger.Error("Failed to load places", zap.Error(err))
		return nil, backendError(err, nil)
	}
	items := uc.normalizer.NormalizeAll(raws)

	if uc.vibeTags != nil {
		if err := uc.vibeTags.Enrich(ctx, sess, items); err != nil {
			uc.logger.Warn("Vibe tag enrichment skipped", zap.Error(err))
		}
	}

	if err := uc.cacheRepo.SetCatalog(ctx, items, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to store catalog snapshot", zap.Error(err))
	}

	uc.logger.Info("Catalog refreshed",
		zap.Int("attractions", len(items)),
		zap.Duration("took", time.Since(start)),
	)
	return items, nil
}

// Browse - фильтрация, сортировка и пагинация каталога
func (uc *CatalogUseCase) Browse(ctx context.Context, sess repository.Session, req dto.BrowseRequest) (*dto.BrowseResponse, error) {
	items, err := uc.Catalog(ctx, sess)
	if err != nil {
		return nil, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = uc.pageSize
	}
	sortKey := domain.ParseSortKey(req.Sort, domain.SortRelevance)
	filters := req.Filters()

	page := catalog.Apply(items, filters, sortKey, req.Page, pageSize)
	return dto.NewBrowseResponse(page, len(items), sortKey, filters, uc.normalizer.Prices()), nil
}

// Get - достопримечательность по синтетическому id или placeId
func (uc *CatalogUseCase) Get(ctx context.Context, sess repository.Session, ref string) (*dto.Attraction, error) {
	a, err := uc.Find(ctx, sess, ref)
	if err != nil {
		return nil, err
	}
	out := dto.ToAttraction(*a)
	return &out, nil
}

// Find resolves ref against the catalog and, for backend ids missing from
// the snapshot, against GET /api/places/{id}.
func (uc *CatalogUseCase) Find(ctx context.Context, sess repository.Session, ref string) (*domain.Attraction, error) {
	if ref == "" {
		return nil, errors.ErrInvalidRequest
	}
	items, err := uc.Catalog(ctx, sess)
	if err != nil {
		return nil, err
	}
	if a, ok := lookup(items, ref); ok {
		return &a, nil
	}
	if _, err := strconv.Atoi(ref); err == nil {
		return nil, errors.ErrAttractionNotFound
	}

	raw, err := uc.placesAPI.GetPlace(ctx, sess, ref)
	if err != nil {
		return nil, backendError(err, errors.ErrAttractionNotFound)
	}
	a := uc.normalizer.Normalize(*raw, 0)
	if uc.vibeTags != nil {
		one := []domain.Attraction{a}
		if err := uc.vibeTags.Enrich(ctx, sess, one); err == nil {
			a = one[0]
		}
	}
	return &a, nil
}

// ActivityTypes - справочник типов активностей
func (uc *CatalogUseCase) ActivityTypes(ctx context.Context, sess repository.Session) ([]domain.ActivityType, error) {
	types, err := uc.placesAPI.ActivityTypes(ctx, sess)
	if err != nil {
		uc.logger.Error("Failed to load activity types", zap.Error(err))
		return nil, backendError(err, nil)
	}
	if types == nil {
		types = []domain.ActivityType{}
	}
	return types, nil
}

// lookup matches ref as a synthetic id first, then as a backend place id.
func lookup(items []domain.Attraction, ref string) (domain.Attraction, bool) {
	if id, err := strconv.Atoi(ref); err == nil {
		for _, a := range items {
			if a.ID == id {
				return a, true
			}
		}
		return domain.Attraction{}, false
	}
	for _, a := range items {
		if a.PlaceID == ref {
			return a, true
		}
	}
	return domain.Attraction{}, false
}
