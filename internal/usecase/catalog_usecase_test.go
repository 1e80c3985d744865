package usecase_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/catalog"
	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/repository/cache"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

type catalogFixture struct {
	places    *MockPlacesAPI
	cacheRepo repository.CacheRepository
	store     *kv.Memory
	uc        *usecase.CatalogUseCase
}

func newCatalogFixture() *catalogFixture {
	logger := zap.NewNop()
	store := kv.NewMemory()
	places := &MockPlacesAPI{}
	cacheRepo := cache.NewCacheRepository(store, logger)
	normalizer := catalog.NewNormalizer("http://backend.test", "", catalog.DefaultPrices)
	vibeTags := usecase.NewVibeTagUseCase(places, cacheRepo, time.Hour, logger)

	return &catalogFixture{
		places:    places,
		cacheRepo: cacheRepo,
		store:     store,
		uc:        usecase.NewCatalogUseCase(places, cacheRepo, normalizer, vibeTags, time.Minute, 12, logger),
	}
}

// expectCatalog stubs one catalog load with vibe tags for the untagged places.
func (f *catalogFixture) expectCatalog() {
	f.places.On("ListPlaces", mock.Anything, mock.Anything).Return(rawPlaces(), nil).Once()
	f.places.On("VibeTags", mock.Anything, mock.Anything, "p-tower").
		Return([]domain.VibeTag{{Value: "Romantic"}, {Value: "Scenic"}}, nil).Once()
	f.places.On("VibeTags", mock.Anything, mock.Anything, "p-khan").
		Return(nil, stderrors.New("connection reset")).Once()
}

func TestCatalogUseCase_Browse(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.expectCatalog()
	sess := newSession(t, f.store, nil)

	t.Run("filters, sorts and pages the snapshot", func(t *testing.T) {
		resp, err := f.uc.Browse(ctx, sess, dto.BrowseRequest{
			CostTiers: []string{"low"},
			Sort:      "rating_desc",
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Karnak Temple", resp.Items[0].Title)
		assert.Equal(t, 5, resp.Items[0].Stars)
		assert.Equal(t, "Khan el-Khalili", resp.Items[1].Title)
		assert.Equal(t, 3, resp.CatalogSize)
		assert.Equal(t, 1, resp.TotalPages)
		assert.Equal(t, domain.SortRatingDesc, resp.Sort)
		assert.Equal(t, 200, resp.PriceByTier["Low"])
	})

	t.Run("moods come from vibe tags when the record has none", func(t *testing.T) {
		resp, err := f.uc.Browse(ctx, sess, dto.BrowseRequest{Moods: []string{"romantic"}})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Cairo Tower", resp.Items[0].Title)
	})

	t.Run("second browse is served from the snapshot", func(t *testing.T) {
		_, err := f.uc.Browse(ctx, sess, dto.BrowseRequest{Page: 2, PageSize: 1})
		require.NoError(t, err)
		f.places.AssertNumberOfCalls(t, "ListPlaces", 1)
	})

	t.Run("failed vibe tag lookup is cached as empty", func(t *testing.T) {
		tags, err := f.cacheRepo.GetVibeTags(ctx, []string{"p-khan"})
		require.NoError(t, err)
		assert.Equal(t, []string{}, tags["p-khan"])
	})

	f.places.AssertExpectations(t)
}

func TestCatalogUseCase_Find(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.expectCatalog()
	sess := newSession(t, f.store, nil)

	a, err := f.uc.Find(ctx, sess, "2")
	require.NoError(t, err)
	assert.Equal(t, "Cairo Tower", a.Title)

	a, err = f.uc.Find(ctx, sess, "p-khan")
	require.NoError(t, err)
	assert.Equal(t, 3, a.ID)

	_, err = f.uc.Find(ctx, sess, "99")
	assert.ErrorIs(t, err, errors.ErrAttractionNotFound)

	f.places.On("GetPlace", mock.Anything, mock.Anything, "p-new").
		Return(&domain.RawPlace{PlaceID: "p-new", Name: "Al-Azhar Park", Rating: 4.7, MoodTags: []string{"Calm"}}, nil).Once()
	a, err = f.uc.Find(ctx, sess, "p-new")
	require.NoError(t, err)
	assert.Equal(t, "Al-Azhar Park", a.Title)
	assert.Equal(t, []string{"Calm"}, a.Moods)

	f.places.On("GetPlace", mock.Anything, mock.Anything, "p-gone").
		Return(nil, &backend.APIError{StatusCode: 404}).Once()
	_, err = f.uc.Find(ctx, sess, "p-gone")
	assert.ErrorIs(t, err, errors.ErrAttractionNotFound)
}

func TestCatalogUseCase_BackendFailure(t *testing.T) {
	f := newCatalogFixture()
	f.places.On("ListPlaces", mock.Anything, mock.Anything).
		Return(nil, &backend.APIError{StatusCode: 503})

	_, err := f.uc.Browse(context.Background(), newSession(t, f.store, nil), dto.BrowseRequest{})
	assert.ErrorIs(t, err, errors.ErrBackendUnavailable)

	_, ok, err := f.cacheRepo.GetCatalog(context.Background())
	require.NoError(t, err)
	assert.False(t, ok, "failed load leaves no snapshot")
}

func TestCatalogUseCase_ActivityTypes(t *testing.T) {
	f := newCatalogFixture()
	f.places.On("ActivityTypes", mock.Anything, mock.Anything).Return(nil, nil)

	types, err := f.uc.ActivityTypes(context.Background(), newSession(t, f.store, nil))
	require.NoError(t, err)
	assert.NotNil(t, types)
	assert.Empty(t, types)
}

func TestVibeTagUseCase_TagsFor(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := kv.NewMemory()
	places := &MockPlacesAPI{}
	uc := usecase.NewVibeTagUseCase(places, cache.NewCacheRepository(store, logger), time.Hour, logger)
	sess := newSession(t, store, nil)

	places.On("VibeTags", mock.Anything, mock.Anything, "p-1").
		Return([]domain.VibeTag{{Value: "Calm"}, {Value: ""}}, nil).Once()
	places.On("VibeTags", mock.Anything, mock.Anything, "p-2").
		Return(nil, &backend.APIError{StatusCode: 500}).Once()

	tags, err := uc.TagsFor(ctx, sess, []string{"p-1", "p-2", "p-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Calm"}, tags["p-1"])
	assert.Equal(t, []string{}, tags["p-2"])

	// both answers, including the failure, are now cached
	tags, err = uc.TagsFor(ctx, sess, []string{"p-1", "p-2"})
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	places.AssertNumberOfCalls(t, "VibeTags", 2)
}
