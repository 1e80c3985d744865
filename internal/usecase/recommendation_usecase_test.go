package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/usecase"
)

func newRecommendationUseCase(f *catalogFixture, recs *MockRecommendationsAPI) *usecase.RecommendationUseCase {
	return usecase.NewRecommendationUseCase(recs, f.uc, f.cacheRepo, time.Hour, zap.NewNop())
}

func TestRecommendationUseCase_Generate(t *testing.T) {
	ctx := context.Background()
	f := newCatalogFixture()
	f.expectCatalog()
	recs := &MockRecommendationsAPI{}
	uc := newRecommendationUseCase(f, recs)
	sess := newSession(t, f.store, testUser())

	recs.On("GenerateRecommendations", mock.Anything, mock.Anything, "u-1").Return(&domain.GenerateRecommendationsResponse{
		Count: 3,
		Recommendations: []domain.MLRecommendation{
			{Name: "khan el-khalili", FinalScore: 0.62},
			{Name: "karnak temple", FinalScore: 0.91},
			{Name: "Unknown Place", FinalScore: 0.5},
		},
	}, nil).Once()

	resp, err := uc.Generate(ctx, sess, false)
	require.NoError(t, err)
	assert.False(t, resp.Cached)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, "Karnak Temple", resp.Items[0].Title)
	require.NotNil(t, resp.Items[0].MLScore)
	assert.InDelta(t, 0.91, *resp.Items[0].MLScore, 1e-9)
	assert.Equal(t, "Khan el-Khalili", resp.Items[1].Title)
	assert.Equal(t, []string{"Unknown Place"}, resp.Unmatched)

	t.Run("second call is served from cache", func(t *testing.T) {
		resp, err := uc.Generate(ctx, sess, false)
		require.NoError(t, err)
		assert.True(t, resp.Cached)
		assert.Equal(t, 2, resp.Count)
		recs.AssertNumberOfCalls(t, "GenerateRecommendations", 1)
	})

	t.Run("refresh asks the ML service again", func(t *testing.T) {
		recs.On("GenerateRecommendations", mock.Anything, mock.Anything, "u-1").Return(&domain.GenerateRecommendationsResponse{
			Recommendations: []domain.MLRecommendation{{Name: "Cairo Tower", FinalScore: 0.8}},
		}, nil).Once()

		resp, err := uc.Generate(ctx, sess, true)
		require.NoError(t, err)
		assert.False(t, resp.Cached)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, "Cairo Tower", resp.Items[0].Title)
		assert.Empty(t, resp.Unmatched)
	})
}

func TestRecommendationUseCase_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("signed out", func(t *testing.T) {
		f := newCatalogFixture()
		recs := &MockRecommendationsAPI{}
		_, err := newRecommendationUseCase(f, recs).Generate(ctx, newSession(t, f.store, nil), false)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)
		recs.AssertNotCalled(t, "GenerateRecommendations", mock.Anything, mock.Anything, mock.Anything)
	})

	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"breaker open", fmt.Errorf("generate: %w", backend.ErrCircuitOpen), errors.ErrMLUnavailable},
		{"server error", &backend.APIError{StatusCode: 500}, errors.ErrBackendUnavailable},
		{"token rejected", &backend.APIError{StatusCode: 401}, errors.ErrSessionExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCatalogFixture()
			recs := &MockRecommendationsAPI{}
			recs.On("GenerateRecommendations", mock.Anything, mock.Anything, "u-1").Return(nil, tt.err)

			_, err := newRecommendationUseCase(f, recs).Generate(ctx, newSession(t, f.store, testUser()), false)
			assert.ErrorIs(t, err, tt.wantErr)
			f.places.AssertNotCalled(t, "ListPlaces", mock.Anything, mock.Anything)
		})
	}
}
