package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/repository/kv"
	"github.com/cairogo-gateway/internal/session"
)

// MockPlacesAPI - мок repository.PlacesAPI
type MockPlacesAPI struct {
	mock.Mock
}

func (m *MockPlacesAPI) ListPlaces(ctx context.Context, sess repository.Session) ([]domain.RawPlace, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RawPlace), args.Error(1)
}

func (m *MockPlacesAPI) GetPlace(ctx context.Context, sess repository.Session, placeID string) (*domain.RawPlace, error) {
	args := m.Called(ctx, sess, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawPlace), args.Error(1)
}

func (m *MockPlacesAPI) VibeTags(ctx context.Context, sess repository.Session, placeID string) ([]domain.VibeTag, error) {
	args := m.Called(ctx, sess, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VibeTag), args.Error(1)
}

func (m *MockPlacesAPI) ActivityTypes(ctx context.Context, sess repository.Session) ([]domain.ActivityType, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityType), args.Error(1)
}

// MockAuthAPI - мок repository.AuthAPI
type MockAuthAPI struct {
	mock.Mock
}

func (m *MockAuthAPI) Login(ctx context.Context, in domain.LoginInput) (*domain.Credentials, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credentials), args.Error(1)
}

func (m *MockAuthAPI) Register(ctx context.Context, in domain.RegisterInput) (*domain.Credentials, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credentials), args.Error(1)
}

// MockUserAPI - мок repository.UserAPI
type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) Me(ctx context.Context, sess repository.Session) (*domain.User, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserAPI) UpdateProfile(ctx context.Context, sess repository.Session, upd domain.ProfileUpdate) error {
	args := m.Called(ctx, sess, upd)
	return args.Error(0)
}

// MockRecommendationsAPI - мок repository.RecommendationsAPI
type MockRecommendationsAPI struct {
	mock.Mock
}

func (m *MockRecommendationsAPI) GenerateRecommendations(ctx context.Context, sess repository.Session, userID string) (*domain.GenerateRecommendationsResponse, error) {
	args := m.Called(ctx, sess, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerateRecommendationsResponse), args.Error(1)
}

func (m *MockRecommendationsAPI) GenerateTripPlans(ctx context.Context, sess repository.Session, userID string) (*domain.GenerateTripPlansResponse, error) {
	args := m.Called(ctx, sess, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerateTripPlansResponse), args.Error(1)
}

// MockFavoritesAPI - мок repository.FavoritesAPI
type MockFavoritesAPI struct {
	mock.Mock
}

func (m *MockFavoritesAPI) ListFavorites(ctx context.Context, sess repository.Session, userID string) ([]domain.RemoteFavorite, error) {
	args := m.Called(ctx, sess, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RemoteFavorite), args.Error(1)
}

func (m *MockFavoritesAPI) CheckFavorite(ctx context.Context, sess repository.Session, userID, placeID string) (bool, error) {
	args := m.Called(ctx, sess, userID, placeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoritesAPI) AddFavorite(ctx context.Context, sess repository.Session, in domain.RemoteFavoriteCreate) (*domain.RemoteFavorite, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RemoteFavorite), args.Error(1)
}

func (m *MockFavoritesAPI) RemoveFavorite(ctx context.Context, sess repository.Session, userID, placeID string) error {
	return m.Called(ctx, sess, userID, placeID).Error(0)
}

// MockPreferencesAPI - мок repository.PreferencesAPI
type MockPreferencesAPI struct {
	mock.Mock
}

func (m *MockPreferencesAPI) GetPreference(ctx context.Context, sess repository.Session, userID string) (*domain.PreferenceProfile, error) {
	args := m.Called(ctx, sess, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreferenceProfile), args.Error(1)
}

func (m *MockPreferencesAPI) CreatePreference(ctx context.Context, sess repository.Session, in domain.PreferenceCreate) (*domain.PreferenceProfile, error) {
	args := m.Called(ctx, sess, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreferenceProfile), args.Error(1)
}

func (m *MockPreferencesAPI) UpdatePreference(ctx context.Context, sess repository.Session, profileID string, in domain.PreferenceUpdate) (*domain.PreferenceProfile, error) {
	args := m.Called(ctx, sess, profileID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PreferenceProfile), args.Error(1)
}

// MockTripsAPI - мок repository.TripsAPI
type MockTripsAPI struct {
	mock.Mock
}

func (m *MockTripsAPI) ListTrips(ctx context.Context, sess repository.Session, userID string) ([]domain.TripPlan, error) {
	args := m.Called(ctx, sess, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TripPlan), args.Error(1)
}

func (m *MockTripsAPI) GetTrip(ctx context.Context, sess repository.Session, tripID string) (*domain.TripPlan, error) {
	args := m.Called(ctx, sess, tripID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TripPlan), args.Error(1)
}

func (m *MockTripsAPI) CreateTrip(ctx context.Context, sess repository.Session, in domain.TripPlanCreate) (string, error) {
	args := m.Called(ctx, sess, in)
	return args.String(0), args.Error(1)
}

func (m *MockTripsAPI) DeleteTrip(ctx context.Context, sess repository.Session, tripID string) error {
	return m.Called(ctx, sess, tripID).Error(0)
}

func (m *MockTripsAPI) AddTripDay(ctx context.Context, sess repository.Session, tripID string, in domain.TripDayCreate) (string, error) {
	args := m.Called(ctx, sess, tripID, in)
	return args.String(0), args.Error(1)
}

func (m *MockTripsAPI) AddTripSlot(ctx context.Context, sess repository.Session, dayID string, in domain.TripSlotCreate) (string, error) {
	args := m.Called(ctx, sess, dayID, in)
	return args.String(0), args.Error(1)
}

func (m *MockTripsAPI) DeleteTripSlot(ctx context.Context, sess repository.Session, slotID string) error {
	return m.Called(ctx, sess, slotID).Error(0)
}

func strPtr(s string) *string { return &s }

func newSession(t *testing.T, store *kv.Memory, user *domain.User) *session.Store {
	t.Helper()
	st, err := session.New(context.Background(), store, "session:"+t.Name())
	require.NoError(t, err)
	if user != nil {
		require.NoError(t, st.SetCredentials(context.Background(), domain.Credentials{
			AccessToken:  "access",
			RefreshToken: "refresh",
			User:         user,
		}))
	}
	return st
}

func testUser() *domain.User {
	return &domain.User{ID: "u-1", FullName: "Nour Hassan", Email: "nour@example.com"}
}

func rawPlaces() []domain.RawPlace {
	return []domain.RawPlace{
		{PlaceID: "p-karnak", Name: "Karnak Temple", Rating: 4.8, CostTier: strPtr("Low"), Category: strPtr("Historical"), MoodTags: []string{"Cultural"}},
		{PlaceID: "p-tower", Name: "Cairo Tower", Rating: "4.4", CostTier: strPtr("Medium"), Category: strPtr("Landmark")},
		{PlaceID: "p-khan", Name: "Khan el-Khalili", Rating: 4.6, CostTier: strPtr("Low"), Category: strPtr("Market")},
	}
}
