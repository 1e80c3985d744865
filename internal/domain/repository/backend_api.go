package repository

import (
	"context"

	"github.com/cairogo-gateway/internal/domain"
)

// PlacesAPI - catalog endpoints of the travel REST API
type PlacesAPI interface {
	ListPlaces(ctx context.Context, sess Session) ([]domain.RawPlace, error)
	GetPlace(ctx context.Context, sess Session, placeID string) (*domain.RawPlace, error)
	VibeTags(ctx context.Context, sess Session, placeID string) ([]domain.VibeTag, error)
	ActivityTypes(ctx context.Context, sess Session) ([]domain.ActivityType, error)
}

// AuthAPI - unauthenticated account endpoints
type AuthAPI interface {
	Login(ctx context.Context, in domain.LoginInput) (*domain.Credentials, error)
	Register(ctx context.Context, in domain.RegisterInput) (*domain.Credentials, error)
}

// BackendAPI - every endpoint of the travel REST API and the ML service
type BackendAPI interface {
	PlacesAPI
	AuthAPI
	UserAPI
	FavoritesAPI
	PreferencesAPI
	RecommendationsAPI
	TripsAPI
}

// UserAPI - profile endpoints of the signed-in user
type UserAPI interface {
	Me(ctx context.Context, sess Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess Session, upd domain.ProfileUpdate) error
}

// FavoritesAPI - server-side favorites of an authenticated user
type FavoritesAPI interface {
	ListFavorites(ctx context.Context, sess Session, userID string) ([]domain.RemoteFavorite, error)
	CheckFavorite(ctx context.Context, sess Session, userID, placeID string) (bool, error)
	AddFavorite(ctx context.Context, sess Session, in domain.RemoteFavoriteCreate) (*domain.RemoteFavorite, error)
	RemoveFavorite(ctx context.Context, sess Session, userID, placeID string) error
}

// PreferencesAPI - travel quiz profile endpoints
type PreferencesAPI interface {
	GetPreference(ctx context.Context, sess Session, userID string) (*domain.PreferenceProfile, error)
	CreatePreference(ctx context.Context, sess Session, in domain.PreferenceCreate) (*domain.PreferenceProfile, error)
	UpdatePreference(ctx context.Context, sess Session, profileID string, in domain.PreferenceUpdate) (*domain.PreferenceProfile, error)
}

// RecommendationsAPI - ML service endpoints
type RecommendationsAPI interface {
	GenerateRecommendations(ctx context.Context, sess Session, userID string) (*domain.GenerateRecommendationsResponse, error)
	GenerateTripPlans(ctx context.Context, sess Session, userID string) (*domain.GenerateTripPlansResponse, error)
}

// TripsAPI - saved trip endpoints
type TripsAPI interface {
	ListTrips(ctx context.Context, sess Session, userID string) ([]domain.TripPlan, error)
	GetTrip(ctx context.Context, sess Session, tripID string) (*domain.TripPlan, error)
	// CreateTrip returns the new trip plan id.
	CreateTrip(ctx context.Context, sess Session, in domain.TripPlanCreate) (string, error)
	DeleteTrip(ctx context.Context, sess Session, tripID string) error
	AddTripDay(ctx context.Context, sess Session, tripID string, in domain.TripDayCreate) (string, error)
	AddTripSlot(ctx context.Context, sess Session, dayID string, in domain.TripSlotCreate) (string, error)
	DeleteTripSlot(ctx context.Context, sess Session, slotID string) error
}
