package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// PreferenceUseCase - профиль предпочтений из квиза
type PreferenceUseCase struct {
	prefsAPI  repository.PreferencesAPI
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewPreferenceUseCase - создание нового PreferenceUseCase
func NewPreferenceUseCase(prefsAPI repository.PreferencesAPI, cacheRepo repository.CacheRepository, logger *zap.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{
		prefsAPI:  prefsAPI,
		cacheRepo: cacheRepo,
		logger:    logger,
	}
}

// Get - текущий профиль; nil, если квиз ещё не пройден
func (uc *PreferenceUseCase) Get(ctx context.Context, sess repository.Session) (*domain.PreferenceProfile, error) {
	userID, err := requireUser(sess)
	if err != nil {
		return nil, err
	}

	profile, err := uc.prefsAPI.GetPreference(ctx, sess, userID)
	if err != nil {
		if backend.IsNotFound(err) {
			return nil, nil
		}
		uc.logger.Error("Failed to load preferences", zap.String("user_id", userID), zap.Error(err))
		return nil, backendError(err, nil)
	}
	return profile, nil
}

// Submit - создание профиля или обновление существующего.
// Cached recommendations of the session are dropped since they were ranked
// for the old answers.
func (uc *PreferenceUseCase) Submit(ctx context.Context, sess repository.Session, req dto.PreferenceRequest) (*domain.PreferenceProfile, error) {
	userID, err := requireUser(sess)
	if err != nil {
		return nil, err
	}

	existing, err := uc.Get(ctx, sess)
	if err != nil {
		return nil, err
	}

	var saved *domain.PreferenceProfile
	if existing != nil && existing.ProfileID != "" {
		saved, err = uc.prefsAPI.UpdatePreference(ctx, sess, existing.ProfileID, domain.PreferenceUpdate{
			TravelVibe:      &req.TravelVibe,
			WeatherPref:     &req.WeatherPref,
			TripDays:        &req.TripDays,
			ActivityTypeIDs: req.ActivityTypeIDs,
		})
	} else {
		saved, err = uc.prefsAPI.CreatePreference(ctx, sess, domain.PreferenceCreate{
			UserID:          userID,
			TravelVibe:      req.TravelVibe,
			ActivityTypeIDs: req.ActivityTypeIDs,
			WeatherPref:     req.WeatherPref,
			TripDays:        req.TripDays,
		})
	}
	if err != nil {
		uc.logger.Error("Failed to save preferences", zap.String("user_id", userID), zap.Error(err))
		return nil, backendError(err, nil)
	}

	if err := uc.cacheRepo.InvalidateRecommendations(ctx, sess.Namespace()); err != nil {
		uc.logger.Warn("Failed to drop cached recommendations", zap.Error(err))
	}

	if saved != nil {
		return saved, nil
	}
	// some endpoints answer without the stored profile
	return uc.Get(ctx, sess)
}
