package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// DarkModeStore - client display preference kept next to the session
type DarkModeStore interface {
	DarkMode() bool
	SetDarkMode(ctx context.Context, on bool) error
}

// ProfileUseCase - профиль пользователя и настройки отображения
type ProfileUseCase struct {
	userAPI repository.UserAPI
	logger  *zap.Logger
}

// NewProfileUseCase - создание нового ProfileUseCase
func NewProfileUseCase(userAPI repository.UserAPI, logger *zap.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		userAPI: userAPI,
		logger:  logger,
	}
}

// Me - актуальный профиль; свежие данные сохраняются в сессии
func (uc *ProfileUseCase) Me(ctx context.Context, sess repository.Session) (*domain.User, error) {
	if _, err := requireUser(sess); err != nil {
		return nil, err
	}

	user, err := uc.userAPI.Me(ctx, sess)
	if err != nil {
		uc.logger.Error("Failed to fetch profile", zap.Error(err))
		return nil, backendError(err, nil)
	}

	// keep fields the profile endpoints do not return
	if cur := sess.User(); cur != nil {
		if user.FullName == "" {
			user.FullName = cur.FullName
		}
		if user.Email == "" {
			user.Email = cur.Email
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = cur.CreatedAt
		}
	}

	if err := sess.SetUser(ctx, *user); err != nil {
		uc.logger.Error("Failed to persist profile", zap.Error(err))
		return nil, storageError(err)
	}
	return sess.User(), nil
}

// UpdateProfile - сохранение изменений профиля на бэкенде и в сессии
func (uc *ProfileUseCase) UpdateProfile(ctx context.Context, sess repository.Session, req dto.ProfileUpdateRequest) (*domain.User, error) {
	if _, err := requireUser(sess); err != nil {
		return nil, err
	}

	upd := req.Update()
	if err := uc.userAPI.UpdateProfile(ctx, sess, upd); err != nil {
		uc.logger.Error("Failed to update profile", zap.Error(err))
		return nil, backendError(err, nil)
	}

	// the refresh path may have logged the session out meanwhile
	cur := sess.User()
	if cur == nil {
		return nil, errors.ErrSessionExpired
	}
	if err := sess.SetUser(ctx, upd.Apply(*cur)); err != nil {
		return nil, storageError(err)
	}
	return sess.User(), nil
}

func (uc *ProfileUseCase) DarkMode(store DarkModeStore) bool {
	return store.DarkMode()
}

func (uc *ProfileUseCase) SetDarkMode(ctx context.Context, store DarkModeStore, on bool) error {
	if err := store.SetDarkMode(ctx, on); err != nil {
		uc.logger.Error("Failed to persist dark mode", zap.Error(err))
		return storageError(err)
	}
	return nil
}
