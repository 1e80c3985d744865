package usecase

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
	"github.com/cairogo-gateway/internal/infrastructure/backend"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// AuthUseCase - вход, регистрация и выход
type AuthUseCase struct {
	authAPI repository.AuthAPI
	userAPI repository.UserAPI
	logger  *zap.Logger
}

// NewAuthUseCase - создание нового AuthUseCase
func NewAuthUseCase(authAPI repository.AuthAPI, userAPI repository.UserAPI, logger *zap.Logger) *AuthUseCase {
	return &AuthUseCase{
		authAPI: authAPI,
		userAPI: userAPI,
		logger:  logger,
	}
}

// Login - обмен email/пароля на токены, сохранение в сессии
func (uc *AuthUseCase) Login(ctx context.Context, sess repository.Session, req dto.LoginRequest) (*dto.AuthResponse, error) {
	creds, err := uc.authAPI.Login(ctx, domain.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if status := backend.StatusOf(err); status == http.StatusUnauthorized || status == http.StatusBadRequest {
			return nil, errors.ErrInvalidCredentials
		}
		uc.logger.Error("Login failed", zap.Error(err))
		return nil, backendError(err, nil)
	}
	return uc.establish(ctx, sess, creds)
}

// Register - создание аккаунта; бэкенд сразу выдаёт токены
func (uc *AuthUseCase) Register(ctx context.Context, sess repository.Session, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	creds, err := uc.authAPI.Register(ctx, domain.RegisterInput{
		FullName:        req.FullName,
		Email:           req.Email,
		Age:             req.Age,
		Address:         req.Address,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		if backend.IsAlreadyExists(err) {
			return nil, errors.ErrConflict.WithMessage("Email is already registered")
		}
		uc.logger.Error("Registration failed", zap.Error(err))
		return nil, backendError(err, nil)
	}
	return uc.establish(ctx, sess, creds)
}

// Logout - очистка токенов и пользователя
func (uc *AuthUseCase) Logout(ctx context.Context, sess repository.Session) error {
	if err := sess.LogOut(ctx); err != nil {
		uc.logger.Error("Failed to clear session", zap.String("namespace", sess.Namespace()), zap.Error(err))
		return storageError(err)
	}
	return nil
}

func (uc *AuthUseCase) establish(ctx context.Context, sess repository.Session, creds *domain.Credentials) (*dto.AuthResponse, error) {
	if creds.AccessToken == "" {
		uc.logger.Error("Auth response without access token")
		return nil, errors.ErrBackendUnavailable
	}
	if err := sess.SetCredentials(ctx, *creds); err != nil {
		uc.logger.Error("Failed to persist credentials", zap.String("namespace", sess.Namespace()), zap.Error(err))
		return nil, storageError(err)
	}

	// older backend builds answer without the user object
	if creds.User == nil {
		user, err := uc.userAPI.Me(ctx, sess)
		if err != nil {
			uc.logger.Warn("Signed in but profile fetch failed", zap.Error(err))
		} else if err := sess.SetUser(ctx, *user); err != nil {
			return nil, storageError(err)
		}
	}

	uc.logger.Info("Signed in", zap.String("namespace", sess.Namespace()))
	return &dto.AuthResponse{
		User:          sess.User(),
		Authenticated: sess.IsAuthenticated(),
	}, nil
}
