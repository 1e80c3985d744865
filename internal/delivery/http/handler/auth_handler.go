package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/pkg/validator"
	"github.com/cairogo-gateway/internal/session"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// AuthHandler - вход, регистрация и выход
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

// NewAuthHandler - создание нового AuthHandler
func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// Login godoc
// @Summary Вход по email и паролю
// @Description Обменивает учётные данные на токены бэкенда. Токены остаются в сессии шлюза, клиент получает только профиль.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Учётные данные"
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	// a new session id on every sign-in
	var result *dto.AuthResponse
	err := middleware.RotateSession(c, func(st *session.Store) error {
		var err error
		result, err = h.authUC.Login(c.Context(), st, req)
		return err
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Register godoc
// @Summary Регистрация
// @Description Создаёт аккаунт и сразу открывает сессию
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные нового пользователя"
// @Success 201 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 429 {object} utils.ErrorResponse
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	var result *dto.AuthResponse
	err := middleware.RotateSession(c, func(st *session.Store) error {
		var err error
		result, err = h.authUC.Register(c.Context(), st, req)
		return err
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}

// Logout godoc
// @Summary Выход
// @Description Удаляет токены и пользователя из сессии. Настройка тёмной темы сохраняется.
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authUC.Logout(c.Context(), middleware.SessionFrom(c)); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.AuthResponse{Authenticated: false}, nil)
}
