package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/pkg/validator"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// ProfileHandler - профиль и настройки
type ProfileHandler struct {
	profileUC *usecase.ProfileUseCase
	logger    *zap.Logger
}

// NewProfileHandler - создание нового ProfileHandler
func NewProfileHandler(profileUC *usecase.ProfileUseCase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUC: profileUC,
		logger:    logger,
	}
}

// Me godoc
// @Summary Текущий пользователь
// @Tags Profile
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	user, err := h.profileUC.Me(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// UpdateProfile godoc
// @Summary Изменение профиля
// @Description Передаются только изменяемые поля
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.ProfileUpdateRequest true "Изменения"
// @Success 200 {object} utils.SuccessResponse{data=domain.User}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/me [put]
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	user, err := h.profileUC.UpdateProfile(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, user, nil)
}

// DarkMode godoc
// @Summary Тёмная тема
// @Tags Settings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=map[string]bool}
// @Router /api/v1/settings/dark-mode [get]
func (h *ProfileHandler) DarkMode(c *fiber.Ctx) error {
	return utils.SendSuccess(c, fiber.Map{
		"enabled": h.profileUC.DarkMode(middleware.SessionFrom(c)),
	}, nil)
}

// SetDarkMode godoc
// @Summary Переключение тёмной темы
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body dto.DarkModeRequest true "Новое значение"
// @Success 200 {object} utils.SuccessResponse{data=map[string]bool}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/settings/dark-mode [put]
func (h *ProfileHandler) SetDarkMode(c *fiber.Ctx) error {
	var req dto.DarkModeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.profileUC.SetDarkMode(c.Context(), middleware.SessionFrom(c), *req.Enabled); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.Map{"enabled": *req.Enabled}, nil)
}
