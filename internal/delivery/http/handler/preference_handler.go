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

// PreferenceHandler - квиз предпочтений
type PreferenceHandler struct {
	preferenceUC *usecase.PreferenceUseCase
	logger       *zap.Logger
}

// NewPreferenceHandler - создание нового PreferenceHandler
func NewPreferenceHandler(preferenceUC *usecase.PreferenceUseCase, logger *zap.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceUC: preferenceUC,
		logger:       logger,
	}
}

// Get godoc
// @Summary Профиль предпочтений
// @Description data равно null, если квиз ещё не пройден
// @Tags Preferences
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=domain.PreferenceProfile}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/preferences [get]
func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	profile, err := h.preferenceUC.Get(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, profile, nil)
}

// Submit godoc
// @Summary Ответы квиза
// @Description Создаёт профиль или обновляет существующий
// @Tags Preferences
// @Accept json
// @Produce json
// @Param request body dto.PreferenceRequest true "Ответы"
// @Success 200 {object} utils.SuccessResponse{data=domain.PreferenceProfile}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/preferences [post]
func (h *PreferenceHandler) Submit(c *fiber.Ctx) error {
	var req dto.PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	profile, err := h.preferenceUC.Submit(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, profile, nil)
}
