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

// TripHandler - планировщик поездок
type TripHandler struct {
	tripUC *usecase.TripPlanUseCase
	logger *zap.Logger
}

// NewTripHandler - создание нового TripHandler
func NewTripHandler(tripUC *usecase.TripPlanUseCase, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		logger: logger,
	}
}

// Generate godoc
// @Summary Варианты маршрута от ML сервиса
// @Description Планы упорядочены по номеру, остановки сохраняют порядок посещения
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.GeneratedPlansResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/trips/generate [post]
func (h *TripHandler) Generate(c *fiber.Ctx) error {
	result, err := h.tripUC.Generate(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// List godoc
// @Summary Сохранённые маршруты
// @Tags Trips
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.TripPlan}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/trips [get]
func (h *TripHandler) List(c *fiber.Ctx) error {
	trips, err := h.tripUC.List(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trips, &utils.Meta{Total: len(trips)})
}

// Get godoc
// @Summary Маршрут
// @Tags Trips
// @Produce json
// @Param id path string true "ID маршрута"
// @Success 200 {object} utils.SuccessResponse{data=domain.TripPlan}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) Get(c *fiber.Ctx) error {
	trip, err := h.tripUC.Get(c.Context(), middleware.SessionFrom(c), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, trip, nil)
}

// Create godoc
// @Summary Сохранение маршрута
// @Description Создаёт план, затем дни по порядку и слоты каждого дня
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.CreateTripRequest true "Маршрут"
// @Success 201 {object} utils.SuccessResponse{data=domain.TripPlan}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/trips [post]
func (h *TripHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	trip, err := h.tripUC.Create(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, trip)
}

// Delete godoc
// @Summary Удаление маршрута
// @Tags Trips
// @Param id path string true "ID маршрута"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [delete]
func (h *TripHandler) Delete(c *fiber.Ctx) error {
	if err := h.tripUC.Delete(c.Context(), middleware.SessionFrom(c), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddSlot godoc
// @Summary Добавление слота в день маршрута
// @Tags Trips
// @Accept json
// @Produce json
// @Param dayId path string true "ID дня"
// @Param request body dto.CreateTripSlotRequest true "Слот"
// @Success 201 {object} utils.SuccessResponse{data=map[string]string}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trip-days/{dayId}/slots [post]
func (h *TripHandler) AddSlot(c *fiber.Ctx) error {
	var req dto.CreateTripSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	slotID, err := h.tripUC.AddSlot(c.Context(), middleware.SessionFrom(c), c.Params("dayId"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, fiber.Map{"tripSlotId": slotID})
}

// DeleteSlot godoc
// @Summary Удаление слота
// @Tags Trips
// @Param slotId path string true "ID слота"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/trip-slots/{slotId} [delete]
func (h *TripHandler) DeleteSlot(c *fiber.Ctx) error {
	if err := h.tripUC.DeleteSlot(c.Context(), middleware.SessionFrom(c), c.Params("slotId")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
