package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/pkg/validator"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

// AttractionHandler - каталог достопримечательностей
type AttractionHandler struct {
	catalogUC *usecase.CatalogUseCase
	logger    *zap.Logger
}

// NewAttractionHandler - создание нового AttractionHandler
func NewAttractionHandler(catalogUC *usecase.CatalogUseCase, logger *zap.Logger) *AttractionHandler {
	return &AttractionHandler{
		catalogUC: catalogUC,
		logger:    logger,
	}
}

// Browse godoc
// @Summary Каталог с фильтрами, сортировкой и пагинацией
// @Description Фильтры внутри группы объединяются по ИЛИ, группы между собой по И. Списки передаются через запятую.
// @Tags Attractions
// @Produce json
// @Param costTiers query string false "Low,Medium,High"
// @Param moods query string false "Настроения"
// @Param activityTypes query string false "Категории или типы активностей"
// @Param indoorOutdoor query string false "Indoor,Outdoor"
// @Param minRating query int false "Минимальный рейтинг 0-5" default(0)
// @Param search query string false "Поиск по названию, описанию и категории"
// @Param sort query string false "relevance, rating_desc, rating_asc, price_desc, price_asc, distance_asc" default(relevance)
// @Param page query int false "Номер страницы" default(1)
// @Param pageSize query int false "Размер страницы"
// @Success 200 {object} utils.SuccessResponse{data=dto.BrowseResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/attractions [get]
func (h *AttractionHandler) Browse(c *fiber.Ctx) error {
	req := dto.BrowseRequest{
		CostTiers:     dto.SplitList(c.Query("costTiers")),
		Moods:         dto.SplitList(c.Query("moods")),
		ActivityTypes: dto.SplitList(c.Query("activityTypes")),
		IndoorOutdoor: dto.SplitList(c.Query("indoorOutdoor")),
		MinRating:     c.QueryInt("minRating", 0),
		Search:        c.Query("search"),
		Sort:          c.Query("sort"),
		Page:          c.QueryInt("page", 1),
		PageSize:      c.QueryInt("pageSize", 0),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.catalogUC.Browse(c.Context(), middleware.SessionFrom(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}

// Get godoc
// @Summary Достопримечательность
// @Description id - номер в каталоге или placeId бэкенда
// @Tags Attractions
// @Produce json
// @Param id path string true "ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.Attraction}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/attractions/{id} [get]
func (h *AttractionHandler) Get(c *fiber.Ctx) error {
	result, err := h.catalogUC.Get(c.Context(), middleware.SessionFrom(c), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ActivityTypes godoc
// @Summary Типы активностей
// @Tags Attractions
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.ActivityType}
// @Router /api/v1/activity-types [get]
func (h *AttractionHandler) ActivityTypes(c *fiber.Ctx) error {
	types, err := h.catalogUC.ActivityTypes(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, types, &utils.Meta{Total: len(types)})
}
