package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/usecase"
)

// RecommendationHandler - персональные рекомендации
type RecommendationHandler struct {
	recommendationUC *usecase.RecommendationUseCase
	logger           *zap.Logger
}

// NewRecommendationHandler - создание нового RecommendationHandler
func NewRecommendationHandler(recommendationUC *usecase.RecommendationUseCase, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recommendationUC: recommendationUC,
		logger:           logger,
	}
}

// Generate godoc
// @Summary Рекомендации ML сервиса
// @Description Ранжированный список, сопоставленный с каталогом по названию. Рекомендации без совпадения возвращаются в unmatched.
// @Tags Recommendations
// @Produce json
// @Param refresh query bool false "Запросить заново, минуя кеш"
// @Success 200 {object} utils.SuccessResponse{data=dto.RecommendationsResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Generate(c *fiber.Ctx) error {
	result, err := h.recommendationUC.Generate(c.Context(), middleware.SessionFrom(c), c.QueryBool("refresh", false))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:     result.Count,
		Unmatched: len(result.Unmatched),
	})
}
