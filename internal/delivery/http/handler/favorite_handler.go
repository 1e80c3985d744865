package handler

import (
	"bufio"
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/delivery/http/middleware"
	"github.com/cairogo-gateway/internal/pkg/errors"
	"github.com/cairogo-gateway/internal/pkg/utils"
	"github.com/cairogo-gateway/internal/pkg/validator"
	"github.com/cairogo-gateway/internal/usecase"
	"github.com/cairogo-gateway/internal/usecase/dto"
)

const eventsHeartbeat = 20 * time.Second

// FavoriteHandler - избранное
type FavoriteHandler struct {
	favoriteUC *usecase.FavoriteUseCase
	logger     *zap.Logger
}

// NewFavoriteHandler - создание нового FavoriteHandler
func NewFavoriteHandler(favoriteUC *usecase.FavoriteUseCase, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteUC: favoriteUC,
		logger:     logger,
	}
}

// List godoc
// @Summary Избранное
// @Description Серверное избранное после входа, локальное до него. Элементы объединены с каталогом.
// @Tags Favorites
// @Produce json
// @Param category query string false "Пользовательская категория"
// @Param sort query string false "newest, oldest, title" default(newest)
// @Success 200 {object} utils.SuccessResponse{data=dto.FavoritesResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	q := dto.FavoritesQuery{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	if err := validator.Validate(&q); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.favoriteUC.List(c.Context(), middleware.SessionFrom(c), q)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Add godoc
// @Summary Добавление в избранное
// @Description Повторное добавление не ошибка
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body dto.FavoriteRequest true "Достопримечательность"
// @Success 201 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var req dto.FavoriteRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.favoriteUC.Add(c.Context(), middleware.SessionFrom(c), req.PlaceID, req.UserCategory); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, dto.ToggleResponse{PlaceID: req.PlaceID, IsFavorite: true})
}

// Check godoc
// @Summary Проверка избранного
// @Tags Favorites
// @Produce json
// @Param placeId path string true "ID в каталоге или placeId"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Router /api/v1/favorites/{placeId} [get]
func (h *FavoriteHandler) Check(c *fiber.Ctx) error {
	ref := c.Params("placeId")
	on, err := h.favoriteUC.IsFavorite(c.Context(), middleware.SessionFrom(c), ref)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, dto.ToggleResponse{PlaceID: ref, IsFavorite: on}, nil)
}

// Remove godoc
// @Summary Удаление из избранного
// @Description Удаление отсутствующего элемента не ошибка
// @Tags Favorites
// @Param placeId path string true "ID в каталоге или placeId"
// @Success 204
// @Router /api/v1/favorites/{placeId} [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	if err := h.favoriteUC.Remove(c.Context(), middleware.SessionFrom(c), c.Params("placeId")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Toggle godoc
// @Summary Переключение избранного
// @Tags Favorites
// @Produce json
// @Param placeId path string true "ID в каталоге или placeId"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleResponse}
// @Router /api/v1/favorites/{placeId}/toggle [post]
func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	result, err := h.favoriteUC.Toggle(c.Context(), middleware.SessionFrom(c), c.Params("placeId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// UpdateCategory godoc
// @Summary Смена пользовательской категории
// @Description Только для локального избранного
// @Tags Favorites
// @Accept json
// @Produce json
// @Param placeId path string true "ID в каталоге"
// @Param request body dto.FavoriteCategoryRequest true "Категория, null снимает её"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/favorites/{placeId}/category [put]
func (h *FavoriteHandler) UpdateCategory(c *fiber.Ctx) error {
	var req dto.FavoriteCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.favoriteUC.UpdateCategory(c.Context(), middleware.SessionFrom(c), c.Params("placeId"), req.UserCategory); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Events godoc
// @Summary Поток изменений избранного
// @Description Server-sent events: одно событие favorites.updated на каждое изменение избранного текущей сессии
// @Tags Favorites
// @Produce text/event-stream
// @Success 200 {object} domain.FavoritesUpdated
// @Router /api/v1/favorites/events [get]
func (h *FavoriteHandler) Events(c *fiber.Ctx) error {
	ctx, cancel := context.WithCancel(context.Background())
	events, err := h.favoriteUC.Events(ctx, middleware.SessionFrom(c))
	if err != nil {
		cancel()
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	logger := h.logger
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		heartbeat := time.NewTicker(eventsHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case evt, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(evt)
				if err != nil {
					logger.Error("Failed to encode favorites event", zap.Error(err))
					continue
				}
				fmt.Fprintf(w, "event: favorites.updated\ndata: %s\n\n", payload)
			case <-heartbeat.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// a failed flush means the client went away
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
