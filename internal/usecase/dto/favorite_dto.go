package dto

import "github.com/cairogo-gateway/internal/domain"

// Favorites ordering
const (
	FavoritesNewest = "newest"
	FavoritesOldest = "oldest"
	FavoritesTitle  = "title"
)

// FavoritesQuery - фильтр страницы избранного
type FavoritesQuery struct {
	Category string `json:"category,omitempty" validate:"max=50"`
	Sort     string `json:"sort,omitempty" validate:"omitempty,oneof=newest oldest title"`
}

// FavoriteRequest - добавление в избранное
type FavoriteRequest struct {
	PlaceID      string  `json:"placeId" validate:"required"`
	UserCategory *string `json:"userCategory,omitempty" validate:"omitempty,max=50"`
}

// FavoriteCategoryRequest - смена пользовательской категории
type FavoriteCategoryRequest struct {
	UserCategory *string `json:"userCategory" validate:"omitempty,max=50"`
}

type FavoritesResponse struct {
	Mode       string                `json:"mode"`
	Items      []domain.FavoriteView `json:"items"`
	Total      int                   `json:"total"`
	Categories []string              `json:"categories"`
}

type ToggleResponse struct {
	PlaceID    string `json:"placeId"`
	IsFavorite bool   `json:"isFavorite"`
}
