package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

func (c *Client) ListFavorites(ctx context.Context, sess repository.Session, userID string) ([]domain.RemoteFavorite, error) {
	var favs []domain.RemoteFavorite
	req := Request{Method: http.MethodGet, Path: "/api/Favorites/user/" + url.PathEscape(userID), Endpoint: "favorites.list"}
	if err := c.do(ctx, sess, req, &favs); err != nil {
		return nil, err
	}
	return favs, nil
}

func (c *Client) CheckFavorite(ctx context.Context, sess repository.Session, userID, placeID string) (bool, error) {
	var out struct {
		IsFavorite bool `json:"isFavorite"`
	}
	req := Request{
		Method:   http.MethodGet,
		Path:     "/api/Favorites/check",
		Query:    url.Values{"userId": {userID}, "placeId": {placeID}},
		Endpoint: "favorites.check",
	}
	if err := c.do(ctx, sess, req, &out); err != nil {
		return false, err
	}
	return out.IsFavorite, nil
}

func (c *Client) AddFavorite(ctx context.Context, sess repository.Session, in domain.RemoteFavoriteCreate) (*domain.RemoteFavorite, error) {
	var fav domain.RemoteFavorite
	req := Request{Method: http.MethodPost, Path: "/api/Favorites", Body: in, Endpoint: "favorites.add"}
	if err := c.do(ctx, sess, req, &fav); err != nil {
		return nil, err
	}
	return &fav, nil
}

func (c *Client) RemoveFavorite(ctx context.Context, sess repository.Session, userID, placeID string) error {
	req := Request{
		Method:   http.MethodDelete,
		Path:     "/api/Favorites",
		Query:    url.Values{"UserId": {userID}, "PlaceId": {placeID}},
		Endpoint: "favorites.remove",
	}
	return c.do(ctx, sess, req, nil)
}
