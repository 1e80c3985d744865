package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

func (c *Client) ListPlaces(ctx context.Context, sess repository.Session) ([]domain.RawPlace, error) {
	var places []domain.RawPlace
	req := Request{Method: http.MethodGet, Path: "/api/places", Endpoint: "places.list"}
	if err := c.do(ctx, sess, req, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (c *Client) GetPlace(ctx context.Context, sess repository.Session, placeID string) (*domain.RawPlace, error) {
	var place domain.RawPlace
	req := Request{Method: http.MethodGet, Path: "/api/places/" + url.PathEscape(placeID), Endpoint: "places.get"}
	if err := c.do(ctx, sess, req, &place); err != nil {
		return nil, err
	}
	return &place, nil
}

func (c *Client) VibeTags(ctx context.Context, sess repository.Session, placeID string) ([]domain.VibeTag, error) {
	var tags []domain.VibeTag
	req := Request{Method: http.MethodGet, Path: "/api/PlaceVibeTag/place/" + url.PathEscape(placeID), Endpoint: "vibetags.list"}
	if err := c.do(ctx, sess, req, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) ActivityTypes(ctx context.Context, sess repository.Session) ([]domain.ActivityType, error) {
	var types []domain.ActivityType
	req := Request{Method: http.MethodGet, Path: "/api/ActivityType", Endpoint: "activitytypes.list"}
	if err := c.do(ctx, sess, req, &types); err != nil {
		return nil, err
	}
	return types, nil
}
