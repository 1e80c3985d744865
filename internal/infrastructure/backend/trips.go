package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

func (c *Client) ListTrips(ctx context.Context, sess repository.Session, userID string) ([]domain.TripPlan, error) {
	var trips []domain.TripPlan
	req := Request{Method: http.MethodGet, Path: "/api/TripPlane/user/" + url.PathEscape(userID), Endpoint: "trips.list"}
	if err := c.do(ctx, sess, req, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (c *Client) GetTrip(ctx context.Context, sess repository.Session, tripID string) (*domain.TripPlan, error) {
	var trip domain.TripPlan
	req := Request{Method: http.MethodGet, Path: "/api/TripPlane/" + url.PathEscape(tripID), Endpoint: "trips.get"}
	if err := c.do(ctx, sess, req, &trip); err != nil {
		return nil, err
	}
	return &trip, nil
}

func (c *Client) CreateTrip(ctx context.Context, sess repository.Session, in domain.TripPlanCreate) (string, error) {
	var out struct {
		TripPlanID string `json:"tripPlanId"`
	}
	req := Request{Method: http.MethodPost, Path: "/api/TripPlane/create", Body: in, Endpoint: "trips.create"}
	if err := c.do(ctx, sess, req, &out); err != nil {
		return "", err
	}
	return out.TripPlanID, nil
}

func (c *Client) DeleteTrip(ctx context.Context, sess repository.Session, tripID string) error {
	req := Request{Method: http.MethodDelete, Path: "/api/TripPlane/" + url.PathEscape(tripID), Endpoint: "trips.delete"}
	return c.do(ctx, sess, req, nil)
}

func (c *Client) AddTripDay(ctx context.Context, sess repository.Session, tripID string, in domain.TripDayCreate) (string, error) {
	var out struct {
		TripDayID string `json:"tripDayId"`
	}
	req := Request{Method: http.MethodPost, Path: "/api/TripDay/trip/" + url.PathEscape(tripID), Body: in, Endpoint: "tripdays.add"}
	if err := c.do(ctx, sess, req, &out); err != nil {
		return "", err
	}
	return out.TripDayID, nil
}

func (c *Client) AddTripSlot(ctx context.Context, sess repository.Session, dayID string, in domain.TripSlotCreate) (string, error) {
	var out struct {
		TripSlotID string `json:"tripSlotId"`
	}
	req := Request{Method: http.MethodPost, Path: "/api/TripSlot/day/" + url.PathEscape(dayID), Body: in, Endpoint: "tripslots.add"}
	if err := c.do(ctx, sess, req, &out); err != nil {
		return "", err
	}
	return out.TripSlotID, nil
}

func (c *Client) DeleteTripSlot(ctx context.Context, sess repository.Session, slotID string) error {
	req := Request{Method: http.MethodDelete, Path: "/api/TripSlot/" + url.PathEscape(slotID), Endpoint: "tripslots.delete"}
	return c.do(ctx, sess, req, nil)
}
