package backend

import (
	"context"
	"net/http"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

type userRequest struct {
	UserID string `json:"userId"`
}

func (c *Client) GenerateRecommendations(ctx context.Context, sess repository.Session, userID string) (*domain.GenerateRecommendationsResponse, error) {
	var out domain.GenerateRecommendationsResponse
	req := Request{
		Method:   http.MethodPost,
		Path:     "/api/ml-recommendations/generate",
		Body:     userRequest{UserID: userID},
		Endpoint: "ml.generate",
	}
	if err := c.doML(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateTripPlans(ctx context.Context, sess repository.Session, userID string) (*domain.GenerateTripPlansResponse, error) {
	var out domain.GenerateTripPlansResponse
	req := Request{
		Method:   http.MethodPost,
		Path:     "/api/ml-recommendations/plans/generate",
		Body:     userRequest{UserID: userID},
		Endpoint: "ml.plans",
	}
	if err := c.doML(ctx, sess, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
