package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

func (c *Client) GetPreference(ctx context.Context, sess repository.Session, userID string) (*domain.PreferenceProfile, error) {
	var p domain.PreferenceProfile
	req := Request{Method: http.MethodGet, Path: "/api/Preference/user/" + url.PathEscape(userID), Endpoint: "preference.get"}
	if err := c.do(ctx, sess, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePreference returns the stored profile when the backend echoes it, nil otherwise.
func (c *Client) CreatePreference(ctx context.Context, sess repository.Session, in domain.PreferenceCreate) (*domain.PreferenceProfile, error) {
	var p domain.PreferenceProfile
	req := Request{Method: http.MethodPost, Path: "/api/Preference/create", Body: in, Endpoint: "preference.create"}
	if err := c.do(ctx, sess, req, &p); err != nil {
		return nil, err
	}
	if p.ProfileID == "" {
		return nil, nil
	}
	return &p, nil
}

func (c *Client) UpdatePreference(ctx context.Context, sess repository.Session, profileID string, in domain.PreferenceUpdate) (*domain.PreferenceProfile, error) {
	var p domain.PreferenceProfile
	req := Request{Method: http.MethodPost, Path: "/api/Preference/update/" + url.PathEscape(profileID), Body: in, Endpoint: "preference.update"}
	if err := c.do(ctx, sess, req, &p); err != nil {
		return nil, err
	}
	if p.ProfileID == "" {
		return nil, nil
	}
	return &p, nil
}
