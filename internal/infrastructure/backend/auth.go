package backend

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cairogo-gateway/internal/domain"
	"github.com/cairogo-gateway/internal/domain/repository"
)

func (c *Client) Login(ctx context.Context, in domain.LoginInput) (*domain.Credentials, error) {
	return c.authenticate(ctx, Request{Method: http.MethodPost, Path: "/api/auth/login", Body: in, Endpoint: "auth.login"})
}

func (c *Client) Register(ctx context.Context, in domain.RegisterInput) (*domain.Credentials, error) {
	return c.authenticate(ctx, Request{Method: http.MethodPost, Path: "/api/auth/register", Body: in, Endpoint: "auth.register"})
}

func (c *Client) authenticate(ctx context.Context, req Request) (*domain.Credentials, error) {
	resp, err := c.gw.Do(ctx, nil, req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, apiError(resp, req)
	}
	creds, err := decodeCredentials(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", req.Path, err)
	}
	return &creds, nil
}

type accountInfo struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	Age      int       `json:"age"`
	JoinDate time.Time `json:"joinDate"`
}

type userProfile struct {
	FullName          string  `json:"fullName"`
	Address           string  `json:"address"`
	Age               int     `json:"age"`
	PhoneNumber       *string `json:"phoneNumber"`
	ProfilePictureURL *string `json:"profilePictureUrl"`
}

// Me merges the account (GET /api/Auth/me) and the profile (GET /api/user-profile/me).
func (c *Client) Me(ctx context.Context, sess repository.Session) (*domain.User, error) {
	var account struct {
		Data *accountInfo `json:"data"`
	}
	if err := c.do(ctx, sess, Request{Method: http.MethodGet, Path: "/api/Auth/me", Endpoint: "auth.me"}, &account); err != nil {
		return nil, err
	}
	if account.Data == nil {
		return nil, fmt.Errorf("empty account response")
	}

	var profile userProfile
	if err := c.do(ctx, sess, Request{Method: http.MethodGet, Path: "/api/user-profile/me", Endpoint: "profile.get"}, &profile); err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:                account.Data.ID,
		Email:             account.Data.Email,
		Age:               account.Data.Age,
		CreatedAt:         account.Data.JoinDate,
		FullName:          profile.FullName,
		Address:           profile.Address,
		PhoneNumber:       profile.PhoneNumber,
		ProfilePictureURL: profile.ProfilePictureURL,
	}
	if profile.Age > 0 {
		u.Age = profile.Age
	}
	return u, nil
}

// UpdateProfile sends the changed fields to PUT /api/user-profile/me.
func (c *Client) UpdateProfile(ctx context.Context, sess repository.Session, upd domain.ProfileUpdate) error {
	req := Request{Method: http.MethodPut, Path: "/api/user-profile/me", Body: upd, Endpoint: "profile.update"}
	return c.do(ctx, sess, req, nil)
}
