package repository

import (
	"context"

	"github.com/cairogo-gateway/internal/domain"
)

// Session - the authentication state of one client.
// Credentials are persisted before they become visible to readers.
type Session interface {
	// Namespace identifies the session in durable storage.
	Namespace() string
	AccessToken() string
	RefreshToken() string
	User() *domain.User
	IsAuthenticated() bool
	// SetCredentials persists and applies every non-empty field of creds;
	// empty fields keep their current value.
	SetCredentials(ctx context.Context, creds domain.Credentials) error
	// SetUser replaces the stored user, tokens are untouched.
	SetUser(ctx context.Context, user domain.User) error
	// LogOut clears all credential fields in memory and storage.
	LogOut(ctx context.Context) error
}
