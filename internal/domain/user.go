package domain

import "time"

// User - profile snapshot held by the session
type User struct {
	ID                string    `json:"id"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Address           string    `json:"address,omitempty"`
	Age               int       `json:"age,omitempty"`
	PhoneNumber       *string   `json:"phoneNumber,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
}

// Credentials - a token pair with an optional user. Empty fields mean
// "leave the stored value untouched" when applied to a session.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user,omitempty"`
}

// LoginInput - POST /api/auth/login body
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput - POST /api/auth/register body
type RegisterInput struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	Age             int    `json:"age"`
	Address         string `json:"address"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileUpdate - editable profile fields
type ProfileUpdate struct {
	FullName          *string `json:"fullName,omitempty"`
	Address           *string `json:"address,omitempty"`
	Age               *int    `json:"age,omitempty"`
	PhoneNumber       *string `json:"phoneNumber,omitempty"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
}

// Apply returns a copy of u with the non-nil fields of p applied.
func (p ProfileUpdate) Apply(u User) User {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.PhoneNumber != nil {
		u.PhoneNumber = p.PhoneNumber
	}
	if p.ProfilePictureURL != nil {
		u.ProfilePictureURL = p.ProfilePictureURL
	}
	return u
}
