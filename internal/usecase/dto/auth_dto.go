package dto

import "github.com/cairogo-gateway/internal/domain"

// LoginRequest - запрос на вход
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest - запрос на регистрацию
type RegisterRequest struct {
	FullName        string `json:"fullName" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email"`
	Age             int    `json:"age" validate:"required,min=13,max=120"`
	Address         string `json:"address" validate:"required,max=200"`
	Password        string `json:"password" validate:"required,password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ProfileUpdateRequest - редактируемые поля профиля
type ProfileUpdateRequest struct {
	FullName          *string `json:"fullName,omitempty" validate:"omitempty,min=2,max=100"`
	Address           *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Age               *int    `json:"age,omitempty" validate:"omitempty,min=13,max=120"`
	PhoneNumber       *string `json:"phoneNumber,omitempty" validate:"omitempty,max=32"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty" validate:"omitempty,url"`
}

// Update converts the request to the domain patch.
func (r ProfileUpdateRequest) Update() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FullName:          r.FullName,
		Address:           r.Address,
		Age:               r.Age,
		PhoneNumber:       r.PhoneNumber,
		ProfilePictureURL: r.ProfilePictureURL,
	}
}

// AuthResponse - результат входа/регистрации. Токены остаются в сессии шлюза.
type AuthResponse struct {
	User          *domain.User `json:"user"`
	Authenticated bool         `json:"authenticated"`
}

// DarkModeRequest - переключение тёмной темы
type DarkModeRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
