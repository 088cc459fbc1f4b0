package user

import (
	"errors"

	"bloghub/internal/core/user"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// DTOها برای UseCase
type LoginResponse struct {
	Token     string   `json:"token"`
	ExpiresAt int64    `json:"expiresAt"`
	User      *UserDTO `json:"user"`
}

type UserDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

func ToDTO(u user.Identity) *UserDTO {
	return &UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, IsAdmin: u.IsAdmin}
}
