package dtos

import (
	"time"

	"github.com/sereneapp/serene/internal/domain"
)

// UserResponseDTO defines what fields to expose in user API responses.
// Password hashes and other sensitive fields are excluded.
type UserResponseDTO struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// RegisterRequestDTO represents the expected payload to create a new user.
type RegisterRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequestDTO represents the login payload.
type LoginRequestDTO struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// FromDomain maps a domain.User to UserResponseDTO for API responses.
func FromDomain(user domain.User) UserResponseDTO {
	return UserResponseDTO{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
