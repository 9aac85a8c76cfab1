package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
)

// UserDTO is the authenticated view of a user.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PublicUserDTO is the profile other users can see.
type PublicUserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

// CreateUserDTO carries the fields needed to persist a new user.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
}

// ToModel maps the DTO onto the persistence model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
	}
}

// UpdateUserDTO carries mutable profile fields.
type UpdateUserDTO struct {
	Name      *string
	AvatarURL *string
}

// FromModel maps a persisted user to its DTO.
func FromModel(user *models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

// PublicFromModel maps a persisted user to its public DTO.
func PublicFromModel(user *models.User) PublicUserDTO {
	return PublicUserDTO{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}
}
