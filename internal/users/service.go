package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes profile operations for the users controller.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (UserDTO, error)
	UpdateMe(ctx context.Context, userID uuid.UUID, dto UpdateUserDTO) (UserDTO, error)
	PublicProfile(ctx context.Context, userID uuid.UUID) (PublicUserDTO, error)
}

type userRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateUserDTO) error
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	UserRepo userRepository
}

type service struct {
	users userRepository
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	return &service{users: params.UserRepo}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (UserDTO, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return FromModel(user), nil
}

func (s *service) UpdateMe(ctx context.Context, userID uuid.UUID, dto UpdateUserDTO) (UserDTO, error) {
	if dto.Name != nil {
		trimmed := strings.TrimSpace(*dto.Name)
		if trimmed == "" {
			return UserDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		dto.Name = &trimmed
	}

	if _, err := s.load(ctx, userID); err != nil {
		return UserDTO{}, err
	}
	if err := s.users.UpdateProfile(ctx, userID, dto); err != nil {
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	user, err := s.load(ctx, userID)
	if err != nil {
		return UserDTO{}, err
	}
	return FromModel(user), nil
}

func (s *service) PublicProfile(ctx context.Context, userID uuid.UUID) (PublicUserDTO, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return PublicUserDTO{}, err
	}
	return PublicFromModel(user), nil
}

func (s *service) load(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return user, nil
}
