package restaurants

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes restaurant discovery operations.
type Service interface {
	Search(ctx context.Context, params SearchParams) ([]RestaurantDTO, error)
	Get(ctx context.Context, id uuid.UUID) (RestaurantDTO, error)
}

type restaurantRepository interface {
	Search(ctx context.Context, params SearchParams) ([]models.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// ServiceParams bundles the dependencies for the restaurants service.
type ServiceParams struct {
	RestaurantRepo restaurantRepository
}

type service struct {
	restaurants restaurantRepository
}

// NewService constructs a restaurants service.
func NewService(params ServiceParams) (Service, error) {
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	return &service{restaurants: params.RestaurantRepo}, nil
}

func (s *service) Search(ctx context.Context, params SearchParams) ([]RestaurantDTO, error) {
	rows, err := s.restaurants.Search(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "search restaurants")
	}
	result := make([]RestaurantDTO, 0, len(rows))
	for i := range rows {
		result = append(result, FromModel(&rows[i]))
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (RestaurantDTO, error) {
	if id == uuid.Nil {
		return RestaurantDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	restaurant, err := s.restaurants.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RestaurantDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return RestaurantDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	return FromModel(restaurant), nil
}
