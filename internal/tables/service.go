package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes the table registry for a restaurant.
type Service interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]TableDTO, error)
}

type tableRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error)
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// ServiceParams bundles the dependencies for the tables service.
type ServiceParams struct {
	TableRepo      tableRepository
	RestaurantRepo restaurantFinder
}

type service struct {
	tables      tableRepository
	restaurants restaurantFinder
}

// NewService constructs a tables service.
func NewService(params ServiceParams) (Service, error) {
	if params.TableRepo == nil {
		return nil, fmt.Errorf("table repository is required")
	}
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	return &service{tables: params.TableRepo, restaurants: params.RestaurantRepo}, nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]TableDTO, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	rows, err := s.tables.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tables")
	}
	result := make([]TableDTO, 0, len(rows))
	for i := range rows {
		result = append(result, FromModel(&rows[i]))
	}
	return result, nil
}
