package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"github.com/gotoresto/gotoresto-backend/pkg/types"
	"gorm.io/gorm"
)

// Service exposes aggregate counters for profiles and restaurant pages.
type Service interface {
	UserStats(ctx context.Context, userID uuid.UUID) (UserStatsDTO, error)
	RestaurantStats(ctx context.Context, restaurantID uuid.UUID) (RestaurantStatsDTO, error)
}

type bookingCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error)
}

type reviewCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	RatingStats(ctx context.Context, restaurantID uuid.UUID) (count int64, sum int64, err error)
}

type followCounter interface {
	CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error)
	CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error)
}

type loyaltyReader interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error)
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

// ServiceParams bundles the dependencies for the analytics service.
type ServiceParams struct {
	BookingRepo    bookingCounter
	ReviewRepo     reviewCounter
	SocialRepo     followCounter
	LoyaltyRepo    loyaltyReader
	RestaurantRepo restaurantFinder
}

type service struct {
	bookings    bookingCounter
	reviews     reviewCounter
	social      followCounter
	loyalty     loyaltyReader
	restaurants restaurantFinder
}

// NewService constructs an analytics service.
func NewService(params ServiceParams) (Service, error) {
	if params.BookingRepo == nil {
		return nil, fmt.Errorf("booking repository is required")
	}
	if params.ReviewRepo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.SocialRepo == nil {
		return nil, fmt.Errorf("social repository is required")
	}
	if params.LoyaltyRepo == nil {
		return nil, fmt.Errorf("loyalty repository is required")
	}
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	return &service{
		bookings:    params.BookingRepo,
		reviews:     params.ReviewRepo,
		social:      params.SocialRepo,
		loyalty:     params.LoyaltyRepo,
		restaurants: params.RestaurantRepo,
	}, nil
}

func (s *service) UserStats(ctx context.Context, userID uuid.UUID) (UserStatsDTO, error) {
	if userID == uuid.Nil {
		return UserStatsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}

	stats := UserStatsDTO{UserID: userID}
	var err error

	if stats.Bookings, err = s.bookings.CountByUser(ctx, userID); err != nil {
		return UserStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count bookings")
	}
	if stats.Reviews, err = s.reviews.CountByUser(ctx, userID); err != nil {
		return UserStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count reviews")
	}
	if stats.Followers, err = s.social.CountFollowers(ctx, userID); err != nil {
		return UserStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count followers")
	}
	if stats.Following, err = s.social.CountFollowing(ctx, userID); err != nil {
		return UserStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count following")
	}

	account, err := s.loyalty.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return UserStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load loyalty account")
		}
	} else {
		stats.Points = account.Points
	}
	return stats, nil
}

func (s *service) RestaurantStats(ctx context.Context, restaurantID uuid.UUID) (RestaurantStatsDTO, error) {
	if restaurantID == uuid.Nil {
		return RestaurantStatsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RestaurantStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return RestaurantStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	stats := RestaurantStatsDTO{RestaurantID: restaurantID}
	var err error

	if stats.Bookings, err = s.bookings.CountByRestaurant(ctx, restaurantID); err != nil {
		return RestaurantStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count bookings")
	}

	count, sum, err := s.reviews.RatingStats(ctx, restaurantID)
	if err != nil {
		return RestaurantStatsDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load rating stats")
	}
	stats.Rating = types.NewRatingSummary(sum, count)
	return stats, nil
}
