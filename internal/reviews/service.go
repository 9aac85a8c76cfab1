package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"gorm.io/gorm"
)

// Service exposes review submission and moderation by the author.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateReviewDTO) (ReviewDTO, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewDTO, error)
	Update(ctx context.Context, userID, reviewID uuid.UUID, dto UpdateReviewDTO) (ReviewDTO, error)
	Delete(ctx context.Context, userID, reviewID uuid.UUID) error
	Like(ctx context.Context, userID, reviewID uuid.UUID) error
}

type reviewRepository interface {
	Create(ctx context.Context, tx *gorm.DB, review *models.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewRow, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type loyaltyAwarder interface {
	AwardReviewPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, reviewID uuid.UUID) error
}

type activityRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action enums.ActivityAction, details map[string]any) error
}

type notifier interface {
	Send(ctx context.Context, userID uuid.UUID, content string) error
}

// ServiceParams bundles the dependencies for the reviews service.
type ServiceParams struct {
	ReviewRepo     reviewRepository
	RestaurantRepo restaurantFinder
	Tx             txRunner
	Loyalty        loyaltyAwarder
	Activity       activityRecorder
	Notifier       notifier
}

type service struct {
	reviews     reviewRepository
	restaurants restaurantFinder
	tx          txRunner
	loyalty     loyaltyAwarder
	activity    activityRecorder
	notifier    notifier
}

// NewService constructs a reviews service.
func NewService(params ServiceParams) (Service, error) {
	if params.ReviewRepo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder is required")
	}
	return &service{
		reviews:     params.ReviewRepo,
		restaurants: params.RestaurantRepo,
		tx:          params.Tx,
		loyalty:     params.Loyalty,
		activity:    params.Activity,
		notifier:    params.Notifier,
	}, nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateReviewDTO) (ReviewDTO, error) {
	if userID == uuid.Nil {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if dto.Rating < 1 || dto.Rating > 5 {
		return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}
	if _, err := s.restaurants.FindByID(ctx, dto.RestaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	review := &models.Review{
		ID:           uuid.New(),
		UserID:       userID,
		RestaurantID: dto.RestaurantID,
		Rating:       dto.Rating,
		Comment:      strings.TrimSpace(dto.Comment),
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.reviews.Create(ctx, tx, review); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
		}
		if s.loyalty != nil {
			if err := s.loyalty.AwardReviewPoints(ctx, tx, userID, review.ID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "award review points")
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return ReviewDTO{}, typed
		}
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create review")
	}
	return FromModel(review), nil
}

func (s *service) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewDTO, error) {
	if restaurantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant id is required")
	}
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}

	rows, err := s.reviews.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reviews")
	}
	result := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		result = append(result, fromRow(&rows[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, userID, reviewID uuid.UUID, dto UpdateReviewDTO) (ReviewDTO, error) {
	review, err := s.loadOwned(ctx, userID, reviewID)
	if err != nil {
		return ReviewDTO{}, err
	}

	if dto.Rating != nil {
		if *dto.Rating < 1 || *dto.Rating > 5 {
			return ReviewDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
		}
		review.Rating = *dto.Rating
	}
	if dto.Comment != nil {
		review.Comment = strings.TrimSpace(*dto.Comment)
	}

	if err := s.reviews.Update(ctx, review); err != nil {
		return ReviewDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update review")
	}
	return FromModel(review), nil
}

func (s *service) Delete(ctx context.Context, userID, reviewID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete review")
	}
	return nil
}

// Like records the like in the activity log and tells the review's author.
func (s *service) Like(ctx context.Context, userID, reviewID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}

	err = s.activity.Record(ctx, nil, userID, enums.ActivityLikeReview, map[string]any{
		"review_id": review.ID.String(),
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record like")
	}

	if s.notifier != nil && review.UserID != userID {
		_ = s.notifier.Send(ctx, review.UserID, "Someone liked your review")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID, reviewID uuid.UUID) (*models.Review, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load review")
	}
	if review.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "review belongs to another user")
	}
	return review, nil
}
