package social

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/internal/restaurants"
	"github.com/gotoresto/gotoresto-backend/internal/users"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	feedLimit        = 30
	suggestionsLimit = 10
)

// Service exposes the follow graph, favorites, and the activity feed.
type Service interface {
	Follow(ctx context.Context, userID, followUserID uuid.UUID) error
	Unfollow(ctx context.Context, userID, followUserID uuid.UUID) error
	Followers(ctx context.Context, userID uuid.UUID) (FollowListDTO, error)
	Following(ctx context.Context, userID uuid.UUID) (FollowListDTO, error)
	Feed(ctx context.Context, userID uuid.UUID) (FeedDTO, error)
	Suggestions(ctx context.Context, userID uuid.UUID) (FollowListDTO, error)
	AddFavorite(ctx context.Context, userID, restaurantID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, restaurantID uuid.UUID) error
	ListFavorites(ctx context.Context, userID uuid.UUID) (FavoritesDTO, error)
}

type socialRepository interface {
	Follow(ctx context.Context, userID, followUserID uuid.UUID) error
	Unfollow(ctx context.Context, userID, followUserID uuid.UUID) (bool, error)
	Followers(ctx context.Context, userID uuid.UUID) ([]models.User, error)
	Following(ctx context.Context, userID uuid.UUID) ([]models.User, error)
	FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	SuggestUsers(ctx context.Context, userID uuid.UUID, limit int) ([]models.User, error)
	AddFavorite(ctx context.Context, userID, restaurantID uuid.UUID) error
	RemoveFavorite(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Restaurant, error)
}

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type restaurantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
}

type bookingFeedSource interface {
	RecentByUsers(ctx context.Context, userIDs []uuid.UUID, limit int) ([]models.Booking, error)
}

type reviewFeedSource interface {
	RecentByUsers(ctx context.Context, userIDs []uuid.UUID, limit int) ([]models.Review, error)
}

// ServiceParams bundles the dependencies for the social service.
type ServiceParams struct {
	SocialRepo     socialRepository
	UserRepo       userFinder
	RestaurantRepo restaurantFinder
	BookingRepo    bookingFeedSource
	ReviewRepo     reviewFeedSource
}

type service struct {
	social      socialRepository
	userFinder  userFinder
	restaurants restaurantFinder
	bookings    bookingFeedSource
	reviews     reviewFeedSource
}

// NewService constructs a social service.
func NewService(params ServiceParams) (Service, error) {
	if params.SocialRepo == nil {
		return nil, fmt.Errorf("social repository is required")
	}
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.RestaurantRepo == nil {
		return nil, fmt.Errorf("restaurant repository is required")
	}
	if params.BookingRepo == nil {
		return nil, fmt.Errorf("booking repository is required")
	}
	if params.ReviewRepo == nil {
		return nil, fmt.Errorf("review repository is required")
	}
	return &service{
		social:      params.SocialRepo,
		userFinder:  params.UserRepo,
		restaurants: params.RestaurantRepo,
		bookings:    params.BookingRepo,
		reviews:     params.ReviewRepo,
	}, nil
}

func (s *service) Follow(ctx context.Context, userID, followUserID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if userID == followUserID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot follow yourself")
	}
	if _, err := s.userFinder.FindByID(ctx, followUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	if err := s.social.Follow(ctx, userID, followUserID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "follow user")
	}
	return nil
}

func (s *service) Unfollow(ctx context.Context, userID, followUserID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	removed, err := s.social.Unfollow(ctx, userID, followUserID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unfollow user")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "not following this user")
	}
	return nil
}

func (s *service) Followers(ctx context.Context, userID uuid.UUID) (FollowListDTO, error) {
	rows, err := s.social.Followers(ctx, userID)
	if err != nil {
		return FollowListDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list followers")
	}
	return toFollowList(rows), nil
}

func (s *service) Following(ctx context.Context, userID uuid.UUID) (FollowListDTO, error) {
	rows, err := s.social.Following(ctx, userID)
	if err != nil {
		return FollowListDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list following")
	}
	return toFollowList(rows), nil
}

// Feed merges the recent bookings and reviews of followed users, newest
// first, capped at the feed limit.
func (s *service) Feed(ctx context.Context, userID uuid.UUID) (FeedDTO, error) {
	if userID == uuid.Nil {
		return FeedDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	followed, err := s.social.FollowingIDs(ctx, userID)
	if err != nil {
		return FeedDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list followed users")
	}
	if len(followed) == 0 {
		return FeedDTO{Items: []FeedItemDTO{}}, nil
	}

	bookingRows, err := s.bookings.RecentByUsers(ctx, followed, feedLimit)
	if err != nil {
		return FeedDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load feed bookings")
	}
	reviewRows, err := s.reviews.RecentByUsers(ctx, followed, feedLimit)
	if err != nil {
		return FeedDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load feed reviews")
	}

	items := make([]FeedItemDTO, 0, len(bookingRows)+len(reviewRows))
	for i := range bookingRows {
		b := &bookingRows[i]
		items = append(items, FeedItemDTO{
			Type:         FeedItemBooking,
			UserID:       b.UserID,
			RestaurantID: b.RestaurantID,
			Date:         b.Date,
			Time:         b.Time,
			CreatedAt:    b.CreatedAt,
		})
	}
	for i := range reviewRows {
		r := &reviewRows[i]
		items = append(items, FeedItemDTO{
			Type:         FeedItemReview,
			UserID:       r.UserID,
			RestaurantID: r.RestaurantID,
			Rating:       r.Rating,
			Comment:      r.Comment,
			CreatedAt:    r.CreatedAt,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	if len(items) > feedLimit {
		items = items[:feedLimit]
	}
	return FeedDTO{Items: items}, nil
}

func (s *service) Suggestions(ctx context.Context, userID uuid.UUID) (FollowListDTO, error) {
	if userID == uuid.Nil {
		return FollowListDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	rows, err := s.social.SuggestUsers(ctx, userID, suggestionsLimit)
	if err != nil {
		return FollowListDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "suggest users")
	}
	return toFollowList(rows), nil
}

func (s *service) AddFavorite(ctx context.Context, userID, restaurantID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if _, err := s.restaurants.FindByID(ctx, restaurantID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "restaurant not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load restaurant")
	}
	if err := s.social.AddFavorite(ctx, userID, restaurantID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add favorite")
	}
	return nil
}

func (s *service) RemoveFavorite(ctx context.Context, userID, restaurantID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	removed, err := s.social.RemoveFavorite(ctx, userID, restaurantID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "remove favorite")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "restaurant is not a favorite")
	}
	return nil
}

func (s *service) ListFavorites(ctx context.Context, userID uuid.UUID) (FavoritesDTO, error) {
	if userID == uuid.Nil {
		return FavoritesDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	rows, err := s.social.ListFavorites(ctx, userID)
	if err != nil {
		return FavoritesDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list favorites")
	}
	result := FavoritesDTO{Restaurants: make([]restaurants.RestaurantDTO, 0, len(rows))}
	for i := range rows {
		result.Restaurants = append(result.Restaurants, restaurants.FromModel(&rows[i]))
	}
	return result, nil
}

func toFollowList(rows []models.User) FollowListDTO {
	list := FollowListDTO{Users: make([]users.PublicUserDTO, 0, len(rows))}
	for i := range rows {
		list.Users = append(list.Users, users.PublicFromModel(&rows[i]))
	}
	return list
}
