package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/internal/restaurants"
	"github.com/gotoresto/gotoresto-backend/internal/users"
)

// Feed item kinds.
const (
	FeedItemBooking = "booking"
	FeedItemReview  = "review"
)

// FeedItemDTO is one entry in the activity feed of followed users.
type FeedItemDTO struct {
	Type         string    `json:"type"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Rating       int       `json:"rating,omitempty"`
	Comment      string    `json:"comment,omitempty"`
	Date         string    `json:"date,omitempty"`
	Time         string    `json:"time,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// FeedDTO wraps the merged feed.
type FeedDTO struct {
	Items []FeedItemDTO `json:"items"`
}

// FollowListDTO wraps a list of public profiles.
type FollowListDTO struct {
	Users []users.PublicUserDTO `json:"users"`
}

// FavoritesDTO wraps the caller's saved restaurants.
type FavoritesDTO struct {
	Restaurants []restaurants.RestaurantDTO `json:"restaurants"`
}
