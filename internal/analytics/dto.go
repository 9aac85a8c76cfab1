package analytics

import (
	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/types"
)

// UserStatsDTO summarizes one user's activity across the platform.
type UserStatsDTO struct {
	UserID    uuid.UUID `json:"user_id"`
	Bookings  int64     `json:"bookings"`
	Reviews   int64     `json:"reviews"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
	Points    int       `json:"points"`
}

// RestaurantStatsDTO summarizes one restaurant's traction.
type RestaurantStatsDTO struct {
	RestaurantID uuid.UUID           `json:"restaurant_id"`
	Bookings     int64               `json:"bookings"`
	Rating       types.RatingSummary `json:"rating"`
}
