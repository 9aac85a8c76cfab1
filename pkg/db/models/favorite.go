package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite marks a restaurant a user has saved.
type Favorite struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
