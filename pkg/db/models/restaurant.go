package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gotoresto/gotoresto-backend/pkg/enums"
)

// Restaurant is the canonical venue listing.
type Restaurant struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	Cuisine     string          `gorm:"column:cuisine;not null"`
	Price       enums.PriceBand `gorm:"column:price;not null"`
	Location    string          `gorm:"column:location;not null"`
	ImageURL    *string         `gorm:"column:image_url"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
