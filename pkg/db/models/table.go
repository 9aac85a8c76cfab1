package models

import (
	"time"

	"github.com/google/uuid"
)

// Table is one physical table in a restaurant's registry. A restaurant
// cannot register the same table number twice.
type Table struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	RestaurantID uuid.UUID `gorm:"column:restaurant_id;type:uuid;not null;uniqueIndex:tables_restaurant_number_key"`
	TableNumber  int       `gorm:"column:table_number;not null;uniqueIndex:tables_restaurant_number_key"`
	Seats        int       `gorm:"column:seats;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
