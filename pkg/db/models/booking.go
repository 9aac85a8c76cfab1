package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one reservation ledger row. Date and Time are stored as the
// canonical wire strings ("2006-01-02", "15:04") so slot equality is exact
// string equality, which is what the bookings_slot_key index enforces.
type Booking struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null"`
	RestaurantID uuid.UUID  `gorm:"column:restaurant_id;type:uuid;not null"`
	TableID      *uuid.UUID `gorm:"column:table_id;type:uuid"`
	Date         string     `gorm:"column:date;not null"`
	Time         string     `gorm:"column:time;not null"`
	Guests       int        `gorm:"column:guests;not null"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
