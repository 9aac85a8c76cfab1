package bookings

import (
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
)

const (
	// DateLayout is the canonical wire format for booking dates.
	DateLayout = "2006-01-02"
	// TimeLayout is the canonical wire format for booking slot times.
	TimeLayout = "15:04"
)

// BookingDTO is the public shape of a reservation.
type BookingDTO struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	TableID      *uuid.UUID `json:"table_id,omitempty"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Guests       int        `json:"guests"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateBookingDTO carries a validated booking request into the service.
// Date and Time are already canonical strings by the time they get here.
type CreateBookingDTO struct {
	RestaurantID uuid.UUID
	TableID      *uuid.UUID
	Date         string
	Time         string
	Guests       int
}

// Slot identifies one (restaurant, date, time) availability window.
type Slot struct {
	RestaurantID uuid.UUID
	Date         string
	Time         string
}

// FromModel maps a persisted booking to its DTO.
func FromModel(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:           b.ID,
		UserID:       b.UserID,
		RestaurantID: b.RestaurantID,
		TableID:      b.TableID,
		Date:         b.Date,
		Time:         b.Time,
		Guests:       b.Guests,
		CreatedAt:    b.CreatedAt,
	}
}
