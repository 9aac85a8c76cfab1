package reviews

import (
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
)

// ReviewDTO is the public shape of a review, including the reviewer's
// display name for listing pages.
type ReviewDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name,omitempty"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateReviewDTO carries a validated review submission.
type CreateReviewDTO struct {
	RestaurantID uuid.UUID
	Rating       int
	Comment      string
}

// UpdateReviewDTO carries the editable review fields.
type UpdateReviewDTO struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ReviewRow is a review joined with the reviewer's name.
type ReviewRow struct {
	models.Review
	UserName string
}

// FromModel maps a persisted review to its DTO.
func FromModel(r *models.Review) ReviewDTO {
	return ReviewDTO{
		ID:           r.ID,
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
		Rating:       r.Rating,
		Comment:      r.Comment,
		CreatedAt:    r.CreatedAt,
	}
}

func fromRow(row *ReviewRow) ReviewDTO {
	dto := FromModel(&row.Review)
	dto.UserName = row.UserName
	return dto
}
