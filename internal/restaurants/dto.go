package restaurants

import (
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
)

// RestaurantDTO is the public shape of a venue.
type RestaurantDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Cuisine     string          `json:"cuisine"`
	Price       enums.PriceBand `json:"price"`
	Location    string          `json:"location"`
	ImageURL    *string         `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// SearchParams filters the restaurant listing.
type SearchParams struct {
	Query   string
	Cuisine string
	Price   string
}

// FromModel maps a persisted restaurant to its DTO.
func FromModel(r *models.Restaurant) RestaurantDTO {
	return RestaurantDTO{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Cuisine:     r.Cuisine,
		Price:       r.Price,
		Location:    r.Location,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
	}
}
