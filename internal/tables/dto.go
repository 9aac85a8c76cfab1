package tables

import (
	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
)

// TableDTO is the public shape of a restaurant table.
type TableDTO struct {
	ID           uuid.UUID `json:"id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	TableNumber  int       `json:"table_number"`
	Seats        int       `json:"seats"`
}

// FromModel maps a persisted table to its DTO.
func FromModel(t *models.Table) TableDTO {
	return TableDTO{
		ID:           t.ID,
		RestaurantID: t.RestaurantID,
		TableNumber:  t.TableNumber,
		Seats:        t.Seats,
	}
}
