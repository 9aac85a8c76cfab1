package tables

import (
	"context"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates table registry persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a tables repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListByRestaurant returns every registered table for a restaurant, ordered
// by table number.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Table, error) {
	var rows []models.Table
	err := r.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("table_number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a single table.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Table, error) {
	var table models.Table
	if err := r.db.WithContext(ctx).First(&table, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &table, nil
}
