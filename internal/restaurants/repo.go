package restaurants

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates restaurant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a restaurants repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Search lists restaurants filtered by free text, cuisine, and price band.
// Results come back in storage order (created_at ascending).
func (r *Repository) Search(ctx context.Context, params SearchParams) ([]models.Restaurant, error) {
	query := r.db.WithContext(ctx).Model(&models.Restaurant{})

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if cuisine := strings.TrimSpace(params.Cuisine); cuisine != "" {
		query = query.Where("LOWER(cuisine) = ?", strings.ToLower(cuisine))
	}
	if price := strings.TrimSpace(params.Price); price != "" {
		query = query.Where("price = ?", price)
	}

	var rows []models.Restaurant
	if err := query.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a restaurant by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}
