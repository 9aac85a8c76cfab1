package reviews

import (
	"context"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates review persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts a review row.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, review *models.Review) error {
	return r.conn(tx).WithContext(ctx).Create(review).Error
}

// FindByID loads a review.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByRestaurant returns a restaurant's reviews joined with the
// reviewer's display name, newest first.
func (r *Repository) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("reviews.*, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.restaurant_id = ?", restaurantID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update persists the editable fields of a review.
func (r *Repository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"rating":  review.Rating,
			"comment": review.Comment,
		}).Error
}

// Delete removes a review.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, "id = ?", id).Error
}

// CountByUser returns how many reviews a user has written.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// RatingStats returns the count and rating sum for a restaurant.
func (r *Repository) RatingStats(ctx context.Context, restaurantID uuid.UUID) (count int64, sum int64, err error) {
	var stats struct {
		Count int64
		Sum   *int64
	}
	err = r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COUNT(*) AS count, SUM(rating) AS sum").
		Where("restaurant_id = ?", restaurantID).
		Scan(&stats).Error
	if err != nil {
		return 0, 0, err
	}
	if stats.Sum != nil {
		sum = *stats.Sum
	}
	return stats.Count, sum, nil
}

// RecentByUsers returns the newest reviews written by any of the given
// users, newest first, capped at limit.
func (r *Repository) RecentByUsers(ctx context.Context, userIDs []uuid.UUID, limit int) ([]models.Review, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []models.Review
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
