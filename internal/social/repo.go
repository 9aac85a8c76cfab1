package social

import (
	"context"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates the follow graph and favorites.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a social repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Follow records a directed follow edge. Following twice is a no-op.
func (r *Repository) Follow(ctx context.Context, userID, followUserID uuid.UUID) error {
	edge := &models.Follow{UserID: userID, FollowUserID: followUserID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error
}

// Unfollow removes the edge. The result reports whether one existed.
func (r *Repository) Unfollow(ctx context.Context, userID, followUserID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND follow_user_id = ?", userID, followUserID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Followers lists the users following userID.
func (r *Repository) Followers(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.user_id = users.id").
		Where("follows.follow_user_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Following lists the users userID follows.
func (r *Repository) Following(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN follows ON follows.follow_user_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("follows.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FollowingIDs returns just the ids of users userID follows.
func (r *Repository) FollowingIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Pluck("follow_user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CountFollowers returns how many users follow userID.
func (r *Repository) CountFollowers(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follow_user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountFollowing returns how many users userID follows.
func (r *Repository) CountFollowing(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// SuggestUsers picks random users the caller does not follow yet.
func (r *Repository) SuggestUsers(ctx context.Context, userID uuid.UUID, limit int) ([]models.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("users.id <> ?", userID).
		Where("users.id NOT IN (SELECT follow_user_id FROM follows WHERE user_id = ?)", userID).
		Order("RANDOM()").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AddFavorite saves a restaurant for the user. Saving twice is a no-op.
func (r *Repository) AddFavorite(ctx context.Context, userID, restaurantID uuid.UUID) error {
	favorite := &models.Favorite{UserID: userID, RestaurantID: restaurantID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favorite).Error
}

// RemoveFavorite drops a saved restaurant. The result reports whether one
// existed.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, restaurantID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListFavorites returns the user's saved restaurants, most recently saved
// first.
func (r *Repository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]models.Restaurant, error) {
	var rows []models.Restaurant
	err := r.db.WithContext(ctx).
		Model(&models.Restaurant{}).
		Joins("JOIN favorites ON favorites.restaurant_id = restaurants.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
