package bookings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates booking persistence. Methods that take part in
// the table-assignment transaction accept an explicit tx handle; passing
// nil falls back to the repo's own connection.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a bookings repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Create inserts a booking row. The bookings_slot_key index rejects a
// second booking for the same (restaurant, table, date, time).
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return r.conn(tx).WithContext(ctx).Create(booking).Error
}

// ListByUser returns the user's bookings, most recent slot first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, time DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListForDate returns every booking on a given date across restaurants.
func (r *Repository) ListForDate(ctx context.Context, date string) ([]models.Booking, error) {
	var rows []models.Booking
	err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// BookedTableIDs returns the ids of tables already reserved for the exact
// slot. Bookings without an assigned table never block a table.
func (r *Repository) BookedTableIDs(ctx context.Context, slot Slot) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("restaurant_id = ? AND date = ? AND time = ? AND table_id IS NOT NULL", slot.RestaurantID, slot.Date, slot.Time).
		Pluck("table_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// LockTable loads a table under FOR UPDATE so the slot check and the
// insert happen against a stable row.
func (r *Repository) LockTable(ctx context.Context, tx *gorm.DB, tableID uuid.UUID) (*models.Table, error) {
	var table models.Table
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&table, "id = ?", tableID).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// FindFreeTable picks the smallest table that seats the party and is not
// booked for the slot, locked FOR UPDATE. Returns nil when nothing fits.
func (r *Repository) FindFreeTable(ctx context.Context, tx *gorm.DB, slot Slot, guests int) (*models.Table, error) {
	var table models.Table
	err := r.conn(tx).WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("restaurant_id = ? AND seats >= ?", slot.RestaurantID, guests).
		Where(`id NOT IN (
			SELECT table_id FROM bookings
			WHERE restaurant_id = ? AND date = ? AND time = ? AND table_id IS NOT NULL
		)`, slot.RestaurantID, slot.Date, slot.Time).
		Order("seats ASC, table_number ASC").
		First(&table).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &table, nil
}

// CountByUser returns the total number of bookings a user has made.
func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// CountByRestaurant returns the total number of bookings at a restaurant.
func (r *Repository) CountByRestaurant(ctx context.Context, restaurantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&count).Error
	return count, err
}

// RecentByUsers returns the newest bookings made by any of the given
// users, newest first, capped at limit.
func (r *Repository) RecentByUsers(ctx context.Context, userIDs []uuid.UUID, limit int) ([]models.Booking, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var rows []models.Booking
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
