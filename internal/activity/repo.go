package activity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
	"github.com/gotoresto/gotoresto-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository appends to and reads the activity log.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an activity log repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// Record appends one entry. Detail payloads are serialized to JSON.
func (r *Repository) Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action enums.ActivityAction, details map[string]any) error {
	entry := &models.ActivityLogEntry{
		ID:     uuid.New(),
		UserID: userID,
		Action: action,
	}
	if len(details) > 0 {
		raw, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshal activity details: %w", err)
		}
		encoded := string(raw)
		entry.Details = &encoded
	}
	return r.conn(tx).WithContext(ctx).Create(entry).Error
}

// ListByUser pages through a user's activity, newest first. It fetches one
// extra row so callers can detect whether another page exists.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.ActivityLogEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.ActivityLogEntry
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// HasBookingReminder reports whether a reminder entry already references
// the booking. The check keys on the serialized details payload so it
// works on every dialect the repo runs against.
func (r *Repository) HasBookingReminder(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ActivityLogEntry{}).
		Where("action = ? AND details LIKE ?", enums.ActivityReminderSent, "%"+bookingID.String()+"%").
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
