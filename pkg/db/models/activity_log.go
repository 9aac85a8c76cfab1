package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/gotoresto/gotoresto-backend/pkg/enums"
)

// ActivityLogEntry is an append-only record of loyalty and social actions.
type ActivityLogEntry struct {
	ID        uuid.UUID            `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID            `gorm:"column:user_id;type:uuid;not null"`
	Action    enums.ActivityAction `gorm:"column:action;not null"`
	Details   *string              `gorm:"column:details;type:jsonb"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
}

func (ActivityLogEntry) TableName() string {
	return "activity_log"
}
