package models

import (
	"time"

	"github.com/google/uuid"
)

// Follow is a directed edge in the social graph.
type Follow struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	FollowUserID uuid.UUID `gorm:"column:follow_user_id;type:uuid;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
