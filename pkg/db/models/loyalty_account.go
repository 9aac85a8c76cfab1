package models

import (
	"time"

	"github.com/google/uuid"
)

// LoyaltyAccount tracks a user's points balance. The balance is only ever
// moved through conditional updates, so it cannot go negative.
type LoyaltyAccount struct {
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Points    int       `gorm:"column:points;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
