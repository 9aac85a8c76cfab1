package loyalty

import (
	"time"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
)

// BalanceDTO is the public shape of a loyalty balance.
type BalanceDTO struct {
	UserID uuid.UUID `json:"user_id"`
	Points int       `json:"points"`
}

// RedeemDTO carries a validated redemption request.
type RedeemDTO struct {
	Points int `json:"points" validate:"required,gt=0"`
}

// HistoryEntryDTO is one row of the loyalty ledger.
type HistoryEntryDTO struct {
	ID        uuid.UUID            `json:"id"`
	Action    enums.ActivityAction `json:"action"`
	Details   *string              `json:"details,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

// HistoryPageDTO is a cursor page of ledger rows.
type HistoryPageDTO struct {
	Entries    []HistoryEntryDTO `json:"entries"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func historyEntryFromModel(e *models.ActivityLogEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:        e.ID,
		Action:    e.Action,
		Details:   e.Details,
		CreatedAt: e.CreatedAt,
	}
}
