package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/config"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"github.com/gotoresto/gotoresto-backend/pkg/enums"
	pkgerrors "github.com/gotoresto/gotoresto-backend/pkg/errors"
	"github.com/gotoresto/gotoresto-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service exposes the loyalty balance and ledger.
type Service interface {
	Balance(ctx context.Context, userID uuid.UUID) (BalanceDTO, error)
	Redeem(ctx context.Context, userID uuid.UUID, dto RedeemDTO) (BalanceDTO, error)
	History(ctx context.Context, userID uuid.UUID, params pagination.Params) (HistoryPageDTO, error)
	AwardBookingPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID) error
	AwardReviewPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, reviewID uuid.UUID) error
}

type loyaltyRepository interface {
	EnsureAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
	AddPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) error
	RedeemPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) (bool, error)
	Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error)
}

type activityRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, userID uuid.UUID, action enums.ActivityAction, details map[string]any) error
	ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]models.ActivityLogEntry, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies for the loyalty service.
type ServiceParams struct {
	LoyaltyRepo loyaltyRepository
	Activity    activityRecorder
	Tx          txRunner
	Config      config.LoyaltyConfig
}

type service struct {
	accounts loyaltyRepository
	activity activityRecorder
	tx       txRunner
	cfg      config.LoyaltyConfig
}

// NewService constructs a loyalty service.
func NewService(params ServiceParams) (Service, error) {
	if params.LoyaltyRepo == nil {
		return nil, fmt.Errorf("loyalty repository is required")
	}
	if params.Activity == nil {
		return nil, fmt.Errorf("activity recorder is required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Config.PointsPerBooking <= 0 || params.Config.PointsPerReview <= 0 {
		return nil, fmt.Errorf("loyalty point awards must be positive")
	}
	return &service{
		accounts: params.LoyaltyRepo,
		activity: params.Activity,
		tx:       params.Tx,
		cfg:      params.Config,
	}, nil
}

// Balance returns the user's point balance, creating the account on first
// read so new users always see a zero balance instead of a missing one.
func (s *service) Balance(ctx context.Context, userID uuid.UUID) (BalanceDTO, error) {
	if userID == uuid.Nil {
		return BalanceDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if err := s.accounts.EnsureAccount(ctx, nil, userID); err != nil {
		return BalanceDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure loyalty account")
	}
	account, err := s.accounts.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceDTO{UserID: userID}, nil
		}
		return BalanceDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load loyalty account")
	}
	return BalanceDTO{UserID: account.UserID, Points: account.Points}, nil
}

// Redeem debits points. The conditional update is the single source of
// truth for whether the balance covered the amount.
func (s *service) Redeem(ctx context.Context, userID uuid.UUID, dto RedeemDTO) (BalanceDTO, error) {
	if userID == uuid.Nil {
		return BalanceDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}
	if dto.Points <= 0 {
		return BalanceDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "points must be positive")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.accounts.EnsureAccount(ctx, tx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure loyalty account")
		}
		debited, err := s.accounts.RedeemPoints(ctx, tx, userID, dto.Points)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "redeem points")
		}
		if !debited {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient points")
		}
		return s.activity.Record(ctx, tx, userID, enums.ActivityRedeemPoints, map[string]any{
			"points": dto.Points,
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return BalanceDTO{}, typed
		}
		return BalanceDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "redeem points")
	}

	return s.Balance(ctx, userID)
}

// History pages through the user's ledger, newest first.
func (s *service) History(ctx context.Context, userID uuid.UUID, params pagination.Params) (HistoryPageDTO, error) {
	if userID == uuid.Nil {
		return HistoryPageDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "user is required")
	}

	rows, err := s.activity.ListByUser(ctx, userID, params)
	if err != nil {
		return HistoryPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list loyalty history")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	page := HistoryPageDTO{Entries: make([]HistoryEntryDTO, 0, limit)}
	for i := range rows {
		if i == limit {
			last := rows[limit-1]
			page.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
			break
		}
		page.Entries = append(page.Entries, historyEntryFromModel(&rows[i]))
	}
	return page, nil
}

// AwardBookingPoints credits the booking reward inside the caller's
// transaction so the points land only if the booking commits.
func (s *service) AwardBookingPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, bookingID uuid.UUID) error {
	return s.award(ctx, tx, userID, s.cfg.PointsPerBooking, map[string]any{
		"source":     "booking",
		"booking_id": bookingID.String(),
		"points":     s.cfg.PointsPerBooking,
	})
}

// AwardReviewPoints credits the review reward inside the caller's
// transaction.
func (s *service) AwardReviewPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, reviewID uuid.UUID) error {
	return s.award(ctx, tx, userID, s.cfg.PointsPerReview, map[string]any{
		"source":    "review",
		"review_id": reviewID.String(),
		"points":    s.cfg.PointsPerReview,
	})
}

func (s *service) award(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int, details map[string]any) error {
	if err := s.accounts.EnsureAccount(ctx, tx, userID); err != nil {
		return fmt.Errorf("ensure loyalty account: %w", err)
	}
	if err := s.accounts.AddPoints(ctx, tx, userID, points); err != nil {
		return fmt.Errorf("add points: %w", err)
	}
	if err := s.activity.Record(ctx, tx, userID, enums.ActivityEarnPoints, details); err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}
