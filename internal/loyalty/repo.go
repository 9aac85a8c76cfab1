package loyalty

import (
	"context"

	"github.com/google/uuid"
	"github.com/gotoresto/gotoresto-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository encapsulates loyalty balance persistence. The balance only
// moves through arithmetic updates so concurrent writers cannot lose
// increments.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a loyalty repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

// EnsureAccount creates a zero-balance account if the user has none.
func (r *Repository) EnsureAccount(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	account := &models.LoyaltyAccount{UserID: userID}
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(account).Error
}

// AddPoints credits the balance.
func (r *Repository) AddPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("user_id = ?", userID).
		Update("points", gorm.Expr("points + ?", points)).Error
}

// RedeemPoints debits the balance only when it covers the amount. The
// boolean result reports whether the debit happened.
func (r *Repository) RedeemPoints(ctx context.Context, tx *gorm.DB, userID uuid.UUID, points int) (bool, error) {
	result := r.conn(tx).WithContext(ctx).
		Model(&models.LoyaltyAccount{}).
		Where("user_id = ? AND points >= ?", userID, points).
		Update("points", gorm.Expr("points - ?", points))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Get loads the account for a user.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID) (*models.LoyaltyAccount, error) {
	var account models.LoyaltyAccount
	if err := r.db.WithContext(ctx).First(&account, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &account, nil
}
