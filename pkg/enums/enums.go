package enums

// ActivityAction labels rows in the activity log.
type ActivityAction string

const (
	ActivityEarnPoints   ActivityAction = "earn_points"
	ActivityRedeemPoints ActivityAction = "redeem_points"
	ActivityLikeReview   ActivityAction = "like_review"
	ActivityReminderSent ActivityAction = "reminder_sent"
)

// PriceBand is the coarse price indicator shown on restaurant cards.
type PriceBand string

const (
	PriceBudget   PriceBand = "$"
	PriceModerate PriceBand = "$$"
	PriceUpscale  PriceBand = "$$$"
	PriceLuxury   PriceBand = "$$$$"
)

// IsValid reports whether the band is one of the supported values.
func (p PriceBand) IsValid() bool {
	switch p {
	case PriceBudget, PriceModerate, PriceUpscale, PriceLuxury:
		return true
	}
	return false
}
