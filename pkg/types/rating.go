package types

import "github.com/shopspring/decimal"

// RatingSummary aggregates review scores for a restaurant.
type RatingSummary struct {
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"average"`
}

// NewRatingSummary computes the average rating rounded to two decimal places.
func NewRatingSummary(sum, count int64) RatingSummary {
	if count <= 0 {
		return RatingSummary{Count: 0, Average: decimal.Zero}
	}
	avg := decimal.NewFromInt(sum).Div(decimal.NewFromInt(count)).Round(2)
	return RatingSummary{Count: count, Average: avg}
}
