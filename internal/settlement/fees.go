package settlement

import (
	"github.com/shopspring/decimal"
)

// DefaultFeePercent is the platform fee taken from every purchase (2.5%).
var DefaultFeePercent = decimal.NewFromFloat(0.025)

// FeeSplit is the exact decomposition of a purchase price. The invariant
// PlatformFee + SellerReceives == TotalPrice holds by construction: rounding
// is applied once on the fee and the seller receives the remainder, so
// repeated small buys accumulate no drift.
type FeeSplit struct {
	TotalPrice     decimal.Decimal
	PlatformFee    decimal.Decimal
	SellerReceives decimal.Decimal
}

// SplitPrice computes the fee split for a purchase. The fee is rounded half
// away from zero to the nearest whole chain unit; both settlement backends
// receive the already-split amounts and never re-derive the fee.
func SplitPrice(shares int64, pricePerShare, feePercent decimal.Decimal) FeeSplit {
	total := pricePerShare.Mul(decimal.NewFromInt(shares))
	fee := total.Mul(feePercent).Round(0)
	return FeeSplit{
		TotalPrice:     total,
		PlatformFee:    fee,
		SellerReceives: total.Sub(fee),
	}
}
