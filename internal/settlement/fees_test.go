package settlement_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jonumhills/townhall-rwa/internal/settlement"
)

func TestSplitPrice(t *testing.T) {
	tests := []struct {
		name           string
		shares         int64
		pricePerShare  string
		feePercent     string
		wantTotal      string
		wantFee        string
		wantSellerGets string
	}{
		{
			name:           "whole fee",
			shares:         100,
			pricePerShare:  "4",
			feePercent:     "0.025",
			wantTotal:      "400",
			wantFee:        "10",
			wantSellerGets: "390",
		},
		{
			name:           "fee rounds up at half",
			shares:         150,
			pricePerShare:  "5",
			feePercent:     "0.025",
			wantTotal:      "750",
			wantFee:        "19", // 18.75 rounds half away from zero
			wantSellerGets: "731",
		},
		{
			name:           "fee rounds down below half",
			shares:         10,
			pricePerShare:  "9",
			feePercent:     "0.025",
			wantTotal:      "90",
			wantFee:        "2", // 2.25
			wantSellerGets: "88",
		},
		{
			name:           "tiny purchase keeps total intact",
			shares:         1,
			pricePerShare:  "1",
			feePercent:     "0.025",
			wantTotal:      "1",
			wantFee:        "0", // 0.025
			wantSellerGets: "1",
		},
		{
			name:           "zero fee percent",
			shares:         200,
			pricePerShare:  "3",
			feePercent:     "0",
			wantTotal:      "600",
			wantFee:        "0",
			wantSellerGets: "600",
		},
		{
			name:           "fractional price",
			shares:         333,
			pricePerShare:  "0.5",
			feePercent:     "0.025",
			wantTotal:      "166.5",
			wantFee:        "4", // 4.1625
			wantSellerGets: "162.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price := decimal.RequireFromString(tt.pricePerShare)
			fee := decimal.RequireFromString(tt.feePercent)

			split := settlement.SplitPrice(tt.shares, price, fee)

			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(split.TotalPrice),
				"total: got %s", split.TotalPrice)
			assert.True(t, decimal.RequireFromString(tt.wantFee).Equal(split.PlatformFee),
				"fee: got %s", split.PlatformFee)
			assert.True(t, decimal.RequireFromString(tt.wantSellerGets).Equal(split.SellerReceives),
				"seller: got %s", split.SellerReceives)
		})
	}
}

func TestSplitPriceConservesTotal(t *testing.T) {
	fee := settlement.DefaultFeePercent
	for shares := int64(1); shares <= 1000; shares += 7 {
		split := settlement.SplitPrice(shares, decimal.RequireFromString("3.33"), fee)
		sum := split.PlatformFee.Add(split.SellerReceives)
		assert.True(t, sum.Equal(split.TotalPrice),
			"shares=%d: fee %s + seller %s != total %s", shares, split.PlatformFee, split.SellerReceives, split.TotalPrice)
	}
}
