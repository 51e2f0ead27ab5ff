package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

var claimSeq int

// buildTestClaim creates a claim input with a unique claim ID
func buildTestClaim(pin, county string) CreateClaimInput {
	claimSeq++
	return CreateClaimInput{
		ClaimID:     fmt.Sprintf("claim-%d-%s", claimSeq, pin),
		PIN:         pin,
		CountyID:    county,
		ChainType:   domain.ChainTypeEscrow,
		OwnerWallet: "0x1111111111111111111111111111111111111111",
		DeedURL:     "https://deeds.example.org/doc/" + pin,
	}
}

// createApprovedParcel creates a claim and approves it with the full supply
func createApprovedParcel(t *testing.T, s Store, pin, county string) *schema.ParcelToken {
	ctx := context.Background()

	input := buildTestClaim(pin, county)
	_, err := s.CreateClaim(ctx, input)
	require.NoError(t, err)

	err = s.ApproveClaim(ctx, ApproveClaimInput{
		ClaimID:       input.ClaimID,
		NFTRef:        "0xcontract/" + pin,
		ShareTokenRef: "0xshare-" + pin,
		TotalShares:   domain.TotalSharesPerParcel,
		Reviewer:      "admin",
		DecidedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)

	parcel, err := s.GetParcel(ctx, domain.NewParcelKey(pin, county))
	require.NoError(t, err)
	require.NotNil(t, parcel)
	return parcel
}

// listParcel lists shares on an approved parcel
func listParcel(t *testing.T, s Store, parcel *schema.ParcelToken, shares int64, price string) *schema.ParcelToken {
	updated, err := s.ListShares(context.Background(), ListSharesInput{
		Key:           domain.NewParcelKey(parcel.PIN, parcel.CountyID),
		OwnerWallet:   parcel.OwnerWallet,
		Shares:        shares,
		PricePerShare: decimal.RequireFromString(price),
		ListedAt:      time.Now().UTC(),
	})
	require.NoError(t, err)
	return updated
}

// =============================================================================
// Tests
// =============================================================================

func testCreateClaim(t *testing.T, s Store) {
	ctx := context.Background()

	input := buildTestClaim("10-01-100-001-0000", "cook")
	parcel, err := s.CreateClaim(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, input.ClaimID, parcel.ClaimID)
	assert.Equal(t, domain.VerificationPending, parcel.VerificationStatus)
	assert.Nil(t, parcel.NFTRef)
	assert.Nil(t, parcel.TotalShares)
	assert.False(t, parcel.Listed)

	// A second claim for the same parcel is rejected while the first is pending
	dup := buildTestClaim("10-01-100-001-0000", "cook")
	_, err = s.CreateClaim(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateClaim)

	// The same PIN in another county is a different parcel
	other := buildTestClaim("10-01-100-001-0000", "lake")
	_, err = s.CreateClaim(ctx, other)
	assert.NoError(t, err)
}

func testResubmitRejectedClaim(t *testing.T, s Store) {
	ctx := context.Background()

	first := buildTestClaim("10-01-100-002-0000", "cook")
	_, err := s.CreateClaim(ctx, first)
	require.NoError(t, err)

	err = s.RejectClaim(ctx, RejectClaimInput{
		ClaimID:   first.ClaimID,
		Reviewer:  "admin",
		DecidedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// Resubmission reuses the parcel row under a fresh claim ID
	second := buildTestClaim("10-01-100-002-0000", "cook")
	second.DeedURL = "https://deeds.example.org/doc/corrected"
	parcel, err := s.CreateClaim(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, second.ClaimID, parcel.ClaimID)
	assert.Equal(t, domain.VerificationPending, parcel.VerificationStatus)
	assert.Equal(t, second.DeedURL, parcel.DeedURL)
	assert.Nil(t, parcel.Reviewer)
	assert.Nil(t, parcel.VerifiedAt)

	// The old claim ID no longer resolves
	old, err := s.GetClaimByID(ctx, first.ClaimID)
	require.NoError(t, err)
	assert.Nil(t, old)
}

func testApproveClaim(t *testing.T, s Store) {
	ctx := context.Background()

	input := buildTestClaim("10-01-100-003-0000", "cook")
	_, err := s.CreateClaim(ctx, input)
	require.NoError(t, err)

	err = s.ApproveClaim(ctx, ApproveClaimInput{
		ClaimID:       input.ClaimID,
		NFTRef:        "0xcontract/7",
		ShareTokenRef: "0xshare",
		TotalShares:   domain.TotalSharesPerParcel,
		Reviewer:      "admin",
		DecidedAt:     time.Now().UTC(),
	})
	require.NoError(t, err)

	parcel, err := s.GetClaimByID(ctx, input.ClaimID)
	require.NoError(t, err)
	require.NotNil(t, parcel)
	assert.Equal(t, domain.VerificationApproved, parcel.VerificationStatus)
	require.NotNil(t, parcel.TotalShares)
	require.NotNil(t, parcel.AvailableShares)
	assert.Equal(t, domain.TotalSharesPerParcel, *parcel.TotalShares)
	assert.Equal(t, domain.TotalSharesPerParcel, *parcel.AvailableShares)
	assert.Equal(t, int64(0), parcel.SharesSold())
	require.NotNil(t, parcel.NFTRef)
	assert.Equal(t, "0xcontract/7", *parcel.NFTRef)

	// Approval is terminal
	err = s.ApproveClaim(ctx, ApproveClaimInput{
		ClaimID:   input.ClaimID,
		Reviewer:  "admin",
		DecidedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrClaimNotPending)
}

func testRejectClaim(t *testing.T, s Store) {
	ctx := context.Background()

	input := buildTestClaim("10-01-100-004-0000", "cook")
	_, err := s.CreateClaim(ctx, input)
	require.NoError(t, err)

	notes := "deed document illegible"
	err = s.RejectClaim(ctx, RejectClaimInput{
		ClaimID:     input.ClaimID,
		Reviewer:    "admin",
		ReviewNotes: &notes,
		DecidedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	parcel, err := s.GetClaimByID(ctx, input.ClaimID)
	require.NoError(t, err)
	require.NotNil(t, parcel)
	assert.Equal(t, domain.VerificationRejected, parcel.VerificationStatus)
	require.NotNil(t, parcel.ReviewNotes)
	assert.Equal(t, notes, *parcel.ReviewNotes)
	assert.Nil(t, parcel.TotalShares)

	// Rejection is terminal
	err = s.RejectClaim(ctx, RejectClaimInput{
		ClaimID:   input.ClaimID,
		Reviewer:  "admin",
		DecidedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrClaimNotPending)

	// Unknown claim
	err = s.RejectClaim(ctx, RejectClaimInput{
		ClaimID:   "no-such-claim",
		Reviewer:  "admin",
		DecidedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func testDeployedAssetIndex(t *testing.T, s Store) {
	ctx := context.Background()
	key := domain.NewParcelKey("10-01-100-005-0000", "cook")

	asset, err := s.GetDeployedAsset(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, asset)

	err = s.RecordDeployedAsset(ctx, &schema.DeployedAsset{
		PIN:           key.PIN,
		CountyID:      key.CountyID,
		ChainType:     domain.ChainTypeEscrow,
		NFTRef:        "0xcontract/9",
		ShareTokenRef: "0xshare",
	})
	require.NoError(t, err)

	// The index is insert-once per parcel
	err = s.RecordDeployedAsset(ctx, &schema.DeployedAsset{
		PIN:           key.PIN,
		CountyID:      key.CountyID,
		ChainType:     domain.ChainTypeEscrow,
		NFTRef:        "0xcontract/other",
		ShareTokenRef: "0xshare-other",
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyMinted)

	asset, err = s.GetDeployedAsset(ctx, key)
	require.NoError(t, err)
	require.NotNil(t, asset)
	assert.Equal(t, "0xcontract/9", asset.NFTRef)
}

func testListShares(t *testing.T, s Store) {
	ctx := context.Background()

	parcel := createApprovedParcel(t, s, "10-01-100-006-0000", "cook")
	key := domain.NewParcelKey(parcel.PIN, parcel.CountyID)

	// Unknown parcel
	_, err := s.ListShares(ctx, ListSharesInput{
		Key:         domain.NewParcelKey("99-99-999-999-9999", "cook"),
		OwnerWallet: parcel.OwnerWallet,
		Shares:      10,
	})
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	// Non-owner
	_, err = s.ListShares(ctx, ListSharesInput{
		Key:           key,
		OwnerWallet:   "0x2222222222222222222222222222222222222222",
		Shares:        10,
		PricePerShare: decimal.NewFromInt(5),
		ListedAt:      time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	// More than available
	_, err = s.ListShares(ctx, ListSharesInput{
		Key:           key,
		OwnerWallet:   parcel.OwnerWallet,
		Shares:        domain.TotalSharesPerParcel + 1,
		PricePerShare: decimal.NewFromInt(5),
		ListedAt:      time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientAvailableShares)

	updated := listParcel(t, s, parcel, 400, "5")
	assert.True(t, updated.Listed)
	assert.Equal(t, int64(400), updated.ListedShares)

	// Relisting replaces the amount and price rather than stacking
	updated = listParcel(t, s, parcel, 250, "8")
	assert.Equal(t, int64(250), updated.ListedShares)
	assert.True(t, decimal.NewFromInt(8).Equal(updated.PricePerShare))
}

func testListSharesRequiresApproval(t *testing.T, s Store) {
	ctx := context.Background()

	input := buildTestClaim("10-01-100-007-0000", "cook")
	_, err := s.CreateClaim(ctx, input)
	require.NoError(t, err)

	_, err = s.ListShares(ctx, ListSharesInput{
		Key:           domain.NewParcelKey(input.PIN, input.CountyID),
		OwnerWallet:   input.OwnerWallet,
		Shares:        10,
		PricePerShare: decimal.NewFromInt(5),
		ListedAt:      time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrNotApproved)
}

func testSettlePurchase(t *testing.T, s Store) {
	ctx := context.Background()

	parcel := createApprovedParcel(t, s, "10-01-100-008-0000", "cook")
	key := domain.NewParcelKey(parcel.PIN, parcel.CountyID)
	listParcel(t, s, parcel, 200, "5")

	buyer := "0x3333333333333333333333333333333333333333"

	// Seller cannot buy from themselves
	_, _, err := s.SettlePurchase(ctx, SettlePurchaseInput{
		Key:         key,
		BuyerWallet: parcel.OwnerWallet,
		Shares:      10,
		PricePaid:   decimal.NewFromInt(50),
		TxRef:       "0xtx-self",
		ChainType:   domain.ChainTypeEscrow,
		PurchasedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrSelfTradeRejected)

	// More than listed
	_, _, err = s.SettlePurchase(ctx, SettlePurchaseInput{
		Key:         key,
		BuyerWallet: buyer,
		Shares:      201,
		PricePaid:   decimal.NewFromInt(1005),
		TxRef:       "0xtx-over",
		ChainType:   domain.ChainTypeEscrow,
		PurchasedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientListedShares)

	updated, holding, err := s.SettlePurchase(ctx, SettlePurchaseInput{
		Key:         key,
		BuyerWallet: buyer,
		Shares:      150,
		PricePaid:   decimal.NewFromInt(750),
		PlatformFee: decimal.NewFromInt(19),
		TxRef:       "0xtx-1",
		ChainType:   domain.ChainTypeEscrow,
		PurchasedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(50), updated.ListedShares)
	require.NotNil(t, updated.AvailableShares)
	assert.Equal(t, domain.TotalSharesPerParcel-150, *updated.AvailableShares)
	assert.Equal(t, int64(150), updated.SharesSold())
	assert.True(t, updated.Listed)
	assert.Equal(t, int64(150), holding.SharesOwned)
	assert.True(t, decimal.NewFromInt(750).Equal(holding.PricePaid))
	assert.True(t, decimal.NewFromInt(19).Equal(holding.PlatformFee))

	// The settlement reference finds the recorded holding
	byRef, err := s.GetHoldingByTxRef(ctx, "0xtx-1")
	require.NoError(t, err)
	require.NotNil(t, byRef)
	assert.Equal(t, int64(150), byRef.SharesOwned)

	byRef, err = s.GetHoldingByTxRef(ctx, "0xtx-unknown")
	require.NoError(t, err)
	assert.Nil(t, byRef)

	// A racing buyer sees the post-decrement count
	_, _, err = s.SettlePurchase(ctx, SettlePurchaseInput{
		Key:         key,
		BuyerWallet: buyer,
		Shares:      51,
		PricePaid:   decimal.NewFromInt(255),
		TxRef:       "0xtx-2",
		ChainType:   domain.ChainTypeEscrow,
		PurchasedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientListedShares)

	// Buying out the listing delists the parcel
	updated, _, err = s.SettlePurchase(ctx, SettlePurchaseInput{
		Key:         key,
		BuyerWallet: buyer,
		Shares:      50,
		PricePaid:   decimal.NewFromInt(250),
		TxRef:       "0xtx-3",
		ChainType:   domain.ChainTypeEscrow,
		PurchasedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.False(t, updated.Listed)
	assert.Equal(t, int64(0), updated.ListedShares)
	assert.Equal(t, int64(200), updated.SharesSold())

	// No listing left to buy from
	_, _, err = s.SettlePurchase(ctx, SettlePurchaseInput{
		Key:         key,
		BuyerWallet: buyer,
		Shares:      1,
		PricePaid:   decimal.NewFromInt(5),
		TxRef:       "0xtx-4",
		ChainType:   domain.ChainTypeEscrow,
		PurchasedAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func testGetActiveListings(t *testing.T, s Store) {
	ctx := context.Background()

	cookParcel := createApprovedParcel(t, s, "10-01-100-009-0000", "cook")
	lakeParcel := createApprovedParcel(t, s, "10-01-100-010-0000", "lake")
	createApprovedParcel(t, s, "10-01-100-011-0000", "cook") // approved but never listed

	listParcel(t, s, cookParcel, 100, "5")
	listParcel(t, s, lakeParcel, 200, "7")

	all, err := s.GetActiveListings(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	county := "cook"
	cookOnly, err := s.GetActiveListings(ctx, &county)
	require.NoError(t, err)
	require.Len(t, cookOnly, 1)
	assert.Equal(t, cookParcel.PIN, cookOnly[0].PIN)
}

func testHoldingsAndOwnedParcels(t *testing.T, s Store) {
	ctx := context.Background()

	parcel := createApprovedParcel(t, s, "10-01-100-012-0000", "cook")
	key := domain.NewParcelKey(parcel.PIN, parcel.CountyID)
	listParcel(t, s, parcel, 300, "4")

	buyer := "0x4444444444444444444444444444444444444444"
	for i, shares := range []int64{100, 50} {
		_, _, err := s.SettlePurchase(ctx, SettlePurchaseInput{
			Key:         key,
			BuyerWallet: buyer,
			Shares:      shares,
			PricePaid:   decimal.NewFromInt(shares * 4),
			TxRef:       fmt.Sprintf("0xtx-%d", i),
			ChainType:   domain.ChainTypeEscrow,
			PurchasedAt: time.Now().UTC().Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	holdings, err := s.GetHoldingsByBuyer(ctx, buyer)
	require.NoError(t, err)
	require.Len(t, holdings, 2)
	// Newest first
	assert.Equal(t, int64(50), holdings[0].SharesOwned)
	assert.Equal(t, int64(100), holdings[1].SharesOwned)

	// Buying shares never transfers deed ownership
	owned, err := s.GetParcelsByOwner(ctx, parcel.OwnerWallet)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, parcel.PIN, owned[0].PIN)
	assert.Equal(t, int64(150), owned[0].SharesSold())

	none, err := s.GetParcelsByOwner(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testReconciliationTasks(t *testing.T, s Store) {
	ctx := context.Background()

	task := &schema.ReconciliationTask{
		Kind:          schema.ReconciliationKindMint,
		ClaimID:       "claim-recon-1",
		PIN:           "10-01-100-013-0000",
		CountyID:      "cook",
		NFTRef:        "0xcontract/13",
		ShareTokenRef: "0xshare-13",
		Status:        schema.ReconciliationPending,
		Detail:        "connection reset",
	}
	require.NoError(t, s.CreateReconciliationTask(ctx, task))

	pending, err := s.GetPendingReconciliationTasks(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "claim-recon-1", pending[0].ClaimID)
	assert.Equal(t, schema.ReconciliationKindMint, pending[0].Kind)

	err = s.ResolveReconciliationTask(ctx, pending[0].ID, time.Now().UTC())
	require.NoError(t, err)

	pending, err = s.GetPendingReconciliationTasks(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

// RunStoreTests runs all store tests against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"CreateClaim", testCreateClaim},
		{"ResubmitRejectedClaim", testResubmitRejectedClaim},
		{"ApproveClaim", testApproveClaim},
		{"RejectClaim", testRejectClaim},
		{"DeployedAssetIndex", testDeployedAssetIndex},
		{"ListShares", testListShares},
		{"ListSharesRequiresApproval", testListSharesRequiresApproval},
		{"SettlePurchase", testSettlePurchase},
		{"GetActiveListings", testGetActiveListings},
		{"HoldingsAndOwnedParcels", testHoldingsAndOwnedParcels},
		{"ReconciliationTasks", testReconciliationTasks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, s)
		})
	}
}
