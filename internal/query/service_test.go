package query_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/mocks"
	"github.com/jonumhills/townhall-rwa/internal/query"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

type testQueryMocks struct {
	ctrl    *gomock.Controller
	store   *mocks.MockStore
	service query.Service
}

func setupTestQuery(t *testing.T) *testQueryMocks {
	ctrl := gomock.NewController(t)
	m := &testQueryMocks{
		ctrl:  ctrl,
		store: mocks.NewMockStore(ctrl),
	}
	m.service = query.NewService(m.store)
	t.Cleanup(ctrl.Finish)
	return m
}

func TestListActiveListings(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	total := domain.TotalSharesPerParcel
	available := int64(800)
	m.store.EXPECT().GetActiveListings(ctx, gomock.Nil()).Return([]*schema.ParcelToken{
		{
			PIN:             "10-01-100-001-0000",
			CountyID:        "cook",
			ChainType:       domain.ChainTypeEscrow,
			OwnerWallet:     "0xaaaa",
			TotalShares:     &total,
			AvailableShares: &available,
			ListedShares:    150,
			PricePerShare:   decimal.NewFromInt(5),
			Listed:          true,
		},
	}, nil)

	listings, err := m.service.ListActiveListings(ctx, nil)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, int64(150), listings[0].ListedShares)
	assert.Equal(t, int64(200), listings[0].SharesSold)
}

func TestListActiveListingsNormalizesCountyFilter(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	m.store.EXPECT().GetActiveListings(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, countyID *string) ([]*schema.ParcelToken, error) {
			require.NotNil(t, countyID)
			assert.Equal(t, "cook", *countyID)
			return nil, nil
		})

	county := "  Cook "
	_, err := m.service.ListActiveListings(ctx, &county)
	require.NoError(t, err)
}

func TestGetPortfolio(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	now := time.Now().UTC()
	m.store.EXPECT().GetHoldingsByBuyer(ctx, "0xbbbb").Return([]*schema.ShareHolding{
		{PIN: "10-01-100-001-0000", CountyID: "cook", BuyerWallet: "0xbbbb", SharesOwned: 100, PricePaid: decimal.NewFromInt(500), TxRef: "0xtx1", PurchasedAt: now},
		{PIN: "10-01-100-001-0000", CountyID: "cook", BuyerWallet: "0xbbbb", SharesOwned: 50, PricePaid: decimal.NewFromInt(250), TxRef: "0xtx2", PurchasedAt: now},
		{PIN: "20-02-200-002-0000", CountyID: "lake", BuyerWallet: "0xbbbb", SharesOwned: 10, PricePaid: decimal.NewFromInt(70), TxRef: "0xtx3", PurchasedAt: now},
	}, nil)

	portfolio, err := m.service.GetPortfolio(ctx, "0xbbbb")
	require.NoError(t, err)
	assert.Equal(t, "0xbbbb", portfolio.Wallet)
	require.Len(t, portfolio.Positions, 2)

	// Purchases in one parcel aggregate into a single position
	cook := portfolio.Positions[0]
	assert.Equal(t, "10-01-100-001-0000", cook.PIN)
	assert.Equal(t, int64(150), cook.TotalShares)
	assert.True(t, decimal.NewFromInt(750).Equal(cook.TotalPaid))
	assert.Len(t, cook.Purchases, 2)

	lake := portfolio.Positions[1]
	assert.Equal(t, int64(10), lake.TotalShares)
	assert.True(t, decimal.NewFromInt(70).Equal(lake.TotalPaid))
}

func TestGetPortfolioNormalizesChecksummedWallet(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	// Holdings store the canonical lowercase form of hex addresses
	m.store.EXPECT().GetHoldingsByBuyer(ctx, "0xbbbb").Return([]*schema.ShareHolding{
		{PIN: "10-01-100-001-0000", CountyID: "cook", BuyerWallet: "0xbbbb", SharesOwned: 100, PricePaid: decimal.NewFromInt(500), TxRef: "0xtx1", PurchasedAt: time.Now().UTC()},
	}, nil)

	portfolio, err := m.service.GetPortfolio(ctx, "0xBBBB")
	require.NoError(t, err)
	require.Len(t, portfolio.Positions, 1)
	assert.Equal(t, "0xbbbb", portfolio.Wallet)
}

func TestGetPortfolioKeepsOperatorLedgerAccountVerbatim(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	m.store.EXPECT().GetHoldingsByBuyer(ctx, "0.0.1234").Return(nil, nil)

	portfolio, err := m.service.GetPortfolio(ctx, "0.0.1234")
	require.NoError(t, err)
	assert.Equal(t, "0.0.1234", portfolio.Wallet)
}

func TestGetPortfolioEmpty(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	m.store.EXPECT().GetHoldingsByBuyer(ctx, "0xcccc").Return(nil, nil)

	portfolio, err := m.service.GetPortfolio(ctx, "0xcccc")
	require.NoError(t, err)
	assert.Empty(t, portfolio.Positions)
}

func TestGetOwnedParcelsNormalizesWallet(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	m.store.EXPECT().GetParcelsByOwner(ctx, "0xaaaa").Return(nil, nil)

	owned, err := m.service.GetOwnedParcels(ctx, "0xAAAA")
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestGetOwnedParcels(t *testing.T) {
	m := setupTestQuery(t)
	ctx := context.Background()

	total := domain.TotalSharesPerParcel
	available := int64(850)
	nftRef := "0xcontract/7"
	shareRef := "0xshare"
	m.store.EXPECT().GetParcelsByOwner(ctx, "0xaaaa").Return([]*schema.ParcelToken{
		{
			PIN:             "10-01-100-001-0000",
			CountyID:        "cook",
			ChainType:       domain.ChainTypeEscrow,
			NFTRef:          &nftRef,
			ShareTokenRef:   &shareRef,
			TotalShares:     &total,
			AvailableShares: &available,
			ListedShares:    100,
			Listed:          true,
			PricePerShare:   decimal.NewFromInt(5),
		},
	}, nil)

	owned, err := m.service.GetOwnedParcels(ctx, "0xaaaa")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "0xcontract/7", owned[0].NFTRef)
	assert.Equal(t, int64(150), owned[0].SharesSold)
	assert.Equal(t, int64(850), owned[0].AvailableShares)
}
