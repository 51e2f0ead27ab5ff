package claims_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonumhills/townhall-rwa/internal/chain"
	"github.com/jonumhills/townhall-rwa/internal/claims"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/mocks"
	"github.com/jonumhills/townhall-rwa/internal/providers/parcelregistry"
	"github.com/jonumhills/townhall-rwa/internal/store"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const testWallet = "0xcccccccccccccccccccccccccccccccccccccccc"

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

type testServiceMocks struct {
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	registry  *mocks.MockParcelRegistryClient
	adapter   *mocks.MockChainAdapter
	publisher *mocks.MockPublisher
	clock     *mocks.MockClock
	json      *mocks.MockJSON
	service   claims.Service
}

func setupTestService(t *testing.T) *testServiceMocks {
	ctrl := gomock.NewController(t)

	tm := &testServiceMocks{
		ctrl:      ctrl,
		store:     mocks.NewMockStore(ctrl),
		registry:  mocks.NewMockParcelRegistryClient(ctrl),
		adapter:   mocks.NewMockChainAdapter(ctrl),
		publisher: mocks.NewMockPublisher(ctrl),
		clock:     mocks.NewMockClock(ctrl),
		json:      mocks.NewMockJSON(ctrl),
	}

	tm.clock.EXPECT().Now().Return(testNow).AnyTimes()
	tm.publisher.EXPECT().PublishParcelEvent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	adapters := chain.Adapters{domain.ChainTypeEscrow: tm.adapter}
	tm.service = claims.NewService(tm.store, tm.registry, adapters, tm.publisher, tm.clock, tm.json)

	t.Cleanup(ctrl.Finish)
	return tm
}

func pendingClaim() *schema.ParcelToken {
	return &schema.ParcelToken{
		ID:                 1,
		ClaimID:            "claim-1",
		PIN:                "14-21-106-017-0000",
		CountyID:           "cook",
		ChainType:          domain.ChainTypeEscrow,
		OwnerWallet:        testWallet,
		DeedURL:            "https://deeds.example.org/doc/1",
		VerificationStatus: domain.VerificationPending,
	}
}

func TestSubmitClaim(t *testing.T) {
	ctx := context.Background()

	validReq := func() claims.SubmitRequest {
		return claims.SubmitRequest{
			PIN:         "14-21-106-017-0000",
			CountyID:    "cook",
			OwnerWallet: testWallet,
			ChainType:   domain.ChainTypeEscrow,
			DeedURL:     "https://deeds.example.org/doc/1",
		}
	}

	t.Run("missing pin", func(t *testing.T) {
		tm := setupTestService(t)
		req := validReq()
		req.PIN = ""
		_, err := tm.service.SubmitClaim(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown chain type", func(t *testing.T) {
		tm := setupTestService(t)
		req := validReq()
		req.ChainType = "sidechain"
		_, err := tm.service.SubmitClaim(ctx, req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("pin not in county registry", func(t *testing.T) {
		tm := setupTestService(t)
		tm.registry.EXPECT().LookupParcel(ctx, "14-21-106-017-0000", "cook").
			Return(&parcelregistry.ParcelInfo{Exists: false}, nil)

		_, err := tm.service.SubmitClaim(ctx, validReq())
		assert.ErrorIs(t, err, domain.ErrParcelNotFound)
	})

	t.Run("duplicate claim for parcel", func(t *testing.T) {
		tm := setupTestService(t)
		tm.registry.EXPECT().LookupParcel(ctx, gomock.Any(), gomock.Any()).
			Return(&parcelregistry.ParcelInfo{Exists: true}, nil)
		tm.store.EXPECT().CreateClaim(ctx, gomock.Any()).
			Return(nil, domain.ErrDuplicateClaim)

		_, err := tm.service.SubmitClaim(ctx, validReq())
		assert.ErrorIs(t, err, domain.ErrDuplicateClaim)
	})

	t.Run("successful submission normalizes the wallet", func(t *testing.T) {
		tm := setupTestService(t)
		tm.registry.EXPECT().LookupParcel(ctx, gomock.Any(), gomock.Any()).
			Return(&parcelregistry.ParcelInfo{Exists: true}, nil)
		tm.store.EXPECT().CreateClaim(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.CreateClaimInput) (*schema.ParcelToken, error) {
				assert.NotEmpty(t, input.ClaimID)
				assert.Equal(t, testWallet, input.OwnerWallet)
				row := pendingClaim()
				row.ClaimID = input.ClaimID
				return row, nil
			})

		req := validReq()
		req.OwnerWallet = "0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"
		parcel, err := tm.service.SubmitClaim(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, domain.VerificationPending, parcel.VerificationStatus)
	})
}

func TestGetClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown claim", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "nope").Return(nil, nil)

		_, err := tm.service.GetClaim(ctx, "nope")
		assert.ErrorIs(t, err, domain.ErrClaimNotFound)
	})

	t.Run("found", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(pendingClaim(), nil)

		parcel, err := tm.service.GetClaim(ctx, "claim-1")
		require.NoError(t, err)
		assert.Equal(t, "claim-1", parcel.ClaimID)
	})
}

func TestDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown claim", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "nope").Return(nil, nil)

		_, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "nope", Reviewer: "admin"})
		assert.ErrorIs(t, err, domain.ErrClaimNotFound)
	})

	t.Run("already decided", func(t *testing.T) {
		tm := setupTestService(t)
		decided := pendingClaim()
		decided.VerificationStatus = domain.VerificationApproved
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(decided, nil)

		_, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "claim-1", Approved: true, Reviewer: "admin"})
		assert.ErrorIs(t, err, domain.ErrClaimNotPending)
	})

	t.Run("rejection never touches the chain", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(pendingClaim(), nil)
		tm.store.EXPECT().RejectClaim(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.RejectClaimInput) error {
				assert.Equal(t, "admin", input.Reviewer)
				assert.Equal(t, testNow, input.DecidedAt)
				return nil
			})

		result, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "claim-1", Approved: false, Reviewer: "admin"})
		require.NoError(t, err)
		assert.Equal(t, domain.VerificationRejected, result.Status)
		assert.False(t, result.Partial)
	})

	t.Run("approval mints and records the refs", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(pendingClaim(), nil)
		tm.store.EXPECT().GetDeployedAsset(ctx, gomock.Any()).Return(nil, nil)
		tm.adapter.EXPECT().Mint(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req chain.MintRequest) (*chain.MintReceipt, error) {
				assert.Equal(t, testWallet, req.OwnerWallet)
				return &chain.MintReceipt{
					NFTRef:        "0xcontract/42",
					ShareTokenRef: "0xshare",
					TotalShares:   domain.TotalSharesPerParcel,
				}, nil
			})
		tm.store.EXPECT().ApproveClaim(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, input store.ApproveClaimInput) error {
				assert.Equal(t, "0xcontract/42", input.NFTRef)
				assert.Equal(t, "0xshare", input.ShareTokenRef)
				assert.Equal(t, int64(domain.TotalSharesPerParcel), input.TotalShares)
				return nil
			})
		approved := pendingClaim()
		approved.VerificationStatus = domain.VerificationApproved
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(approved, nil)

		result, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "claim-1", Approved: true, Reviewer: "admin"})
		require.NoError(t, err)
		assert.Equal(t, domain.VerificationApproved, result.Status)
		assert.False(t, result.Partial)
		assert.Equal(t, "0xcontract/42", result.NFTRef)
	})

	t.Run("approval retry reuses recorded assets without minting", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(pendingClaim(), nil)
		tm.store.EXPECT().GetDeployedAsset(ctx, gomock.Any()).Return(&schema.DeployedAsset{
			PIN:           "14-21-106-017-0000",
			CountyID:      "cook",
			NFTRef:        "0xcontract/42",
			ShareTokenRef: "0xshare",
		}, nil)
		// No Mint expectation: a second mint would fail ctrl.Finish
		tm.store.EXPECT().ApproveClaim(ctx, gomock.Any()).Return(nil)
		approved := pendingClaim()
		approved.VerificationStatus = domain.VerificationApproved
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(approved, nil)

		result, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "claim-1", Approved: true, Reviewer: "admin"})
		require.NoError(t, err)
		assert.Equal(t, "0xcontract/42", result.NFTRef)
	})

	t.Run("chain mint failure fails the decision cleanly", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(pendingClaim(), nil)
		tm.store.EXPECT().GetDeployedAsset(ctx, gomock.Any()).Return(nil, nil)
		tm.adapter.EXPECT().Mint(ctx, gomock.Any()).
			Return(nil, domain.ErrChainSettlementFailed)

		_, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "claim-1", Approved: true, Reviewer: "admin"})
		assert.ErrorIs(t, err, domain.ErrChainSettlementFailed)
	})

	t.Run("registry failure after mint is a degraded success", func(t *testing.T) {
		tm := setupTestService(t)
		tm.store.EXPECT().GetClaimByID(ctx, "claim-1").Return(pendingClaim(), nil)
		tm.store.EXPECT().GetDeployedAsset(ctx, gomock.Any()).Return(nil, nil)
		tm.adapter.EXPECT().Mint(ctx, gomock.Any()).Return(&chain.MintReceipt{
			NFTRef:        "0xcontract/42",
			ShareTokenRef: "0xshare",
			TotalShares:   domain.TotalSharesPerParcel,
		}, nil)
		tm.store.EXPECT().ApproveClaim(ctx, gomock.Any()).
			Return(errors.New("connection reset"))
		tm.json.EXPECT().Marshal(gomock.Any()).Return([]byte(`{}`), nil)
		tm.store.EXPECT().CreateReconciliationTask(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, task *schema.ReconciliationTask) error {
				assert.Equal(t, schema.ReconciliationKindMint, task.Kind)
				assert.Equal(t, "claim-1", task.ClaimID)
				assert.Equal(t, "0xcontract/42", task.NFTRef)
				assert.Equal(t, schema.ReconciliationPending, task.Status)
				return nil
			})

		result, err := tm.service.Decide(ctx, claims.DecideRequest{ClaimID: "claim-1", Approved: true, Reviewer: "admin"})
		require.NoError(t, err)
		assert.True(t, result.Partial)
		assert.Equal(t, "0xcontract/42", result.NFTRef)
		assert.Equal(t, "0xshare", result.ShareTokenRef)
		assert.Equal(t, domain.VerificationPending, result.Status)
	})
}
