// Package settlement orchestrates the list and buy operations over approved
// parcel tokens. The engine owns the share-count invariants: it validates a
// request against the current registry state, delegates the value movement to
// the chain adapter selected by the parcel's chain type, and commits the
// share decrement and the holding insert in one storage transaction.
package settlement

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
	"github.com/jonumhills/townhall-rwa/internal/chain"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/messaging"
	"github.com/jonumhills/townhall-rwa/internal/store"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// ListRequest asks to offer part of the owner's available shares for sale.
// Listing an already-listed parcel replaces the listed amount and price.
type ListRequest struct {
	PIN           string
	CountyID      string
	OwnerWallet   string
	Shares        int64
	PricePerShare decimal.Decimal
}

// BuyRequest asks to purchase shares from a parcel's active listing
type BuyRequest struct {
	PIN         string
	CountyID    string
	BuyerWallet string
	Shares      int64
}

// BuyResult reports a completed purchase. Partial marks an escrow purchase
// whose chain settlement committed but whose registry write failed; the
// reconciler replays the write from the recorded task and Parcel and Holding
// are nil until then.
type BuyResult struct {
	Parcel         *schema.ParcelToken
	Holding        *schema.ShareHolding
	TxRef          string
	TotalPrice     decimal.Decimal
	PlatformFee    decimal.Decimal
	SellerReceives decimal.Decimal
	Partial        bool
}

// Engine defines the settlement operations
//
//go:generate mockgen -source=engine.go -destination=../mocks/settlement.go -package=mocks -mock_names=Engine=MockSettlementEngine
type Engine interface {
	// List creates or replaces the parcel's listing
	List(ctx context.Context, req ListRequest) (*schema.ParcelToken, error)
	// Buy purchases shares from the parcel's active listing
	Buy(ctx context.Context, req BuyRequest) (*BuyResult, error)
}

type engine struct {
	store      store.Store
	adapters   chain.Adapters
	publisher  messaging.Publisher
	clock      adapter.Clock
	json       adapter.JSON
	feePercent decimal.Decimal
}

// NewEngine creates the settlement engine. feePercent is applied as given,
// including zero for a fee-free deployment; callers resolve defaults.
func NewEngine(s store.Store, adapters chain.Adapters, publisher messaging.Publisher, clock adapter.Clock, jsonAdapter adapter.JSON, feePercent decimal.Decimal) Engine {
	return &engine{
		store:      s,
		adapters:   adapters,
		publisher:  publisher,
		clock:      clock,
		json:       jsonAdapter,
		feePercent: feePercent,
	}
}

// List creates or replaces a listing. Listing is a metadata update in both
// settlement models: escrow custody changes happen contract-side when the
// purchase settles, and operator-ledger shares never leave the treasury.
func (e *engine) List(ctx context.Context, req ListRequest) (*schema.ParcelToken, error) {
	key := domain.NewParcelKey(req.PIN, req.CountyID)
	if !key.Valid() {
		return nil, fmt.Errorf("%w: missing pin or county", domain.ErrInvalidInput)
	}
	if req.Shares <= 0 {
		return nil, domain.ErrInvalidShareAmount
	}
	if !req.PricePerShare.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	parcel, err := e.store.GetParcel(ctx, key)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, domain.ErrTokenNotFound
	}
	if parcel.VerificationStatus != domain.VerificationApproved || parcel.AvailableShares == nil {
		return nil, domain.ErrNotApproved
	}
	if !domain.SameWallet(parcel.ChainType, parcel.OwnerWallet, req.OwnerWallet) {
		return nil, domain.ErrNotOwner
	}
	if req.Shares > *parcel.AvailableShares {
		return nil, domain.ErrInsufficientAvailableShares
	}
	// Escrow settlement amounts go on-chain as whole native units, so a price
	// that can produce a fractional split cannot be listed.
	if parcel.ChainType == domain.ChainTypeEscrow && !req.PricePerShare.IsInteger() {
		return nil, fmt.Errorf("%w: escrow listings require a whole-unit price", domain.ErrInvalidPrice)
	}

	// The store re-checks everything under the row lock; the reads above only
	// fail fast before taking it.
	updated, err := e.store.ListShares(ctx, store.ListSharesInput{
		Key:           key,
		OwnerWallet:   req.OwnerWallet,
		Shares:        req.Shares,
		PricePerShare: req.PricePerShare,
		ListedAt:      e.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	e.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventSharesListed,
		PIN:       key.PIN,
		CountyID:  key.CountyID,
		ChainType: updated.ChainType,
		Wallet:    updated.OwnerWallet,
		Shares:    updated.ListedShares,
		Price:     updated.PricePerShare,
	})

	return updated, nil
}

// Buy purchases shares from an active listing. The chain call happens before
// the storage transaction opens and never while holding the row lock; a chain
// failure or timeout aborts the operation with no storage mutation, so a buy
// that fails before settling is always safe to retry from scratch. A registry
// failure after an escrow settle instead degrades to a partial result backed
// by a reconciliation task.
func (e *engine) Buy(ctx context.Context, req BuyRequest) (*BuyResult, error) {
	key := domain.NewParcelKey(req.PIN, req.CountyID)
	if !key.Valid() {
		return nil, fmt.Errorf("%w: missing pin or county", domain.ErrInvalidInput)
	}
	if req.Shares <= 0 {
		return nil, domain.ErrInvalidShareAmount
	}

	parcel, err := e.store.GetParcel(ctx, key)
	if err != nil {
		return nil, err
	}
	if parcel == nil || !parcel.Listed || parcel.ListedShares <= 0 {
		return nil, domain.ErrListingNotFound
	}
	if parcel.VerificationStatus != domain.VerificationApproved || parcel.ShareTokenRef == nil {
		return nil, domain.ErrNotApproved
	}
	if domain.SameWallet(parcel.ChainType, parcel.OwnerWallet, req.BuyerWallet) {
		return nil, domain.ErrSelfTradeRejected
	}
	if req.Shares > parcel.ListedShares {
		return nil, domain.ErrInsufficientListedShares
	}

	chainAdapter, ok := e.adapters.Get(parcel.ChainType)
	if !ok {
		return nil, fmt.Errorf("no adapter configured for chain type %s", parcel.ChainType)
	}

	split := SplitPrice(req.Shares, parcel.PricePerShare, e.feePercent)

	receipt, err := chainAdapter.Settle(ctx, chain.SettleRequest{
		Key:            key,
		ShareTokenRef:  *parcel.ShareTokenRef,
		SellerWallet:   parcel.OwnerWallet,
		BuyerWallet:    req.BuyerWallet,
		Shares:         req.Shares,
		TotalPrice:     split.TotalPrice,
		SellerReceives: split.SellerReceives,
		PlatformFee:    split.PlatformFee,
	})
	if err != nil {
		return nil, err
	}

	input := store.SettlePurchaseInput{
		Key:         key,
		BuyerWallet: domain.NormalizeWallet(parcel.ChainType, req.BuyerWallet),
		Shares:      req.Shares,
		PricePaid:   split.TotalPrice,
		PlatformFee: split.PlatformFee,
		TxRef:       receipt.TxRef,
		ChainType:   parcel.ChainType,
		PurchasedAt: e.clock.Now().UTC(),
	}
	updated, holding, err := e.store.SettlePurchase(ctx, input)
	if err != nil {
		// The chain settlement already committed. The operator-ledger settle
		// moves nothing until the registry write lands, so the caller can
		// retry the whole buy; the escrow swap is final, so a retry would
		// settle value twice. Record a reconciliation task instead and let
		// the reconciler replay the registry write from it.
		logger.ErrorCtx(ctx, err,
			zap.String("parcel", key.String()),
			zap.String("tx_ref", receipt.TxRef),
			zap.Int64("shares", req.Shares))
		if parcel.ChainType != domain.ChainTypeEscrow {
			return nil, err
		}
		return e.reportPartialSettlement(ctx, parcel, input, split, err)
	}

	e.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventSharesPurchased,
		PIN:       key.PIN,
		CountyID:  key.CountyID,
		ChainType: updated.ChainType,
		Wallet:    holding.BuyerWallet,
		Shares:    holding.SharesOwned,
		Price:     holding.PricePaid,
		TxRef:     holding.TxRef,
	})

	return &BuyResult{
		Parcel:         updated,
		Holding:        holding,
		TxRef:          receipt.TxRef,
		TotalPrice:     split.TotalPrice,
		PlatformFee:    split.PlatformFee,
		SellerReceives: split.SellerReceives,
	}, nil
}

// reportPartialSettlement handles the escrow settled/registry-failed case: the
// settlement input is persisted as a reconciliation task and the purchase is
// returned to the caller as a degraded success. The chain is never re-invoked;
// the reconciler replays the registry write from the recorded input.
func (e *engine) reportPartialSettlement(ctx context.Context, parcel *schema.ParcelToken, input store.SettlePurchaseInput, split FeeSplit, cause error) (*BuyResult, error) {
	raw, err := e.json.Marshal(input)
	if err != nil {
		raw = nil
	}
	task := &schema.ReconciliationTask{
		Kind:          schema.ReconciliationKindPurchase,
		ClaimID:       parcel.ClaimID,
		PIN:           parcel.PIN,
		CountyID:      parcel.CountyID,
		NFTRef:        refOrEmpty(parcel.NFTRef),
		ShareTokenRef: refOrEmpty(parcel.ShareTokenRef),
		Status:        schema.ReconciliationPending,
		Detail:        cause.Error(),
		Receipt:       raw,
	}
	if err := e.store.CreateReconciliationTask(ctx, task); err != nil {
		// Worst case: the settlement only lives in the error log; the chain
		// transaction reference there is enough for a manual replay.
		logger.ErrorCtx(ctx, err,
			zap.String("parcel", parcel.PIN),
			zap.String("tx_ref", input.TxRef))
	}

	e.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventPurchasePartialFailure,
		PIN:       parcel.PIN,
		CountyID:  parcel.CountyID,
		ChainType: parcel.ChainType,
		Wallet:    input.BuyerWallet,
		Shares:    input.Shares,
		TxRef:     input.TxRef,
	})

	return &BuyResult{
		TxRef:          input.TxRef,
		TotalPrice:     split.TotalPrice,
		PlatformFee:    split.PlatformFee,
		SellerReceives: split.SellerReceives,
		Partial:        true,
	}, nil
}

func refOrEmpty(ref *string) string {
	if ref == nil {
		return ""
	}
	return *ref
}

// publish sends a registry event; delivery is best effort and never fails the
// committed operation
func (e *engine) publish(ctx context.Context, event *domain.ParcelEvent) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.PublishParcelEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish parcel event",
			zap.String("event_type", string(event.EventType)),
			zap.String("pin", event.PIN),
			zap.Error(err))
	}
}
