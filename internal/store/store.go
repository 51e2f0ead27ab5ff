package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// CreateClaimInput holds the fields for a new tokenization claim
type CreateClaimInput struct {
	ClaimID     string
	PIN         string
	CountyID    string
	ChainType   domain.ChainType
	OwnerWallet string
	DeedURL     string
	PriceHint   *decimal.Decimal
}

// ApproveClaimInput holds the fields written when a claim is approved.
// The chain references were already obtained from the adapter.
type ApproveClaimInput struct {
	ClaimID       string
	NFTRef        string
	ShareTokenRef string
	TotalShares   int64
	Reviewer      string
	ReviewNotes   *string
	DecidedAt     time.Time
}

// RejectClaimInput holds the fields written when a claim is rejected
type RejectClaimInput struct {
	ClaimID     string
	Reviewer    string
	ReviewNotes *string
	DecidedAt   time.Time
}

// ListSharesInput holds the fields for a listing mutation
type ListSharesInput struct {
	Key           domain.ParcelKey
	OwnerWallet   string
	Shares        int64
	PricePerShare decimal.Decimal
	ListedAt      time.Time
}

// SettlePurchaseInput holds the fields for the atomic buy mutation. The chain
// settlement already succeeded; TxRef comes from the adapter receipt.
type SettlePurchaseInput struct {
	Key         domain.ParcelKey
	BuyerWallet string
	Shares      int64
	PricePaid   decimal.Decimal
	PlatformFee decimal.Decimal
	TxRef       string
	ChainType   domain.ChainType
	PurchasedAt time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreateClaim inserts a pending claim row, or resurrects a rejected row
	// for the same parcel. Returns domain.ErrDuplicateClaim when a pending or
	// approved row already exists.
	CreateClaim(ctx context.Context, input CreateClaimInput) (*schema.ParcelToken, error)
	// GetClaimByID retrieves a claim row by its claim ID; nil when absent
	GetClaimByID(ctx context.Context, claimID string) (*schema.ParcelToken, error)
	// GetParcel retrieves the parcel token row for a parcel key; nil when absent
	GetParcel(ctx context.Context, key domain.ParcelKey) (*schema.ParcelToken, error)
	// RejectClaim marks a pending claim rejected; terminal
	RejectClaim(ctx context.Context, input RejectClaimInput) error
	// ApproveClaim marks a pending claim approved and populates the chain
	// references and the full share supply in one transaction
	ApproveClaim(ctx context.Context, input ApproveClaimInput) error

	// RecordDeployedAsset writes the mint idempotency index row. Returns
	// domain.ErrAlreadyMinted when assets were already recorded for the parcel.
	RecordDeployedAsset(ctx context.Context, asset *schema.DeployedAsset) error
	// GetDeployedAsset retrieves the idempotency row for a parcel key; nil when absent
	GetDeployedAsset(ctx context.Context, key domain.ParcelKey) (*schema.DeployedAsset, error)

	// ListShares replaces the parcel's listing under the row lock, re-checking
	// ownership and available shares inside the transaction
	ListShares(ctx context.Context, input ListSharesInput) (*schema.ParcelToken, error)
	// SettlePurchase performs the atomic compare-and-decrement of listed and
	// available shares plus the holding insert; a racing buyer observes the
	// post-decrement count and fails with domain.ErrInsufficientListedShares
	SettlePurchase(ctx context.Context, input SettlePurchaseInput) (*schema.ParcelToken, *schema.ShareHolding, error)

	// GetActiveListings retrieves rows with listed=true and listed_shares>0,
	// optionally scoped to a county
	GetActiveListings(ctx context.Context, countyID *string) ([]*schema.ParcelToken, error)
	// GetHoldingsByBuyer retrieves a buyer's purchase rows, newest first
	GetHoldingsByBuyer(ctx context.Context, buyerWallet string) ([]*schema.ShareHolding, error)
	// GetHoldingByTxRef retrieves the purchase row recorded for a settlement
	// transaction, or nil when no purchase references it
	GetHoldingByTxRef(ctx context.Context, txRef string) (*schema.ShareHolding, error)
	// GetParcelsByOwner retrieves approved parcel rows owned by a wallet
	GetParcelsByOwner(ctx context.Context, ownerWallet string) ([]*schema.ParcelToken, error)

	// CreateReconciliationTask records a partial failure for out-of-band repair
	CreateReconciliationTask(ctx context.Context, task *schema.ReconciliationTask) error
	// GetPendingReconciliationTasks retrieves unresolved tasks, oldest first
	GetPendingReconciliationTasks(ctx context.Context, limit int) ([]*schema.ReconciliationTask, error)
	// ResolveReconciliationTask marks a task resolved
	ResolveReconciliationTask(ctx context.Context, taskID int64, resolvedAt time.Time) error
}
