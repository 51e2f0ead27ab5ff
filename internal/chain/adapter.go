package chain

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// MintRequest asks a backend to mint the deed NFT and create the fungible
// share asset with the full supply for a verified parcel.
type MintRequest struct {
	Key         domain.ParcelKey
	OwnerWallet string
	DeedRef     string
}

// MintReceipt is returned once both assets exist on the backend.
type MintReceipt struct {
	NFTRef        string `json:"nft_ref"`
	ShareTokenRef string `json:"share_token_ref"`
	TotalShares   int64  `json:"total_shares"`
}

// SettleRequest asks a backend to move shares and the payment split for a
// purchase. Amounts were already split by the settlement engine; adapters
// never re-derive the fee.
type SettleRequest struct {
	Key            domain.ParcelKey
	ShareTokenRef  string
	SellerWallet   string
	BuyerWallet    string
	Shares         int64
	TotalPrice     decimal.Decimal
	SellerReceives decimal.Decimal
	PlatformFee    decimal.Decimal
}

// SettleReceipt reports a definitive settlement outcome.
type SettleReceipt struct {
	TxRef          string          `json:"tx_ref"`
	SellerReceived decimal.Decimal `json:"seller_received"`
	PlatformFee    decimal.Decimal `json:"platform_fee"`
}

// AssetRegistrar is the persisted "deployed assets" index adapters consult so
// Mint stays idempotent per parcel even when a post-mint registry write failed.
// It is guarded independently of the parcel row lock so mint-retry logic never
// holds that lock across a chain call.
//
//go:generate mockgen -source=adapter.go -destination=../mocks/chain.go -package=mocks -mock_names=Adapter=MockChainAdapter,AssetRegistrar=MockAssetRegistrar
type AssetRegistrar interface {
	// GetDeployedAsset retrieves the idempotency row for a parcel key; nil when absent
	GetDeployedAsset(ctx context.Context, key domain.ParcelKey) (*schema.DeployedAsset, error)
	// RecordDeployedAsset writes the idempotency row; domain.ErrAlreadyMinted on conflict
	RecordDeployedAsset(ctx context.Context, asset *schema.DeployedAsset) error
}

// Adapter is the settlement backend contract. Implementations are stateless
// per call: they own no persisted state and return a receipt the caller
// consumes immediately. Mint must fail fast with domain.ErrAlreadyMinted when
// assets were already deployed for the parcel. A timed-out chain call is
// reported as domain.ErrChainSettlementFailed, never assumed successful.
type Adapter interface {
	// ChainType identifies which backend this adapter settles on
	ChainType() domain.ChainType
	// Mint creates the deed NFT and the share asset with the full supply
	Mint(ctx context.Context, req MintRequest) (*MintReceipt, error)
	// Settle performs the value/share movement for a purchase
	Settle(ctx context.Context, req SettleRequest) (*SettleReceipt, error)
}

// Adapters selects an Adapter by the parcel row's chain type.
type Adapters map[domain.ChainType]Adapter

// Get returns the adapter for a chain type.
func (a Adapters) Get(chainType domain.ChainType) (Adapter, bool) {
	adapter, ok := a[chainType]
	return adapter, ok
}
