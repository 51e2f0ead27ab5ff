package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonumhills/townhall-rwa/internal/domain"
)

// ParcelToken represents the parcel_tokens table - one row per claim, which
// becomes the tokenization record once the claim is approved and minted.
// Share and chain-reference fields stay null until approval.
type ParcelToken struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ClaimID is the externally-visible claim identifier (UUID)
	ClaimID string `gorm:"column:claim_id;not null;uniqueIndex;type:text"`
	// PIN is the government parcel identifier, unique within a county
	PIN string `gorm:"column:pin;not null;type:text;uniqueIndex:idx_parcel_tokens_county_pin,priority:2"`
	// CountyID identifies the county the PIN belongs to
	CountyID string `gorm:"column:county_id;not null;type:text;uniqueIndex:idx_parcel_tokens_county_pin,priority:1"`
	// ChainType selects the settlement backend (escrow, operator_ledger)
	ChainType domain.ChainType `gorm:"column:chain_type;not null;type:text"`
	// OwnerWallet is the claimant's wallet in the chain's native format
	OwnerWallet string `gorm:"column:owner_wallet;not null;type:text;index"`
	// DeedURL is the opaque deed document location supplied at claim time
	DeedURL string `gorm:"column:deed_url;not null;type:text"`
	// PriceHint is the asking price per share suggested by the claimant
	PriceHint *decimal.Decimal `gorm:"column:price_hint;type:numeric(38,18)"`
	// NFTRef is the opaque chain reference of the deed NFT (contract+tokenID
	// or tokenID+serial); nil until minted
	NFTRef *string `gorm:"column:nft_ref;type:text"`
	// ShareTokenRef is the opaque reference of the fungible share asset; nil until minted
	ShareTokenRef *string `gorm:"column:share_token_ref;type:text"`
	// TotalShares is fixed at 1000 once minted
	TotalShares *int64 `gorm:"column:total_shares"`
	// AvailableShares counts shares still in the owner's custody
	AvailableShares *int64 `gorm:"column:available_shares"`
	// ListedShares counts shares currently offered for sale
	ListedShares int64 `gorm:"column:listed_shares;not null;default:0"`
	// PricePerShare is the active (or last) listing price in the chain's native unit
	PricePerShare decimal.Decimal `gorm:"column:price_per_share;not null;default:0;type:numeric(38,18)"`
	// Listed is true exactly when ListedShares > 0
	Listed bool `gorm:"column:listed;not null;default:false;index"`
	// ListedAt records when the current listing was created or last replaced
	ListedAt *time.Time `gorm:"column:listed_at;type:timestamptz"`
	// VerificationStatus is the claim review state (pending, approved, rejected)
	VerificationStatus domain.VerificationStatus `gorm:"column:verification_status;not null;type:text;index"`
	// Reviewer records which admin decided the claim
	Reviewer *string `gorm:"column:reviewer;type:text"`
	// ReviewNotes carries optional reviewer commentary
	ReviewNotes *string `gorm:"column:review_notes;type:text"`
	// VerifiedAt records when the claim reached a terminal state
	VerifiedAt *time.Time `gorm:"column:verified_at;type:timestamptz"`
	// CreatedAt is when the claim was submitted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ParcelToken model
func (ParcelToken) TableName() string {
	return "parcel_tokens"
}

// SharesSold is the derived sold count; never stored.
func (p *ParcelToken) SharesSold() int64 {
	if p.TotalShares == nil || p.AvailableShares == nil {
		return 0
	}
	return *p.TotalShares - *p.AvailableShares
}
