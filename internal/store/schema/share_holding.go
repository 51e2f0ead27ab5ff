package schema

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonumhills/townhall-rwa/internal/domain"
)

// ShareHolding represents the share_holdings table - an append-only audit
// record, one row per completed purchase. Rows are never updated after insert.
// Under the operator-ledger model this table is the authoritative register of
// beneficial ownership.
type ShareHolding struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PIN is the parcel identifier the shares belong to
	PIN string `gorm:"column:pin;not null;type:text;index:idx_share_holdings_county_pin,priority:2"`
	// CountyID identifies the county the PIN belongs to
	CountyID string `gorm:"column:county_id;not null;type:text;index:idx_share_holdings_county_pin,priority:1"`
	// BuyerWallet is the purchasing wallet; a buyer's portfolio is the set of
	// rows keyed by this column
	BuyerWallet string `gorm:"column:buyer_wallet;not null;type:text;index"`
	// SharesOwned is the number of shares bought in this purchase
	SharesOwned int64 `gorm:"column:shares_owned;not null"`
	// PricePaid is the total price for the purchase in the chain's native unit
	PricePaid decimal.Decimal `gorm:"column:price_paid;not null;type:numeric(38,18)"`
	// PlatformFee is the fee portion withheld from the seller
	PlatformFee decimal.Decimal `gorm:"column:platform_fee;not null;type:numeric(38,18)"`
	// TxRef is the chain transaction identifier from the settlement receipt
	// (synthetic under the operator-ledger model)
	TxRef string `gorm:"column:tx_ref;not null;type:text;index"`
	// ChainType records which settlement backend produced the receipt
	ChainType domain.ChainType `gorm:"column:chain_type;not null;type:text"`
	// PurchasedAt is when the purchase settled
	PurchasedAt time.Time `gorm:"column:purchased_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ShareHolding model
func (ShareHolding) TableName() string {
	return "share_holdings"
}
