package schema

import (
	"time"

	"github.com/jonumhills/townhall-rwa/internal/domain"
)

// DeployedAsset represents the deployed_assets table - the mint idempotency
// index. A row is written as soon as chain minting succeeds, separately from
// the ParcelToken row, so a failed post-mint registry write can still detect
// that minting already occurred and never mint twice for one parcel.
type DeployedAsset struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PIN is the parcel identifier the assets were minted for
	PIN string `gorm:"column:pin;not null;type:text;uniqueIndex:idx_deployed_assets_county_pin,priority:2"`
	// CountyID identifies the county the PIN belongs to
	CountyID string `gorm:"column:county_id;not null;type:text;uniqueIndex:idx_deployed_assets_county_pin,priority:1"`
	// ChainType records which backend minted the assets
	ChainType domain.ChainType `gorm:"column:chain_type;not null;type:text"`
	// NFTRef is the minted deed NFT reference
	NFTRef string `gorm:"column:nft_ref;not null;type:text"`
	// ShareTokenRef is the minted fungible share asset reference
	ShareTokenRef string `gorm:"column:share_token_ref;not null;type:text"`
	// MintedAt is when the chain mint completed
	MintedAt time.Time `gorm:"column:minted_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DeployedAsset model
func (DeployedAsset) TableName() string {
	return "deployed_assets"
}
