package schema

import (
	"time"

	"gorm.io/datatypes"
)

// ReconciliationStatus tracks a reconciliation task's lifecycle
type ReconciliationStatus string

const (
	// ReconciliationPending means the registry write still needs to be replayed
	ReconciliationPending ReconciliationStatus = "pending"
	// ReconciliationResolved means the registry row was completed from the
	// recorded chain references
	ReconciliationResolved ReconciliationStatus = "resolved"
)

// ReconciliationKind discriminates which registry write the task replays
type ReconciliationKind string

const (
	// ReconciliationKindMint replays an approval write after a successful mint
	ReconciliationKindMint ReconciliationKind = "mint_approval"
	// ReconciliationKindPurchase replays a purchase write after a successful
	// on-chain settlement
	ReconciliationKindPurchase ReconciliationKind = "purchase_write"
)

// ReconciliationTask represents the reconciliation_tasks table - one row per
// reported partial failure (chain call succeeded, registry write failed).
// The reconciler replays the registry write from the recorded references
// without re-invoking the chain.
type ReconciliationTask struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Kind selects the replay path for the task
	Kind ReconciliationKind `gorm:"column:kind;not null;type:text"`
	// ClaimID identifies the claim the parcel was minted under
	ClaimID string `gorm:"column:claim_id;not null;type:text;index"`
	// PIN is the parcel identifier
	PIN string `gorm:"column:pin;not null;type:text"`
	// CountyID identifies the county the PIN belongs to
	CountyID string `gorm:"column:county_id;not null;type:text"`
	// NFTRef is the already-minted deed NFT reference
	NFTRef string `gorm:"column:nft_ref;not null;type:text"`
	// ShareTokenRef is the already-minted share asset reference
	ShareTokenRef string `gorm:"column:share_token_ref;not null;type:text"`
	// Status is pending until the registry write is replayed
	Status ReconciliationStatus `gorm:"column:status;not null;type:text;index"`
	// Detail carries the original failure for operators
	Detail string `gorm:"column:detail;type:text"`
	// Receipt carries the replay payload: the raw mint receipt for mint tasks,
	// the settlement input for purchase tasks
	Receipt datatypes.JSON `gorm:"column:receipt;type:jsonb"`
	// CreatedAt is when the partial failure was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// ResolvedAt is when the reconciler completed the write
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
}

// TableName specifies the table name for the ReconciliationTask model
func (ReconciliationTask) TableName() string {
	return "reconciliation_tasks"
}
