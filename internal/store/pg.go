package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the registry tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.ParcelToken{},
		&schema.ShareHolding{},
		&schema.DeployedAsset{},
		&schema.ReconciliationTask{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings
// into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// lockParcel loads the parcel row for a key with a FOR UPDATE lock inside tx.
// All mutations to a single parcel serialize on this lock.
func lockParcel(tx *gorm.DB, key domain.ParcelKey) (*schema.ParcelToken, error) {
	var parcel schema.ParcelToken
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("county_id = ? AND pin = ?", key.CountyID, key.PIN).
		First(&parcel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("failed to lock parcel row: %w", err)
	}
	return &parcel, nil
}

// CreateClaim inserts a pending claim row for a parcel, or resurrects a
// rejected row so a corrected claim can be resubmitted
func (s *pgStore) CreateClaim(ctx context.Context, input CreateClaimInput) (*schema.ParcelToken, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing schema.ParcelToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("county_id = ? AND pin = ?", input.CountyID, input.PIN).
			First(&existing).Error

		switch {
		case err == nil:
			if existing.VerificationStatus != domain.VerificationRejected {
				return domain.ErrDuplicateClaim
			}
			// Rejected claims may be resubmitted; reuse the row since the
			// parcel key is unique.
			updates := map[string]interface{}{
				"claim_id":            input.ClaimID,
				"chain_type":          input.ChainType,
				"owner_wallet":        input.OwnerWallet,
				"deed_url":            input.DeedURL,
				"price_hint":          input.PriceHint,
				"verification_status": domain.VerificationPending,
				"reviewer":            nil,
				"review_notes":        nil,
				"verified_at":         nil,
			}
			if err := tx.Model(&schema.ParcelToken{}).
				Where("id = ?", existing.ID).
				Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to resubmit claim: %w", err)
			}
			return tx.Where("id = ?", existing.ID).First(&existing).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = schema.ParcelToken{
				ClaimID:            input.ClaimID,
				PIN:                input.PIN,
				CountyID:           input.CountyID,
				ChainType:          input.ChainType,
				OwnerWallet:        input.OwnerWallet,
				DeedURL:            input.DeedURL,
				PriceHint:          input.PriceHint,
				VerificationStatus: domain.VerificationPending,
			}
			if err := tx.Create(&existing).Error; err != nil {
				return fmt.Errorf("failed to create claim: %w", err)
			}
			return nil

		default:
			return fmt.Errorf("failed to check existing claim: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}

	var row schema.ParcelToken
	if err := s.db.WithContext(ctx).Where("claim_id = ?", input.ClaimID).First(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to reload claim: %w", err)
	}
	return &row, nil
}

// GetClaimByID retrieves a claim row by its claim ID
func (s *pgStore) GetClaimByID(ctx context.Context, claimID string) (*schema.ParcelToken, error) {
	var parcel schema.ParcelToken
	err := s.db.WithContext(ctx).Where("claim_id = ?", claimID).First(&parcel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	return &parcel, nil
}

// GetParcel retrieves the parcel token row for a parcel key
func (s *pgStore) GetParcel(ctx context.Context, key domain.ParcelKey) (*schema.ParcelToken, error) {
	var parcel schema.ParcelToken
	err := s.db.WithContext(ctx).
		Where("county_id = ? AND pin = ?", key.CountyID, key.PIN).
		First(&parcel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parcel: %w", err)
	}
	return &parcel, nil
}

// RejectClaim marks a pending claim rejected
func (s *pgStore) RejectClaim(ctx context.Context, input RejectClaimInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parcel schema.ParcelToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", input.ClaimID).
			First(&parcel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClaimNotFound
			}
			return fmt.Errorf("failed to lock claim row: %w", err)
		}

		if parcel.VerificationStatus != domain.VerificationPending {
			return domain.ErrClaimNotPending
		}

		updates := map[string]interface{}{
			"verification_status": domain.VerificationRejected,
			"reviewer":            input.Reviewer,
			"review_notes":        input.ReviewNotes,
			"verified_at":         input.DecidedAt,
		}
		if err := tx.Model(&schema.ParcelToken{}).
			Where("id = ?", parcel.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to reject claim: %w", err)
		}
		return nil
	})
}

// ApproveClaim marks a pending claim approved and populates the chain
// references and the full share supply
func (s *pgStore) ApproveClaim(ctx context.Context, input ApproveClaimInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parcel schema.ParcelToken
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("claim_id = ?", input.ClaimID).
			First(&parcel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrClaimNotFound
			}
			return fmt.Errorf("failed to lock claim row: %w", err)
		}

		if parcel.VerificationStatus != domain.VerificationPending {
			return domain.ErrClaimNotPending
		}

		updates := map[string]interface{}{
			"verification_status": domain.VerificationApproved,
			"nft_ref":             input.NFTRef,
			"share_token_ref":     input.ShareTokenRef,
			"total_shares":        input.TotalShares,
			"available_shares":    input.TotalShares,
			"reviewer":            input.Reviewer,
			"review_notes":        input.ReviewNotes,
			"verified_at":         input.DecidedAt,
		}
		if err := tx.Model(&schema.ParcelToken{}).
			Where("id = ?", parcel.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to approve claim: %w", err)
		}
		return nil
	})
}

// RecordDeployedAsset writes the mint idempotency index row
func (s *pgStore) RecordDeployedAsset(ctx context.Context, asset *schema.DeployedAsset) error {
	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "county_id"}, {Name: "pin"}},
			DoNothing: true,
		}).
		Create(asset)
	if result.Error != nil {
		return fmt.Errorf("failed to record deployed asset: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyMinted
	}
	return nil
}

// GetDeployedAsset retrieves the idempotency row for a parcel key
func (s *pgStore) GetDeployedAsset(ctx context.Context, key domain.ParcelKey) (*schema.DeployedAsset, error) {
	var asset schema.DeployedAsset
	err := s.db.WithContext(ctx).
		Where("county_id = ? AND pin = ?", key.CountyID, key.PIN).
		First(&asset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get deployed asset: %w", err)
	}
	return &asset, nil
}

// ListShares replaces the parcel's listing under the row lock. Ownership and
// available shares are re-checked against the locked row so a concurrent buy
// cannot let the owner list shares that were just sold.
func (s *pgStore) ListShares(ctx context.Context, input ListSharesInput) (*schema.ParcelToken, error) {
	var updated *schema.ParcelToken

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parcel, err := lockParcel(tx, input.Key)
		if err != nil {
			return err
		}

		if parcel.VerificationStatus != domain.VerificationApproved || parcel.AvailableShares == nil {
			return domain.ErrNotApproved
		}
		if !domain.SameWallet(parcel.ChainType, parcel.OwnerWallet, input.OwnerWallet) {
			return domain.ErrNotOwner
		}
		if input.Shares > *parcel.AvailableShares {
			return domain.ErrInsufficientAvailableShares
		}

		updates := map[string]interface{}{
			"listed":          true,
			"listed_shares":   input.Shares,
			"price_per_share": input.PricePerShare,
			"listed_at":       input.ListedAt,
		}
		if err := tx.Model(&schema.ParcelToken{}).
			Where("id = ?", parcel.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update listing: %w", err)
		}

		parcel.Listed = true
		parcel.ListedShares = input.Shares
		parcel.PricePerShare = input.PricePerShare
		parcel.ListedAt = &input.ListedAt
		updated = parcel
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SettlePurchase performs the atomic compare-and-decrement plus holding insert.
// The listed and available counts are re-read inside the transaction that
// decrements them, so two concurrent buyers cannot both succeed against shares
// that exist only once.
func (s *pgStore) SettlePurchase(ctx context.Context, input SettlePurchaseInput) (*schema.ParcelToken, *schema.ShareHolding, error) {
	var (
		updated *schema.ParcelToken
		holding *schema.ShareHolding
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		parcel, err := lockParcel(tx, input.Key)
		if err != nil {
			return err
		}

		if parcel.VerificationStatus != domain.VerificationApproved || parcel.AvailableShares == nil {
			return domain.ErrNotApproved
		}
		if !parcel.Listed || parcel.ListedShares <= 0 {
			return domain.ErrListingNotFound
		}
		if domain.SameWallet(parcel.ChainType, parcel.OwnerWallet, input.BuyerWallet) {
			return domain.ErrSelfTradeRejected
		}
		if input.Shares > parcel.ListedShares {
			return domain.ErrInsufficientListedShares
		}

		listedShares := parcel.ListedShares - input.Shares
		availableShares := *parcel.AvailableShares - input.Shares
		listed := listedShares > 0

		// price_per_share is retained at zero listed shares for display only
		updates := map[string]interface{}{
			"listed_shares":    listedShares,
			"available_shares": availableShares,
			"listed":           listed,
		}
		if err := tx.Model(&schema.ParcelToken{}).
			Where("id = ?", parcel.ID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to decrement shares: %w", err)
		}

		row := schema.ShareHolding{
			PIN:         parcel.PIN,
			CountyID:    parcel.CountyID,
			BuyerWallet: input.BuyerWallet,
			SharesOwned: input.Shares,
			PricePaid:   input.PricePaid,
			PlatformFee: input.PlatformFee,
			TxRef:       input.TxRef,
			ChainType:   input.ChainType,
			PurchasedAt: input.PurchasedAt,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to insert share holding: %w", err)
		}

		parcel.ListedShares = listedShares
		parcel.AvailableShares = &availableShares
		parcel.Listed = listed
		updated = parcel
		holding = &row
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, holding, nil
}

// GetActiveListings retrieves rows with an active listing, optionally scoped
// to a county
func (s *pgStore) GetActiveListings(ctx context.Context, countyID *string) ([]*schema.ParcelToken, error) {
	query := s.db.WithContext(ctx).
		Where("listed = ? AND listed_shares > 0", true)
	if countyID != nil && *countyID != "" {
		query = query.Where("county_id = ?", *countyID)
	}

	var parcels []*schema.ParcelToken
	err := query.Order("listed_at DESC").Find(&parcels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}
	return parcels, nil
}

// GetHoldingsByBuyer retrieves a buyer's purchase rows, newest first
func (s *pgStore) GetHoldingsByBuyer(ctx context.Context, buyerWallet string) ([]*schema.ShareHolding, error) {
	var holdings []*schema.ShareHolding
	err := s.db.WithContext(ctx).
		Where("buyer_wallet = ?", buyerWallet).
		Order("purchased_at DESC").
		Find(&holdings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get holdings: %w", err)
	}
	return holdings, nil
}

// GetHoldingByTxRef retrieves the purchase row recorded for a settlement
// transaction, or nil when no purchase references it
func (s *pgStore) GetHoldingByTxRef(ctx context.Context, txRef string) (*schema.ShareHolding, error) {
	var holding schema.ShareHolding
	err := s.db.WithContext(ctx).
		Where("tx_ref = ?", txRef).
		First(&holding).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding by tx ref: %w", err)
	}
	return &holding, nil
}

// GetParcelsByOwner retrieves approved parcel rows owned by a wallet
func (s *pgStore) GetParcelsByOwner(ctx context.Context, ownerWallet string) ([]*schema.ParcelToken, error) {
	var parcels []*schema.ParcelToken
	err := s.db.WithContext(ctx).
		Where("owner_wallet = ? AND verification_status = ?", ownerWallet, domain.VerificationApproved).
		Order("created_at DESC").
		Find(&parcels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get owned parcels: %w", err)
	}
	return parcels, nil
}

// CreateReconciliationTask records a partial failure for out-of-band repair
func (s *pgStore) CreateReconciliationTask(ctx context.Context, task *schema.ReconciliationTask) error {
	if err := s.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("failed to create reconciliation task: %w", err)
	}
	return nil
}

// GetPendingReconciliationTasks retrieves unresolved tasks, oldest first
func (s *pgStore) GetPendingReconciliationTasks(ctx context.Context, limit int) ([]*schema.ReconciliationTask, error) {
	if limit <= 0 {
		limit = 100
	}

	var tasks []*schema.ReconciliationTask
	err := s.db.WithContext(ctx).
		Where("status = ?", schema.ReconciliationPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get pending reconciliation tasks: %w", err)
	}
	return tasks, nil
}

// ResolveReconciliationTask marks a task resolved
func (s *pgStore) ResolveReconciliationTask(ctx context.Context, taskID int64, resolvedAt time.Time) error {
	err := s.db.WithContext(ctx).
		Model(&schema.ReconciliationTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":      schema.ReconciliationResolved,
			"resolved_at": resolvedAt,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to resolve reconciliation task: %w", err)
	}
	return nil
}
