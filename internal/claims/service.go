// Package claims implements the claim verification state machine that gates
// parcel tokenization: unclaimed -> pending -> approved | rejected. Approval
// is the only path that mints chain assets and the only state from which the
// settlement engine may mutate share fields.
package claims

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
	"github.com/jonumhills/townhall-rwa/internal/chain"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/messaging"
	"github.com/jonumhills/townhall-rwa/internal/providers/parcelregistry"
	"github.com/jonumhills/townhall-rwa/internal/store"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// SubmitRequest asks to tokenize a parcel, subject to admin review
type SubmitRequest struct {
	PIN         string
	CountyID    string
	OwnerWallet string
	ChainType   domain.ChainType
	DeedURL     string
	PriceHint   *decimal.Decimal
}

// DecideRequest records an admin decision on a pending claim
type DecideRequest struct {
	ClaimID  string
	Approved bool
	Reviewer string
	Notes    *string
}

// DecideResult reports the decision outcome. Partial is set when the chain
// mint succeeded but the registry write failed; the assets exist on-chain and
// a reconciliation task was recorded, so the caller must treat the operation
// as degraded success, not a retryable error.
type DecideResult struct {
	ClaimID       string
	Status        domain.VerificationStatus
	Partial       bool
	NFTRef        string
	ShareTokenRef string
	Parcel        *schema.ParcelToken
}

// Service defines the claim verification operations
//
//go:generate mockgen -source=service.go -destination=../mocks/claims.go -package=mocks -mock_names=Service=MockClaimsService
type Service interface {
	// SubmitClaim files a tokenization claim for a registry-verified parcel
	SubmitClaim(ctx context.Context, req SubmitRequest) (*schema.ParcelToken, error)
	// GetClaim retrieves a claim by its identifier
	GetClaim(ctx context.Context, claimID string) (*schema.ParcelToken, error)
	// Decide approves or rejects a pending claim; approval mints the assets
	Decide(ctx context.Context, req DecideRequest) (*DecideResult, error)
}

type service struct {
	store     store.Store
	registry  parcelregistry.Client
	adapters  chain.Adapters
	publisher messaging.Publisher
	clock     adapter.Clock
	json      adapter.JSON
}

// NewService creates the claim verification service
func NewService(s store.Store, registry parcelregistry.Client, adapters chain.Adapters, publisher messaging.Publisher, clock adapter.Clock, jsonAdapter adapter.JSON) Service {
	return &service{
		store:     s,
		registry:  registry,
		adapters:  adapters,
		publisher: publisher,
		clock:     clock,
		json:      jsonAdapter,
	}
}

// SubmitClaim files a tokenization claim. The PIN must exist in the external
// parcel registry; a pending or approved claim for the same parcel rejects
// the submission, while a rejected one may be resubmitted.
func (s *service) SubmitClaim(ctx context.Context, req SubmitRequest) (*schema.ParcelToken, error) {
	key := domain.NewParcelKey(req.PIN, req.CountyID)
	if !key.Valid() {
		return nil, fmt.Errorf("%w: missing pin or county", domain.ErrInvalidInput)
	}
	if !req.ChainType.Valid() {
		return nil, fmt.Errorf("%w: unknown chain type %q", domain.ErrInvalidInput, req.ChainType)
	}
	if req.OwnerWallet == "" {
		return nil, fmt.Errorf("%w: missing owner wallet", domain.ErrInvalidInput)
	}
	if req.DeedURL == "" {
		return nil, fmt.Errorf("%w: missing deed document URL", domain.ErrInvalidInput)
	}
	if req.PriceHint != nil && !req.PriceHint.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}

	info, err := s.registry.LookupParcel(ctx, key.PIN, key.CountyID)
	if err != nil {
		return nil, err
	}
	if info == nil || !info.Exists {
		return nil, domain.ErrParcelNotFound
	}

	parcel, err := s.store.CreateClaim(ctx, store.CreateClaimInput{
		ClaimID:     uuid.NewString(),
		PIN:         key.PIN,
		CountyID:    key.CountyID,
		ChainType:   req.ChainType,
		OwnerWallet: domain.NormalizeWallet(req.ChainType, req.OwnerWallet),
		DeedURL:     req.DeedURL,
		PriceHint:   req.PriceHint,
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventClaimSubmitted,
		PIN:       key.PIN,
		CountyID:  key.CountyID,
		ChainType: parcel.ChainType,
		ClaimID:   parcel.ClaimID,
		Wallet:    parcel.OwnerWallet,
	})

	return parcel, nil
}

// GetClaim retrieves a claim by its identifier.
func (s *service) GetClaim(ctx context.Context, claimID string) (*schema.ParcelToken, error) {
	if claimID == "" {
		return nil, fmt.Errorf("%w: missing claim id", domain.ErrInvalidInput)
	}
	parcel, err := s.store.GetClaimByID(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("failed to get claim: %w", err)
	}
	if parcel == nil {
		return nil, domain.ErrClaimNotFound
	}
	return parcel, nil
}

// Decide approves or rejects a pending claim. Rejection is terminal and never
// touches the chain. Approval consults the deployed-assets index before
// minting, so a retry after a reported partial failure reuses the recorded
// chain references instead of minting twice.
func (s *service) Decide(ctx context.Context, req DecideRequest) (*DecideResult, error) {
	if req.ClaimID == "" || req.Reviewer == "" {
		return nil, fmt.Errorf("%w: missing claim id or reviewer", domain.ErrInvalidInput)
	}

	parcel, err := s.store.GetClaimByID(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}
	if parcel == nil {
		return nil, domain.ErrClaimNotFound
	}
	if parcel.VerificationStatus != domain.VerificationPending {
		return nil, domain.ErrClaimNotPending
	}

	if !req.Approved {
		return s.reject(ctx, parcel, req)
	}
	return s.approve(ctx, parcel, req)
}

func (s *service) reject(ctx context.Context, parcel *schema.ParcelToken, req DecideRequest) (*DecideResult, error) {
	err := s.store.RejectClaim(ctx, store.RejectClaimInput{
		ClaimID:     req.ClaimID,
		Reviewer:    req.Reviewer,
		ReviewNotes: req.Notes,
		DecidedAt:   s.clock.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventClaimDecided,
		PIN:       parcel.PIN,
		CountyID:  parcel.CountyID,
		ChainType: parcel.ChainType,
		ClaimID:   parcel.ClaimID,
	})

	return &DecideResult{
		ClaimID: req.ClaimID,
		Status:  domain.VerificationRejected,
	}, nil
}

func (s *service) approve(ctx context.Context, parcel *schema.ParcelToken, req DecideRequest) (*DecideResult, error) {
	key := domain.NewParcelKey(parcel.PIN, parcel.CountyID)

	chainAdapter, ok := s.adapters.Get(parcel.ChainType)
	if !ok {
		return nil, fmt.Errorf("no adapter configured for chain type %s", parcel.ChainType)
	}

	// A prior approval attempt may have minted and then failed the registry
	// write; the idempotency index survives that, so reuse its references.
	receipt, err := s.mintedReceipt(ctx, key)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		receipt, err = chainAdapter.Mint(ctx, chain.MintRequest{
			Key:         key,
			OwnerWallet: parcel.OwnerWallet,
			DeedRef:     parcel.DeedURL,
		})
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyMinted) {
				return nil, domain.ErrAlreadyMinted
			}
			return nil, fmt.Errorf("chain mint failed: %w", err)
		}
	}

	err = s.store.ApproveClaim(ctx, store.ApproveClaimInput{
		ClaimID:       req.ClaimID,
		NFTRef:        receipt.NFTRef,
		ShareTokenRef: receipt.ShareTokenRef,
		TotalShares:   receipt.TotalShares,
		Reviewer:      req.Reviewer,
		ReviewNotes:   req.Notes,
		DecidedAt:     s.clock.Now().UTC(),
	})
	if err != nil {
		return s.reportPartialFailure(ctx, parcel, receipt, err)
	}

	approved, err := s.store.GetClaimByID(ctx, req.ClaimID)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("claim_id", req.ClaimID))
		approved = nil
	}

	s.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventClaimDecided,
		PIN:       parcel.PIN,
		CountyID:  parcel.CountyID,
		ChainType: parcel.ChainType,
		ClaimID:   parcel.ClaimID,
		Wallet:    parcel.OwnerWallet,
		Shares:    receipt.TotalShares,
	})

	return &DecideResult{
		ClaimID:       req.ClaimID,
		Status:        domain.VerificationApproved,
		NFTRef:        receipt.NFTRef,
		ShareTokenRef: receipt.ShareTokenRef,
		Parcel:        approved,
	}, nil
}

// mintedReceipt reconstructs a mint receipt from the idempotency index, or
// nil when the parcel was never minted
func (s *service) mintedReceipt(ctx context.Context, key domain.ParcelKey) (*chain.MintReceipt, error) {
	asset, err := s.store.GetDeployedAsset(ctx, key)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, nil
	}

	logger.InfoCtx(ctx, "reusing previously minted assets",
		zap.String("parcel", key.String()),
		zap.String("nft_ref", asset.NFTRef))

	return &chain.MintReceipt{
		NFTRef:        asset.NFTRef,
		ShareTokenRef: asset.ShareTokenRef,
		TotalShares:   domain.TotalSharesPerParcel,
	}, nil
}

// reportPartialFailure handles the chain-succeeded/registry-failed case: the
// minted references are persisted as a reconciliation task for the repair job
// and returned to the caller as a degraded success. The claim is never
// re-minted; the reconciler finishes the registry write from the recorded
// references.
func (s *service) reportPartialFailure(ctx context.Context, parcel *schema.ParcelToken, receipt *chain.MintReceipt, cause error) (*DecideResult, error) {
	pf := &domain.PartialFailureError{
		ClaimID:       parcel.ClaimID,
		PIN:           parcel.PIN,
		CountyID:      parcel.CountyID,
		NFTRef:        receipt.NFTRef,
		ShareTokenRef: receipt.ShareTokenRef,
		Cause:         cause,
	}
	logger.ErrorCtx(ctx, pf,
		zap.String("claim_id", parcel.ClaimID),
		zap.String("nft_ref", receipt.NFTRef),
		zap.String("share_token_ref", receipt.ShareTokenRef))

	raw, err := s.json.Marshal(receipt)
	if err != nil {
		raw = nil
	}
	task := &schema.ReconciliationTask{
		Kind:          schema.ReconciliationKindMint,
		ClaimID:       parcel.ClaimID,
		PIN:           parcel.PIN,
		CountyID:      parcel.CountyID,
		NFTRef:        receipt.NFTRef,
		ShareTokenRef: receipt.ShareTokenRef,
		Status:        schema.ReconciliationPending,
		Detail:        cause.Error(),
		Receipt:       raw,
	}
	if err := s.store.CreateReconciliationTask(ctx, task); err != nil {
		// Worst case: the failure only lives in the log line above and the
		// deployed-assets index; a Decide retry will still reuse the refs.
		logger.ErrorCtx(ctx, err, zap.String("claim_id", parcel.ClaimID))
	}

	s.publish(ctx, &domain.ParcelEvent{
		EventType: domain.EventMintPartialFailure,
		PIN:       parcel.PIN,
		CountyID:  parcel.CountyID,
		ChainType: parcel.ChainType,
		ClaimID:   parcel.ClaimID,
	})

	return &DecideResult{
		ClaimID:       parcel.ClaimID,
		Status:        domain.VerificationPending,
		Partial:       true,
		NFTRef:        receipt.NFTRef,
		ShareTokenRef: receipt.ShareTokenRef,
	}, nil
}

func (s *service) publish(ctx context.Context, event *domain.ParcelEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishParcelEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish parcel event",
			zap.String("event_type", string(event.EventType)),
			zap.String("pin", event.PIN),
			zap.Error(err))
	}
}
