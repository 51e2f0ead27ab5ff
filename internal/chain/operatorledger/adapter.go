// Package operatorledger implements the settlement backend for chains that
// require the receiving account to sign a token-association step before it can
// hold the share asset. Buyers have not signed that step, so the platform
// operator account custodies all shares on-chain and Settle moves nothing on
// the chain at all: it issues a synthetic transaction reference and the
// share_holdings table is the sole source of truth for beneficial ownership.
//
// This is a deliberate, documented trust trade-off: the platform operator is
// the on-chain holder of record and the registry is the economic register.
// The deed NFT likewise stays in the treasury account as a deed-of-record,
// with the owner tracked only in the registry.
package operatorledger

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
	"github.com/jonumhills/townhall-rwa/internal/chain"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// Config holds the operator-ledger adapter configuration
type Config struct {
	// TokenServiceURL is the operator node gateway that creates tokens on the
	// underlying chain
	TokenServiceURL string
	// TreasuryAccount is the operator account that custodies minted assets
	TreasuryAccount string
	// CallTimeout bounds the mint gateway call
	CallTimeout time.Duration
}

// mintRequest is the token-service payload for creating both parcel assets
type mintRequest struct {
	PIN             string `json:"pin"`
	CountyID        string `json:"county_id"`
	OwnerWallet     string `json:"owner_wallet"`
	DeedRef         string `json:"deed_ref"`
	TotalShares     int64  `json:"total_shares"`
	TreasuryAccount string `json:"treasury_account"`
}

// mintResponse is the token-service response with the created chain references
type mintResponse struct {
	NFTTokenID   string `json:"nft_token_id"`
	NFTSerial    int64  `json:"nft_serial"`
	ShareTokenID string `json:"share_token_id"`
}

type ledgerAdapter struct {
	cfg        Config
	httpClient adapter.HTTPClient
	json       adapter.JSON
	clock      adapter.Clock
	registrar  chain.AssetRegistrar

	mu      sync.Mutex
	entropy io.Reader
}

// New creates the operator-ledger settlement adapter
func New(cfg Config, httpClient adapter.HTTPClient, jsonAdapter adapter.JSON, clock adapter.Clock, registrar chain.AssetRegistrar) chain.Adapter {
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = time.Minute
	}
	return &ledgerAdapter{
		cfg:        cfg,
		httpClient: httpClient,
		json:       jsonAdapter,
		clock:      clock,
		registrar:  registrar,
		entropy:    ulid.Monotonic(rand.Reader, 0),
	}
}

func (a *ledgerAdapter) ChainType() domain.ChainType {
	return domain.ChainTypeOperatorLedger
}

// Mint creates the deed NFT and the share asset through the operator node
// gateway. Both assets land in the treasury account.
func (a *ledgerAdapter) Mint(ctx context.Context, req chain.MintRequest) (*chain.MintReceipt, error) {
	existing, err := a.registrar.GetDeployedAsset(ctx, req.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to check deployed assets: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMinted
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	payload, err := a.json.Marshal(mintRequest{
		PIN:             req.Key.PIN,
		CountyID:        req.Key.CountyID,
		OwnerWallet:     req.OwnerWallet,
		DeedRef:         req.DeedRef,
		TotalShares:     domain.TotalSharesPerParcel,
		TreasuryAccount: a.cfg.TreasuryAccount,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mint request: %w", err)
	}

	body, err := a.httpClient.Post(callCtx, a.cfg.TokenServiceURL+"/v1/tokens/mint", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: token service mint failed: %v", domain.ErrChainSettlementFailed, err)
	}

	var resp mintResponse
	if err := a.json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal mint response: %v", domain.ErrChainSettlementFailed, err)
	}
	if resp.NFTTokenID == "" || resp.ShareTokenID == "" {
		return nil, fmt.Errorf("%w: token service returned incomplete mint response", domain.ErrChainSettlementFailed)
	}

	nftRef := fmt.Sprintf("%s/%d", resp.NFTTokenID, resp.NFTSerial)

	err = a.registrar.RecordDeployedAsset(ctx, &schema.DeployedAsset{
		PIN:           req.Key.PIN,
		CountyID:      req.Key.CountyID,
		ChainType:     domain.ChainTypeOperatorLedger,
		NFTRef:        nftRef,
		ShareTokenRef: resp.ShareTokenID,
	})
	if err != nil && errors.Is(err, domain.ErrAlreadyMinted) {
		return nil, domain.ErrAlreadyMinted
	}

	return &chain.MintReceipt{
		NFTRef:        nftRef,
		ShareTokenRef: resp.ShareTokenID,
		TotalShares:   domain.TotalSharesPerParcel,
	}, nil
}

// Settle records the purchase without touching the chain. The shares stay
// custodied by the treasury account; the registry's holding row the caller
// writes next is the authoritative record of the buyer's position. The
// returned reference is a ULID so receipts stay unique and time-ordered.
func (a *ledgerAdapter) Settle(_ context.Context, req chain.SettleRequest) (*chain.SettleReceipt, error) {
	if req.Shares <= 0 {
		return nil, fmt.Errorf("%w: non-positive share amount", domain.ErrChainSettlementFailed)
	}

	a.mu.Lock()
	id, err := ulid.New(ulid.Timestamp(a.clock.Now()), a.entropy)
	a.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate ledger reference: %v", domain.ErrChainSettlementFailed, err)
	}

	return &chain.SettleReceipt{
		TxRef:          fmt.Sprintf("ledger-%s", id.String()),
		SellerReceived: req.SellerReceives,
		PlatformFee:    req.PlatformFee,
	}, nil
}
