package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// SubmitClaimRequest is the body of POST /api/v1/claims
type SubmitClaimRequest struct {
	PIN         string           `json:"pin" binding:"required"`
	CountyID    string           `json:"county_id" binding:"required"`
	OwnerWallet string           `json:"owner_wallet" binding:"required"`
	ChainType   string           `json:"chain_type" binding:"required"`
	DeedURL     string           `json:"deed_url" binding:"required"`
	PriceHint   *decimal.Decimal `json:"price_hint,omitempty"`
}

// DecideClaimRequest is the body of POST /api/v1/claims/:claim_id/decision
type DecideClaimRequest struct {
	Approved bool    `json:"approved"`
	Reviewer string  `json:"reviewer"`
	Notes    *string `json:"notes,omitempty"`
}

// ListSharesRequest is the body of POST /api/v1/parcels/:county_id/:pin/list
type ListSharesRequest struct {
	OwnerWallet   string          `json:"owner_wallet" binding:"required"`
	Shares        int64           `json:"shares" binding:"required"`
	PricePerShare decimal.Decimal `json:"price_per_share" binding:"required"`
}

// BuySharesRequest is the body of POST /api/v1/parcels/:county_id/:pin/buy
type BuySharesRequest struct {
	BuyerWallet string `json:"buyer_wallet" binding:"required"`
	Shares      int64  `json:"shares" binding:"required"`
}

// ClaimResponse represents a tokenization claim and its parcel state
type ClaimResponse struct {
	ClaimID         string                    `json:"claim_id"`
	PIN             string                    `json:"pin"`
	CountyID        string                    `json:"county_id"`
	ChainType       domain.ChainType          `json:"chain_type"`
	OwnerWallet     string                    `json:"owner_wallet"`
	DeedURL         string                    `json:"deed_url"`
	Status          domain.VerificationStatus `json:"status"`
	PriceHint       *decimal.Decimal          `json:"price_hint,omitempty"`
	NFTRef          *string                   `json:"nft_ref,omitempty"`
	ShareTokenRef   *string                   `json:"share_token_ref,omitempty"`
	TotalShares     *int64                    `json:"total_shares,omitempty"`
	AvailableShares *int64                    `json:"available_shares,omitempty"`
	Reviewer        *string                   `json:"reviewer,omitempty"`
	ReviewNotes     *string                   `json:"review_notes,omitempty"`
	VerifiedAt      *time.Time                `json:"verified_at,omitempty"`
	CreatedAt       time.Time                 `json:"created_at"`
}

// DecideClaimResponse reports the outcome of a claim decision. Partial is
// true when minting succeeded but the registry write did not; the response
// is then sent with HTTP 202 and the refs point at the minted assets.
type DecideClaimResponse struct {
	ClaimID       string                    `json:"claim_id"`
	Status        domain.VerificationStatus `json:"status"`
	Partial       bool                      `json:"partial"`
	NFTRef        string                    `json:"nft_ref,omitempty"`
	ShareTokenRef string                    `json:"share_token_ref,omitempty"`
	Parcel        *ClaimResponse            `json:"parcel,omitempty"`
}

// ListingResponse represents a parcel's active share listing
type ListingResponse struct {
	PIN           string          `json:"pin"`
	CountyID      string          `json:"county_id"`
	OwnerWallet   string          `json:"owner_wallet"`
	ListedShares  int64           `json:"listed_shares"`
	PricePerShare decimal.Decimal `json:"price_per_share"`
	ListedAt      *time.Time      `json:"listed_at,omitempty"`
}

// PurchaseResponse reports a completed share purchase. Partial marks a
// purchase whose chain settlement committed but whose registry write is still
// awaiting reconciliation; PurchasedAt is unset until then.
type PurchaseResponse struct {
	PIN            string          `json:"pin"`
	CountyID       string          `json:"county_id"`
	BuyerWallet    string          `json:"buyer_wallet"`
	Shares         int64           `json:"shares"`
	TotalPrice     decimal.Decimal `json:"total_price"`
	PlatformFee    decimal.Decimal `json:"platform_fee"`
	SellerReceives decimal.Decimal `json:"seller_receives"`
	TxRef          string          `json:"tx_ref"`
	Partial        bool            `json:"partial"`
	PurchasedAt    *time.Time      `json:"purchased_at,omitempty"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// toClaimResponse converts a parcel token row to its API representation
func toClaimResponse(t *schema.ParcelToken) *ClaimResponse {
	if t == nil {
		return nil
	}
	return &ClaimResponse{
		ClaimID:         t.ClaimID,
		PIN:             t.PIN,
		CountyID:        t.CountyID,
		ChainType:       t.ChainType,
		OwnerWallet:     t.OwnerWallet,
		DeedURL:         t.DeedURL,
		Status:          t.VerificationStatus,
		PriceHint:       t.PriceHint,
		NFTRef:          t.NFTRef,
		ShareTokenRef:   t.ShareTokenRef,
		TotalShares:     t.TotalShares,
		AvailableShares: t.AvailableShares,
		Reviewer:        t.Reviewer,
		ReviewNotes:     t.ReviewNotes,
		VerifiedAt:      t.VerifiedAt,
		CreatedAt:       t.CreatedAt,
	}
}

// toListingResponse converts a parcel token row to its listing representation
func toListingResponse(t *schema.ParcelToken) *ListingResponse {
	if t == nil {
		return nil
	}
	return &ListingResponse{
		PIN:           t.PIN,
		CountyID:      t.CountyID,
		OwnerWallet:   t.OwnerWallet,
		ListedShares:  t.ListedShares,
		PricePerShare: t.PricePerShare,
		ListedAt:      t.ListedAt,
	}
}
