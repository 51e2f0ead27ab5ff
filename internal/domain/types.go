package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TotalSharesPerParcel is the fixed fungible-share supply minted for every
// tokenized parcel.
const TotalSharesPerParcel int64 = 1000

// ChainType identifies which settlement backend a parcel is tokenized on.
type ChainType string

const (
	// ChainTypeEscrow settles through a smart contract that escrows listed
	// shares; the on-chain commit is authoritative.
	ChainTypeEscrow ChainType = "escrow"
	// ChainTypeOperatorLedger settles against an operator-custodied account;
	// the off-chain holdings ledger is the economic register of beneficial
	// ownership because buyers cannot sign the chain's token-association step.
	ChainTypeOperatorLedger ChainType = "operator_ledger"
)

// Valid reports whether the chain type is a known settlement backend.
func (c ChainType) Valid() bool {
	return c == ChainTypeEscrow || c == ChainTypeOperatorLedger
}

// VerificationStatus tracks a claim's path through admin review.
type VerificationStatus string

const (
	// VerificationPending means the claim is awaiting admin review
	VerificationPending VerificationStatus = "pending"
	// VerificationApproved means the claim was approved and the parcel minted
	VerificationApproved VerificationStatus = "approved"
	// VerificationRejected means the claim was rejected; terminal
	VerificationRejected VerificationStatus = "rejected"
)

// Terminal reports whether the status can no longer change.
func (s VerificationStatus) Terminal() bool {
	return s == VerificationApproved || s == VerificationRejected
}

// ParcelKey uniquely identifies a parcel: a PIN is only unique within its county.
type ParcelKey struct {
	PIN      string
	CountyID string
}

// NewParcelKey builds a parcel key from raw request input.
func NewParcelKey(pin, countyID string) ParcelKey {
	return ParcelKey{
		PIN:      strings.TrimSpace(pin),
		CountyID: strings.ToLower(strings.TrimSpace(countyID)),
	}
}

// Valid reports whether both components are present.
func (k ParcelKey) Valid() bool {
	return k.PIN != "" && k.CountyID != ""
}

func (k ParcelKey) String() string {
	return fmt.Sprintf("%s/%s", k.CountyID, k.PIN)
}

// NormalizeWallet canonicalizes a wallet identifier for comparison.
// Escrow chains use hex addresses which are case-insensitive; operator-ledger
// account identifiers (e.g. "0.0.1234") are compared verbatim.
func NormalizeWallet(chainType ChainType, wallet string) string {
	wallet = strings.TrimSpace(wallet)
	if chainType == ChainTypeEscrow {
		return strings.ToLower(wallet)
	}
	return wallet
}

// SameWallet reports whether two wallet identifiers refer to the same account
// under the chain type's comparison rules.
func SameWallet(chainType ChainType, a, b string) bool {
	return NormalizeWallet(chainType, a) == NormalizeWallet(chainType, b)
}

// NormalizeWalletLookup canonicalizes a wallet identifier for read paths where
// the chain type is not known up front. Hex addresses are stored lowercased;
// operator-ledger account identifiers carry no case to begin with.
func NormalizeWalletLookup(wallet string) string {
	wallet = strings.TrimSpace(wallet)
	if strings.HasPrefix(wallet, "0x") || strings.HasPrefix(wallet, "0X") {
		return strings.ToLower(wallet)
	}
	return wallet
}

// ParcelEventType enumerates registry lifecycle events published for UI consumers.
type ParcelEventType string

const (
	EventClaimSubmitted         ParcelEventType = "claim_submitted"
	EventClaimDecided           ParcelEventType = "claim_decided"
	EventSharesListed           ParcelEventType = "listed"
	EventSharesPurchased        ParcelEventType = "purchased"
	EventMintPartialFailure     ParcelEventType = "mint_partial_failure"
	EventPurchasePartialFailure ParcelEventType = "purchase_partial_failure"
	EventReconciliationFixed    ParcelEventType = "reconciliation_resolved"
)

// ParcelEvent is the message published to the event stream after a committed
// registry mutation.
type ParcelEvent struct {
	EventType ParcelEventType `json:"event_type"`
	PIN       string          `json:"pin"`
	CountyID  string          `json:"county_id"`
	ChainType ChainType       `json:"chain_type"`
	ClaimID   string          `json:"claim_id,omitempty"`
	Wallet    string          `json:"wallet,omitempty"`
	Shares    int64           `json:"shares,omitempty"`
	Price     decimal.Decimal `json:"price,omitempty"`
	TxRef     string          `json:"tx_ref,omitempty"`
}
