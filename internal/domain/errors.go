package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrParcelNotFound is returned when a PIN is not present in the external
	// parcel registry
	ErrParcelNotFound = errors.New("parcel not found")

	// ErrClaimNotFound is returned when no claim exists for the given claim ID
	ErrClaimNotFound = errors.New("claim not found")

	// ErrListingNotFound is returned when buying from a parcel that has no
	// active listing
	ErrListingNotFound = errors.New("listing not found")

	// ErrTokenNotFound is returned when no tokenized parcel row exists for a
	// parcel key
	ErrTokenNotFound = errors.New("parcel token not found")

	// ErrDuplicateClaim is returned when a pending or approved claim already
	// exists for a parcel
	ErrDuplicateClaim = errors.New("claim already exists for parcel")

	// ErrClaimNotPending is returned when deciding a claim that already
	// reached a terminal state
	ErrClaimNotPending = errors.New("claim is not pending")

	// ErrAlreadyMinted is returned when a mint is attempted for a parcel that
	// already has deployed assets
	ErrAlreadyMinted = errors.New("parcel assets already minted")

	// ErrNotApproved is returned when listing or buying against a parcel that
	// was never approved
	ErrNotApproved = errors.New("parcel is not approved")

	// ErrNotOwner is returned when the caller does not own the parcel
	ErrNotOwner = errors.New("caller is not the parcel owner")

	// ErrSelfTradeRejected is returned when a buyer attempts to purchase their
	// own listed shares
	ErrSelfTradeRejected = errors.New("self-trade rejected")

	// ErrInvalidInput is returned for malformed request fields
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPrice is returned for a non-positive listing price
	ErrInvalidPrice = errors.New("price per share must be positive")

	// ErrInvalidShareAmount is returned for a non-positive share amount
	ErrInvalidShareAmount = errors.New("share amount must be positive")

	// ErrInsufficientAvailableShares is returned when listing more shares than
	// the owner still holds
	ErrInsufficientAvailableShares = errors.New("insufficient available shares")

	// ErrInsufficientListedShares is returned when buying more shares than are
	// currently listed
	ErrInsufficientListedShares = errors.New("insufficient listed shares")

	// ErrChainSettlementFailed is returned when the chain call failed or timed
	// out before any storage mutation; the whole operation is safe to retry
	ErrChainSettlementFailed = errors.New("chain settlement failed")
)

// PartialFailureError reports that a chain mint succeeded but the registry
// write failed. The already-obtained chain references are carried so the
// storage write can be retried without re-invoking the chain. This requires
// operator remediation, never a plain user retry.
type PartialFailureError struct {
	ClaimID       string
	PIN           string
	CountyID      string
	NFTRef        string
	ShareTokenRef string
	Cause         error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("partial failure: minted assets for claim %s (nft=%s share_token=%s) but registry write failed: %v",
		e.ClaimID, e.NFTRef, e.ShareTokenRef, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

// AsPartialFailure extracts a PartialFailureError from an error chain.
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return pf, true
	}
	return nil, false
}
