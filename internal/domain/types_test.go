package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParcelKey(t *testing.T) {
	key := NewParcelKey("  10-01-100-001-0000 ", " Cook ")
	assert.Equal(t, "10-01-100-001-0000", key.PIN)
	assert.Equal(t, "cook", key.CountyID)
	assert.True(t, key.Valid())
	assert.Equal(t, "cook/10-01-100-001-0000", key.String())

	assert.False(t, NewParcelKey("", "cook").Valid())
	assert.False(t, NewParcelKey("10-01-100-001-0000", "  ").Valid())
}

func TestChainTypeValid(t *testing.T) {
	assert.True(t, ChainTypeEscrow.Valid())
	assert.True(t, ChainTypeOperatorLedger.Valid())
	assert.False(t, ChainType("sidechain").Valid())
	assert.False(t, ChainType("").Valid())
}

func TestVerificationStatusTerminal(t *testing.T) {
	assert.False(t, VerificationPending.Terminal())
	assert.True(t, VerificationApproved.Terminal())
	assert.True(t, VerificationRejected.Terminal())
}

func TestSameWallet(t *testing.T) {
	// Hex addresses compare case-insensitively
	assert.True(t, SameWallet(ChainTypeEscrow, "0xAbCd", " 0xabcd"))
	assert.False(t, SameWallet(ChainTypeEscrow, "0xabcd", "0xabce"))

	// Operator-ledger account identifiers are compared verbatim
	assert.True(t, SameWallet(ChainTypeOperatorLedger, "0.0.1234", "0.0.1234"))
	assert.False(t, SameWallet(ChainTypeOperatorLedger, "0.0.1234", "0.0.12340"))
}

func TestNormalizeWalletLookup(t *testing.T) {
	// Hex addresses lowercase regardless of checksum casing
	assert.Equal(t, "0xabcd", NormalizeWalletLookup(" 0xAbCd "))
	assert.Equal(t, "0xabcd", NormalizeWalletLookup("0XABCD"))

	// Operator-ledger account identifiers pass through untouched
	assert.Equal(t, "0.0.1234", NormalizeWalletLookup("0.0.1234"))
}
