// Package escrow implements the settlement backend for contract-based chains.
// Listed shares are escrowed in the marketplace contract and every purchase is
// an atomic on-chain swap: shares to the buyer, payment split to the seller
// and the platform fee collector in one transaction. The chain commit is
// authoritative and synchronous, so the chain and the registry cannot
// disagree: a reverted transaction means no storage mutation ever happens.
package escrow

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/jonumhills/townhall-rwa/internal/adapter"
	"github.com/jonumhills/townhall-rwa/internal/chain"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
	"github.com/jonumhills/townhall-rwa/internal/store/schema"
)

// marketplaceABI covers the two entrypoints and the mint event of the parcel
// marketplace contract. The contract itself is deployed by external tooling.
const marketplaceABI = `[
	{"type":"function","name":"mintParcel","stateMutability":"nonpayable","inputs":[
		{"name":"pin","type":"string"},
		{"name":"countyId","type":"string"},
		{"name":"owner","type":"address"},
		{"name":"deedRef","type":"string"}],"outputs":[]},
	{"type":"function","name":"settleShares","stateMutability":"nonpayable","inputs":[
		{"name":"shareToken","type":"address"},
		{"name":"seller","type":"address"},
		{"name":"buyer","type":"address"},
		{"name":"amount","type":"uint256"},
		{"name":"sellerAmount","type":"uint256"},
		{"name":"feeAmount","type":"uint256"}],"outputs":[]},
	{"type":"event","name":"ParcelMinted","anonymous":false,"inputs":[
		{"name":"pin","type":"string","indexed":false},
		{"name":"countyId","type":"string","indexed":false},
		{"name":"tokenId","type":"uint256","indexed":false},
		{"name":"shareToken","type":"address","indexed":false}]}
]`

// Config holds the escrow adapter configuration
type Config struct {
	// ContractAddress is the deployed marketplace contract
	ContractAddress string
	// ChainID is the EVM chain ID used for transaction signing
	ChainID int64
	// CallTimeout bounds every chain interaction; a timeout is a definitive
	// failure, never an assumed success
	CallTimeout time.Duration
	// ReceiptPollInterval is how often a pending transaction receipt is polled
	ReceiptPollInterval time.Duration
}

type escrowAdapter struct {
	cfg       Config
	client    adapter.EthClient
	clock     adapter.Clock
	registrar chain.AssetRegistrar
	key       *ecdsa.PrivateKey
	operator  common.Address
	contract  common.Address
	abi       abi.ABI
}

// New creates the escrow settlement adapter. The operator key signs the
// mint and settle transactions submitted on behalf of the platform.
func New(cfg Config, client adapter.EthClient, clock adapter.Clock, registrar chain.AssetRegistrar, operatorKey *ecdsa.PrivateKey) (chain.Adapter, error) {
	parsed, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse marketplace ABI: %w", err)
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid marketplace contract address: %s", cfg.ContractAddress)
	}
	if cfg.CallTimeout == 0 {
		cfg.CallTimeout = 2 * time.Minute
	}
	if cfg.ReceiptPollInterval == 0 {
		cfg.ReceiptPollInterval = 2 * time.Second
	}

	return &escrowAdapter{
		cfg:       cfg,
		client:    client,
		clock:     clock,
		registrar: registrar,
		key:       operatorKey,
		operator:  crypto.PubkeyToAddress(operatorKey.PublicKey),
		contract:  common.HexToAddress(cfg.ContractAddress),
		abi:       parsed,
	}, nil
}

func (a *escrowAdapter) ChainType() domain.ChainType {
	return domain.ChainTypeEscrow
}

// Mint deploys the deed NFT and the 1000-unit share asset for a parcel via
// the marketplace contract. The NFT transfers to the owner's wallet on-chain.
func (a *escrowAdapter) Mint(ctx context.Context, req chain.MintRequest) (*chain.MintReceipt, error) {
	existing, err := a.registrar.GetDeployedAsset(ctx, req.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to check deployed assets: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrAlreadyMinted
	}

	if !common.IsHexAddress(req.OwnerWallet) {
		return nil, fmt.Errorf("invalid owner address: %s", req.OwnerWallet)
	}

	calldata, err := a.abi.Pack("mintParcel", req.Key.PIN, req.Key.CountyID, common.HexToAddress(req.OwnerWallet), req.DeedRef)
	if err != nil {
		return nil, fmt.Errorf("failed to pack mintParcel call: %w", err)
	}

	receipt, err := a.sendAndWait(ctx, calldata)
	if err != nil {
		return nil, fmt.Errorf("%w: mint transaction failed: %v", domain.ErrChainSettlementFailed, err)
	}

	minted, err := a.parseParcelMinted(receipt)
	if err != nil {
		return nil, err
	}

	nftRef := fmt.Sprintf("%s/%s", a.contract.Hex(), minted.TokenID.String())
	shareTokenRef := minted.ShareToken.Hex()

	err = a.registrar.RecordDeployedAsset(ctx, &schema.DeployedAsset{
		PIN:           req.Key.PIN,
		CountyID:      req.Key.CountyID,
		ChainType:     domain.ChainTypeEscrow,
		NFTRef:        nftRef,
		ShareTokenRef: shareTokenRef,
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyMinted) {
			return nil, domain.ErrAlreadyMinted
		}
		// The asset exists on-chain but the index write failed; surface the
		// refs so the caller can still persist them.
		logger.ErrorCtx(ctx, err,
			zap.String("parcel", req.Key.String()),
			zap.String("nft_ref", nftRef))
	}

	return &chain.MintReceipt{
		NFTRef:        nftRef,
		ShareTokenRef: shareTokenRef,
		TotalShares:   domain.TotalSharesPerParcel,
	}, nil
}

// Settle triggers the atomic on-chain swap for a purchase. Any failure or
// timeout maps to domain.ErrChainSettlementFailed so the caller aborts before
// touching storage.
func (a *escrowAdapter) Settle(ctx context.Context, req chain.SettleRequest) (*chain.SettleReceipt, error) {
	if !common.IsHexAddress(req.ShareTokenRef) {
		return nil, fmt.Errorf("%w: invalid share token address %s", domain.ErrChainSettlementFailed, req.ShareTokenRef)
	}
	if !common.IsHexAddress(req.SellerWallet) || !common.IsHexAddress(req.BuyerWallet) {
		return nil, fmt.Errorf("%w: invalid wallet address", domain.ErrChainSettlementFailed)
	}
	// Contract amounts are whole native units; a fractional decimal would be
	// silently truncated by the big-integer conversion.
	if !req.SellerReceives.IsInteger() || !req.PlatformFee.IsInteger() {
		return nil, fmt.Errorf("%w: non-integral settlement amounts %s/%s",
			domain.ErrChainSettlementFailed, req.SellerReceives, req.PlatformFee)
	}

	calldata, err := a.abi.Pack("settleShares",
		common.HexToAddress(req.ShareTokenRef),
		common.HexToAddress(req.SellerWallet),
		common.HexToAddress(req.BuyerWallet),
		big.NewInt(req.Shares),
		req.SellerReceives.BigInt(),
		req.PlatformFee.BigInt(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to pack settleShares call: %v", domain.ErrChainSettlementFailed, err)
	}

	receipt, err := a.sendAndWait(ctx, calldata)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrChainSettlementFailed, err)
	}

	return &chain.SettleReceipt{
		TxRef:          receipt.TxHash.Hex(),
		SellerReceived: req.SellerReceives,
		PlatformFee:    req.PlatformFee,
	}, nil
}

// sendAndWait signs and broadcasts a contract call, then polls for the mined
// receipt within the configured timeout. Once dispatched the transaction is
// never abandoned early: the poll waits for a definitive success or failure.
func (a *escrowAdapter) sendAndWait(ctx context.Context, calldata []byte) (*types.Receipt, error) {
	callCtx, cancel := context.WithTimeout(ctx, a.cfg.CallTimeout)
	defer cancel()

	nonce, err := a.client.PendingNonceAt(callCtx, a.operator)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := a.client.SuggestGasPrice(callCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := a.client.EstimateGas(callCtx, ethereum.CallMsg{
		From: a.operator,
		To:   &a.contract,
		Data: calldata,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTransaction(nonce, a.contract, big.NewInt(0), gasLimit, gasPrice, calldata)
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(a.cfg.ChainID)), a.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := a.client.SendTransaction(callCtx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Debug("submitted escrow transaction",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.Uint64("nonce", nonce))

	for {
		receipt, err := a.client.TransactionReceipt(callCtx, signed.Hash())
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, fmt.Errorf("transaction %s reverted", signed.Hash().Hex())
			}
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
		}

		select {
		case <-callCtx.Done():
			return nil, fmt.Errorf("timed out waiting for transaction %s: %w", signed.Hash().Hex(), callCtx.Err())
		case <-a.clock.After(a.cfg.ReceiptPollInterval):
		}
	}
}

type parcelMintedEvent struct {
	PIN        string
	CountyID   string
	TokenID    *big.Int
	ShareToken common.Address
}

// parseParcelMinted extracts the ParcelMinted event from a mint receipt
func (a *escrowAdapter) parseParcelMinted(receipt *types.Receipt) (*parcelMintedEvent, error) {
	event := a.abi.Events["ParcelMinted"]
	for _, vLog := range receipt.Logs {
		if len(vLog.Topics) == 0 || vLog.Topics[0] != event.ID {
			continue
		}

		values, err := event.Inputs.Unpack(vLog.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to unpack ParcelMinted event: %w", err)
		}
		if len(values) != 4 {
			return nil, fmt.Errorf("unexpected ParcelMinted event arity: %d", len(values))
		}

		parsed := &parcelMintedEvent{}
		var ok bool
		if parsed.PIN, ok = values[0].(string); !ok {
			return nil, fmt.Errorf("unexpected pin type in ParcelMinted event")
		}
		if parsed.CountyID, ok = values[1].(string); !ok {
			return nil, fmt.Errorf("unexpected countyId type in ParcelMinted event")
		}
		if parsed.TokenID, ok = values[2].(*big.Int); !ok {
			return nil, fmt.Errorf("unexpected tokenId type in ParcelMinted event")
		}
		if parsed.ShareToken, ok = values[3].(common.Address); !ok {
			return nil, fmt.Errorf("unexpected shareToken type in ParcelMinted event")
		}
		return parsed, nil
	}

	return nil, fmt.Errorf("mint receipt %s carries no ParcelMinted event", receipt.TxHash.Hex())
}
