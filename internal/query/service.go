// Package query serves read-only projections of the tokenization registry
// for the map and marketplace UIs. It holds no invariants of its own.
package query

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/store"
)

// Listing is an active sale offer on a tokenized parcel
type Listing struct {
	PIN           string           `json:"pin"`
	CountyID      string           `json:"county_id"`
	ChainType     domain.ChainType `json:"chain_type"`
	OwnerWallet   string           `json:"owner_wallet"`
	ListedShares  int64            `json:"listed_shares"`
	PricePerShare decimal.Decimal  `json:"price_per_share"`
	ListedAt      *time.Time       `json:"listed_at,omitempty"`
	SharesSold    int64            `json:"shares_sold"`
}

// Holding is one purchase in a buyer's portfolio
type Holding struct {
	PIN         string           `json:"pin"`
	CountyID    string           `json:"county_id"`
	SharesOwned int64            `json:"shares_owned"`
	PricePaid   decimal.Decimal  `json:"price_paid"`
	TxRef       string           `json:"tx_ref"`
	ChainType   domain.ChainType `json:"chain_type"`
	PurchasedAt time.Time        `json:"purchased_at"`
}

// PortfolioPosition aggregates a buyer's purchases in one parcel
type PortfolioPosition struct {
	PIN         string          `json:"pin"`
	CountyID    string          `json:"county_id"`
	TotalShares int64           `json:"total_shares"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Purchases   []Holding       `json:"purchases"`
}

// Portfolio is the set of a buyer's positions across parcels
type Portfolio struct {
	Wallet    string              `json:"wallet"`
	Positions []PortfolioPosition `json:"positions"`
}

// OwnedParcel is a tokenized parcel annotated with the derived sold count
type OwnedParcel struct {
	PIN             string           `json:"pin"`
	CountyID        string           `json:"county_id"`
	ChainType       domain.ChainType `json:"chain_type"`
	NFTRef          string           `json:"nft_ref"`
	ShareTokenRef   string           `json:"share_token_ref"`
	TotalShares     int64            `json:"total_shares"`
	AvailableShares int64            `json:"available_shares"`
	ListedShares    int64            `json:"listed_shares"`
	SharesSold      int64            `json:"shares_sold"`
	Listed          bool             `json:"listed"`
	PricePerShare   decimal.Decimal  `json:"price_per_share"`
}

// Service defines the read-only registry projections
//
//go:generate mockgen -source=service.go -destination=../mocks/query.go -package=mocks -mock_names=Service=MockQueryService
type Service interface {
	// ListActiveListings retrieves parcels with listed shares, optionally
	// scoped to a county
	ListActiveListings(ctx context.Context, countyID *string) ([]*Listing, error)
	// GetPortfolio retrieves a buyer's holdings grouped per parcel
	GetPortfolio(ctx context.Context, wallet string) (*Portfolio, error)
	// GetOwnedParcels retrieves tokenized parcels owned by a wallet
	GetOwnedParcels(ctx context.Context, wallet string) ([]*OwnedParcel, error)
}

type service struct {
	store store.Store
}

// NewService creates the registry query service
func NewService(s store.Store) Service {
	return &service{store: s}
}

// ListActiveListings retrieves parcels with listed shares. County identifiers
// are stored lowercased, so the filter is canonicalized before the lookup.
func (s *service) ListActiveListings(ctx context.Context, countyID *string) ([]*Listing, error) {
	if countyID != nil {
		county := strings.ToLower(strings.TrimSpace(*countyID))
		countyID = &county
	}
	parcels, err := s.store.GetActiveListings(ctx, countyID)
	if err != nil {
		return nil, err
	}

	listings := make([]*Listing, 0, len(parcels))
	for _, p := range parcels {
		listings = append(listings, &Listing{
			PIN:           p.PIN,
			CountyID:      p.CountyID,
			ChainType:     p.ChainType,
			OwnerWallet:   p.OwnerWallet,
			ListedShares:  p.ListedShares,
			PricePerShare: p.PricePerShare,
			ListedAt:      p.ListedAt,
			SharesSold:    p.SharesSold(),
		})
	}
	return listings, nil
}

// GetPortfolio retrieves a buyer's holdings grouped per parcel. Wallets are
// stored in canonical form, so a checksummed hex address still matches.
func (s *service) GetPortfolio(ctx context.Context, wallet string) (*Portfolio, error) {
	wallet = domain.NormalizeWalletLookup(wallet)
	holdings, err := s.store.GetHoldingsByBuyer(ctx, wallet)
	if err != nil {
		return nil, err
	}

	positions := make([]PortfolioPosition, 0)
	index := make(map[domain.ParcelKey]int)
	for _, h := range holdings {
		key := domain.ParcelKey{PIN: h.PIN, CountyID: h.CountyID}
		i, ok := index[key]
		if !ok {
			positions = append(positions, PortfolioPosition{
				PIN:       h.PIN,
				CountyID:  h.CountyID,
				TotalPaid: decimal.Zero,
			})
			i = len(positions) - 1
			index[key] = i
		}

		positions[i].TotalShares += h.SharesOwned
		positions[i].TotalPaid = positions[i].TotalPaid.Add(h.PricePaid)
		positions[i].Purchases = append(positions[i].Purchases, Holding{
			PIN:         h.PIN,
			CountyID:    h.CountyID,
			SharesOwned: h.SharesOwned,
			PricePaid:   h.PricePaid,
			TxRef:       h.TxRef,
			ChainType:   h.ChainType,
			PurchasedAt: h.PurchasedAt,
		})
	}

	return &Portfolio{
		Wallet:    wallet,
		Positions: positions,
	}, nil
}

// GetOwnedParcels retrieves tokenized parcels owned by a wallet
func (s *service) GetOwnedParcels(ctx context.Context, wallet string) ([]*OwnedParcel, error) {
	parcels, err := s.store.GetParcelsByOwner(ctx, domain.NormalizeWalletLookup(wallet))
	if err != nil {
		return nil, err
	}

	owned := make([]*OwnedParcel, 0, len(parcels))
	for _, p := range parcels {
		op := &OwnedParcel{
			PIN:           p.PIN,
			CountyID:      p.CountyID,
			ChainType:     p.ChainType,
			ListedShares:  p.ListedShares,
			SharesSold:    p.SharesSold(),
			Listed:        p.Listed,
			PricePerShare: p.PricePerShare,
		}
		if p.NFTRef != nil {
			op.NFTRef = *p.NFTRef
		}
		if p.ShareTokenRef != nil {
			op.ShareTokenRef = *p.ShareTokenRef
		}
		if p.TotalShares != nil {
			op.TotalShares = *p.TotalShares
		}
		if p.AvailableShares != nil {
			op.AvailableShares = *p.AvailableShares
		}
		owned = append(owned, op)
	}
	return owned, nil
}
