package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonumhills/townhall-rwa/internal/api/middleware"
	"github.com/jonumhills/townhall-rwa/internal/claims"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/query"
	"github.com/jonumhills/townhall-rwa/internal/settlement"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitClaim files a tokenization claim for a parcel
	// POST /api/v1/claims
	SubmitClaim(c *gin.Context)

	// GetClaim retrieves a claim by its identifier
	// GET /api/v1/claims/:claim_id
	GetClaim(c *gin.Context)

	// DecideClaim approves or rejects a pending claim (requires authentication)
	// POST /api/v1/claims/:claim_id/decision
	DecideClaim(c *gin.Context)

	// ListShares creates or replaces a parcel's share listing
	// POST /api/v1/parcels/:county_id/:pin/list
	ListShares(c *gin.Context)

	// BuyShares purchases shares from a parcel's active listing
	// POST /api/v1/parcels/:county_id/:pin/buy
	BuyShares(c *gin.Context)

	// GetListings retrieves active listings, optionally filtered by county
	// GET /api/v1/listings?county_id=<county>
	GetListings(c *gin.Context)

	// GetPortfolio retrieves a buyer's share holdings grouped per parcel
	// GET /api/v1/portfolio/:wallet
	GetPortfolio(c *gin.Context)

	// GetOwnedParcels retrieves tokenized parcels owned by a wallet
	// GET /api/v1/parcels/owned/:wallet
	GetOwnedParcels(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	claims     claims.Service
	settlement settlement.Engine
	query      query.Service
}

// NewHandler creates a new REST API handler
func NewHandler(claimsSvc claims.Service, engine settlement.Engine, querySvc query.Service) Handler {
	return &handler{
		claims:     claimsSvc,
		settlement: engine,
		query:      querySvc,
	}
}

// SubmitClaim files a tokenization claim for a parcel
func (h *handler) SubmitClaim(c *gin.Context) {
	var req SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	chainType := domain.ChainType(req.ChainType)
	if !chainType.Valid() {
		respondBadRequest(c, "Invalid chain type", req.ChainType)
		return
	}

	token, err := h.claims.SubmitClaim(c.Request.Context(), claims.SubmitRequest{
		PIN:         req.PIN,
		CountyID:    req.CountyID,
		OwnerWallet: req.OwnerWallet,
		ChainType:   chainType,
		DeedURL:     req.DeedURL,
		PriceHint:   req.PriceHint,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toClaimResponse(token))
}

// GetClaim retrieves a claim by its identifier
func (h *handler) GetClaim(c *gin.Context) {
	claimID := c.Param("claim_id")
	if claimID == "" {
		respondBadRequest(c, "Claim ID is required")
		return
	}

	token, err := h.claims.GetClaim(c.Request.Context(), claimID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toClaimResponse(token))
}

// DecideClaim approves or rejects a pending claim
func (h *handler) DecideClaim(c *gin.Context) {
	claimID := c.Param("claim_id")
	if claimID == "" {
		respondBadRequest(c, "Claim ID is required")
		return
	}

	var req DecideClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	reviewer := req.Reviewer
	if reviewer == "" {
		reviewer = middleware.AuthSubject(c)
	}
	if reviewer == "" {
		respondBadRequest(c, "Reviewer is required")
		return
	}

	result, err := h.claims.Decide(c.Request.Context(), claims.DecideRequest{
		ClaimID:  claimID,
		Approved: req.Approved,
		Reviewer: reviewer,
		Notes:    req.Notes,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := &DecideClaimResponse{
		ClaimID:       result.ClaimID,
		Status:        result.Status,
		Partial:       result.Partial,
		NFTRef:        result.NFTRef,
		ShareTokenRef: result.ShareTokenRef,
		Parcel:        toClaimResponse(result.Parcel),
	}

	// A partial result means the assets were minted but the registry write
	// failed; reconciliation will repair the row, so the decision is accepted
	// rather than failed.
	status := http.StatusOK
	if result.Partial {
		status = http.StatusAccepted
	}
	c.JSON(status, resp)
}

// ListShares creates or replaces a parcel's share listing
func (h *handler) ListShares(c *gin.Context) {
	countyID := c.Param("county_id")
	pin := c.Param("pin")
	if countyID == "" || pin == "" {
		respondBadRequest(c, "County ID and PIN are required")
		return
	}

	var req ListSharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	token, err := h.settlement.List(c.Request.Context(), settlement.ListRequest{
		PIN:           pin,
		CountyID:      countyID,
		OwnerWallet:   req.OwnerWallet,
		Shares:        req.Shares,
		PricePerShare: req.PricePerShare,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toListingResponse(token))
}

// BuyShares purchases shares from a parcel's active listing
func (h *handler) BuyShares(c *gin.Context) {
	countyID := c.Param("county_id")
	pin := c.Param("pin")
	if countyID == "" || pin == "" {
		respondBadRequest(c, "County ID and PIN are required")
		return
	}

	var req BuySharesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.settlement.Buy(c.Request.Context(), settlement.BuyRequest{
		PIN:         pin,
		CountyID:    countyID,
		BuyerWallet: req.BuyerWallet,
		Shares:      req.Shares,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	resp := &PurchaseResponse{
		PIN:            pin,
		CountyID:       countyID,
		BuyerWallet:    req.BuyerWallet,
		Shares:         req.Shares,
		TotalPrice:     result.TotalPrice,
		PlatformFee:    result.PlatformFee,
		SellerReceives: result.SellerReceives,
		TxRef:          result.TxRef,
		Partial:        result.Partial,
	}
	status := http.StatusOK
	if result.Partial {
		// Settled on-chain, registry write pending reconciliation.
		status = http.StatusAccepted
	} else {
		resp.PIN = result.Holding.PIN
		resp.CountyID = result.Holding.CountyID
		resp.BuyerWallet = result.Holding.BuyerWallet
		resp.Shares = result.Holding.SharesOwned
		resp.PurchasedAt = &result.Holding.PurchasedAt
	}
	c.JSON(status, resp)
}

// GetListings retrieves active listings, optionally filtered by county
func (h *handler) GetListings(c *gin.Context) {
	var countyID *string
	if v := c.Query("county_id"); v != "" {
		countyID = &v
	}

	listings, err := h.query.ListActiveListings(c.Request.Context(), countyID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

// GetPortfolio retrieves a buyer's share holdings grouped per parcel
func (h *handler) GetPortfolio(c *gin.Context) {
	wallet := c.Param("wallet")
	if wallet == "" {
		respondBadRequest(c, "Wallet is required")
		return
	}

	portfolio, err := h.query.GetPortfolio(c.Request.Context(), wallet)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}

// GetOwnedParcels retrieves tokenized parcels owned by a wallet
func (h *handler) GetOwnedParcels(c *gin.Context) {
	wallet := c.Param("wallet")
	if wallet == "" {
		respondBadRequest(c, "Wallet is required")
		return
	}

	parcels, err := h.query.GetOwnedParcels(c.Request.Context(), wallet)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"parcels": parcels})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, &HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
