package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/jonumhills/townhall-rwa/internal/api/shared/errors"
	"github.com/jonumhills/townhall-rwa/internal/domain"
	"github.com/jonumhills/townhall-rwa/internal/logger"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, apierrors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, apierrors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, apierrors.NewValidationError(message))
}

// respondConflict responds with a conflict error
func respondConflict(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusConflict, apierrors.NewConflictError(message, details...))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, err error, message string, details ...string) {
	logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
	c.JSON(http.StatusInternalServerError, apierrors.NewInternalError(message, details...))
}

// respondDomainError maps registry and settlement errors to HTTP responses.
// Errors that don't match a known sentinel fall through as internal errors.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidShareAmount):
		respondBadRequest(c, "Invalid request", err.Error())

	case errors.Is(err, domain.ErrParcelNotFound),
		errors.Is(err, domain.ErrClaimNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrTokenNotFound):
		respondNotFound(c, "Not found", err.Error())

	case errors.Is(err, domain.ErrDuplicateClaim),
		errors.Is(err, domain.ErrAlreadyMinted),
		errors.Is(err, domain.ErrClaimNotPending),
		errors.Is(err, domain.ErrNotApproved),
		errors.Is(err, domain.ErrSelfTradeRejected):
		respondConflict(c, "Conflict", err.Error())

	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, apierrors.NewForbiddenError("Forbidden", err.Error()))

	case errors.Is(err, domain.ErrInsufficientAvailableShares),
		errors.Is(err, domain.ErrInsufficientListedShares):
		c.JSON(http.StatusUnprocessableEntity, apierrors.NewInsufficientSharesError("Insufficient shares", err.Error()))

	case errors.Is(err, domain.ErrChainSettlementFailed):
		logger.ErrorCtx(c.Request.Context(), err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusBadGateway, apierrors.NewChainError("Chain settlement failed", err.Error()))

	default:
		respondInternalError(c, err, "Internal server error")
	}
}
