package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/dto"
)

// statusFor maps a domain error to the HTTP status it should surface as
func statusFor(err error) int {
	switch {
	case domainerr.IsValidationError(err),
		domainerr.IsInsufficientFundsError(err),
		domainerr.IsInsufficientSharesError(err):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrInvalidCredentials),
		errors.Is(err, domainerr.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrDuplicateUsername):
		return http.StatusConflict
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsUserLockedError(err):
		return http.StatusLocked
	case domainerr.IsQuoteUnavailableError(err):
		// An unknown symbol is the caller's mistake; everything else is
		// the upstream feed failing us
		if errors.Is(err, domainerr.ErrDataUnavailable) {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a standardized error response and logs server-side
// failures
func respondError(c *gin.Context, logger coreport.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", map[string]any{
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
			"error":  err.Error(),
		})
		message = "Internal server error"
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: message,
	})
}
