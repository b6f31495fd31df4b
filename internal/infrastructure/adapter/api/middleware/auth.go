package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerr "github.com/finbharat/finbharat/internal/domain/error"
	coreport "github.com/finbharat/finbharat/internal/domain/port/core"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/api/dto"
	"github.com/finbharat/finbharat/internal/infrastructure/adapter/auth"
)

// Context keys set by RequireSession
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

// RequireSession rejects requests that carry no valid session cookie
// and exposes the authenticated user on the gin context
func RequireSession(sessions *auth.SessionManager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.SessionCookieName)
		if err != nil || token == "" {
			abortUnauthenticated(c)
			return
		}

		claims, err := sessions.Verify(token)
		if err != nil {
			logger.Debug("Rejected session token", map[string]any{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			abortUnauthenticated(c)
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// AuthenticatedUserID reads the user ID set by RequireSession
func AuthenticatedUserID(c *gin.Context) (uint64, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	userID, ok := v.(uint64)
	return userID, ok
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrNotAuthenticated),
		Message: "Authentication required",
	})
}
