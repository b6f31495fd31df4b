package middleware

import (
	"github.com/gin-gonic/gin"
)

// NoCache marks every response as uncacheable so a shared browser
// cannot show one user's portfolio to the next
func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		c.Writer.Header().Set("Pragma", "no-cache")
		c.Writer.Header().Set("Expires", "0")
		c.Next()
	}
}
