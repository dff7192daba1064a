package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skytrip/flightcrm/internal/auth"
)

const ContextAdminUsername = "adminUsername"

// AdminAuth guards the admin-only routes. The token travels as a bearer
// credential in the Authorization header.
func AdminAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header"})
			return
		}

		claims, err := tokens.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextAdminUsername, claims.Subject)
		c.Next()
	}
}
