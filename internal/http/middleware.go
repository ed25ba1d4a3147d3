package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finlite/internal/auth"
)

const claimsContextKey = "authClaims"

// authRequired verifies the bearer token and attaches the decoded claims to
// the request context. A missing token is 401, a bad or expired one 403.
// Identity is read only from the verified claim, never from the payload.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if header == "" || len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token not provided"})
			return
		}

		claims, err := auth.ParseToken(strings.TrimSpace(parts[1]), h.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// currentUserID returns the authenticated caller's id. Routes registered
// behind authRequired always have one.
func currentUserID(c *gin.Context) int64 {
	v, ok := c.Get(claimsContextKey)
	if !ok {
		return 0
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return 0
	}
	return claims.UserID
}
