// File: middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"maitred/models"
	"maitred/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// bearerToken extracts the raw token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// OptionalAuthMiddleware resolves the identity when a valid bearer token
// is present and continues anonymously otherwise. The reservation agent
// uses it: identity hints pre-fill the draft but booking works without.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if identity, err := utils.IdentityFromToken(token); err == nil {
				c.Set(identityKey, identity)
			}
		}
		c.Next()
	}
}

// AuthMiddleware requires a valid bearer token from the auth provider.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		identity, err := utils.IdentityFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

// AdminMiddleware requires an authenticated identity with the admin
// role. Denial is a plain 403, never an exception.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		if !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the resolved identity for this request, or nil.
func IdentityFrom(c *gin.Context) *models.AuthIdentity {
	v, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	identity, ok := v.(*models.AuthIdentity)
	if !ok {
		return nil
	}
	return identity
}
