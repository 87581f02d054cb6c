// File: handlers/linking.go
package handlers

import (
	"net/http"

	"maitred/middleware"
	"maitred/services/linking"

	"github.com/gin-gonic/gin"
)

// LinkableReservationsHandler checks for guest reservations matching the
// authenticated account. Degraded lookups read exactly like "none found";
// the distinction lives in the logs.
func LinkableReservationsHandler(svc linking.LinkingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		sessionID := c.GetHeader("X-Session-ID")
		result := svc.CheckForLinkable(c.Request.Context(), sessionID, *identity)
		if result.Status == linking.StatusDegraded {
			result = linking.LinkCheckResult{Status: linking.StatusNone}
		}
		c.JSON(http.StatusOK, result)
	}
}

// LinkReservationsHandler transfers all matching guest reservations to
// the authenticated account.
func LinkReservationsHandler(svc linking.LinkingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middleware.IdentityFrom(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		result, err := svc.Link(c.Request.Context(), *identity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to link reservations", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
