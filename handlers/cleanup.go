// File: handlers/cleanup.go
package handlers

import (
	"net/http"

	"maitred/services/cleanup"

	"github.com/gin-gonic/gin"
)

// CleanupPreviewHandler lists what a sweep would remove without deleting
// anything.
func CleanupPreviewHandler(svc cleanup.CleanupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Preview(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to preview cleanup", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CleanupSweepHandler runs the retention sweep and reports what was
// removed. A failed sweep is a typed result, not a panic.
func CleanupSweepHandler(svc cleanup.CleanupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := svc.Sweep(c.Request.Context())
		if !result.Success {
			c.JSON(http.StatusInternalServerError, result)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
