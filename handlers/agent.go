// File: handlers/agent.go
package handlers

import (
	"net/http"

	"maitred/middleware"
	"maitred/models"
	"maitred/services/agent"

	"github.com/gin-gonic/gin"
)

// ReservationAgentHandler runs one slot-filling turn of the reservation
// conversation.
func ReservationAgentHandler(svc agent.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AgentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
			return
		}

		// Identity hints come from the verified token, never from the
		// request body.
		if identity := middleware.IdentityFrom(c); identity != nil {
			req.UserProfile = &models.UserProfile{
				ID:    identity.ID,
				Email: identity.Email,
				Name:  identity.Name,
			}
		}

		resp, err := svc.HandleTurn(c.Request.Context(), req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "agent turn failed", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DraftFieldEditHandler applies a manual edit to one draft field and
// returns the updated draft. Rejected values leave the draft untouched.
func DraftFieldEditHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Field string                   `json:"field"`
			Value string                   `json:"value"`
			Draft *models.ReservationDraft `json:"reservationData"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if req.Draft == nil {
			req.Draft = &models.ReservationDraft{}
		}

		if err := agent.ApplyFieldEdit(req.Draft, req.Field, req.Value); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":           err.Error(),
				"reservationData": req.Draft,
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"reservationData": req.Draft,
			"state":           req.Draft.State(),
		})
	}
}

// InventoryInsightsHandler answers a free-text stock question for admins.
func InventoryInsightsHandler(svc agent.AgentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Question string `json:"question"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Question == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}

		answer, err := svc.InventoryInsights(c.Request.Context(), req.Question)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate insights", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	}
}
