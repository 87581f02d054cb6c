// File: handlers/email.go
package handlers

import (
	"net/http"

	"maitred/models"
	"maitred/services/mailer"

	"github.com/gin-gonic/gin"
)

// SendEmailHandler queues a reservation email for async delivery. The
// response reports the queued entry; actual delivery happens on the
// worker.
func SendEmailHandler(svc mailer.MailerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Reservation models.Reservation `json:"reservation"`
			Type        string             `json:"type"`
			ToEmail     string             `json:"toEmail"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
		if req.Type == "" {
			req.Type = models.EmailConfirmation
		}

		// User-owned reservations carry no guest email; the caller names
		// the recipient explicitly.
		recipient := req.ToEmail
		if recipient == "" {
			recipient = req.Reservation.GuestEmail
		}

		entry, err := svc.QueueReservationEmail(&req.Reservation, req.Type, recipient)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to queue email", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"queued":  entry.ID,
			"status":  entry.Status,
		})
	}
}
