// File: handlers/reservations.go
package handlers

import (
	"errors"
	"net/http"

	"maitred/middleware"
	"maitred/models"
	"maitred/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateReservationHandler submits a booking. Authenticated callers book
// under their account; anonymous callers book as guests with contact
// details.
func CreateReservationHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ReservationInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		// The owning account comes from the token, never the payload.
		input.UserID = ""
		if identity := middleware.IdentityFrom(c); identity != nil {
			input.UserID = identity.ID
		}

		res, err := svc.CreateReservation(input)
		if err != nil {
			if booking.IsValidation(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reservation", "details": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

// GetReservationByTokenHandler looks up a reservation by its opaque
// token.
func GetReservationByTokenHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.GetByToken(c.Param("token"))
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reservation", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// CancelReservationHandler cancels a reservation by token. Cancelling an
// already cancelled reservation is a no-op success.
func CancelReservationHandler(svc booking.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := svc.CancelByToken(c.Param("token"))
		if err != nil {
			if errors.Is(err, booking.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "reservation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel reservation", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
