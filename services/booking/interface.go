// File: services/booking/interface.go
package booking

import (
	reservationRepo "maitred/database/repository/reservation"
	tableRepo "maitred/database/repository/table"
	"maitred/models"
	"maitred/services/mailer"
)

// BookingService owns reservation submission and lifecycle. The chat
// agent and the booking form both end here; availability is re-validated
// on every submission regardless of what the conversation promised.
type BookingService interface {
	CreateReservation(input models.ReservationInput) (*models.Reservation, error)
	GetByToken(token string) (*models.Reservation, error)
	CancelByToken(token string) (*models.Reservation, error)
	UpdateStatus(id, status string) (*models.Reservation, error)
	ListAll() ([]models.Reservation, error)
	CountPerDay() ([]models.DayCount, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Reservations reservationRepo.ReservationRepository
	Tables       tableRepo.TableRepository
	Mailer       mailer.MailerService
}
