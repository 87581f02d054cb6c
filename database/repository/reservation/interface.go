// File: database/repository/reservation/interface.go
package reservationRepo

import (
	"time"

	"maitred/models"
)

// ReservationRepository defines data access for reservations. The hosted
// store's remote procedures map onto the query methods: FindLinkable,
// LinkGuestReservations, CountPerDay.
type ReservationRepository interface {
	Create(res *models.Reservation) error
	GetByID(id string) (*models.Reservation, error)
	GetByToken(token string) (*models.Reservation, error)
	GetAll() ([]models.Reservation, error)
	UpdateStatus(id, status string) error

	// FindActiveByTableBetween returns non-cancelled reservations for a
	// table inside [from, to); used for availability re-validation.
	FindActiveByTableBetween(tableID string, from, to time.Time) ([]models.Reservation, error)

	// FindLinkable returns guest reservations whose guest_email matches
	// exactly and whose user_id is unset.
	FindLinkable(email string) ([]models.LinkableReservation, error)

	// LinkGuestReservations reassigns all linkable reservations for the
	// email to userID in one update, clearing the guest contact trio.
	// Returns the number of reservations linked; idempotent.
	LinkGuestReservations(email, userID string) (int64, error)

	// FindPastSummaries returns summaries of reservations scheduled
	// strictly before the cutoff.
	FindPastSummaries(cutoff time.Time) ([]models.ReservationSummary, error)

	// DeleteByIDs removes the given reservations, returning the count
	// actually deleted (already-gone ids are simply not matched).
	DeleteByIDs(ids []string) (int64, error)

	CountPerDay() ([]models.DayCount, error)
}
