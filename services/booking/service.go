// File: services/booking/service.go
package booking

import (
	"fmt"
	"time"

	"maitred/models"
	"maitred/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seatingDuration is how long a party holds its table. Bookings within
// this window either side of an existing one contend for the same table.
const seatingDuration = 2 * time.Hour

// CreateReservation validates the submission, re-checks table
// availability and persists the reservation. Exactly one of user_id or
// the guest contact trio ends up populated.
func (s *DefaultBookingService) CreateReservation(input models.ReservationInput) (*models.Reservation, error) {
	if input.PartySize <= 0 || input.PartySize >= 100 {
		return nil, ErrInvalidPartySize
	}

	dt, err := time.Parse("2006-01-02 15:04", input.Date+" "+input.Time)
	if err != nil {
		return nil, ErrInvalidDateTime
	}
	dt = dt.UTC()

	if input.UserID == "" && (input.CustomerName == "" || input.Email == "" || input.Phone == "") {
		return nil, ErrMissingContact
	}

	table, err := s.allocateTable(input.PartySize, dt)
	if err != nil {
		return nil, err
	}

	res := &models.Reservation{
		ID:        uuid.New().String(),
		TableID:   table.ID,
		Datetime:  dt,
		PartySize: input.PartySize,
		Status:    models.ReservationPending,
		Token:     uuid.New().String(),
	}
	if input.UserID != "" {
		res.UserID = input.UserID
	} else {
		res.GuestName = input.CustomerName
		res.GuestEmail = input.Email
		res.GuestPhone = input.Phone
	}

	if err := s.Reservations.Create(res); err != nil {
		return nil, fmt.Errorf("failed to persist reservation: %w", err)
	}

	// Booking succeeds even when the confirmation email cannot be queued.
	if s.Mailer != nil {
		if _, err := s.Mailer.QueueReservationEmail(res, models.EmailConfirmation, input.Email); err != nil {
			utils.GetLogger().Error("booking: failed to queue confirmation email",
				zap.String("reservation_id", res.ID), zap.Error(err))
		}
	}
	return res, nil
}

// allocateTable picks the smallest free table that fits the party.
func (s *DefaultBookingService) allocateTable(partySize int, dt time.Time) (*models.DiningTable, error) {
	tables, err := s.Tables.GetActiveWithCapacity(partySize)
	if err != nil {
		return nil, fmt.Errorf("failed to load tables: %w", err)
	}

	from := dt.Add(-seatingDuration)
	to := dt.Add(seatingDuration)
	for i := range tables {
		conflicts, err := s.Reservations.FindActiveByTableBetween(tables[i].ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to check table availability: %w", err)
		}
		if len(conflicts) == 0 {
			return &tables[i], nil
		}
	}
	return nil, ErrNoTableAvailable
}

// GetByToken is the guest lookup path.
func (s *DefaultBookingService) GetByToken(token string) (*models.Reservation, error) {
	res, err := s.Reservations.GetByToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reservation: %w", err)
	}
	if res == nil {
		return nil, ErrNotFound
	}
	return res, nil
}

// CancelByToken cancels a reservation via its opaque token. Cancelling an
// already-cancelled reservation is a no-op.
func (s *DefaultBookingService) CancelByToken(token string) (*models.Reservation, error) {
	res, err := s.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if res.Status == models.ReservationCancelled {
		return res, nil
	}

	if err := s.Reservations.UpdateStatus(res.ID, models.ReservationCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}
	res.Status = models.ReservationCancelled

	if s.Mailer != nil && res.GuestEmail != "" {
		if _, err := s.Mailer.QueueReservationEmail(res, models.EmailCancellation, res.GuestEmail); err != nil {
			utils.GetLogger().Error("booking: failed to queue cancellation email",
				zap.String("reservation_id", res.ID), zap.Error(err))
		}
	}
	return res, nil
}

// UpdateStatus is the staff status mutation. It returns the updated
// reservation for the admin table to re-render.
func (s *DefaultBookingService) UpdateStatus(id, status string) (*models.Reservation, error) {
	switch status {
	case models.ReservationPending, models.ReservationConfirmed, models.ReservationCancelled:
	default:
		return nil, fmt.Errorf("%w: got %q", ErrInvalidStatus, status)
	}
	if err := s.Reservations.UpdateStatus(id, status); err != nil {
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	res, err := s.Reservations.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to reload reservation %s: %w", id, err)
	}
	return res, nil
}

// ListAll returns every reservation for the admin table.
func (s *DefaultBookingService) ListAll() ([]models.Reservation, error) {
	return s.Reservations.GetAll()
}

// CountPerDay returns the per-day booking histogram.
func (s *DefaultBookingService) CountPerDay() ([]models.DayCount, error) {
	return s.Reservations.CountPerDay()
}
