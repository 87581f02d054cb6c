// File: services/cleanup/interface.go
package cleanup

import (
	"context"
	"time"

	emailQueueRepo "maitred/database/repository/emailqueue"
	reservationRepo "maitred/database/repository/reservation"
	"maitred/models"
)

// SweepResult reports one retention sweep run.
type SweepResult struct {
	Success      bool                        `json:"success"`
	DeletedCount int64                       `json:"deletedCount"`
	Deleted      []models.ReservationSummary `json:"deletedReservations"`
	Message      string                      `json:"message,omitempty"`
}

// CleanupService removes reservations whose day has passed, email queue
// rows first to keep referential integrity.
type CleanupService interface {
	Sweep(ctx context.Context) SweepResult
	Preview(ctx context.Context) (SweepResult, error)
}

// DefaultCleanupService implements CleanupService.
type DefaultCleanupService struct {
	Reservations reservationRepo.ReservationRepository
	EmailQueue   emailQueueRepo.EmailQueueRepository

	// Now is injectable for tests; defaults to time.Now.
	Now func() time.Time
}
