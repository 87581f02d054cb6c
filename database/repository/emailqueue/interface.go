// File: database/repository/emailqueue/interface.go
package emailQueueRepo

import "maitred/models"

// EmailQueueRepository defines data access for queued emails. Enqueue
// maps onto the store's queue_email procedure.
type EmailQueueRepository interface {
	Enqueue(entry *models.EmailQueueEntry) error

	// GetByID returns nil, nil when no entry matches; errors are
	// transient store failures.
	GetByID(id string) (*models.EmailQueueEntry, error)

	// ListPending returns up to limit pending entries, oldest first;
	// the periodic drain feeds them back into dispatch.
	ListPending(limit int) ([]models.EmailQueueEntry, error)
	MarkSent(id string) error
	MarkFailed(id string, reason string) error

	// DeleteByReservationIDs removes queue rows for the given
	// reservations; the sweep calls this before deleting the
	// reservations themselves.
	DeleteByReservationIDs(reservationIDs []string) (int64, error)
}
