// File: services/mailer/interface.go
package mailer

import (
	"context"

	emailQueueRepo "maitred/database/repository/emailqueue"
	"maitred/models"

	"github.com/hibiken/asynq"
)

// MailerService templates reservation emails into the queue and drives
// their dispatch. Actual delivery infrastructure is an external
// collaborator behind Sender.
type MailerService interface {
	// QueueReservationEmail renders the template for emailType and
	// inserts a pending queue entry addressed to toEmail, then enqueues
	// a dispatch task.
	QueueReservationEmail(res *models.Reservation, emailType, toEmail string) (*models.EmailQueueEntry, error)

	// Dispatch delivers one queue entry and marks it sent or failed.
	Dispatch(ctx context.Context, entryID string) error

	// DrainPending dispatches pending entries whose wake-up task never
	// arrived or failed, oldest first. Returns how many were delivered.
	DrainPending(ctx context.Context, limit int) (int, error)
}

// Sender hands a rendered email to the delivery collaborator.
type Sender interface {
	Send(ctx context.Context, entry *models.EmailQueueEntry) error
}

// TaskEnqueuer is the slice of asynq.Client the mailer needs.
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// DefaultMailerService implements MailerService.
type DefaultMailerService struct {
	Queue  emailQueueRepo.EmailQueueRepository
	Tasks  TaskEnqueuer
	Sender Sender
}
