// File: services/mailer/mailer.go
package mailer

import (
	"context"
	"fmt"

	"maitred/models"
	"maitred/services/tasks"
	"maitred/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueueReservationEmail renders and enqueues one reservation email. The
// queue row is the durable record; the asynq task is just the wake-up
// call, so a failed enqueue still leaves a pending row a later drain can
// pick up.
func (s *DefaultMailerService) QueueReservationEmail(res *models.Reservation, emailType, toEmail string) (*models.EmailQueueEntry, error) {
	if toEmail == "" {
		return nil, fmt.Errorf("no recipient for %s email on reservation %s", emailType, res.ID)
	}

	subject, body, err := RenderReservationEmail(res, emailType)
	if err != nil {
		return nil, err
	}

	entry := &models.EmailQueueEntry{
		ID:            uuid.New().String(),
		ToEmail:       toEmail,
		Subject:       subject,
		Body:          body,
		EmailType:     emailType,
		Status:        models.EmailPending,
		ReservationID: res.ID,
	}
	if err := s.Queue.Enqueue(entry); err != nil {
		return nil, fmt.Errorf("failed to queue %s email: %w", emailType, err)
	}

	if s.Tasks != nil {
		task, err := tasks.NewEmailDispatchTask(entry.ID)
		if err == nil {
			_, err = s.Tasks.Enqueue(task)
		}
		if err != nil {
			utils.GetLogger().Warn("mailer: failed to enqueue dispatch task",
				zap.String("entry_id", entry.ID), zap.Error(err))
		}
	}
	return entry, nil
}

// Dispatch delivers one queue entry. Entries that already left pending
// (a concurrent dispatch, or a sweep deleting the reservation) are
// skipped quietly; transient lookup failures surface so the task is
// retried.
func (s *DefaultMailerService) Dispatch(ctx context.Context, entryID string) error {
	entry, err := s.Queue.GetByID(entryID)
	if err != nil {
		return fmt.Errorf("failed to load email queue entry %s: %w", entryID, err)
	}
	if entry == nil {
		// The parent reservation was swept and the entry cascaded away;
		// nothing left to deliver.
		utils.GetLogger().Warn("mailer: dispatch target missing", zap.String("entry_id", entryID))
		return nil
	}
	if entry.Status != models.EmailPending {
		return nil
	}

	if err := s.Sender.Send(ctx, entry); err != nil {
		if markErr := s.Queue.MarkFailed(entry.ID, err.Error()); markErr != nil {
			utils.GetLogger().Error("mailer: failed to mark entry failed",
				zap.String("entry_id", entry.ID), zap.Error(markErr))
		}
		return fmt.Errorf("failed to send email %s: %w", entry.ID, err)
	}
	return s.Queue.MarkSent(entry.ID)
}

// DrainPending picks up pending rows stranded by a lost or failed
// wake-up task and pushes them through Dispatch. A failing entry is
// marked failed by Dispatch and does not stop the rest of the batch.
func (s *DefaultMailerService) DrainPending(ctx context.Context, limit int) (int, error) {
	entries, err := s.Queue.ListPending(limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list pending emails: %w", err)
	}

	delivered := 0
	for _, entry := range entries {
		if err := s.Dispatch(ctx, entry.ID); err != nil {
			utils.GetLogger().Warn("mailer: drain dispatch failed",
				zap.String("entry_id", entry.ID), zap.Error(err))
			continue
		}
		delivered++
	}
	if len(entries) > 0 {
		utils.GetLogger().Info("mailer: drained pending emails",
			zap.Int("pending", len(entries)), zap.Int("delivered", delivered))
	}
	return delivered, nil
}

// LogSender is the default Sender: delivery infrastructure is external,
// so out of the box we just record what would have gone out.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, entry *models.EmailQueueEntry) error {
	utils.GetLogger().Info("mailer: delivering email",
		zap.String("to", entry.ToEmail),
		zap.String("subject", entry.Subject),
		zap.String("type", entry.EmailType),
	)
	return nil
}
