// File: services/cleanup/sweeper.go
package cleanup

import (
	"context"
	"time"

	"maitred/utils"

	"go.uber.org/zap"
)

// Cutoff returns the eligibility boundary: the start of today in UTC.
// Reservations strictly before it are swept; one scheduled earlier today
// (or at midnight exactly) survives until tomorrow's run.
func (s *DefaultCleanupService) Cutoff() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Truncate(24 * time.Hour)
}

// Sweep deletes past reservations and their queued emails. Safe to run
// concurrently: both deletes are by predicate, so rows a parallel sweep
// already removed simply don't match.
func (s *DefaultCleanupService) Sweep(ctx context.Context) SweepResult {
	logger := utils.GetLogger()
	cutoff := s.Cutoff()

	eligible, err := s.Reservations.FindPastSummaries(cutoff)
	if err != nil {
		logger.Error("cleanup: failed to find past reservations", zap.Error(err))
		return SweepResult{Success: false, Message: "failed to find past reservations"}
	}
	if len(eligible) == 0 {
		return SweepResult{Success: true, DeletedCount: 0}
	}

	ids := make([]string, 0, len(eligible))
	for _, r := range eligible {
		ids = append(ids, r.ID)
	}

	// Queue rows reference reservations, so they go first. The gap
	// between the two deletes is accepted for this domain; a crash in
	// between leaves orphan-free reservations the next run picks up.
	removedEmails, err := s.EmailQueue.DeleteByReservationIDs(ids)
	if err != nil {
		logger.Error("cleanup: failed to delete email queue rows", zap.Error(err))
		return SweepResult{Success: false, Message: "failed to delete dependent email queue rows"}
	}

	deleted, err := s.Reservations.DeleteByIDs(ids)
	if err != nil {
		logger.Error("cleanup: failed to delete reservations", zap.Error(err))
		return SweepResult{Success: false, Message: "failed to delete past reservations"}
	}

	logger.Info("cleanup: sweep complete",
		zap.Time("cutoff", cutoff),
		zap.Int64("reservations_deleted", deleted),
		zap.Int64("emails_deleted", removedEmails),
	)
	return SweepResult{Success: true, DeletedCount: deleted, Deleted: eligible}
}

// Preview reports what a sweep would delete without mutating anything.
func (s *DefaultCleanupService) Preview(ctx context.Context) (SweepResult, error) {
	eligible, err := s.Reservations.FindPastSummaries(s.Cutoff())
	if err != nil {
		return SweepResult{Success: false, Message: "failed to find past reservations"}, err
	}
	return SweepResult{Success: true, DeletedCount: int64(len(eligible)), Deleted: eligible}, nil
}
