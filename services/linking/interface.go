// File: services/linking/interface.go
package linking

import (
	"context"

	reservationRepo "maitred/database/repository/reservation"
	"maitred/models"
)

// LinkStatus is the typed outcome of a linkable-reservations check.
type LinkStatus string

const (
	StatusFound    LinkStatus = "found"    // candidates available for linking
	StatusNone     LinkStatus = "none"     // no guest reservations match
	StatusSkipped  LinkStatus = "skipped"  // already checked this session
	StatusDegraded LinkStatus = "degraded" // lookup failed; feature quietly disabled
)

// LinkCheckResult is what a check returns. Degraded results are
// presented to the end user exactly like StatusNone; callers that care
// (logs, retries) still see the distinction.
type LinkCheckResult struct {
	Status     LinkStatus                   `json:"status"`
	Candidates []models.LinkableReservation `json:"candidates,omitempty"`
}

// LinkResult reports a completed ownership transfer.
type LinkResult struct {
	Success bool  `json:"success"`
	Linked  int64 `json:"linked"`
}

// LinkingService matches guest reservations to a freshly authenticated
// account and performs the one-time ownership transfer.
type LinkingService interface {
	// CheckForLinkable looks up guest reservations matching the
	// identity's email. It runs at most once per session; re-entry
	// yields StatusSkipped.
	CheckForLinkable(ctx context.Context, sessionID string, identity models.AuthIdentity) LinkCheckResult

	// Link reassigns every matching guest reservation to the identity.
	// Idempotent: a second call finds nothing left to link.
	Link(ctx context.Context, identity models.AuthIdentity) (LinkResult, error)
}

// SessionFlagStore tracks the once-per-session check flag.
type SessionFlagStore interface {
	Seen(ctx context.Context, key string) (bool, error)
	MarkSeen(ctx context.Context, key string) error
}

// DefaultLinkingService implements LinkingService.
type DefaultLinkingService struct {
	Repo  reservationRepo.ReservationRepository
	Flags SessionFlagStore
}
