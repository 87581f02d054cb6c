package models

import "time"

// Email queue statuses.
const (
	EmailPending = "pending"
	EmailSent    = "sent"
	EmailFailed  = "failed"
)

// Email types understood by the templating layer.
const (
	EmailConfirmation = "confirmation"
	EmailCancellation = "cancellation"
)

// EmailQueueEntry is a templated email awaiting dispatch. Entries are
// deleted in cascade when their parent reservation is swept.
type EmailQueueEntry struct {
	ID            string    `bson:"id" json:"id"`
	ToEmail       string    `bson:"to_email" json:"to_email"`
	Subject       string    `bson:"subject" json:"subject"`
	Body          string    `bson:"body" json:"body"`
	EmailType     string    `bson:"email_type" json:"email_type"` // confirmation | cancellation
	Status        string    `bson:"status" json:"status"`         // pending | sent | failed
	ReservationID string    `bson:"reservation_id" json:"reservation_id"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	SentAt        time.Time `bson:"sent_at,omitempty" json:"sent_at,omitempty"`
	LastError     string    `bson:"last_error,omitempty" json:"last_error,omitempty"`
}
