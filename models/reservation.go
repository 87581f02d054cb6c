package models

import "time"

// Reservation statuses.
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCancelled = "cancelled"
)

// Reservation represents a persisted table reservation. Exactly one of
// UserID or the Guest* trio is populated, never both.
type Reservation struct {
	ID         string    `bson:"id" json:"id"`                                   // Unique reservation identifier (UUID)
	TableID    string    `bson:"table_id" json:"table_id"`                       // Assigned dining table
	Datetime   time.Time `bson:"datetime" json:"datetime"`                       // Scheduled instant (UTC)
	PartySize  int       `bson:"party_size" json:"party_size"`                   // Number of guests
	Status     string    `bson:"status" json:"status"`                           // pending | confirmed | cancelled
	UserID     string    `bson:"user_id,omitempty" json:"user_id,omitempty"`     // Owning account, empty for guest bookings
	GuestName  string    `bson:"guest_name,omitempty" json:"guest_name,omitempty"`
	GuestEmail string    `bson:"guest_email,omitempty" json:"guest_email,omitempty"`
	GuestPhone string    `bson:"guest_phone,omitempty" json:"guest_phone,omitempty"`
	Token      string    `bson:"reservation_token" json:"reservation_token"` // Opaque token for guest lookup/cancellation
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

// IsGuest reports whether the reservation is guest-owned.
func (r *Reservation) IsGuest() bool {
	return r.UserID == "" && r.GuestEmail != ""
}

// TokenRef returns the short reference shown to guests (last 8 characters
// of the reservation token).
func (r *Reservation) TokenRef() string {
	if len(r.Token) <= 8 {
		return r.Token
	}
	return r.Token[len(r.Token)-8:]
}

// ReservationSummary is the compact shape returned by the cleanup sweep
// and admin listings.
type ReservationSummary struct {
	ID        string    `bson:"id" json:"id"`
	TableID   string    `bson:"table_id" json:"table_id"`
	Datetime  time.Time `bson:"datetime" json:"datetime"`
	PartySize int       `bson:"party_size" json:"party_size"`
	GuestName string    `bson:"guest_name,omitempty" json:"guest_name,omitempty"`
	Status    string    `bson:"status" json:"status"`
}

// LinkableReservation is a guest reservation whose guest_email matches an
// authenticated account and whose user_id is still unset.
type LinkableReservation struct {
	ID        string    `bson:"id" json:"id"`
	TableID   string    `bson:"table_id" json:"table_id"`
	Datetime  time.Time `bson:"datetime" json:"datetime"`
	PartySize int       `bson:"party_size" json:"party_size"`
	GuestName string    `bson:"guest_name" json:"guest_name"`
}

// DayCount is one bucket of the reservations-per-day aggregation.
type DayCount struct {
	Day   string `bson:"_id" json:"day"` // "YYYY-MM-DD"
	Count int    `bson:"count" json:"count"`
}

// ReservationInput is the booking submission payload.
type ReservationInput struct {
	PartySize    int    `json:"partySize"`
	Date         string `json:"date"` // "YYYY-MM-DD"
	Time         string `json:"time"` // "HH:MM"
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	UserID       string `json:"userId,omitempty"` // set from the auth identity, never by the client
}
