// File: services/booking/errors.go
package booking

import "errors"

// Validation errors surface inline to the guest as 400s; they never
// abort the form state.
var (
	ErrInvalidPartySize = errors.New("party size must be between 1 and 99")
	ErrInvalidDateTime  = errors.New("date must be YYYY-MM-DD and time must be HH:MM")
	ErrMissingContact   = errors.New("guest bookings need a name, email and phone")
	ErrNoTableAvailable = errors.New("no table available for that party size and time")
	ErrInvalidStatus    = errors.New("status must be pending, confirmed or cancelled")
	ErrNotFound         = errors.New("reservation not found")
)

// IsValidation reports whether err should map to a 400 rather than a 500.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidPartySize) ||
		errors.Is(err, ErrInvalidDateTime) ||
		errors.Is(err, ErrMissingContact) ||
		errors.Is(err, ErrNoTableAvailable) ||
		errors.Is(err, ErrInvalidStatus)
}
