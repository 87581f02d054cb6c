// File: services/mailer/templates.go
package mailer

import (
	"fmt"

	"maitred/models"
)

// RenderReservationEmail produces the subject and body for a reservation
// email. The subject carries the short token reference guests quote when
// calling in.
func RenderReservationEmail(res *models.Reservation, emailType string) (subject, body string, err error) {
	name := res.GuestName
	if name == "" {
		name = "there"
	}
	when := res.Datetime.Format("Monday, 2 January 2006 at 15:04")

	switch emailType {
	case models.EmailConfirmation:
		subject = fmt.Sprintf("Your reservation is confirmed (Ref %s)", res.TokenRef())
		body = fmt.Sprintf(
			"Hi %s,\n\nYour table for %d is booked for %s.\n\n"+
				"Reference: %s\n\n"+
				"Need to change or cancel? Use the reference above on our reservations page.\n\n"+
				"See you soon!",
			name, res.PartySize, when, res.TokenRef())
	case models.EmailCancellation:
		subject = fmt.Sprintf("Your reservation has been cancelled (Ref %s)", res.TokenRef())
		body = fmt.Sprintf(
			"Hi %s,\n\nYour reservation for %d on %s has been cancelled.\n\n"+
				"Reference: %s\n\n"+
				"We hope to see you another time.",
			name, res.PartySize, when, res.TokenRef())
	default:
		return "", "", fmt.Errorf("unknown email type %q", emailType)
	}
	return subject, body, nil
}
