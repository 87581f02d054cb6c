// File: services/agent/draft.go
package agent

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"maitred/models"
)

var (
	ErrUnknownField     = errors.New("unknown draft field")
	ErrInvalidPartySize = errors.New("party size must be a number between 1 and 99")
)

var (
	bareHourPattern = regexp.MustCompile(`^\d{1,2}$`)
	hourMinPattern  = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
)

// ApplyFieldEdit overwrites a single draft field with a user-entered
// value. An accepted edit always forces provenance to "user"; a rejected
// edit leaves the draft completely unchanged.
func ApplyFieldEdit(draft *models.ReservationDraft, field, value string) error {
	value = strings.TrimSpace(value)

	switch field {
	case models.FieldPartySize:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 || n >= 100 {
			return ErrInvalidPartySize
		}
		draft.PartySize = n
	case models.FieldTime:
		draft.Time = NormalizeTimeInput(value)
	case models.FieldDate:
		draft.Date = value
	case models.FieldCustomerName:
		draft.CustomerName = value
	case models.FieldEmail:
		draft.Email = value
	case models.FieldPhone:
		draft.Phone = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}

	draft.SetProvenance(field, models.ProvenanceUser)
	return nil
}

// NormalizeTimeInput expands a bare 1-2 digit hour to "HH:00" and passes
// "H:MM"/"HH:MM" through unchanged. Anything else (including the odd
// "7:3" shape) also passes through untouched; submission-time validation
// owns the final say. The partial pass-through mirrors the established
// frontend behavior.
func NormalizeTimeInput(value string) string {
	if bareHourPattern.MatchString(value) {
		hour, _ := strconv.Atoi(value)
		return fmt.Sprintf("%02d:00", hour)
	}
	if hourMinPattern.MatchString(value) {
		return value
	}
	return value
}

// applyExtractedField merges a model-extracted value into the draft using
// the same validation rules as manual edits, tagging it with the given
// provenance. Invalid extractions are dropped silently so a bad model
// guess can never corrupt the draft.
func applyExtractedField(draft *models.ReservationDraft, field, value string, prov models.Provenance) {
	if value == "" {
		return
	}
	switch field {
	case models.FieldPartySize:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 || n >= 100 {
			return
		}
		draft.PartySize = n
	case models.FieldTime:
		draft.Time = NormalizeTimeInput(strings.TrimSpace(value))
	case models.FieldDate:
		draft.Date = strings.TrimSpace(value)
	case models.FieldCustomerName:
		draft.CustomerName = strings.TrimSpace(value)
	case models.FieldEmail:
		draft.Email = strings.TrimSpace(value)
	case models.FieldPhone:
		draft.Phone = strings.TrimSpace(value)
	default:
		return
	}
	draft.SetProvenance(field, prov)
}

// prefillFromProfile seeds empty contact fields from the authenticated
// identity. Prefills are always tagged inferred: the guest can still
// review and change them before finalization.
func prefillFromProfile(draft *models.ReservationDraft, profile *models.UserProfile) {
	if profile == nil {
		return
	}
	if draft.CustomerName == "" && profile.Name != "" {
		draft.CustomerName = profile.Name
		draft.SetProvenance(models.FieldCustomerName, models.ProvenanceInferred)
	}
	if draft.Email == "" && profile.Email != "" {
		draft.Email = profile.Email
		draft.SetProvenance(models.FieldEmail, models.ProvenanceInferred)
	}
}
