package models

// Provenance tags how a draft field got its value.
type Provenance string

const (
	ProvenanceUser     Provenance = "user"     // explicitly stated by the guest
	ProvenanceInferred Provenance = "inferred" // derived or defaulted by the system
)

// Draft field names. These double as provenance-map keys and as the JSON
// field names the chat frontend exchanges.
const (
	FieldPartySize    = "partySize"
	FieldDate         = "date"
	FieldTime         = "time"
	FieldCustomerName = "customerName"
	FieldEmail        = "email"
	FieldPhone        = "phone"
)

// RequiredDraftFields lists every field that must be present before a
// reservation can be finalized, in prompt order.
var RequiredDraftFields = []string{
	FieldPartySize,
	FieldDate,
	FieldTime,
	FieldCustomerName,
	FieldEmail,
	FieldPhone,
}

// ReservationDraft is the session-scoped partial reservation accumulated
// across a conversation. It is held by the client and travels with every
// turn; nothing is persisted until submission.
type ReservationDraft struct {
	PartySize    int                   `json:"partySize,omitempty"`
	Date         string                `json:"date,omitempty"`
	Time         string                `json:"time,omitempty"`
	CustomerName string                `json:"customerName,omitempty"`
	Email        string                `json:"email,omitempty"`
	Phone        string                `json:"phone,omitempty"`
	Provenance   map[string]Provenance `json:"provenance,omitempty"`
}

// DraftPhase is the explicit draft lifecycle tag.
type DraftPhase string

const (
	PhaseCollecting DraftPhase = "collecting"
	PhaseReady      DraftPhase = "ready"
)

// DraftState is the tagged completeness state of a draft. Collecting
// carries the fields still missing; Ready means every required field is
// present regardless of provenance.
type DraftState struct {
	Phase   DraftPhase `json:"phase"`
	Missing []string   `json:"missing,omitempty"`
}

// Get returns the current value of a named field as an untyped value,
// with ok=false for unknown field names.
func (d *ReservationDraft) Get(field string) (any, bool) {
	switch field {
	case FieldPartySize:
		return d.PartySize, true
	case FieldDate:
		return d.Date, true
	case FieldTime:
		return d.Time, true
	case FieldCustomerName:
		return d.CustomerName, true
	case FieldEmail:
		return d.Email, true
	case FieldPhone:
		return d.Phone, true
	}
	return nil, false
}

// Has reports whether a named field holds a usable value.
func (d *ReservationDraft) Has(field string) bool {
	switch field {
	case FieldPartySize:
		return d.PartySize > 0
	case FieldDate:
		return d.Date != ""
	case FieldTime:
		return d.Time != ""
	case FieldCustomerName:
		return d.CustomerName != ""
	case FieldEmail:
		return d.Email != ""
	case FieldPhone:
		return d.Phone != ""
	}
	return false
}

// SetProvenance records where a field's value came from.
func (d *ReservationDraft) SetProvenance(field string, p Provenance) {
	if d.Provenance == nil {
		d.Provenance = make(map[string]Provenance)
	}
	d.Provenance[field] = p
}

// State derives the tagged completeness state. Callers branch on the tag
// instead of re-inspecting individual fields.
func (d *ReservationDraft) State() DraftState {
	var missing []string
	for _, f := range RequiredDraftFields {
		if !d.Has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) == 0 {
		return DraftState{Phase: PhaseReady}
	}
	return DraftState{Phase: PhaseCollecting, Missing: missing}
}

// Clone returns a deep copy so a failed turn can never corrupt the
// caller's draft.
func (d *ReservationDraft) Clone() *ReservationDraft {
	cp := *d
	if d.Provenance != nil {
		cp.Provenance = make(map[string]Provenance, len(d.Provenance))
		for k, v := range d.Provenance {
			cp.Provenance[k] = v
		}
	}
	return &cp
}
