package models

import "time"

// Agent turn actions.
const (
	ActionContinue            = "CONTINUE"
	ActionCompleteReservation = "COMPLETE_RESERVATION"
)

// ChatMessage is one entry of the conversation transcript. Role is
// "user" or "assistant".
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserProfile carries optional authenticated-identity hints into a turn.
// Hints only pre-fill empty draft fields; they never bypass confirmation.
type UserProfile struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// AgentRequest is the payload of POST /reservation-agent.
type AgentRequest struct {
	Message             string            `json:"message"`
	ConversationHistory []ChatMessage     `json:"conversationHistory"`
	ReservationData     *ReservationDraft `json:"reservationData"`
	UserProfile         *UserProfile      `json:"userProfile,omitempty"`
	SessionID           string            `json:"sessionId,omitempty"`
}

// AgentResponse is what a slot-filling turn returns.
type AgentResponse struct {
	Reply           string            `json:"reply"`
	ReservationData *ReservationDraft `json:"reservationData"`
	Action          string            `json:"action"` // CONTINUE | COMPLETE_RESERVATION
}

// AIActionLog records one completed agent turn for the admin audit trail.
type AIActionLog struct {
	ID        string    `bson:"id" json:"id"`
	SessionID string    `bson:"session_id,omitempty" json:"session_id,omitempty"`
	UserID    string    `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Kind      string    `bson:"kind" json:"kind"` // e.g. "reservation_turn", "inventory_insight"
	Input     string    `bson:"input" json:"input"`
	Action    string    `bson:"action" json:"action"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
