// File: services/agent/prompt.go
package agent

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"maitred/models"
)

const reservationSystemPrompt = `You are the reservation assistant for a restaurant.
Your job is to collect, over the conversation, the six details needed to book a table:
partySize (1-99), date (YYYY-MM-DD), time (HH:MM, 24h), customerName, email, phone.

Rules:
- Ask for at most one or two missing details per reply, in a warm, concise tone.
- Never invent contact details. Only fill a field the guest actually stated, or an
  obvious interpretation of it (e.g. "tomorrow at 7pm" -> a concrete date and "19:00").
- If you interpreted or defaulted a value rather than taking it verbatim, list that
  field name in "inferred".
- If the guest corrects an earlier detail, emit the corrected value.

Respond with ONLY a JSON object, no prose around it:
{"reply": "<your reply to the guest>",
 "fields": {"partySize": 0, "date": "", "time": "", "customerName": "", "email": "", "phone": ""},
 "inferred": []}
Leave a field zero/empty if this turn gave you nothing new for it.`

// llmFields is the field payload the model returns. PartySize is untyped
// because models alternate between numbers and quoted numbers.
type llmFields struct {
	PartySize    any    `json:"partySize"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	CustomerName string `json:"customerName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

type llmTurn struct {
	Reply    string    `json:"reply"`
	Fields   llmFields `json:"fields"`
	Inferred []string  `json:"inferred"`
}

// buildTurnPrompt assembles the full prompt for one slot-filling turn:
// system instructions, current draft snapshot, transcript, new message.
func buildTurnPrompt(req models.AgentRequest, draft *models.ReservationDraft) string {
	var sb strings.Builder
	sb.WriteString(reservationSystemPrompt)

	sb.WriteString("\n\nToday's date is ")
	sb.WriteString(time.Now().UTC().Format("2006-01-02"))
	sb.WriteString(".")

	snapshot, _ := json.Marshal(draft)
	sb.WriteString("\n\nDetails collected so far: ")
	sb.Write(snapshot)

	state := draft.State()
	if state.Phase == models.PhaseCollecting {
		sb.WriteString("\nStill missing: ")
		sb.WriteString(strings.Join(state.Missing, ", "))
	} else {
		sb.WriteString("\nAll details are collected; confirm the booking back to the guest.")
	}

	if len(req.ConversationHistory) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		for _, msg := range req.ConversationHistory {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
	}

	sb.WriteString("\nuser: ")
	sb.WriteString(req.Message)
	return sb.String()
}

// parseTurn extracts the structured turn from raw model output. Code
// fences and surrounding prose are tolerated; if no JSON object can be
// recovered the raw text is used as the reply with no field updates.
func parseTurn(raw string) llmTurn {
	cleaned := stripCodeFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end <= start {
		return llmTurn{Reply: strings.TrimSpace(raw)}
	}

	var turn llmTurn
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &turn); err != nil {
		return llmTurn{Reply: strings.TrimSpace(raw)}
	}
	if turn.Reply == "" {
		turn.Reply = strings.TrimSpace(raw)
	}
	return turn
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// partySizeString renders whatever the model produced for partySize as a
// plain numeric string, or "" when absent.
func partySizeString(v any) string {
	switch n := v.(type) {
	case float64:
		if n <= 0 {
			return ""
		}
		return fmt.Sprintf("%d", int(n))
	case string:
		return strings.TrimSpace(n)
	case json.Number:
		return n.String()
	}
	return ""
}

const insightsSystemPrompt = `You are the inventory analyst for a restaurant.
Answer the manager's question using ONLY the stock summary provided. Be specific:
name items, quantities and thresholds. If the data cannot answer the question,
say so plainly. Keep the answer under 150 words.`

// buildInsightsPrompt grounds an inventory question in the live summary.
func buildInsightsPrompt(question string, summary *models.InventorySummary, predictions []models.InventoryPrediction) string {
	var sb strings.Builder
	sb.WriteString(insightsSystemPrompt)

	data, _ := json.Marshal(summary)
	sb.WriteString("\n\nStock summary: ")
	sb.Write(data)

	if len(predictions) > 0 {
		preds, _ := json.Marshal(predictions)
		sb.WriteString("\nUsage forecasts: ")
		sb.Write(preds)
	}

	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(question)
	return sb.String()
}
