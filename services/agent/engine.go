// File: services/agent/engine.go
package agent

import (
	"context"
	"time"

	"maitred/models"
	"maitred/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	turnTimeout    = 30 * time.Second
	apologyMessage = "I'm sorry, I'm having trouble responding right now. Could you try that again in a moment?"
)

// NewDefaultAgentService wires the agent with its collaborators.
func NewDefaultAgentService(gen TextGenerator, ctxStore ContextStore, deps DefaultAgentService) *DefaultAgentService {
	deps.Generator = gen
	deps.CtxStore = ctxStore
	return &deps
}

// HandleTurn runs one slot-filling turn. State lives in the request: the
// transcript and draft arrive with every call and leave with every
// response, so concurrent sessions never share anything in-process.
func (s *DefaultAgentService) HandleTurn(ctx context.Context, req models.AgentRequest) (*models.AgentResponse, error) {
	logger := utils.GetLogger()

	draft := req.ReservationData
	if draft == nil {
		draft = &models.ReservationDraft{}
	}
	working := draft.Clone()
	prefillFromProfile(working, req.UserProfile)

	turnCtx, cancel := context.WithTimeout(ctx, turnTimeout)
	defer cancel()

	raw, err := s.Generator.GenerateContent(turnCtx, buildTurnPrompt(req, working))
	if err != nil {
		// A failed turn must not drop silently or corrupt the draft:
		// apologize, keep collecting, leave the caller's draft as it was.
		logger.Error("agent: language backend failed", zap.Error(err))
		return &models.AgentResponse{
			Reply:           apologyMessage,
			ReservationData: working,
			Action:          models.ActionContinue,
		}, nil
	}

	turn := parseTurn(raw)
	s.mergeTurn(working, turn)

	action := models.ActionContinue
	if working.State().Phase == models.PhaseReady {
		action = models.ActionCompleteReservation
	}

	resp := &models.AgentResponse{
		Reply:           turn.Reply,
		ReservationData: working,
		Action:          action,
	}

	s.cacheContext(ctx, req, resp)
	s.logTurn(req, action)
	return resp, nil
}

// mergeTurn folds the model's extracted fields into the draft. Fields the
// model marked inferred stay provisional; everything else counts as
// user-stated this turn.
func (s *DefaultAgentService) mergeTurn(draft *models.ReservationDraft, turn llmTurn) {
	inferred := make(map[string]bool, len(turn.Inferred))
	for _, f := range turn.Inferred {
		inferred[f] = true
	}
	prov := func(field string) models.Provenance {
		if inferred[field] {
			return models.ProvenanceInferred
		}
		return models.ProvenanceUser
	}

	applyExtractedField(draft, models.FieldPartySize, partySizeString(turn.Fields.PartySize), prov(models.FieldPartySize))
	applyExtractedField(draft, models.FieldDate, turn.Fields.Date, prov(models.FieldDate))
	applyExtractedField(draft, models.FieldTime, turn.Fields.Time, prov(models.FieldTime))
	applyExtractedField(draft, models.FieldCustomerName, turn.Fields.CustomerName, prov(models.FieldCustomerName))
	applyExtractedField(draft, models.FieldEmail, turn.Fields.Email, prov(models.FieldEmail))
	applyExtractedField(draft, models.FieldPhone, turn.Fields.Phone, prov(models.FieldPhone))
}

// cacheContext refreshes the advisory redis copy of the conversation.
// Failures are logged and ignored; the client still holds the state.
func (s *DefaultAgentService) cacheContext(ctx context.Context, req models.AgentRequest, resp *models.AgentResponse) {
	if s.CtxStore == nil || req.SessionID == "" {
		return
	}
	history := append(req.ConversationHistory,
		models.ChatMessage{Role: "user", Content: req.Message},
		models.ChatMessage{Role: "assistant", Content: resp.Reply},
	)
	convCtx := &ConversationContext{History: history, Draft: resp.ReservationData}
	if err := s.CtxStore.Set(ctx, req.SessionID, convCtx); err != nil {
		utils.GetLogger().Warn("agent: failed to cache conversation context", zap.Error(err))
	}
}

// logTurn appends to the ai_actions_log audit trail; best effort.
func (s *DefaultAgentService) logTurn(req models.AgentRequest, action string) {
	if s.ActionLog == nil {
		return
	}
	entry := &models.AIActionLog{
		ID:        uuid.New().String(),
		SessionID: req.SessionID,
		Kind:      "reservation_turn",
		Input:     req.Message,
		Action:    action,
	}
	if req.UserProfile != nil {
		entry.UserID = req.UserProfile.ID
	}
	if err := s.ActionLog.Append(entry); err != nil {
		utils.GetLogger().Warn("agent: failed to append action log", zap.Error(err))
	}
}
