// File: services/agent/interface.go
package agent

import (
	"context"

	aiLogRepo "maitred/database/repository/ailog"
	inventoryRepo "maitred/database/repository/inventory"
	"maitred/models"
)

// AgentService drives the conversational surfaces: the reservation
// slot-filling flow and inventory insights.
type AgentService interface {
	// HandleTurn runs one slot-filling turn. A language-backend failure
	// degrades to an apology reply with action CONTINUE and an
	// untouched draft; the returned error is reserved for malformed
	// requests.
	HandleTurn(ctx context.Context, req models.AgentRequest) (*models.AgentResponse, error)

	// InventoryInsights answers a free-text question about current
	// stock using the store's inventory summary as grounding.
	InventoryInsights(ctx context.Context, question string) (string, error)
}

// TextGenerator is the language-completion collaborator.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// ContextStore caches conversation context between turns. The cache is
// advisory: the draft and transcript always travel with the request.
type ContextStore interface {
	Get(ctx context.Context, sessionID string) (*ConversationContext, error)
	Set(ctx context.Context, sessionID string, convCtx *ConversationContext) error
	Clear(ctx context.Context, sessionID string) error
}

// DefaultAgentService implements AgentService.
type DefaultAgentService struct {
	Generator TextGenerator
	CtxStore  ContextStore
	Inventory inventoryRepo.InventoryRepository
	ActionLog aiLogRepo.AIActionLogRepository
}
