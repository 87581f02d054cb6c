// File: services/agent/insights.go
package agent

import (
	"context"
	"fmt"

	"maitred/models"
	"maitred/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InventoryInsights answers a manager's question about current stock,
// grounded in the live inventory summary and recent forecasts.
func (s *DefaultAgentService) InventoryInsights(ctx context.Context, question string) (string, error) {
	if s.Inventory == nil {
		return "", fmt.Errorf("inventory repository not configured")
	}

	summary, err := s.Inventory.Summary()
	if err != nil {
		return "", fmt.Errorf("failed to load inventory summary: %w", err)
	}
	predictions, err := s.Inventory.LatestPredictions(10)
	if err != nil {
		// Forecasts enrich the answer but are not required for it.
		utils.GetLogger().Warn("agent: failed to load predictions", zap.Error(err))
		predictions = nil
	}

	turnCtx, cancel := context.WithTimeout(ctx, turnTimeout)
	defer cancel()

	answer, err := s.Generator.GenerateContent(turnCtx, buildInsightsPrompt(question, summary, predictions))
	if err != nil {
		return "", fmt.Errorf("language backend failed: %w", err)
	}

	if s.ActionLog != nil {
		entry := &models.AIActionLog{
			ID:     uuid.New().String(),
			Kind:   "inventory_insight",
			Input:  question,
			Action: models.ActionContinue,
		}
		if err := s.ActionLog.Append(entry); err != nil {
			utils.GetLogger().Warn("agent: failed to append action log", zap.Error(err))
		}
	}
	return answer, nil
}
