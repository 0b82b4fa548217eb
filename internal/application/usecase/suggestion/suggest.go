package suggestion

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
)

// SuggestCategoryUseCase produces category suggestions for a transaction.
// An AI provider, when configured and reachable, is consulted first; the
// rule engine is the always-available fallback so the endpoint degrades
// rather than fails when the provider is down.
type SuggestCategoryUseCase struct {
	engine   *Engine
	ruleRepo adapter.CategoryRuleRepository
	ai       adapter.SuggestionService
}

func NewSuggestCategoryUseCase(
	engine *Engine,
	ruleRepo adapter.CategoryRuleRepository,
	ai adapter.SuggestionService,
) *SuggestCategoryUseCase {
	return &SuggestCategoryUseCase{
		engine:   engine,
		ruleRepo: ruleRepo,
		ai:       ai,
	}
}

func (uc *SuggestCategoryUseCase) Execute(ctx context.Context, req adapter.SuggestionRequest) ([]*entity.CategorySuggestion, error) {
	// Blank description and vendor carry no signal for the provider; the
	// rule engine answers with its fallback suggestion.
	hasText := strings.TrimSpace(req.Description) != "" || strings.TrimSpace(req.Vendor) != ""

	if hasText && uc.ai != nil && uc.ai.IsAvailable() {
		suggestions, err := uc.ai.Suggest(ctx, req)
		if err == nil && len(suggestions) > 0 {
			return suggestions, nil
		}
		if err != nil {
			slog.Warn("ai suggestion provider failed, falling back to rules",
				"error", err,
			)
		}
	}

	return uc.engine.Suggest(req, uc.ownerRules(ctx, req.OwnerID)), nil
}

// ownerRules loads the owner's custom rules. Lookup failures are logged
// and ignored: the built-in ruleset still produces a usable answer.
func (uc *SuggestCategoryUseCase) ownerRules(ctx context.Context, ownerID uuid.UUID) []Rule {
	if uc.ruleRepo == nil || ownerID == uuid.Nil {
		return nil
	}

	stored, err := uc.ruleRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		slog.Warn("failed to load custom category rules",
			"owner_id", ownerID,
			"error", err,
		)
		return nil
	}

	rules := make([]Rule, 0, len(stored))
	for _, r := range stored {
		rules = append(rules, Rule{
			Category:       r.Category,
			Keywords:       r.Keywords,
			BaseConfidence: r.BaseConfidence,
			Priority:       r.Priority,
		})
	}
	return rules
}
