package dto

import (
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// CreateRuleRequest is the payload for creating a categorization rule.
type CreateRuleRequest struct {
	Category       string   `json:"category" binding:"required"`
	Keywords       []string `json:"keywords" binding:"required"`
	BaseConfidence float64  `json:"base_confidence"`
	Priority       int      `json:"priority"`
}

// RuleResponse is the wire form of a categorization rule.
type RuleResponse struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	Keywords       []string  `json:"keywords"`
	BaseConfidence float64   `json:"base_confidence"`
	Priority       int       `json:"priority"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// RuleListResponse wraps a list of rules.
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// RuleResponseFromEntity converts a CategoryRule to its wire form.
func RuleResponseFromEntity(rule *entity.CategoryRule) RuleResponse {
	return RuleResponse{
		ID:             rule.ID.String(),
		Category:       rule.Category,
		Keywords:       rule.Keywords,
		BaseConfidence: rule.BaseConfidence,
		Priority:       rule.Priority,
		IsActive:       rule.IsActive,
		CreatedAt:      rule.CreatedAt,
	}
}
