// Package rule contains the use cases for owner-defined categorization
// rules, which the suggestion engine evaluates ahead of its built-ins.
package rule

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// DefaultBaseConfidence is applied when a rule is created without one.
const DefaultBaseConfidence = 0.8

// CreateRuleInput carries the fields for a new categorization rule.
type CreateRuleInput struct {
	OwnerID        uuid.UUID
	Category       string
	Keywords       []string
	BaseConfidence float64 // 0 means use DefaultBaseConfidence
	Priority       int
}

// CreateRuleUseCase validates and persists an owner-defined rule.
type CreateRuleUseCase struct {
	repo adapter.CategoryRuleRepository
}

func NewCreateRuleUseCase(repo adapter.CategoryRuleRepository) *CreateRuleUseCase {
	return &CreateRuleUseCase{repo: repo}
}

func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*entity.CategoryRule, error) {
	keywords := trimKeywords(input.Keywords)
	if input.OwnerID == uuid.Nil || strings.TrimSpace(input.Category) == "" || len(keywords) == 0 {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleMissingFields,
			"owner, category and at least one keyword are required",
			domainerror.ErrCategoryRuleMissingFields,
		)
	}

	confidence := input.BaseConfidence
	if confidence == 0 {
		confidence = DefaultBaseConfidence
	}
	if confidence < 0 || confidence > 1 {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeInvalidRuleConfidence,
			"base confidence must be in (0, 1]",
			domainerror.ErrInvalidRuleConfidence,
		)
	}

	r := entity.NewCategoryRule(
		input.OwnerID,
		strings.TrimSpace(input.Category),
		keywords,
		confidence,
		input.Priority,
	)

	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleInternalError,
			"failed to create category rule",
			err,
		)
	}
	return r, nil
}

// ListRulesUseCase returns an owner's active rules.
type ListRulesUseCase struct {
	repo adapter.CategoryRuleRepository
}

func NewListRulesUseCase(repo adapter.CategoryRuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{repo: repo}
}

func (uc *ListRulesUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]*entity.CategoryRule, error) {
	rules, err := uc.repo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, domainerror.NewRuleError(
			domainerror.ErrCodeRuleInternalError,
			"failed to list category rules",
			err,
		)
	}
	return rules, nil
}

// DeleteRuleUseCase removes an owner's rule after an ownership check.
type DeleteRuleUseCase struct {
	repo adapter.CategoryRuleRepository
}

func NewDeleteRuleUseCase(repo adapter.CategoryRuleRepository) *DeleteRuleUseCase {
	return &DeleteRuleUseCase{repo: repo}
}

func (uc *DeleteRuleUseCase) Execute(ctx context.Context, id, ownerID uuid.UUID) error {
	existing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return domainerror.NewRuleError(
			domainerror.ErrCodeRuleNotFound,
			"category rule not found",
			err,
		)
	}
	if existing == nil {
		return domainerror.NewRuleError(
			domainerror.ErrCodeRuleNotFound,
			"category rule not found",
			domainerror.ErrCategoryRuleNotFound,
		)
	}
	if existing.OwnerID != ownerID {
		return domainerror.NewRuleError(
			domainerror.ErrCodeRuleForbidden,
			"category rule belongs to another user",
			domainerror.ErrCategoryRuleForbidden,
		)
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return domainerror.NewRuleError(
			domainerror.ErrCodeRuleInternalError,
			"failed to delete category rule",
			err,
		)
	}
	return nil
}

func trimKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}
