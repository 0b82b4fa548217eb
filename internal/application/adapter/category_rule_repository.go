package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// CategoryRuleRepository defines the interface for custom rule persistence.
type CategoryRuleRepository interface {
	// Create persists a new rule.
	Create(ctx context.Context, rule *entity.CategoryRule) error

	// Delete soft-deletes a rule.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a rule by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CategoryRule, error)

	// FindActiveByOwner retrieves an owner's active rules, highest priority first.
	FindActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.CategoryRule, error)
}
