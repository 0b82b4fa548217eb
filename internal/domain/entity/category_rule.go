package entity

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRule represents a user-defined categorization rule. Rule keywords
// are matched as substrings against a transaction's description and vendor,
// ahead of the built-in ruleset.
type CategoryRule struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Category       string
	Keywords       []string
	BaseConfidence float64 // Multiplier applied to the raw match score, in (0, 1]
	Priority       int     // Higher priority rules are evaluated first
	IsActive       bool    // Allows disabling rules without deleting them
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      *time.Time // Soft-delete support
}

// NewCategoryRule creates a new CategoryRule entity.
func NewCategoryRule(
	ownerID uuid.UUID,
	category string,
	keywords []string,
	baseConfidence float64,
	priority int,
) *CategoryRule {
	now := time.Now().UTC()

	return &CategoryRule{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Category:       category,
		Keywords:       keywords,
		BaseConfidence: baseConfidence,
		Priority:       priority,
		IsActive:       true, // New rules are active by default
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}
