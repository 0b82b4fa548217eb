package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// SuggestionRequest carries the transaction metadata used for scoring.
// OwnerID is reserved for future per-user personalization and is not used
// in scoring today.
type SuggestionRequest struct {
	Description string
	Vendor      string
	Amount      float64
	Date        time.Time
	OwnerID     uuid.UUID
}

// SuggestionService produces ranked category suggestions for a transaction.
type SuggestionService interface {
	// IsAvailable reports whether the service is configured and usable.
	IsAvailable() bool

	// Suggest returns suggestions ordered best first.
	Suggest(ctx context.Context, request SuggestionRequest) ([]*entity.CategorySuggestion, error)
}
