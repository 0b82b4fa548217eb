// Package adapter defines the interfaces between the application layer and
// its collaborators (persistence, change feed, token and AI services).
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/domain/entity"
)

// TransactionRepository defines the interface for transaction persistence.
type TransactionRepository interface {
	// Create persists a new transaction.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// Update persists changes to an existing transaction.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByOwner retrieves all transactions for an owner, newest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Transaction, error)
}
