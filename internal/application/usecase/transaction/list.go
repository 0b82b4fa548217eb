package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// ListTransactionsUseCase returns an owner's transactions, newest first.
type ListTransactionsUseCase struct {
	repo adapter.TransactionRepository
}

func NewListTransactionsUseCase(repo adapter.TransactionRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{repo: repo}
}

func (uc *ListTransactionsUseCase) Execute(ctx context.Context, ownerID uuid.UUID) ([]*entity.Transaction, error) {
	records, err := uc.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternalError,
			"failed to list transactions",
			err,
		)
	}
	return records, nil
}
