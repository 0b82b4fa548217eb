package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finsight/backend/internal/application/adapter"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// DeleteTransactionInput identifies the transaction to remove.
type DeleteTransactionInput struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

// DeleteTransactionUseCase soft-deletes a transaction after an ownership
// check and announces the change.
type DeleteTransactionUseCase struct {
	repo        adapter.TransactionRepository
	broadcaster adapter.ChangeBroadcaster
}

func NewDeleteTransactionUseCase(
	repo adapter.TransactionRepository,
	broadcaster adapter.ChangeBroadcaster,
) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		repo:        repo,
		broadcaster: broadcaster,
	}
}

func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	if _, err := loadOwned(ctx, uc.repo, input.ID, input.OwnerID); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, input.ID); err != nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternalError,
			"failed to delete transaction",
			err,
		)
	}

	broadcast(ctx, uc.broadcaster, input.OwnerID, input.ID, adapter.ChangeOpDeleted)

	return nil
}
