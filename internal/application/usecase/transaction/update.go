package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finsight/backend/internal/application/adapter"
	"github.com/finsight/backend/internal/domain/entity"
	domainerror "github.com/finsight/backend/internal/domain/error"
)

// UpdateTransactionInput carries a full replacement of the mutable fields.
type UpdateTransactionInput struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Date        time.Time
	Description string
	Vendor      string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Category    string
}

// UpdateTransactionUseCase rewrites an existing transaction after an
// ownership check and announces the change.
type UpdateTransactionUseCase struct {
	repo        adapter.TransactionRepository
	broadcaster adapter.ChangeBroadcaster
}

func NewUpdateTransactionUseCase(
	repo adapter.TransactionRepository,
	broadcaster adapter.ChangeBroadcaster,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		repo:        repo,
		broadcaster: broadcaster,
	}
}

func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*entity.Transaction, error) {
	if err := validateFields(input.OwnerID, input.Date, input.Description, input.Amount, input.Type); err != nil {
		return nil, err
	}

	existing, err := loadOwned(ctx, uc.repo, input.ID, input.OwnerID)
	if err != nil {
		return nil, err
	}

	existing.Date = input.Date
	existing.Description = input.Description
	existing.Vendor = input.Vendor
	existing.Amount = input.Amount
	existing.Type = input.Type
	existing.Category = input.Category
	existing.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternalError,
			"failed to update transaction",
			err,
		)
	}

	broadcast(ctx, uc.broadcaster, existing.OwnerID, existing.ID, adapter.ChangeOpUpdated)

	return existing, nil
}

// loadOwned fetches a transaction and verifies it belongs to ownerID.
func loadOwned(ctx context.Context, repo adapter.TransactionRepository, id, ownerID uuid.UUID) (*entity.Transaction, error) {
	existing, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			err,
		)
	}
	if existing == nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionNotFound,
			"transaction not found",
			domainerror.ErrTransactionNotFound,
		)
	}
	if existing.OwnerID != ownerID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionForbidden,
			"transaction belongs to another user",
			domainerror.ErrTransactionForbidden,
		)
	}
	return existing, nil
}
