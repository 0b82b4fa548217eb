// Package transaction contains the use cases that mutate and read an
// owner's transaction set. Every successful write broadcasts a change
// event so live summaries recompute.
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

// CreateTransactionInput carries the fields for a new transaction.
type CreateTransactionInput struct {
	OwnerID     uuid.UUID
	Date        time.Time
	Description string
	Vendor      string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Category    string
}

// CreateTransactionUseCase persists a new transaction and announces it.
type CreateTransactionUseCase struct {
	repo        adapter.TransactionRepository
	broadcaster adapter.ChangeBroadcaster
}

func NewCreateTransactionUseCase(
	repo adapter.TransactionRepository,
	broadcaster adapter.ChangeBroadcaster,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		repo:        repo,
		broadcaster: broadcaster,
	}
}

func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*entity.Transaction, error) {
	if err := validateFields(input.OwnerID, input.Date, input.Description, input.Amount, input.Type); err != nil {
		return nil, err
	}

	tx := entity.NewTransaction(
		input.OwnerID,
		input.Date,
		input.Description,
		input.Vendor,
		input.Amount,
		input.Type,
		input.Category,
	)

	if err := uc.repo.Create(ctx, tx); err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionInternalError,
			"failed to create transaction",
			err,
		)
	}

	broadcast(ctx, uc.broadcaster, tx.OwnerID, tx.ID, adapter.ChangeOpCreated)

	return tx, nil
}

func validateFields(ownerID uuid.UUID, date time.Time, description string, amount decimal.Decimal, txType entity.TransactionType) error {
	if ownerID == uuid.Nil || date.IsZero() || description == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransactionMissingFields,
			"owner, date and description are required",
			domainerror.ErrTransactionMissingFields,
		)
	}
	if !txType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be income or expense",
			domainerror.ErrInvalidTransactionType,
		)
	}
	if amount.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeNegativeAmount,
			"transaction amount must not be negative",
			domainerror.ErrNegativeAmount,
		)
	}
	return nil
}

// broadcast announces a committed write. The broadcaster is optional and
// delivery is best-effort: the write has already succeeded.
func broadcast(ctx context.Context, b adapter.ChangeBroadcaster, ownerID, txID uuid.UUID, op adapter.ChangeOp) {
	if b == nil {
		return
	}
	b.Broadcast(ctx, adapter.ChangeEvent{
		OwnerID:       ownerID,
		TransactionID: txID,
		Op:            op,
		At:            time.Now().UTC(),
	})
}
