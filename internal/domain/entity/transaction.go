// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction (expense or income).
type TransactionType string

const (
	TransactionTypeExpense TransactionType = "expense"
	TransactionTypeIncome  TransactionType = "income"
)

// IsValid reports whether the transaction type is one of the known types.
func (t TransactionType) IsValid() bool {
	return t == TransactionTypeExpense || t == TransactionTypeIncome
}

// Transaction represents a financial transaction owned by exactly one user.
// Amount is a non-negative magnitude; the sign is carried by Type.
type Transaction struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Date        time.Time
	Description string
	Vendor      string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft-delete support
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	ownerID uuid.UUID,
	date time.Time,
	description string,
	vendor string,
	amount decimal.Decimal,
	transactionType TransactionType,
	category string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Date:        date,
		Description: description,
		Vendor:      vendor,
		Amount:      amount,
		Type:        transactionType,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
