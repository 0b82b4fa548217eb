package dto

import (
	"time"

	"github.com/finsight/backend/internal/domain/entity"
)

// CreateTransactionRequest is the payload for creating a transaction.
type CreateTransactionRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Vendor      string    `json:"vendor"`
	Amount      string    `json:"amount" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	Category    string    `json:"category"`
}

// UpdateTransactionRequest is the payload for replacing a transaction.
type UpdateTransactionRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Vendor      string    `json:"vendor"`
	Amount      string    `json:"amount" binding:"required"`
	Type        string    `json:"type" binding:"required"`
	Category    string    `json:"category"`
}

// TransactionResponse is the wire form of a transaction.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Description string    `json:"description"`
	Vendor      string    `json:"vendor,omitempty"`
	Amount      string    `json:"amount"`
	Type        string    `json:"type"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TransactionListResponse wraps a list of transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}

// TransactionResponseFromEntity converts a Transaction to its wire form.
func TransactionResponseFromEntity(tx *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID.String(),
		Date:        tx.Date,
		Description: tx.Description,
		Vendor:      tx.Vendor,
		Amount:      tx.Amount.StringFixed(2),
		Type:        string(tx.Type),
		Category:    tx.Category,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}
