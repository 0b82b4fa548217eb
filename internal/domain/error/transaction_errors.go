// Package error defines domain-specific errors for the FinSight application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionMissingFields is returned when required fields are absent.
	ErrTransactionMissingFields = errors.New("transaction is missing required fields")

	// ErrInvalidTransactionType is returned when type is not income or expense.
	ErrInvalidTransactionType = errors.New("transaction type must be income or expense")

	// ErrNegativeAmount is returned when the amount magnitude is negative.
	ErrNegativeAmount = errors.New("transaction amount must not be negative")

	// ErrTransactionForbidden is returned when a transaction belongs to another owner.
	ErrTransactionForbidden = errors.New("transaction belongs to another user")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeTransactionMissingFields TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010002"
	ErrCodeNegativeAmount           TransactionErrorCode = "TXN-010003"

	// Not found errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"

	// Authorization errors (03XXXX)
	ErrCodeTransactionForbidden TransactionErrorCode = "TXN-030001"

	// Internal errors (99XXXX)
	ErrCodeTransactionInternalError TransactionErrorCode = "TXN-990001"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
