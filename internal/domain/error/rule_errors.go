package error

import "errors"

// Category rule domain errors.
var (
	// ErrCategoryRuleMissingFields is returned when required rule fields are absent.
	ErrCategoryRuleMissingFields = errors.New("category rule is missing required fields")

	// ErrInvalidRuleConfidence is returned when the base confidence is outside (0, 1].
	ErrInvalidRuleConfidence = errors.New("base confidence must be in (0, 1]")

	// ErrCategoryRuleNotFound is returned when a rule does not exist.
	ErrCategoryRuleNotFound = errors.New("category rule not found")

	// ErrCategoryRuleForbidden is returned when a rule belongs to another owner.
	ErrCategoryRuleForbidden = errors.New("category rule belongs to another user")
)

// RuleErrorCode defines error codes for category rule errors.
// Format: RUL-XXYYYY where XX is category and YYYY is specific error.
type RuleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeRuleMissingFields    RuleErrorCode = "RUL-010001"
	ErrCodeInvalidRuleConfidence RuleErrorCode = "RUL-010002"

	// Not found errors (02XXXX)
	ErrCodeRuleNotFound RuleErrorCode = "RUL-020001"

	// Authorization errors (03XXXX)
	ErrCodeRuleForbidden RuleErrorCode = "RUL-030001"

	// Internal errors (99XXXX)
	ErrCodeRuleInternalError RuleErrorCode = "RUL-990001"
)

// RuleError represents a category rule error with code and message.
type RuleError struct {
	Code    RuleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RuleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RuleError) Unwrap() error {
	return e.Err
}

// NewRuleError creates a new RuleError with the given code and message.
func NewRuleError(code RuleErrorCode, message string, err error) *RuleError {
	return &RuleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
