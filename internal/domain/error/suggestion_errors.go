package error

// SuggestionErrorCode defines error codes for suggestion errors.
// Format: SGT-XXYYYY where XX is category and YYYY is specific error.
type SuggestionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeSuggestionInvalidRequest SuggestionErrorCode = "SGT-010001"

	// Internal errors (99XXXX)
	ErrCodeSuggestionInternalError SuggestionErrorCode = "SGT-990001"
)

// SuggestionError represents a suggestion error with code and message.
type SuggestionError struct {
	Code    SuggestionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SuggestionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// NewSuggestionError creates a new SuggestionError with the given code and message.
func NewSuggestionError(code SuggestionErrorCode, message string, err error) *SuggestionError {
	return &SuggestionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
