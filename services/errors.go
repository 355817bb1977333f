package services

import "errors"

// ValidationError marks an expected, user-facing failure: the message is
// safe to show verbatim and no stored state was touched. Anything else that
// goes wrong during ingestion or a mutation is either a parse error
// (reported generically) or a persistence error (500).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with the given user message.
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
