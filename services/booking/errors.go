package booking

import (
	"errors"
	"fmt"
)

// ErrInvalidCode is returned when the code entered at completion does not
// match the booking's start OTP. The booking is left untouched.
var ErrInvalidCode = errors.New("invalidCode: entered code does not match")

// ValidationError rejects bad input before any write is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
