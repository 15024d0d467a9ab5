package services

import (
	"errors"
	"fmt"
)

// Business outcomes the handlers translate into HTTP responses. Validation
// and duplicate-submission are recognized outcomes, not system errors.
var (
	// ErrDuplicateSubmission means the same phone submitted an active lead
	// inside the duplicate window. Surfaced as a polite message, never 5xx.
	ErrDuplicateSubmission = errors.New("an inquiry from this number was already submitted, our team will contact you shortly")

	// ErrCustomerHasBookings is the referential guard on customer deletion.
	ErrCustomerHasBookings = errors.New("customer has active bookings and cannot be deleted")

	// ErrCaptchaFailed aborts lead creation when the captcha gate rejects.
	ErrCaptchaFailed = errors.New("captcha verification failed")

	// ErrNotFound is returned when the target record does not exist (or is
	// not in the state the operation requires, e.g. permanent delete of a
	// lead that is not in the trash).
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports a malformed or missing required field. It is
// raised before any persistence attempt, so a validation failure never
// leaves partial writes.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalidField(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
