package models

import "errors"

// ErrInvalidCredentials is returned by login when no user matches. It
// carries no field detail on purpose: the UI shows it as a flash, not
// next to an input.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrTicketNotFound is returned when an update targets a missing id.
var ErrTicketNotFound = errors.New("ticket not found")

// ValidationError is a user-correctable input problem. Field names the
// offending input so handlers can attach the message to it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Validation is shorthand for constructing a *ValidationError.
func Validation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
