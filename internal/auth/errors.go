package auth

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthorized       = errors.New("could not validate credentials")

	// Token verification sub-kinds. The gateway reports all of them as
	// ErrUnauthorized.
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
	ErrMissingClaims    = errors.New("token is missing required claims")

	ErrPasswordTooLong = &ValidationError{Field: "password", Message: "password exceeds maximum length of 72 bytes"}
)

// ValidationError describes a bad or missing request field.
// errors.Is(err, ErrValidation) is true for every ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
