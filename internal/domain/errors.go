package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrMissingField        = fmt.Errorf("%w: missing required field", ErrValidation)
	ErrNotFound            = errors.New("not found")
	ErrDuplicateUsername   = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrSession             = errors.New("session error")
)

// ValidateNewAccount checks the fields every store requires before an insert.
func ValidateNewAccount(a *Account) error {
	if a == nil {
		return fmt.Errorf("%w: account is nil", ErrValidation)
	}
	if strings.TrimSpace(a.Username) == "" {
		return fmt.Errorf("%w: username is empty", ErrValidation)
	}
	if a.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is empty", ErrValidation)
	}
	return nil
}
