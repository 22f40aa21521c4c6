// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrConflict = errors.New("email already registered")
	ErrNotFound = errors.New("participant not found")
)

// ValidationError reports a request field that is missing or malformed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func required(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
