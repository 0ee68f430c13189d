package domain

import (
	"errors"
	"fmt"
)

var ErrProjectNotFound = errors.New("project not found")

// ValidationError reports missing or malformed input. It is always raised
// before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// StoreError wraps a failed key-value operation.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStore reports whether err is or wraps a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
