package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports bad input: empty names, negative prices,
// illegal denominations, missing category references. State is never
// mutated before validation passes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func Validationf(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an update or delete referencing an unknown id.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// IndexError reports a positional access outside the valid range.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range [0,%d)", e.Index, e.Length)
}

// PersistenceError reports a failed save or load. The in-memory mutation
// that triggered the save is not rolled back: the session may continue,
// but durability is not guaranteed until a later persist succeeds.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsIndex(err error) bool {
	var ie *IndexError
	return errors.As(err, &ie)
}

func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
