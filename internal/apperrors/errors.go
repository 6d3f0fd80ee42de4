// Package apperrors defines the error taxonomy shared by the validation layer,
// the product store and the HTTP boundary.
package apperrors

import (
	"errors"
	"fmt"
)

// MissingFieldError reports a required field that was absent or blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// InvalidFieldError reports a field that was present but could not be accepted.
type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s is invalid", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NotFoundError reports that no product exists with the given ID.
type NotFoundError struct {
	ID uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ID)
}

// StorageError wraps an unexpected fault from the persistence layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// MissingField returns a MissingFieldError for field.
func MissingField(field string) error {
	return &MissingFieldError{Field: field}
}

// InvalidField returns an InvalidFieldError for field with a human readable reason.
func InvalidField(field, reason string) error {
	return &InvalidFieldError{Field: field, Reason: reason}
}

// NotFound returns a NotFoundError for id.
func NotFound(id uint) error {
	return &NotFoundError{ID: id}
}

// Storage wraps err as a StorageError. A nil err yields nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is a MissingFieldError or InvalidFieldError.
func IsValidation(err error) bool {
	var missing *MissingFieldError
	var invalid *InvalidFieldError
	return errors.As(err, &missing) || errors.As(err, &invalid)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsStorage reports whether err is a StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// FieldOf returns the field named by a validation error, or "" for any other error.
func FieldOf(err error) string {
	var missing *MissingFieldError
	if errors.As(err, &missing) {
		return missing.Field
	}
	var invalid *InvalidFieldError
	if errors.As(err, &invalid) {
		return invalid.Field
	}
	return ""
}
