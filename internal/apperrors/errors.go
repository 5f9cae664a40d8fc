package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrReferentialIntegrity indicates a deletion or change was refused because other records depend on the target.
var ErrReferentialIntegrity = errors.New("referential integrity violation")

// ErrPersistence indicates a round trip to the record store failed and the operation was not applied.
var ErrPersistence = errors.New("persistence error")

// ErrPartialFailure indicates a multi-step operation stopped midway and left some records behind.
var ErrPartialFailure = errors.New("operation partially applied")

// ErrUnauthorized indicates that no current user identity is available.
var ErrUnauthorized = errors.New("unauthorized")

// ValidationError reports which input field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrValidation.Error(), e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// PartialFailureError describes a multi-record operation that stopped after some records were persisted.
// The created records are kept; callers can list and repair them later.
type PartialFailureError struct {
	Operation  string
	ParentID   string
	CreatedIDs []string
	Expected   int
	Cause      error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s: %s created %d of %d records (parent %s): %v",
		ErrPartialFailure.Error(), e.Operation, len(e.CreatedIDs), e.Expected, e.ParentID, e.Cause)
}

// Is lets a partial failure match both ErrPartialFailure and ErrPersistence.
func (e *PartialFailureError) Is(target error) bool {
	return target == ErrPartialFailure || target == ErrPersistence
}

func (e *PartialFailureError) Unwrap() error { return e.Cause }

// AppError carries an HTTP-ish status code alongside a message and cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Persistence wraps a store failure with ErrPersistence. NotFound, Duplicate and
// already-classified errors pass through unchanged.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrPersistence) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}

// ErrorKind is a coarse classification of an error used for reporting.
type ErrorKind string

const (
	KindValidation           ErrorKind = "validation"
	KindReferentialIntegrity ErrorKind = "referential_integrity"
	KindNotFound             ErrorKind = "not_found"
	KindPartialFailure       ErrorKind = "partial_failure"
	KindPersistence          ErrorKind = "persistence"
	KindDuplicate            ErrorKind = "duplicate"
	KindUnauthorized         ErrorKind = "unauthorized"
	KindNetwork              ErrorKind = "network"
	KindUnknown              ErrorKind = "unknown"
)

// Classify maps err onto an ErrorKind. Order matters: a partial failure is also a persistence error.
func Classify(err error) ErrorKind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrReferentialIntegrity):
		return KindReferentialIntegrity
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPartialFailure):
		return KindPartialFailure
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrPersistence):
		if strings.Contains(err.Error(), "connection refused") {
			return KindNetwork
		}
		return KindPersistence
	}
	return KindUnknown
}
