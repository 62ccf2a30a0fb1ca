package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError so transport layers can map it to a status code.
type ErrorKind string

const (
	KindValidation       ErrorKind = "VALIDATION_ERROR"
	KindInvalidState     ErrorKind = "INVALID_STATE"
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindConflict         ErrorKind = "CONFLICT"
	KindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
	KindUnauthorized     ErrorKind = "UNAUTHORIZED"
	KindForbidden        ErrorKind = "FORBIDDEN"
)

// Sentinel errors for errors.Is checks against an AppError's kind.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)

// AppError is the error type shared by every layer of the service.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause.
func (e *AppError) Unwrap() error { return e.Err }

// Is matches the sentinel that corresponds to the error's kind.
// Invalid state transitions are a flavour of validation failure.
func (e *AppError) Is(target error) bool {
	switch e.Kind {
	case KindValidation, KindInvalidState:
		return target == ErrValidation
	case KindNotFound:
		return target == ErrNotFound
	case KindConflict:
		return target == ErrConflict
	case KindStoreUnavailable:
		return target == ErrStoreUnavailable
	case KindUnauthorized:
		return target == ErrUnauthorized
	case KindForbidden:
		return target == ErrForbidden
	}
	return false
}

// NewValidationError reports malformed input.
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewInvalidStateError reports a status transition that the state machine forbids.
func NewInvalidStateError(from, to string) *AppError {
	return &AppError{
		Kind:    KindInvalidState,
		Message: fmt.Sprintf("cannot transition from %s to %s", from, to),
	}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *AppError {
	return &AppError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

// NewConflictError reports a scheduling or concurrent-modification conflict.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

// NewStoreUnavailableError wraps a persistence failure that is not a domain outcome.
func NewStoreUnavailableError(op string, err error) *AppError {
	return &AppError{
		Kind:    KindStoreUnavailable,
		Message: fmt.Sprintf("store unavailable during %s", op),
		Err:     err,
	}
}

// NewUnauthorizedError reports a missing or invalid credential.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError reports an authenticated caller lacking permission.
func NewForbiddenError(message string) *AppError {
	return &AppError{Kind: KindForbidden, Message: message}
}

// KindOf returns the kind of the first AppError in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
