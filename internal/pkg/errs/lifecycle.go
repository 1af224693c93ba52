package errs

import (
	"errors"
	"fmt"
)

var (
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidState       = errors.New("invalid state")
	ErrVerificationFailed = errors.New("verification failed")
	ErrAlreadyDelivered   = errors.New("already delivered")
	ErrUnavailable        = errors.New("unavailable")
	ErrUnauthenticated    = errors.New("unauthenticated")
)

// AccessDeniedError is returned when the caller does not own, or is not bound to,
// the entity it tries to act on, or its role lacks the capability.
type AccessDeniedError struct {
	Subject string
	Action  string
}

func NewAccessDeniedError(subject, action string) *AccessDeniedError {
	return &AccessDeniedError{Subject: subject, Action: action}
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("%s: %s is not allowed to %s", ErrAccessDenied, sanitize(e.Subject), e.Action)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}

// InvalidStateError is returned when an operation is not legal in the entity's
// current lifecycle state.
type InvalidStateError struct {
	Entity string
	State  string
	Action string
}

func NewInvalidStateError(entity, state, action string) *InvalidStateError {
	return &InvalidStateError{Entity: entity, State: state, Action: action}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s in %s state", ErrInvalidState, e.Action, e.Entity, e.State)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// VerificationError never carries the expected value.
type VerificationError struct {
	ParamName string
}

func NewVerificationError(paramName string) *VerificationError {
	return &VerificationError{ParamName: paramName}
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("%s: %s does not match", ErrVerificationFailed, e.ParamName)
}

func (e *VerificationError) Unwrap() error {
	return ErrVerificationFailed
}

type AlreadyDeliveredError struct {
	ID any
}

func NewAlreadyDeliveredError(id any) *AlreadyDeliveredError {
	return &AlreadyDeliveredError{ID: id}
}

func (e *AlreadyDeliveredError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAlreadyDelivered, sanitize(e.ID))
}

func (e *AlreadyDeliveredError) Unwrap() error {
	return ErrAlreadyDelivered
}

// UnavailableError marks a store or transport failure that the caller may retry.
type UnavailableError struct {
	Operation string
	Cause     error
}

func NewUnavailableError(operation string, cause error) *UnavailableError {
	return &UnavailableError{Operation: operation, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUnavailable, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnavailable, e.Operation)
}

func (e *UnavailableError) Unwrap() []error {
	return []error{ErrUnavailable, e.Cause}
}

type UnauthenticatedError struct {
	Reason string
	Cause  error
}

func NewUnauthenticatedError(reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason}
}

func NewUnauthenticatedErrorWithCause(reason string, cause error) *UnauthenticatedError {
	return &UnauthenticatedError{Reason: reason, Cause: cause}
}

func (e *UnauthenticatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUnauthenticated, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}
