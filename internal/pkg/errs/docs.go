// Package errs provides the typed errors shared by the cargo service.
//
// Every error kind follows the same pattern:
//   - a sentinel (ErrValueIsRequired, ErrInvalidState, ...) for errors.Is checks
//   - a struct carrying the details (parameter name, offending value, cause)
//   - New... constructors with and without a cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The kinds map onto the service taxonomy:
//   - validation: ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError (see IsValidation)
//   - not found: ObjectNotFoundError
//   - authorization: AccessDeniedError
//   - lifecycle: InvalidStateError, VerificationError, AlreadyDeliveredError
//   - infrastructure: UnavailableError (retryable), UnauthenticatedError
package errs
