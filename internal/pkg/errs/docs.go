// Package errs provides standardized error types for the printflow application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for validation failures and for the
// production workflow:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - ObjectNotFoundError: a referenced entity does not exist
//   - InvalidTransitionError, NoOpTransitionError: rejected item status changes
//   - UnknownPartError, InactiveReferenceError: bad part/color references
//   - NotReadyError: an aggregate readiness precondition does not hold
//   - DuplicateKeyError: a uniqueness constraint was violated
//   - ConcurrentModificationError: a transaction lost a race for the same record
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrInvalidTransition)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so callers match with errors.Is
package errs
