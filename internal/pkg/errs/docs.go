// Package errs provides standardized error types for the marketplace application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes general-purpose error types:
//   - ObjectNotFoundError: a referenced object does not exist
//   - ValueIsInvalidError: a value failed validation
//   - ValueIsRequiredError: a required value is missing
//   - VersionIsInvalidError: an optimistic concurrency check failed
//
// and the domain failure taxonomy of the order workflow:
//   - ForbiddenError: ownership/role/transition violation (deliberately coarse)
//   - MismatchMerchantError: order line items span multiple merchants
//   - InsufficientFundError: buyer balance cannot cover the order price
//   - ConcurrencyConflictError: transient store conflict, retryable as a whole
//   - UnauthorizedError: missing or invalid credential
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is works against it
//
// The HTTP layer classifies errors solely via errors.Is against the sentinels.
package errs
