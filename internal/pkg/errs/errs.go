package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrObjectNotFound is the sentinel for ObjectNotFoundError.
	ErrObjectNotFound = errors.New("object not found")

	// ErrValueIsInvalid is the sentinel for ValueIsInvalidError.
	ErrValueIsInvalid = errors.New("value is invalid")

	// ErrValueIsRequired is the sentinel for ValueIsRequiredError.
	ErrValueIsRequired = errors.New("value is required")

	// ErrVersionIsInvalid is the sentinel for VersionIsInvalidError.
	// Returned when an optimistic concurrency check fails on update.
	ErrVersionIsInvalid = errors.New("version is invalid")

	// ErrForbidden is the sentinel for ForbiddenError. The delivery state
	// machine deliberately reports every precondition violation through this
	// single error so callers cannot tell which check failed.
	ErrForbidden = errors.New("you have no permission to access this resource")

	// ErrMismatchMerchant is the sentinel for MismatchMerchantError.
	ErrMismatchMerchant = errors.New("products must be from the same merchant")

	// ErrInsufficientFund is the sentinel for InsufficientFundError.
	ErrInsufficientFund = errors.New("balance is not sufficient to complete this transaction")

	// ErrConcurrencyConflict is the sentinel for ConcurrencyConflictError.
	// It marks transient store conflicts (serialization failures, deadlocks)
	// that make the whole operation safe to retry from scratch.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")

	// ErrUnauthorized is the sentinel for UnauthorizedError.
	ErrUnauthorized = errors.New("unauthorized")
)

// sanitize collapses newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r", " "), "\n", " ")
}

// ObjectNotFoundError reports that a referenced object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without a cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping a cause.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports that a supplied value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without a cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping a cause.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError reports that a required value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without a cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping a cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// VersionIsInvalidError reports a failed optimistic concurrency check:
// the aggregate was modified between read and write.
type VersionIsInvalidError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError without a cause.
func NewVersionIsInvalidError(paramName string, id any) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, ID: id}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrVersionIsInvalid, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ID))
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// ForbiddenError reports an ownership, role, or state transition violation.
// It intentionally carries no detail about which precondition failed.
type ForbiddenError struct {
	Cause error
}

// NewForbiddenError creates a ForbiddenError without a cause.
func NewForbiddenError() *ForbiddenError {
	return &ForbiddenError{}
}

// NewForbiddenErrorWithCause creates a ForbiddenError wrapping a cause.
// The cause is for internal logging only and is never rendered to clients.
func NewForbiddenErrorWithCause(cause error) *ForbiddenError {
	return &ForbiddenError{Cause: cause}
}

func (e *ForbiddenError) Error() string {
	return ErrForbidden.Error()
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// MismatchMerchantError reports that the line items of an order request span
// more than one merchant.
type MismatchMerchantError struct {
	MerchantID      any
	OtherMerchantID any
}

// NewMismatchMerchantError creates a MismatchMerchantError.
func NewMismatchMerchantError(merchantID, otherMerchantID any) *MismatchMerchantError {
	return &MismatchMerchantError{MerchantID: merchantID, OtherMerchantID: otherMerchantID}
}

func (e *MismatchMerchantError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s and %s", ErrMismatchMerchant, e.MerchantID, e.OtherMerchantID))
}

func (e *MismatchMerchantError) Unwrap() error {
	return ErrMismatchMerchant
}

// InsufficientFundError reports that a buyer's balance cannot cover a price.
type InsufficientFundError struct {
	Balance string
	Price   string
}

// NewInsufficientFundError creates an InsufficientFundError.
func NewInsufficientFundError(balance, price string) *InsufficientFundError {
	return &InsufficientFundError{Balance: balance, Price: price}
}

func (e *InsufficientFundError) Error() string {
	return sanitize(fmt.Sprintf("%s: balance is %s, price is %s", ErrInsufficientFund, e.Balance, e.Price))
}

func (e *InsufficientFundError) Unwrap() error {
	return ErrInsufficientFund
}

// ConcurrencyConflictError reports a transient store conflict. The whole
// operation may be retried from scratch because nothing was committed.
type ConcurrencyConflictError struct {
	Cause error
}

// NewConcurrencyConflictErrorWithCause creates a ConcurrencyConflictError wrapping a cause.
func NewConcurrencyConflictErrorWithCause(cause error) *ConcurrencyConflictError {
	return &ConcurrencyConflictError{Cause: cause}
}

func (e *ConcurrencyConflictError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s (cause: %s)", ErrConcurrencyConflict, e.Cause))
	}
	return ErrConcurrencyConflict.Error()
}

func (e *ConcurrencyConflictError) Unwrap() error {
	return ErrConcurrencyConflict
}

// UnauthorizedError reports a missing or invalid credential.
type UnauthorizedError struct {
	Reason string
}

// NewUnauthorizedError creates an UnauthorizedError with a short reason.
func NewUnauthorizedError(reason string) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrUnauthorized, e.Reason))
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}
