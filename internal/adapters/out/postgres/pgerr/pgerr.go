// Package pgerr classifies low-level Postgres errors into the application's
// error taxonomy. Repository implementations and the unit of work share it
// so every adapter reports races and constraint hits the same way.
package pgerr

import (
	"errors"

	"marketplace/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes surfaced by concurrent transactions.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	uniqueViolation      = "23505"
)

// Translate maps transaction races (serialization failures and deadlocks) to
// a ConcurrencyConflictError so callers can restart the whole operation.
// Every other error passes through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case serializationFailure, deadlockDetected:
			return errs.NewConcurrencyConflictErrorWithCause(err)
		}
	}

	return err
}

// IsUniqueViolation reports whether err is a unique constraint hit.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
