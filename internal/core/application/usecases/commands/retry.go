package commands

import (
	"context"
	"errors"

	"marketplace/internal/pkg/errs"
)

// maxConflictAttempts bounds how often a handler restarts its whole
// transaction after a serialization abort or a lost optimistic-version race.
// Each attempt starts from scratch, so no partial state needs reconciling.
const maxConflictAttempts = 3

func isRetryableConflict(err error) bool {
	return errors.Is(err, errs.ErrConcurrencyConflict) ||
		errors.Is(err, errs.ErrVersionIsInvalid)
}

// withConflictRetry runs fn until it succeeds, fails with a non-conflict
// error, or the attempt budget is spent. The last error is returned as-is.
func withConflictRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 0; attempt < maxConflictAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isRetryableConflict(err) {
			return err
		}
		if ctx.Err() != nil {
			return err
		}
	}
	return err
}
