// Package jobs provides the scheduled background tasks of the marketplace,
// built on github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"context"
	"log/slog"

	"marketplace/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// tokenCleanupSchedule runs the purge hourly; expired tokens are already
// rejected at refresh time, the sweep only keeps the table from growing.
const tokenCleanupSchedule = "0 * * * *"

// TokenCleanupJob periodically purges expired refresh tokens.
type TokenCleanupJob struct {
	handler commands.PurgeExpiredTokensCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewTokenCleanupJob creates the purge job over the given handler.
func NewTokenCleanupJob(handler commands.PurgeExpiredTokensCommandHandler, logger *slog.Logger) *TokenCleanupJob {
	return &TokenCleanupJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "token_cleanup_job"),
	}
}

// Start schedules the hourly purge.
func (j *TokenCleanupJob) Start() error {
	_, err := j.cron.AddFunc(tokenCleanupSchedule, func() {
		ctx := context.Background()

		removed, err := j.handler.Handle(ctx, commands.NewPurgeExpiredTokensCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Token cleanup job failed", "error", err)
			return
		}
		if removed > 0 {
			j.logger.InfoContext(ctx, "Purged expired refresh tokens", "count", removed)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Token cleanup job started (running hourly)")
	return nil
}

// Stop stops the cleanup job.
func (j *TokenCleanupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Token cleanup job stopped")
}
