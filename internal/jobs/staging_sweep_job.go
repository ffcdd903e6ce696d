package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StagingSweepJob periodically resets staging records stuck in Processing.
// A record gets stuck when a materialization crashed between acquiring the
// lock and marking the record Processed; without the sweep that paid order
// would be silently lost.
type StagingSweepJob struct {
	handler        commands.ResetStuckStagingCommandHandler
	stuckThreshold time.Duration
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewStagingSweepJob creates the sweep job. The threshold decides how long
// a record may stay in Processing before it counts as stuck; it has to be
// generous enough to never race a slow but live materialization.
func NewStagingSweepJob(
	handler commands.ResetStuckStagingCommandHandler,
	stuckThreshold time.Duration,
	logger *slog.Logger,
) *StagingSweepJob {
	return &StagingSweepJob{
		handler:        handler,
		stuckThreshold: stuckThreshold,
		cron:           cron.New(),
		logger:         logger.With("component", "staging_sweep_job"),
	}
}

// Start begins the sweep, running every minute.
func (j *StagingSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewResetStuckStagingCommand(j.stuckThreshold)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Staging sweep command rejected", "error", cmdErr)
			return
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Staging sweep failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Staging sweep job started (running every minute)",
		"stuck_threshold", j.stuckThreshold.String())
	return nil
}

// Stop stops the sweep job.
func (j *StagingSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Staging sweep job stopped")
}
