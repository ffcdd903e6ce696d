package commands

import (
	"context"
	"log/slog"
	"time"
)

// ResetStuckStagingCommandHandler is the operational stuck-record detector.
// A record found in Processing past the threshold is reset to
// PendingPayment so an operator can reprocess the paid order manually. There
// is deliberately no automatic re-materialization: the sweep restores the
// possibility of reprocessing, a human decides whether to do it.
type ResetStuckStagingCommandHandler struct {
	uowFactory StagingUoWFactory
	logger     *slog.Logger
}

// NewResetStuckStagingCommandHandler creates a handler for the staging sweep.
func NewResetStuckStagingCommandHandler(uowFactory StagingUoWFactory, logger *slog.Logger) ResetStuckStagingCommandHandler {
	return ResetStuckStagingCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "staging_sweep"),
	}
}

// Handle resets all records that have held the Processing lock longer than
// the threshold and logs each one at warning level for operational
// follow-up.
func (h ResetStuckStagingCommandHandler) Handle(ctx context.Context, cmd ResetStuckStagingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lockedBefore := time.Now().UTC().Add(-cmd.StuckThreshold())
	resetIDs, err := uow.StagingRepository().ResetStuck(ctx, lockedBefore)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, id := range resetIDs {
		h.logger.WarnContext(ctx, "stuck staging record reset for manual reprocessing",
			"staging_record_id", id.String(),
			"stuck_threshold", cmd.StuckThreshold().String())
	}

	return nil
}
