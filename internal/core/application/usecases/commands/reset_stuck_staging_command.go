package commands

import (
	"errors"
	"time"

	"freight/internal/pkg/guard"
)

var (
	ErrResetStuckStagingCommandIsNotConstructed = errors.New(
		"ResetStuckStagingCommand must be created via NewResetStuckStagingCommand constructor",
	)
	ErrStuckThresholdIsInvalid = errors.New("stuck threshold must be greater than 0")
)

// ResetStuckStagingCommand represents one sweep for staging records stuck in
// Processing: a processor that crashed mid-materialization leaves its record
// locked, and without this sweep the paid order could never be reprocessed.
type ResetStuckStagingCommand struct { //nolint:recvcheck //using for validation
	stuckThreshold time.Duration

	guard guard.ConstructorGuard
}

// NewResetStuckStagingCommand creates a sweep command. Records that entered
// Processing more than stuckThreshold ago are considered stuck.
func NewResetStuckStagingCommand(stuckThreshold time.Duration) (ResetStuckStagingCommand, error) {
	cmd := ResetStuckStagingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setStuckThreshold(stuckThreshold); err != nil {
		return ResetStuckStagingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResetStuckStagingCommand) Validate() error {
	return c.guard.Validate(ErrResetStuckStagingCommandIsNotConstructed)
}

// StuckThreshold returns the age beyond which a Processing record counts as
// stuck.
func (c ResetStuckStagingCommand) StuckThreshold() time.Duration {
	return c.stuckThreshold
}

func (c *ResetStuckStagingCommand) setStuckThreshold(threshold time.Duration) error {
	if threshold <= 0 {
		return ErrStuckThresholdIsInvalid
	}
	c.stuckThreshold = threshold
	return nil
}
