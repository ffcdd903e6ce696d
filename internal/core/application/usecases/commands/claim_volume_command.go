package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrClaimVolumeCommandIsNotConstructed = errors.New(
	"ClaimVolumeCommand must be created via NewClaimVolumeCommand constructor",
)

// ClaimVolumeCommand represents a delivery driver taking an exclusive claim
// on an available volume. Two drivers racing for the same volume get exactly
// one success; the loser is told the volume is no longer available.
type ClaimVolumeCommand struct { //nolint:recvcheck //using for validation
	volumeID kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimVolumeCommand creates a command for one exclusive claim.
func NewClaimVolumeCommand(volumeID, driverID kernel.UUID) (ClaimVolumeCommand, error) {
	cmd := ClaimVolumeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolumeID(volumeID),
		cmd.setDriverID(driverID),
	); err != nil {
		return ClaimVolumeCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimVolumeCommand) Validate() error {
	return c.guard.Validate(ErrClaimVolumeCommandIsNotConstructed)
}

// VolumeID returns the volume being claimed.
func (c ClaimVolumeCommand) VolumeID() kernel.UUID {
	return c.volumeID
}

// DriverID returns the delivery driver making the claim.
func (c ClaimVolumeCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *ClaimVolumeCommand) setVolumeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volumeID = id
	return nil
}

func (c *ClaimVolumeCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
