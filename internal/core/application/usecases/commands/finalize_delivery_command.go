package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrFinalizeDeliveryCommandIsNotConstructed = errors.New(
	"FinalizeDeliveryCommand must be created via NewFinalizeDeliveryCommand constructor",
)

// FinalizeDeliveryCommand represents the assigned driver handing the volume
// to the recipient, the terminal transition of the custody graph.
type FinalizeDeliveryCommand struct { //nolint:recvcheck //using for validation
	volumeID kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeDeliveryCommand creates a command for one delivery completion.
func NewFinalizeDeliveryCommand(volumeID, driverID kernel.UUID) (FinalizeDeliveryCommand, error) {
	cmd := FinalizeDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolumeID(volumeID),
		cmd.setDriverID(driverID),
	); err != nil {
		return FinalizeDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeDeliveryCommandIsNotConstructed)
}

// VolumeID returns the volume being delivered.
func (c FinalizeDeliveryCommand) VolumeID() kernel.UUID {
	return c.volumeID
}

// DriverID returns the delivery driver completing the handoff.
func (c FinalizeDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *FinalizeDeliveryCommand) setVolumeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volumeID = id
	return nil
}

func (c *FinalizeDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
