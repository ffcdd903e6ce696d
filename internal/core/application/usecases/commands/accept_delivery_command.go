package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents the claiming driver confirming the volume
// is physically loaded for the delivery run. No verification gate beyond
// being the assigned actor.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	volumeID kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a command for one delivery acceptance.
func NewAcceptDeliveryCommand(volumeID, driverID kernel.UUID) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolumeID(volumeID),
		cmd.setDriverID(driverID),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// VolumeID returns the volume being accepted for delivery.
func (c AcceptDeliveryCommand) VolumeID() kernel.UUID {
	return c.volumeID
}

// DriverID returns the delivery driver confirming the load.
func (c AcceptDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *AcceptDeliveryCommand) setVolumeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volumeID = id
	return nil
}

func (c *AcceptDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
