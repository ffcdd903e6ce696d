package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrFinalizeCollectionCommandIsNotConstructed = errors.New(
	"FinalizeCollectionCommand must be created via NewFinalizeCollectionCommand constructor",
)

// FinalizeCollectionCommand represents a collection driver closing the
// collection run for a whole shipment. It is the only shipment-level handoff
// operation: it succeeds only when every volume of the shipment has already
// independently passed its own code verification.
type FinalizeCollectionCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewFinalizeCollectionCommand creates a command to finalize a shipment's
// collection.
func NewFinalizeCollectionCommand(shipmentID, driverID kernel.UUID) (FinalizeCollectionCommand, error) {
	cmd := FinalizeCollectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setDriverID(driverID),
	); err != nil {
		return FinalizeCollectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FinalizeCollectionCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeCollectionCommandIsNotConstructed)
}

// ShipmentID returns the shipment whose collection is being finalized.
func (c FinalizeCollectionCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// DriverID returns the collection driver closing the run.
func (c FinalizeCollectionCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *FinalizeCollectionCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.shipmentID = id
	return nil
}

func (c *FinalizeCollectionCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}
