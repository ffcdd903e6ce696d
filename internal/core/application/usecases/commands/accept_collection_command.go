package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrAcceptCollectionCommandIsNotConstructed = errors.New(
		"AcceptCollectionCommand must be created via NewAcceptCollectionCommand constructor",
	)
	ErrEnteredDigitsAreRequired = errors.New("entered digits are required")
)

// AcceptCollectionCommand represents a collection driver taking custody of
// one volume at the pickup point, proving physical possession by typing the
// volume's 4-digit parcel code.
type AcceptCollectionCommand struct { //nolint:recvcheck //using for validation
	volumeID      kernel.UUID
	driverID      kernel.UUID
	enteredDigits string

	guard guard.ConstructorGuard
}

// NewAcceptCollectionCommand creates a command for one volume acceptance.
// Validates identifiers and that digits were entered; whether they match the
// parcel code is decided by the transition engine, not here.
func NewAcceptCollectionCommand(volumeID, driverID kernel.UUID, enteredDigits string) (AcceptCollectionCommand, error) {
	cmd := AcceptCollectionCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolumeID(volumeID),
		cmd.setDriverID(driverID),
		cmd.setEnteredDigits(enteredDigits),
	); err != nil {
		return AcceptCollectionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptCollectionCommand) Validate() error {
	return c.guard.Validate(ErrAcceptCollectionCommandIsNotConstructed)
}

// VolumeID returns the volume being accepted.
func (c AcceptCollectionCommand) VolumeID() kernel.UUID {
	return c.volumeID
}

// DriverID returns the collection driver taking custody.
func (c AcceptCollectionCommand) DriverID() kernel.UUID {
	return c.driverID
}

// EnteredDigits returns the 4 digits the driver typed.
func (c AcceptCollectionCommand) EnteredDigits() string {
	return c.enteredDigits
}

func (c *AcceptCollectionCommand) setVolumeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volumeID = id
	return nil
}

func (c *AcceptCollectionCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.driverID = id
	return nil
}

func (c *AcceptCollectionCommand) setEnteredDigits(digits string) error {
	if digits == "" {
		return ErrEnteredDigitsAreRequired
	}
	c.enteredDigits = digits
	return nil
}
