package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrRegisterDepotArrivalCommandIsNotConstructed = errors.New(
	"RegisterDepotArrivalCommand must be created via NewRegisterDepotArrivalCommand constructor",
)

// RegisterDepotArrivalCommand represents depot staff booking one volume in
// on arrival, verifying its parcel code. One volume at a time; there is no
// bulk depot intake.
type RegisterDepotArrivalCommand struct { //nolint:recvcheck //using for validation
	volumeID      kernel.UUID
	staffID       kernel.UUID
	enteredDigits string

	guard guard.ConstructorGuard
}

// NewRegisterDepotArrivalCommand creates a command for one depot arrival.
func NewRegisterDepotArrivalCommand(volumeID, staffID kernel.UUID, enteredDigits string) (RegisterDepotArrivalCommand, error) {
	cmd := RegisterDepotArrivalCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolumeID(volumeID),
		cmd.setStaffID(staffID),
		cmd.setEnteredDigits(enteredDigits),
	); err != nil {
		return RegisterDepotArrivalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDepotArrivalCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDepotArrivalCommandIsNotConstructed)
}

// VolumeID returns the arriving volume.
func (c RegisterDepotArrivalCommand) VolumeID() kernel.UUID {
	return c.volumeID
}

// StaffID returns the depot staff member booking the volume in.
func (c RegisterDepotArrivalCommand) StaffID() kernel.UUID {
	return c.staffID
}

// EnteredDigits returns the 4 digits the staff member typed.
func (c RegisterDepotArrivalCommand) EnteredDigits() string {
	return c.enteredDigits
}

func (c *RegisterDepotArrivalCommand) setVolumeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volumeID = id
	return nil
}

func (c *RegisterDepotArrivalCommand) setStaffID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.staffID = id
	return nil
}

func (c *RegisterDepotArrivalCommand) setEnteredDigits(digits string) error {
	if digits == "" {
		return ErrEnteredDigitsAreRequired
	}
	c.enteredDigits = digits
	return nil
}
