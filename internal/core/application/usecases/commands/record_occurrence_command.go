package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/guard"
)

var (
	ErrRecordOccurrenceCommandIsNotConstructed = errors.New(
		"RecordOccurrenceCommand must be created via NewRecordOccurrenceCommand constructor",
	)
	ErrOccurrenceRoleMustBeDriver = errors.New("occurrences can only be recorded by drivers")
)

// RecordOccurrenceCommand represents a driver recording an exception event
// against a volume: a failed attempt, damage, refusal, a vehicle delay. The
// occurrence is audit metadata only; it never moves the volume's status or
// releases its claim, so a retry stays possible.
type RecordOccurrenceCommand struct { //nolint:recvcheck //using for validation
	volumeID    kernel.UUID
	actorID     kernel.UUID
	role        shipment.Role
	reason      shipment.OccurrenceReason
	description string
	mediaURL    string

	guard guard.ConstructorGuard
}

// NewRecordOccurrenceCommand creates a command for one occurrence. The role
// must be one of the two driver roles; the reason must come from the fixed
// enumeration. Description and media URL are optional.
func NewRecordOccurrenceCommand(
	volumeID kernel.UUID,
	actorID kernel.UUID,
	role shipment.Role,
	reason shipment.OccurrenceReason,
	description string,
	mediaURL string,
) (RecordOccurrenceCommand, error) {
	cmd := RecordOccurrenceCommand{
		description: description,
		mediaURL:    mediaURL,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setVolumeID(volumeID),
		cmd.setActorID(actorID),
		cmd.setRole(role),
		cmd.setReason(reason),
	); err != nil {
		return RecordOccurrenceCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordOccurrenceCommand) Validate() error {
	return c.guard.Validate(ErrRecordOccurrenceCommandIsNotConstructed)
}

// VolumeID returns the volume the occurrence is recorded against.
func (c RecordOccurrenceCommand) VolumeID() kernel.UUID {
	return c.volumeID
}

// ActorID returns the reporting driver.
func (c RecordOccurrenceCommand) ActorID() kernel.UUID {
	return c.actorID
}

// Role returns the reporting driver's role.
func (c RecordOccurrenceCommand) Role() shipment.Role {
	return c.role
}

// Reason returns the fixed-enumeration reason code.
func (c RecordOccurrenceCommand) Reason() shipment.OccurrenceReason {
	return c.reason
}

// Description returns the free-text description, possibly empty.
func (c RecordOccurrenceCommand) Description() string {
	return c.description
}

// MediaURL returns the photo/audio reference, possibly empty. The core
// stores the identifier only and never interprets the contents.
func (c RecordOccurrenceCommand) MediaURL() string {
	return c.mediaURL
}

func (c *RecordOccurrenceCommand) setVolumeID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.volumeID = id
	return nil
}

func (c *RecordOccurrenceCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *RecordOccurrenceCommand) setRole(role shipment.Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	if !role.IsDriver() {
		return ErrOccurrenceRoleMustBeDriver
	}
	c.role = role
	return nil
}

func (c *RecordOccurrenceCommand) setReason(reason shipment.OccurrenceReason) error {
	if err := reason.Validate(); err != nil {
		return err
	}
	c.reason = reason
	return nil
}
