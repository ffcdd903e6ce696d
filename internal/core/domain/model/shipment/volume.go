package shipment

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrVolumeIsNotConstructed is returned when a Volume instance was not
	// created through NewVolume or RestoreVolume.
	ErrVolumeIsNotConstructed = errors.New("Volume must be created via NewVolume or RestoreVolume constructor")

	// ErrVolumeAlreadyClaimed is returned when a claim is attempted on a
	// volume that already has an assigned actor.
	ErrVolumeAlreadyClaimed = errors.New("volume is already claimed by another actor")

	// ErrVolumeNotAssignedToActor is returned when an operation reserved for
	// the assigned actor is attempted by someone else.
	ErrVolumeNotAssignedToActor = errors.New("volume is not assigned to this actor")

	// ErrStatusNotAdvanceable is returned when a requested status move is not
	// a legal forward step in the custody graph.
	ErrStatusNotAdvanceable = errors.New("status transition is not a legal forward step")
)

// Volume is one physically trackable package within a shipment. It carries
// the parcel code used for verification at handoffs, a recipient address
// snapshot taken at creation time, its position in the custody graph, and
// the actor currently holding an exclusive claim (delivery phase only).
//
// Invariants:
//   - The parcel code is immutable once assigned.
//   - At most one actor is assigned at any moment.
//   - Status only moves forward along the graph, one step at a time.
type Volume struct {
	id         kernel.UUID
	shipmentID kernel.UUID
	parcelCode kernel.ParcelCode

	// sequence is the 1-based position within the shipment.
	sequence int

	// weightGrams is the declared weight of this volume.
	weightGrams int

	recipient Address
	status    Status

	// assignedActorID is the driver currently holding custody, nil when
	// the volume is unassigned.
	assignedActorID *kernel.UUID

	createdAt time.Time

	isConstructed bool
}

// NewVolume creates a volume in the initial AwaitingCollectionAccept status.
// Called only during payment-confirmation materialization.
func NewVolume(
	id kernel.UUID,
	shipmentID kernel.UUID,
	parcelCode kernel.ParcelCode,
	sequence int,
	weightGrams int,
	recipient Address,
) (*Volume, error) {
	v := &Volume{
		status:        AwaitingCollectionAccept,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		v.setID(id),
		v.setShipmentID(shipmentID),
		v.setParcelCode(parcelCode),
		v.setSequence(sequence),
		v.setWeightGrams(weightGrams),
		v.setRecipient(recipient),
	); err != nil {
		return nil, err
	}

	return v, nil
}

// RestoreVolume reconstructs a volume from persistence. It re-checks the
// same invariants as NewVolume plus consistency between status and
// assignment: only claimed-or-later volumes may carry an assigned actor.
func RestoreVolume(
	id kernel.UUID,
	shipmentID kernel.UUID,
	parcelCode kernel.ParcelCode,
	sequence int,
	weightGrams int,
	recipient Address,
	status Status,
	assignedActorID *kernel.UUID,
	createdAt time.Time,
) (*Volume, error) {
	v, err := NewVolume(id, shipmentID, parcelCode, sequence, weightGrams, recipient)
	if err != nil {
		return nil, err
	}

	if err = status.Validate(); err != nil {
		return nil, err
	}

	if assignedActorID != nil {
		if err = assignedActorID.Validate(); err != nil {
			return nil, err
		}
		if status < DeliveryClaimed {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"assigned actor",
				fmt.Errorf("%s does not allow an assigned actor", status))
		}
	}

	v.status = status
	v.assignedActorID = assignedActorID
	v.createdAt = createdAt
	return v, nil
}

// Validate ensures the Volume was created through a constructor.
func (v *Volume) Validate() error {
	if v == nil || !v.isConstructed {
		return ErrVolumeIsNotConstructed
	}
	return nil
}

// IsEqual compares two volumes by identifier.
func (v *Volume) IsEqual(other *Volume) bool {
	return other != nil && v.id.IsEqual(other.id)
}

// ID returns the volume's unique identifier.
func (v *Volume) ID() kernel.UUID { return v.id }

// ShipmentID returns the parent shipment's identifier.
func (v *Volume) ShipmentID() kernel.UUID { return v.shipmentID }

// ParcelCode returns the immutable verification code of this volume.
func (v *Volume) ParcelCode() kernel.ParcelCode { return v.parcelCode }

// Sequence returns the 1-based position within the shipment.
func (v *Volume) Sequence() int { return v.sequence }

// WeightGrams returns the declared weight of the volume.
func (v *Volume) WeightGrams() int { return v.weightGrams }

// Recipient returns the address snapshot taken at creation time.
func (v *Volume) Recipient() Address { return v.recipient }

// Status returns the volume's current custody status.
func (v *Volume) Status() Status { return v.status }

// AssignedActor returns the id of the driver currently holding the claim,
// or nil when unassigned.
func (v *Volume) AssignedActor() *kernel.UUID { return v.assignedActorID }

// CreatedAt returns the creation timestamp.
func (v *Volume) CreatedAt() time.Time { return v.createdAt }

// VerifyCode checks the digits a human operator entered against the
// volume's parcel code. All four digits must match exactly.
func (v *Volume) VerifyCode(digits string) bool {
	return v.parcelCode.Matches(digits)
}

// AdvanceTo moves the volume one step forward in the custody graph.
// Any move that is not the single legal successor returns
// ErrStatusNotAdvanceable.
func (v *Volume) AdvanceTo(next Status) error {
	if !v.status.CanAdvanceTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrStatusNotAdvanceable, v.status, next)
	}
	v.status = next
	return nil
}

// Claim assigns the volume exclusively to a delivery driver and moves it to
// DeliveryClaimed. A volume that already has an assigned actor rejects the
// claim with ErrVolumeAlreadyClaimed; the persistence layer enforces the
// same rule with a conditioned write so concurrent claimers cannot both win.
func (v *Volume) Claim(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if v.assignedActorID != nil {
		return ErrVolumeAlreadyClaimed
	}
	if err := v.AdvanceTo(DeliveryClaimed); err != nil {
		return err
	}
	v.assignedActorID = &driverID
	return nil
}

// EnsureAssignedTo verifies that actorID currently holds the claim on the
// volume. Operations in the delivery phase are reserved for the assigned
// driver.
func (v *Volume) EnsureAssignedTo(actorID kernel.UUID) error {
	if v.assignedActorID == nil || !v.assignedActorID.IsEqual(actorID) {
		return ErrVolumeNotAssignedToActor
	}
	return nil
}

func (v *Volume) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.id = id
	return nil
}

func (v *Volume) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	v.shipmentID = id
	return nil
}

func (v *Volume) setParcelCode(code kernel.ParcelCode) error {
	if err := code.Validate(); err != nil {
		return err
	}
	v.parcelCode = code
	return nil
}

func (v *Volume) setSequence(sequence int) error {
	if sequence < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence", fmt.Errorf("%d is not greater than 0", sequence))
	}
	v.sequence = sequence
	return nil
}

func (v *Volume) setWeightGrams(weightGrams int) error {
	if weightGrams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight", fmt.Errorf("%d is not greater than 0", weightGrams))
	}
	v.weightGrams = weightGrams
	return nil
}

func (v *Volume) setRecipient(recipient Address) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	v.recipient = recipient
	return nil
}
