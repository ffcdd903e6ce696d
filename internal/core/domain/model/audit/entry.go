// Package audit contains the append-only transition history consumed by all
// tracking UIs. Entries are never updated or deleted; the full timeline of a
// shipment is the concatenation of its shipment-level and volume-level
// entries ordered by timestamp, ties broken by insertion order.
package audit

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// ErrEntryIsNotConstructed is returned when an Entry was not created through
// one of the constructors.
var ErrEntryIsNotConstructed = errors.New(
	"Entry must be created via NewEntry or NewOccurrenceEntry constructor")

// OccurrencePayload carries the structured detail of an exception event:
// the fixed reason code plus an optional photo/audio reference captured by
// the driver. The core never interprets the media contents, only stores the
// identifier.
type OccurrencePayload struct {
	Reason   shipment.OccurrenceReason
	MediaURL string
}

// Entry is one append-only audit record. Volume-level entries carry the
// volume id; shipment-level entries (materialization summary, collection
// finalized) leave it nil. System-generated entries have no actor.
type Entry struct {
	id          kernel.UUID
	shipmentID  kernel.UUID
	volumeID    *kernel.UUID
	status      shipment.Status
	description string
	occurrence  *OccurrencePayload
	actorID     *kernel.UUID
	createdAt   time.Time

	isConstructed bool
}

// NewEntry creates a plain transition entry. actorID is nil for
// system-generated entries, volumeID is nil for shipment-level entries.
func NewEntry(
	id kernel.UUID,
	shipmentID kernel.UUID,
	volumeID *kernel.UUID,
	status shipment.Status,
	description string,
	actorID *kernel.UUID,
) (*Entry, error) {
	e := &Entry{
		description:   description,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := e.setIdentifiers(id, shipmentID, volumeID, actorID); err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	e.status = status

	return e, nil
}

// NewOccurrenceEntry creates an exception entry. The volume keeps its
// current status; the entry records that status together with the reason
// payload and the reporting driver.
func NewOccurrenceEntry(
	id kernel.UUID,
	shipmentID kernel.UUID,
	volumeID kernel.UUID,
	currentStatus shipment.Status,
	description string,
	payload OccurrencePayload,
	actorID kernel.UUID,
) (*Entry, error) {
	if err := payload.Reason.Validate(); err != nil {
		return nil, err
	}

	e, err := NewEntry(id, shipmentID, &volumeID, currentStatus, description, &actorID)
	if err != nil {
		return nil, err
	}
	e.occurrence = &payload
	return e, nil
}

// RestoreEntry reconstructs an entry from persistence.
func RestoreEntry(
	id kernel.UUID,
	shipmentID kernel.UUID,
	volumeID *kernel.UUID,
	status shipment.Status,
	description string,
	occurrence *OccurrencePayload,
	actorID *kernel.UUID,
	createdAt time.Time,
) (*Entry, error) {
	e, err := NewEntry(id, shipmentID, volumeID, status, description, actorID)
	if err != nil {
		return nil, err
	}
	if occurrence != nil {
		if err = occurrence.Reason.Validate(); err != nil {
			return nil, err
		}
	}
	e.occurrence = occurrence
	e.createdAt = createdAt
	return e, nil
}

// Validate ensures the entry was created through a constructor.
func (e *Entry) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (e *Entry) ID() kernel.UUID { return e.id }

// ShipmentID returns the shipment the entry belongs to.
func (e *Entry) ShipmentID() kernel.UUID { return e.shipmentID }

// VolumeID returns the volume the entry belongs to, nil for shipment-level
// entries.
func (e *Entry) VolumeID() *kernel.UUID { return e.volumeID }

// Status returns the volume (or shipment) status recorded by the entry.
func (e *Entry) Status() shipment.Status { return e.status }

// Description returns the free-text description.
func (e *Entry) Description() string { return e.description }

// Occurrence returns the structured exception payload, nil for plain
// transition entries.
func (e *Entry) Occurrence() *OccurrencePayload { return e.occurrence }

// ActorID returns the acting driver or staff member, nil for
// system-generated entries.
func (e *Entry) ActorID() *kernel.UUID { return e.actorID }

// CreatedAt returns the entry timestamp.
func (e *Entry) CreatedAt() time.Time { return e.createdAt }

func (e *Entry) setIdentifiers(id, shipmentID kernel.UUID, volumeID, actorID *kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := shipmentID.Validate(); err != nil {
		return err
	}
	if volumeID != nil {
		if err := volumeID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("volume id", err)
		}
	}
	if actorID != nil {
		if err := actorID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("actor id", err)
		}
	}

	e.id = id
	e.shipmentID = shipmentID
	e.volumeID = volumeID
	e.actorID = actorID
	return nil
}
