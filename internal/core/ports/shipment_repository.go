// Package ports defines the persistence contracts between the domain layer
// and infrastructure, enabling dependency inversion and testability.
//
// Every gated write in the system (the staging materialization lock, the
// exclusive delivery claim, each per-volume status move) is expressed as a
// conditioned write: an update filtered on the state the caller observed.
// Zero rows affected means another actor moved first; repositories report
// that as a typed conflict error, never by silently overwriting.
package ports

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

var (
	// ErrStatusConflict is returned by a conditioned status write that
	// affected zero rows: the volume was not in the expected state anymore.
	// Callers should re-read and report "already advanced".
	ErrStatusConflict = errors.New("volume status changed concurrently")

	// ErrClaimConflict is returned when an exclusive claim was lost to a
	// concurrent actor. Surfaced to the driver as "no longer available".
	ErrClaimConflict = errors.New("volume is no longer available")
)

// ShipmentRepository is the persistence contract for shipment aggregates and
// their child volumes.
type ShipmentRepository interface {
	// Add persists a new shipment header. The aggregate must be valid and
	// not already exist.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// AddVolume persists one new volume. Volume creation is intentionally
	// separate from Add: materialization favors partial success, so each
	// volume is written in its own unit of work.
	AddVolume(ctx context.Context, volume *shipment.Volume) error

	// Get retrieves a shipment header together with all its volumes,
	// ordered by sequence number.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetByPaymentReference retrieves the shipment materialized from the
	// given payment reference, if any.
	GetByPaymentReference(ctx context.Context, paymentReference string) (*shipment.Shipment, error)

	// GetVolume retrieves a single volume by its identifier.
	GetVolume(ctx context.Context, id kernel.UUID) (*shipment.Volume, error)

	// UpdateVolumeStatus performs the conditioned status write
	// "set status = to where id = ? and status = from". Zero rows affected
	// returns ErrStatusConflict.
	UpdateVolumeStatus(ctx context.Context, id kernel.UUID, from, to shipment.Status) error

	// ClaimVolume atomically sets status to DeliveryClaimed and the
	// assigned actor, conditioned on the volume being AvailableForDelivery
	// and unassigned. A lost race returns ErrClaimConflict.
	ClaimVolume(ctx context.Context, id kernel.UUID, driverID kernel.UUID) error

	// SearchAvailable finds volumes in AvailableForDelivery with no
	// assigned actor whose parcel code digits end with the given digits.
	SearchAvailable(ctx context.Context, digits string) ([]*shipment.Volume, error)
}
