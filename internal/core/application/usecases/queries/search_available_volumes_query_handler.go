package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SearchAvailableVolumesQueryHandler resolves a typed 4-digit code to the
// claimable volumes carrying it. Only unclaimed volumes in the available
// status are visible, which keeps collisions over the small code space rare.
type SearchAvailableVolumesQueryHandler struct {
	db *gorm.DB
}

// NewSearchAvailableVolumesQueryHandler creates a handler for code searches.
// Requires a GORM database connection for query execution.
func NewSearchAvailableVolumesQueryHandler(db *gorm.DB) SearchAvailableVolumesQueryHandler {
	return SearchAvailableVolumesQueryHandler{db: db}
}

// Handle returns every unclaimed available volume whose parcel code ends in
// the queried digits, joined with the shipment header for delivery context.
// An empty result is not an error: the driver simply mistyped or the volume
// was claimed first.
func (h SearchAvailableVolumesQueryHandler) Handle(
	ctx context.Context,
	query SearchAvailableVolumesQuery,
) ([]SearchAvailableVolumesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	volumes := make([]SearchAvailableVolumesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			v.id,
			v.shipment_id,
			v.parcel_code,
			v.weight_grams,
			v.recipient_name,
			v.recipient_city,
			v.recipient_state,
			s.requested_delivery_date
		FROM volumes v
		JOIN shipments s ON s.id = v.shipment_id
		WHERE v.parcel_code = ?
		  AND v.status = ?
		  AND v.assigned_actor_id IS NULL
		ORDER BY s.requested_delivery_date, v.sequence
	`, kernel.ParcelCodePrefix+query.Digits(), int(shipment.AvailableForDelivery)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var volume SearchAvailableVolumesQueryResponse
		var id, shipmentID uuid.UUID

		err = rows.Scan(
			&id,
			&shipmentID,
			&volume.ParcelCode,
			&volume.WeightGrams,
			&volume.RecipientName,
			&volume.RecipientCity,
			&volume.RecipientState,
			&volume.RequestedDeliveryDate,
		)
		if err != nil {
			return nil, err
		}

		volumeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		volume.VolumeID = volumeID

		sID, sErr := kernel.UUIDFromBytes(shipmentID[:])
		if sErr != nil {
			return nil, sErr
		}
		volume.ShipmentID = sID

		volumes = append(volumes, volume)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return volumes, nil
}
