package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves a shipment header and its volumes from
// the database. Uses direct SQL for optimal read performance in the CQRS
// pattern.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query and returns the shipment with volumes ordered
// by sequence. Returns an object-not-found error when the shipment does not
// exist.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var response GetShipmentQueryResponse

	headerRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			client_id,
			tracking_code,
			volume_count,
			total_weight_grams,
			total_price_cents,
			pickup_point_ref,
			requested_delivery_date,
			payment_reference,
			created_at
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	defer headerRows.Close()

	if !headerRows.Next() {
		if err = headerRows.Err(); err != nil {
			return GetShipmentQueryResponse{}, err
		}
		return GetShipmentQueryResponse{},
			errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}

	var id, clientID uuid.UUID
	err = headerRows.Scan(
		&id,
		&clientID,
		&response.TrackingCode,
		&response.VolumeCount,
		&response.TotalWeightGrams,
		&response.TotalPriceCents,
		&response.PickupPointRef,
		&response.RequestedDeliveryDate,
		&response.PaymentReference,
		&response.CreatedAt,
	)
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	shipmentID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	response.ID = shipmentID

	cID, err := kernel.UUIDFromBytes(clientID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	response.ClientID = cID

	volumes, err := h.loadVolumes(ctx, query.ShipmentID())
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	response.Volumes = volumes

	return response, nil
}

func (h GetShipmentQueryHandler) loadVolumes(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]GetShipmentQueryVolumeResponse, error) {
	volumes := make([]GetShipmentQueryVolumeResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			parcel_code,
			sequence,
			weight_grams,
			status,
			assigned_actor_id,
			recipient_name,
			recipient_city,
			recipient_state
		FROM volumes
		WHERE shipment_id = ?
		ORDER BY sequence
	`, shipmentID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var volume GetShipmentQueryVolumeResponse
		var id uuid.UUID
		var assignedActorID *uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&volume.ParcelCode,
			&volume.Sequence,
			&volume.WeightGrams,
			&status,
			&assignedActorID,
			&volume.RecipientName,
			&volume.RecipientCity,
			&volume.RecipientState,
		)
		if err != nil {
			return nil, err
		}

		volumeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		volume.ID = volumeID
		volume.Status = shipment.Status(status).String()

		if assignedActorID != nil {
			aID, aErr := kernel.UUIDFromBytes((*assignedActorID)[:])
			if aErr != nil {
				return nil, aErr
			}
			volume.AssignedActorID = &aID
		}

		volumes = append(volumes, volume)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return volumes, nil
}
