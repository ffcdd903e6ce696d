package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentTimelineQueryHandler reads the append-only audit log for one
// shipment. Uses direct SQL for optimal read performance in the CQRS pattern.
type GetShipmentTimelineQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentTimelineQueryHandler creates a handler for timeline queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentTimelineQueryHandler(db *gorm.DB) GetShipmentTimelineQueryHandler {
	return GetShipmentTimelineQueryHandler{db: db}
}

// Handle returns all audit entries for the shipment, shipment-level and
// per-volume alike, ordered by creation time with the database-assigned
// insertion order breaking ties between same-instant entries.
func (h GetShipmentTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentTimelineQuery,
) ([]GetShipmentTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var shipmentExists int64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(1) FROM shipments WHERE id = ?
	`, query.ShipmentID().Bytes()).Scan(&shipmentExists).Error
	if err != nil {
		return nil, err
	}
	if shipmentExists == 0 {
		return nil, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}

	entries := make([]GetShipmentTimelineQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			volume_id,
			status,
			description,
			occurrence_reason,
			media_url,
			actor_id,
			created_at
		FROM audit_entries
		WHERE shipment_id = ?
		ORDER BY created_at, insertion_order
	`, query.ShipmentID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetShipmentTimelineQueryResponse
		var id uuid.UUID
		var volumeID, actorID *uuid.UUID
		var status int

		err = rows.Scan(
			&id,
			&volumeID,
			&status,
			&entry.Description,
			&entry.OccurrenceReason,
			&entry.MediaURL,
			&actorID,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		entryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = entryID
		entry.Status = shipment.Status(status).String()

		if volumeID != nil {
			vID, vErr := kernel.UUIDFromBytes((*volumeID)[:])
			if vErr != nil {
				return nil, vErr
			}
			entry.VolumeID = &vID
		}

		if actorID != nil {
			aID, aErr := kernel.UUIDFromBytes((*actorID)[:])
			if aErr != nil {
				return nil, aErr
			}
			entry.ActorID = &aID
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
