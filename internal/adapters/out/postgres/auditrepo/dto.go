// Package auditrepo provides data transfer objects and mapping functions
// for the append-only transition history. Entries are only ever inserted
// and read back in order; there is no update path.
package auditrepo

import (
	"time"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// EntryDTO represents the database structure for persisting audit entries.
// InsertionOrder is a database-assigned serial used as the tiebreaker when
// several entries share a timestamp.
type EntryDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID       uuid.UUID `gorm:"type:uuid;index"`
	VolumeID         *uuid.UUID `gorm:"type:uuid;index"`
	Status           int
	Description      string
	OccurrenceReason *string
	MediaURL         *string
	ActorID          *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	InsertionOrder   int64 `gorm:"autoIncrement;uniqueIndex"`
}

// TableName specifies the database table name for audit entries.
func (EntryDTO) TableName() string {
	return "audit_entries"
}

// fromDomain converts an audit entry to its database representation.
func fromDomain(entry *audit.Entry) EntryDTO {
	var volumeID, actorID *uuid.UUID
	if id := entry.VolumeID(); id != nil {
		raw := id.Bytes()
		volumeID = &raw
	}
	if id := entry.ActorID(); id != nil {
		raw := id.Bytes()
		actorID = &raw
	}

	var occurrenceReason, mediaURL *string
	if occurrence := entry.Occurrence(); occurrence != nil {
		reason := occurrence.Reason.String()
		occurrenceReason = &reason
		if occurrence.MediaURL != "" {
			url := occurrence.MediaURL
			mediaURL = &url
		}
	}

	return EntryDTO{
		ID:               entry.ID().Bytes(),
		ShipmentID:       entry.ShipmentID().Bytes(),
		VolumeID:         volumeID,
		Status:           int(entry.Status()),
		Description:      entry.Description(),
		OccurrenceReason: occurrenceReason,
		MediaURL:         mediaURL,
		ActorID:          actorID,
		CreatedAt:        entry.CreatedAt(),
	}
}

// toDomain converts a database DTO to an audit entry using RestoreEntry.
func toDomain(dto EntryDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	var volumeID, actorID *kernel.UUID
	if dto.VolumeID != nil {
		vID, vErr := kernel.UUIDFromBytes((*dto.VolumeID)[:])
		if vErr != nil {
			return nil, vErr
		}
		volumeID = &vID
	}
	if dto.ActorID != nil {
		aID, aErr := kernel.UUIDFromBytes((*dto.ActorID)[:])
		if aErr != nil {
			return nil, aErr
		}
		actorID = &aID
	}

	var occurrence *audit.OccurrencePayload
	if dto.OccurrenceReason != nil {
		reason, reasonErr := shipment.OccurrenceReasonFromString(*dto.OccurrenceReason)
		if reasonErr != nil {
			return nil, reasonErr
		}
		payload := audit.OccurrencePayload{Reason: reason}
		if dto.MediaURL != nil {
			payload.MediaURL = *dto.MediaURL
		}
		occurrence = &payload
	}

	return audit.RestoreEntry(
		id,
		shipmentID,
		volumeID,
		shipment.Status(dto.Status),
		dto.Description,
		occurrence,
		actorID,
		dto.CreatedAt,
	)
}
