// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. This package implements the repository pattern
// for the shipment aggregate and its volumes, handling the conversion
// between domain entities and database representations.
package shipmentrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// headers. The tracking code and payment reference carry unique indexes:
// the payment reference uniqueness is the second line of defense behind the
// staging lock against double materialization.
type ShipmentDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID              uuid.UUID `gorm:"type:uuid;index"`
	TrackingCode          string    `gorm:"uniqueIndex"`
	VolumeCount           int
	TotalWeightGrams      int
	TotalPriceCents       int64
	PickupPointRef        string
	RequestedDeliveryDate time.Time
	PaymentReference      string `gorm:"uniqueIndex"`
	CreatedAt             time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// VolumeDTO represents the database structure for persisting volumes.
// Status and assignment are indexed together with the parcel code to serve
// the driver code search without scanning.
type VolumeDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	ShipmentID      uuid.UUID `gorm:"type:uuid;index"`
	ParcelCode      string    `gorm:"index:idx_volumes_code_search"`
	Sequence        int
	WeightGrams     int
	Status          int        `gorm:"index:idx_volumes_code_search"`
	AssignedActorID *uuid.UUID `gorm:"type:uuid;index"`
	Recipient       AddressDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	CreatedAt       time.Time
}

// TableName specifies the database table name for volume entities.
func (VolumeDTO) TableName() string {
	return "volumes"
}

// AddressDTO represents the embedded recipient address snapshot within the
// volume table. The snapshot is immutable after materialization.
type AddressDTO struct {
	Name       string
	Phone      string
	Document   string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
}

// shipmentFromDomain converts a shipment aggregate header to its database
// representation. Volumes are persisted separately through volumeFromDomain.
func shipmentFromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	return ShipmentDTO{
		ID:                    aggregate.ID().Bytes(),
		ClientID:              aggregate.ClientID().Bytes(),
		TrackingCode:          aggregate.TrackingCode().String(),
		VolumeCount:           aggregate.VolumeCount(),
		TotalWeightGrams:      aggregate.TotalWeightGrams(),
		TotalPriceCents:       aggregate.TotalPriceCents(),
		PickupPointRef:        aggregate.PickupPointRef(),
		RequestedDeliveryDate: aggregate.RequestedDeliveryDate(),
		PaymentReference:      aggregate.PaymentReference(),
		CreatedAt:             aggregate.CreatedAt(),
	}
}

// shipmentToDomain converts a header DTO plus its volume DTOs back to the
// domain aggregate using RestoreShipment.
func shipmentToDomain(dto ShipmentDTO, volumeDTOs []VolumeDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	trackingCode, err := kernel.TrackingCodeFromString(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	volumes := make([]*shipment.Volume, 0, len(volumeDTOs))
	for _, volumeDTO := range volumeDTOs {
		volume, volumeErr := volumeToDomain(volumeDTO)
		if volumeErr != nil {
			return nil, volumeErr
		}
		volumes = append(volumes, volume)
	}

	return shipment.RestoreShipment(
		id,
		clientID,
		trackingCode,
		dto.VolumeCount,
		dto.TotalWeightGrams,
		dto.TotalPriceCents,
		dto.PickupPointRef,
		dto.RequestedDeliveryDate,
		dto.PaymentReference,
		dto.CreatedAt,
		volumes,
	)
}

// volumeFromDomain converts a volume entity to its database representation.
func volumeFromDomain(volume *shipment.Volume) VolumeDTO {
	var assignedActorID *uuid.UUID
	if actor := volume.AssignedActor(); actor != nil {
		raw := actor.Bytes()
		assignedActorID = &raw
	}

	recipient := volume.Recipient()

	return VolumeDTO{
		ID:              volume.ID().Bytes(),
		ShipmentID:      volume.ShipmentID().Bytes(),
		ParcelCode:      volume.ParcelCode().String(),
		Sequence:        volume.Sequence(),
		WeightGrams:     volume.WeightGrams(),
		Status:          int(volume.Status()),
		AssignedActorID: assignedActorID,
		Recipient: AddressDTO{
			Name:       recipient.Name(),
			Phone:      recipient.Phone(),
			Document:   recipient.Document(),
			Street:     recipient.Street(),
			Number:     recipient.Number(),
			Complement: recipient.Complement(),
			District:   recipient.District(),
			City:       recipient.City(),
			State:      recipient.State(),
			PostalCode: recipient.PostalCode(),
		},
		CreatedAt: volume.CreatedAt(),
	}
}

// volumeToDomain converts a database DTO to a volume entity using
// RestoreVolume, re-checking status and assignment consistency.
func volumeToDomain(dto VolumeDTO) (*shipment.Volume, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	shipmentID, err := kernel.UUIDFromBytes(dto.ShipmentID[:])
	if err != nil {
		return nil, err
	}

	parcelCode, err := kernel.ParcelCodeFromString(dto.ParcelCode)
	if err != nil {
		return nil, err
	}

	var assignedActorID *kernel.UUID
	if dto.AssignedActorID != nil {
		actorID, actorErr := kernel.UUIDFromBytes((*dto.AssignedActorID)[:])
		if actorErr != nil {
			return nil, actorErr
		}
		assignedActorID = &actorID
	}

	recipient, err := shipment.NewAddress(
		dto.Recipient.Name,
		dto.Recipient.Phone,
		dto.Recipient.Document,
		dto.Recipient.Street,
		dto.Recipient.Number,
		dto.Recipient.Complement,
		dto.Recipient.District,
		dto.Recipient.City,
		dto.Recipient.State,
		dto.Recipient.PostalCode,
	)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreVolume(
		id,
		shipmentID,
		parcelCode,
		dto.Sequence,
		dto.WeightGrams,
		recipient,
		shipment.Status(dto.Status),
		assignedActorID,
		dto.CreatedAt,
	)
}
