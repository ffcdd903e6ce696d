package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
)

// GetShipmentQuery retrieves one shipment header with all of its volumes.
// Backs tracking screens for clients and operational tooling.
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for the given shipment.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ShipmentID returns the requested shipment.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentQueryIsNotConstructed if validation fails.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// GetShipmentQueryResponse is the shipment read model with its volumes.
type GetShipmentQueryResponse struct {
	ID                    kernel.UUID
	ClientID              kernel.UUID
	TrackingCode          string
	VolumeCount           int
	TotalWeightGrams      int
	TotalPriceCents       int64
	PickupPointRef        string
	RequestedDeliveryDate time.Time
	PaymentReference      string
	CreatedAt             time.Time
	Volumes               []GetShipmentQueryVolumeResponse
}

// GetShipmentQueryVolumeResponse is one volume within the shipment read model.
type GetShipmentQueryVolumeResponse struct {
	ID              kernel.UUID
	ParcelCode      string
	Sequence        int
	WeightGrams     int
	Status          string
	AssignedActorID *kernel.UUID
	RecipientName   string
	RecipientCity   string
	RecipientState  string
}
