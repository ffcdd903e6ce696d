// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetShipmentTimelineQueryIsNotConstructed = errors.New(
		"GetShipmentTimelineQuery must be created via NewGetShipmentTimelineQuery constructor",
	)
)

// GetShipmentTimelineQuery retrieves the complete audit timeline for a
// shipment: shipment-level entries plus the entries of every volume,
// ordered chronologically.
//
// Example:
//
//	query, err := NewGetShipmentTimelineQuery(shipmentID)
//	if err != nil {
//	    return err
//	}
//
//	entries, err := handler.Handle(ctx, query)
//	for _, entry := range entries {
//	    fmt.Printf("%s: %s\n", entry.CreatedAt, entry.Description)
//	}
type GetShipmentTimelineQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentTimelineQuery creates a timeline query for the given shipment.
func NewGetShipmentTimelineQuery(shipmentID kernel.UUID) (GetShipmentTimelineQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentTimelineQuery{}, err
	}

	return GetShipmentTimelineQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ShipmentID returns the shipment whose timeline is requested.
func (q GetShipmentTimelineQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentTimelineQueryIsNotConstructed if validation fails.
func (q GetShipmentTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentTimelineQueryIsNotConstructed)
}

// GetShipmentTimelineQueryResponse is one timeline entry in the read model.
// VolumeID is nil for shipment-level entries. Occurrence fields are set
// only for delivery occurrence entries.
type GetShipmentTimelineQueryResponse struct {
	ID               kernel.UUID
	VolumeID         *kernel.UUID
	Status           string
	Description      string
	OccurrenceReason *string
	MediaURL         *string
	ActorID          *kernel.UUID
	CreatedAt        time.Time
}
