package ports

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
)

// AuditRepository is the persistence contract for the append-only transition
// history. There is deliberately no update or delete.
type AuditRepository interface {
	// Append persists one audit entry.
	Append(ctx context.Context, entry *audit.Entry) error

	// GetTimeline retrieves every entry for the shipment (shipment-level
	// and volume-level), ordered by timestamp, ties broken by insertion
	// order.
	GetTimeline(ctx context.Context, shipmentID kernel.UUID) ([]*audit.Entry, error)
}
