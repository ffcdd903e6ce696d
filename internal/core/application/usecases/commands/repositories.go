// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"freight/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides access to the shipment repository within a transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// StagingRepoFactory provides access to the staging repository within a transaction.
	StagingRepoFactory interface {
		StagingRepository() ports.StagingRepository
	}

	// AuditRepoFactory provides access to the audit repository within a transaction.
	AuditRepoFactory interface {
		AuditRepository() ports.AuditRepository
	}

	// HandoffUoW manages transactions for handoff operations: one conditioned
	// status write plus its audit append always commit together.
	HandoffUoW interface {
		TxManager
		ShipmentRepoFactory
		AuditRepoFactory
	}

	// HandoffUoWFactory creates new handoff unit of work instances.
	HandoffUoWFactory interface {
		Create() HandoffUoW
	}

	// StagingUoW manages transactions for staging-only operations.
	StagingUoW interface {
		TxManager
		StagingRepoFactory
	}

	// StagingUoWFactory creates new staging unit of work instances.
	StagingUoWFactory interface {
		Create() StagingUoW
	}

	// UoW manages transactions across staging, shipment and audit storage.
	// Used by payment confirmation, which coordinates all three.
	UoW interface {
		TxManager
		StagingRepoFactory
		ShipmentRepoFactory
		AuditRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
