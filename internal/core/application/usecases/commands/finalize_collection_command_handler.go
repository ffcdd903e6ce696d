package commands

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
)

// FinalizeCollectionCommandHandler applies the whole-shipment collection
// gate: when every volume has passed its own verification, all of them move
// to CollectionFinalized together in one transaction.
//
// Each volume's write is still conditioned on CollectionAccepted, so a
// concurrent move of any sibling aborts the whole finalization instead of
// leaving the shipment half-finalized.
type FinalizeCollectionCommandHandler struct {
	uowFactory HandoffUoWFactory
	engine     services.TransitionEngine
}

// NewFinalizeCollectionCommandHandler creates a handler for collection
// finalization.
func NewFinalizeCollectionCommandHandler(uowFactory HandoffUoWFactory) FinalizeCollectionCommandHandler {
	return FinalizeCollectionCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle processes the finalization. Rejects with
// services.ErrCollectionGateNotSatisfied naming the unverified sequence
// numbers when any sibling volume has not passed verification yet.
func (h FinalizeCollectionCommandHandler) Handle(ctx context.Context, cmd FinalizeCollectionCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	next, err := h.engine.DecideFinalizeCollection(aggregate, shipment.RoleCollectionDriver)
	if err != nil {
		return err
	}

	driverID := cmd.DriverID()
	for _, volume := range aggregate.Volumes() {
		if err = uow.ShipmentRepository().UpdateVolumeStatus(ctx, volume.ID(), volume.Status(), next); err != nil {
			return err
		}

		volumeID := volume.ID()
		entry, entryErr := audit.NewEntry(
			kernel.NewUUID(),
			aggregate.ID(),
			&volumeID,
			next,
			"collection finalized",
			&driverID,
		)
		if entryErr != nil {
			return entryErr
		}
		if err = uow.AuditRepository().Append(ctx, entry); err != nil {
			return err
		}
	}

	summary, err := audit.NewEntry(
		kernel.NewUUID(),
		aggregate.ID(),
		nil,
		next,
		"collection finalized for all volumes",
		&driverID,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, summary); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
