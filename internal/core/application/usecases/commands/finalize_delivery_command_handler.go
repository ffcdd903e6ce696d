package commands

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
)

// FinalizeDeliveryCommandHandler moves a volume to the terminal Delivered
// status. Reserved for the driver currently holding the claim.
type FinalizeDeliveryCommandHandler struct {
	uowFactory HandoffUoWFactory
	engine     services.TransitionEngine
}

// NewFinalizeDeliveryCommandHandler creates a handler for delivery completion.
func NewFinalizeDeliveryCommandHandler(uowFactory HandoffUoWFactory) FinalizeDeliveryCommandHandler {
	return FinalizeDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle processes the completion.
func (h FinalizeDeliveryCommandHandler) Handle(ctx context.Context, cmd FinalizeDeliveryCommand) error {
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

	volume, err := uow.ShipmentRepository().GetVolume(ctx, cmd.VolumeID())
	if err != nil {
		return err
	}

	if err = volume.EnsureAssignedTo(cmd.DriverID()); err != nil {
		return err
	}

	next, err := h.engine.Decide(volume, services.EventFinalizeDelivery, shipment.RoleDeliveryDriver, services.NoProof())
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().UpdateVolumeStatus(ctx, volume.ID(), volume.Status(), next); err != nil {
		return err
	}

	driverID := cmd.DriverID()
	volumeID := volume.ID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		volume.ShipmentID(),
		&volumeID,
		next,
		"delivered to recipient",
		&driverID,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
