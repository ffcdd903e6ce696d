package commands

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
)

// AcceptDeliveryCommandHandler moves a claimed volume to DeliveryAccepted.
// Reserved for the driver currently holding the claim.
type AcceptDeliveryCommandHandler struct {
	uowFactory HandoffUoWFactory
	engine     services.TransitionEngine
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery acceptance.
func NewAcceptDeliveryCommandHandler(uowFactory HandoffUoWFactory) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle processes the acceptance. Rejects with
// shipment.ErrVolumeNotAssignedToActor when the caller does not hold the
// claim.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
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

	next, err := h.engine.Decide(volume, services.EventAcceptDelivery, shipment.RoleDeliveryDriver, services.NoProof())
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
		"delivery accepted by assigned driver",
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
