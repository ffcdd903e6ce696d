package commands

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
)

// ClaimVolumeCommandHandler executes the exclusive delivery claim. The
// repository write sets the claimed status and the assigned actor in one
// conditioned update keyed on "still available and unassigned"; a lost race
// surfaces as ports.ErrClaimConflict with no partial effect.
type ClaimVolumeCommandHandler struct {
	uowFactory HandoffUoWFactory
	engine     services.TransitionEngine
}

// NewClaimVolumeCommandHandler creates a handler for exclusive claims.
func NewClaimVolumeCommandHandler(uowFactory HandoffUoWFactory) ClaimVolumeCommandHandler {
	return ClaimVolumeCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle processes the claim: engine decision first (role and predecessor
// state), then the atomic claim write, then the audit append.
func (h ClaimVolumeCommandHandler) Handle(ctx context.Context, cmd ClaimVolumeCommand) error {
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

	next, err := h.engine.Decide(volume, services.EventClaimDelivery, shipment.RoleDeliveryDriver, services.NoProof())
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().ClaimVolume(ctx, volume.ID(), cmd.DriverID()); err != nil {
		return err
	}

	driverID := cmd.DriverID()
	volumeID := volume.ID()
	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		volume.ShipmentID(),
		&volumeID,
		next,
		"volume claimed for delivery",
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
