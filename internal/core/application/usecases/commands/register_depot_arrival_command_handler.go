package commands

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
)

// RegisterDepotArrivalCommandHandler books one volume in at the depot
// (CollectionFinalized -> AtDepot, code-gated) and immediately releases it
// for delivery (AtDepot -> AvailableForDelivery, automatic system
// transition). Both conditioned writes and both audit entries commit in one
// transaction, so a booked-in volume is never left stuck in AtDepot.
type RegisterDepotArrivalCommandHandler struct {
	uowFactory HandoffUoWFactory
	engine     services.TransitionEngine
}

// NewRegisterDepotArrivalCommandHandler creates a handler for depot intake.
func NewRegisterDepotArrivalCommandHandler(uowFactory HandoffUoWFactory) RegisterDepotArrivalCommandHandler {
	return RegisterDepotArrivalCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle processes the arrival. The staff member's entered digits gate the
// AtDepot move; the release to AvailableForDelivery follows automatically
// with a system audit entry (no actor).
func (h RegisterDepotArrivalCommandHandler) Handle(ctx context.Context, cmd RegisterDepotArrivalCommand) error {
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

	atDepot, err := h.engine.Decide(
		volume,
		services.EventRegisterDepotArrival,
		shipment.RoleDepotStaff,
		services.NewVerificationProof(cmd.EnteredDigits()),
	)
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().UpdateVolumeStatus(ctx, volume.ID(), volume.Status(), atDepot); err != nil {
		return err
	}

	staffID := cmd.StaffID()
	volumeID := volume.ID()
	arrival, err := audit.NewEntry(
		kernel.NewUUID(),
		volume.ShipmentID(),
		&volumeID,
		atDepot,
		"depot arrival registered after code verification",
		&staffID,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, arrival); err != nil {
		return err
	}

	// Automatic release: re-run the engine against the state just written.
	if err = volume.AdvanceTo(atDepot); err != nil {
		return err
	}

	available, err := h.engine.Decide(volume, services.EventReleaseForDelivery, shipment.RoleSystem, services.NoProof())
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().UpdateVolumeStatus(ctx, volume.ID(), atDepot, available); err != nil {
		return err
	}

	release, err := audit.NewEntry(
		kernel.NewUUID(),
		volume.ShipmentID(),
		&volumeID,
		available,
		"released for delivery",
		nil,
	)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, release); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
