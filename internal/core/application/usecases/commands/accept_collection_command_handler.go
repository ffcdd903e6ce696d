package commands

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
)

// AcceptCollectionCommandHandler moves one volume from
// AwaitingCollectionAccept to CollectionAccepted after the driver's entered
// digits pass the code verification gate.
//
// The write is conditioned on the state that was read: if another actor
// moved the volume between read and write the repository reports a status
// conflict and nothing is persisted.
type AcceptCollectionCommandHandler struct {
	uowFactory HandoffUoWFactory
	engine     services.TransitionEngine
}

// NewAcceptCollectionCommandHandler creates a handler for volume acceptance
// at collection.
func NewAcceptCollectionCommandHandler(uowFactory HandoffUoWFactory) AcceptCollectionCommandHandler {
	return AcceptCollectionCommandHandler{
		uowFactory: uowFactory,
		engine:     services.NewTransitionEngine(),
	}
}

// Handle processes the acceptance: read the volume, ask the transition
// engine for a decision, execute the conditioned write plus the audit append
// in one transaction.
func (h AcceptCollectionCommandHandler) Handle(ctx context.Context, cmd AcceptCollectionCommand) error {
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

	next, err := h.engine.Decide(
		volume,
		services.EventAcceptCollection,
		shipment.RoleCollectionDriver,
		services.NewVerificationProof(cmd.EnteredDigits()),
	)
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
		"collection accepted after code verification",
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
