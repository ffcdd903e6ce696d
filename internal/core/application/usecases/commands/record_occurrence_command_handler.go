package commands

import (
	"context"
	"errors"
	"fmt"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ErrOccurrenceNotAllowedInStatus is returned when the volume's current
// status does not admit occurrences from the reporting role.
var ErrOccurrenceNotAllowedInStatus = errors.New("occurrence is not allowed in the volume's current status")

// RecordOccurrenceCommandHandler appends an occurrence entry to the audit
// log. It is the one handoff operation with no status write at all: the
// volume keeps its state and its assigned actor so the attempt can be
// retried.
type RecordOccurrenceCommandHandler struct {
	uowFactory HandoffUoWFactory
}

// NewRecordOccurrenceCommandHandler creates a handler for occurrence
// recording.
func NewRecordOccurrenceCommandHandler(uowFactory HandoffUoWFactory) RecordOccurrenceCommandHandler {
	return RecordOccurrenceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle records the occurrence. Delivery drivers may only report against
// volumes they currently hold the claim on; collection drivers report
// against volumes still in the collection phase.
func (h RecordOccurrenceCommandHandler) Handle(ctx context.Context, cmd RecordOccurrenceCommand) error {
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

	if cmd.Role() == shipment.RoleDeliveryDriver {
		if err = volume.EnsureAssignedTo(cmd.ActorID()); err != nil {
			return err
		}
	}

	if !volume.Status().AllowsOccurrenceBy(cmd.Role()) {
		return fmt.Errorf("%w: %s by %s", ErrOccurrenceNotAllowedInStatus, volume.Status(), cmd.Role())
	}

	description := cmd.Description()
	if description == "" {
		description = fmt.Sprintf("occurrence recorded: %s", cmd.Reason())
	}

	entry, err := audit.NewOccurrenceEntry(
		kernel.NewUUID(),
		volume.ShipmentID(),
		volume.ID(),
		volume.Status(),
		description,
		audit.OccurrencePayload{Reason: cmd.Reason(), MediaURL: cmd.MediaURL()},
		cmd.ActorID(),
	)
	if err != nil {
		return err
	}

	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
