package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/staging"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ConfirmPaymentOutcome classifies what a payment-confirmed event did.
type ConfirmPaymentOutcome int

const (
	// OutcomeUnknown represents an invalid or undefined outcome.
	OutcomeUnknown ConfirmPaymentOutcome = iota

	// OutcomeMaterialized means this invocation won the staging lock and
	// created the shipment and its volumes.
	OutcomeMaterialized

	// OutcomeAlreadyProcessed means another invocation (a duplicate webhook
	// delivery) claimed the staging record first. No side effects.
	OutcomeAlreadyProcessed

	// OutcomeNoMatchingDraft means no pending draft matched the reference
	// within the expiry horizon. Logged, not fatal: the event may be a
	// duplicate of one already fully processed, or malformed.
	OutcomeNoMatchingDraft
)

// ConfirmPaymentResult reports the outcome of one payment-confirmed event.
// VolumesFailed counts volumes whose creation failed during a materializing
// invocation; partial materialization still marks the draft Processed and is
// handled by manual reconciliation, never by automatic retry.
type ConfirmPaymentResult struct {
	Outcome        ConfirmPaymentOutcome
	ShipmentID     kernel.UUID
	VolumesCreated int
	VolumesFailed  int
}

// ConfirmPaymentCommandHandler is the payment confirmation processor: it
// turns a paid order's staging record into a shipment with one trackable
// volume per declared draft.
//
// Idempotency rests on a single mechanism: the conditioned
// PendingPayment -> Processing write on the staging record. Exactly one
// invocation wins that write and materializes; every other invocation for
// the same reference is a cheap no-op.
//
// Volume creation deliberately favors partial success: each volume is
// written in its own transaction, a failed volume is logged and skipped, and
// the draft is marked Processed regardless, so a paid order ends with as
// many trackable volumes as could be created rather than zero.
type ConfirmPaymentCommandHandler struct {
	uowFactory    UoWFactory
	codeGenerator ports.CodeGenerator
	logger        *slog.Logger
}

// NewConfirmPaymentCommandHandler creates the payment confirmation processor.
func NewConfirmPaymentCommandHandler(
	uowFactory UoWFactory,
	codeGenerator ports.CodeGenerator,
	logger *slog.Logger,
) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory:    uowFactory,
		codeGenerator: codeGenerator,
		logger:        logger.With("component", "payment_confirmation"),
	}
}

// Handle processes one payment-confirmed event.
//
// Steps: find the pending draft within the expiry horizon, claim the
// materialization lock with a conditioned write, create the shipment header,
// create one volume per draft (own transaction each, failures logged and
// skipped), mark the draft Processed, and append one shipment-level summary
// entry. Safe to invoke arbitrarily many times for the same reference.
//
// A record can return to PendingPayment with its shipment header already
// committed: a crash after the header transaction followed by the stuck
// sweep. Re-triggering the confirmation then resumes from the existing
// shipment instead of failing on the payment-reference unique index.
func (h ConfirmPaymentCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmPaymentCommand,
) (ConfirmPaymentResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConfirmPaymentResult{}, err
	}

	record, shipmentID, materialized, err := h.lockAndCreateShipment(ctx, cmd.PaymentReference())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.InfoContext(ctx, "no matching draft for payment event",
				"payment_reference", cmd.PaymentReference())
			return ConfirmPaymentResult{Outcome: OutcomeNoMatchingDraft}, nil
		}
		if errors.Is(err, ports.ErrLockNotAcquired) {
			h.logger.InfoContext(ctx, "duplicate payment event ignored",
				"payment_reference", cmd.PaymentReference())
			return ConfirmPaymentResult{Outcome: OutcomeAlreadyProcessed}, nil
		}
		return ConfirmPaymentResult{}, err
	}

	created, failed := h.createVolumes(ctx, record, shipmentID, materialized)

	if err = h.finishMaterialization(ctx, record, shipmentID, created, failed); err != nil {
		return ConfirmPaymentResult{}, err
	}

	h.logger.InfoContext(ctx, "shipment materialized",
		"payment_reference", record.PaymentReference(),
		"shipment_id", shipmentID.String(),
		"volumes_created", created,
		"volumes_failed", failed)

	return ConfirmPaymentResult{
		Outcome:        OutcomeMaterialized,
		ShipmentID:     shipmentID,
		VolumesCreated: created,
		VolumesFailed:  failed,
	}, nil
}

// lockAndCreateShipment claims the staging lock and creates the shipment
// header in one transaction, so a lost lock race leaves no trace at all.
// When a header already exists for the reference it is an interrupted
// earlier materialization: the existing shipment is reused and its volume
// sequences are reported so creation resumes where it stopped.
func (h ConfirmPaymentCommandHandler) lockAndCreateShipment(
	ctx context.Context,
	paymentReference string,
) (*staging.StagingRecord, kernel.UUID, map[int]bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, kernel.UUID{}, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	record, err := uow.StagingRepository().GetPendingByPaymentReference(ctx, paymentReference)
	if err != nil {
		return nil, kernel.UUID{}, nil, err
	}

	if err = uow.StagingRepository().TryLock(ctx, record.ID()); err != nil {
		return nil, kernel.UUID{}, nil, err
	}

	existing, err := uow.ShipmentRepository().GetByPaymentReference(ctx, paymentReference)
	if err == nil {
		materialized := make(map[int]bool, len(existing.Volumes()))
		for _, volume := range existing.Volumes() {
			materialized[volume.Sequence()] = true
		}
		if err = uow.Commit(ctx); err != nil {
			return nil, kernel.UUID{}, nil, err
		}
		h.logger.WarnContext(ctx, "resuming interrupted materialization",
			"payment_reference", paymentReference,
			"shipment_id", existing.ID().String(),
			"volumes_present", len(materialized))
		return record, existing.ID(), materialized, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, kernel.UUID{}, nil, err
	}

	shipmentID := kernel.NewUUID()
	aggregate, err := shipment.NewShipment(
		shipmentID,
		record.ClientID(),
		record.VolumeCount(),
		record.TotalWeightGrams(),
		record.QuotedPriceCents(),
		record.PickupPointRef(),
		record.RequestedDeliveryDate(),
		record.PaymentReference(),
	)
	if err != nil {
		return nil, kernel.UUID{}, nil, err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return nil, kernel.UUID{}, nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, kernel.UUID{}, nil, err
	}

	return record, shipmentID, nil, nil
}

// createVolumes creates one volume per draft, each in its own transaction.
// Failures are logged per volume and do not roll back siblings already
// created. Sequences in materialized survive from an interrupted earlier
// run and count as created without a new write.
func (h ConfirmPaymentCommandHandler) createVolumes(
	ctx context.Context,
	record *staging.StagingRecord,
	shipmentID kernel.UUID,
	materialized map[int]bool,
) (created, failed int) {
	for i, draft := range record.Drafts() {
		sequence := i + 1
		if materialized[sequence] {
			created++
			continue
		}
		if err := h.createVolume(ctx, shipmentID, sequence, draft); err != nil {
			failed++
			h.logger.WarnContext(ctx, "volume creation failed, continuing with siblings",
				"shipment_id", shipmentID.String(),
				"sequence", sequence,
				"error", err)
			continue
		}
		created++
	}
	return created, failed
}

func (h ConfirmPaymentCommandHandler) createVolume(
	ctx context.Context,
	shipmentID kernel.UUID,
	sequence int,
	draft staging.VolumeDraft,
) error {
	code, err := h.codeGenerator.NextParcelCode(ctx)
	if err != nil {
		return fmt.Errorf("parcel code generation: %w", err)
	}

	volumeID := kernel.NewUUID()
	volume, err := shipment.NewVolume(volumeID, shipmentID, code, sequence, draft.WeightGrams, draft.Recipient)
	if err != nil {
		return err
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		shipmentID,
		&volumeID,
		shipment.AwaitingCollectionAccept,
		"volume created after payment confirmation",
		nil,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().AddVolume(ctx, volume); err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// finishMaterialization marks the draft Processed and appends the
// shipment-level summary entry. The draft is marked Processed even after
// partial volume failure: retries of the same payment event must never
// re-materialize.
func (h ConfirmPaymentCommandHandler) finishMaterialization(
	ctx context.Context,
	record *staging.StagingRecord,
	shipmentID kernel.UUID,
	created, failed int,
) error {
	summary := fmt.Sprintf("shipment materialized from payment confirmation: %d of %d volumes created",
		created, record.VolumeCount())
	if failed > 0 {
		summary += fmt.Sprintf(" (%d failed, manual reconciliation required)", failed)
	}

	entry, err := audit.NewEntry(
		kernel.NewUUID(),
		shipmentID,
		nil,
		shipment.AwaitingCollectionAccept,
		summary,
		nil,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.StagingRepository().MarkProcessed(ctx, record.ID()); err != nil {
		return err
	}
	if err = uow.AuditRepository().Append(ctx, entry); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
