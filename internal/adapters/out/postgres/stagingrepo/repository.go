package stagingrepo

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/staging"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStagingRepository implements StagingRepository using GORM.
type GormStagingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormStagingRepository creates a new GORM staging repository.
func NewGormStagingRepository(db *gorm.DB, tracker aggregateTracker) *GormStagingRepository {
	return &GormStagingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new staging record with its volume drafts.
func (r *GormStagingRepository) Add(ctx context.Context, record *staging.StagingRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// Get retrieves a staging record by ID, drafts included.
func (r *GormStagingRepository) Get(ctx context.Context, id kernel.UUID) (*staging.StagingRecord, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StagingRecordDTO
	err := r.db.WithContext(ctx).
		Preload("Drafts", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staging record", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetPendingByPaymentReference retrieves the newest PendingPayment record
// for the payment reference within the expiry horizon. Expired drafts are
// invisible here: a late payment event for an expired draft reports as
// no-matching-draft rather than materializing stale data.
func (r *GormStagingRepository) GetPendingByPaymentReference(
	ctx context.Context,
	paymentReference string,
) (*staging.StagingRecord, error) {
	if paymentReference == "" {
		return nil, errs.NewValueIsRequiredError("paymentReference")
	}

	horizon := time.Now().UTC().Add(-staging.ExpiryHorizon)

	var dto StagingRecordDTO
	err := r.db.WithContext(ctx).
		Preload("Drafts", func(db *gorm.DB) *gorm.DB { return db.Order("sequence") }).
		Where(
			"payment_reference = ? AND lock_state = ? AND created_at > ?",
			paymentReference, staging.PendingPayment.String(), horizon,
		).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("staging record", paymentReference)
		}
		return nil, err
	}

	return toDomain(dto)
}

// TryLock performs the conditioned PendingPayment -> Processing write that
// makes materialization idempotent. Exactly one concurrent caller sees one
// row affected; everyone else gets ErrLockNotAcquired.
func (r *GormStagingRepository) TryLock(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&StagingRecordDTO{}).
		Where("id = ? AND lock_state = ?", id.Bytes(), staging.PendingPayment.String()).
		Updates(map[string]any{
			"lock_state": staging.Processing.String(),
			"locked_at":  time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrLockNotAcquired
	}

	return nil
}

// MarkProcessed moves a locked record to its terminal state.
func (r *GormStagingRepository) MarkProcessed(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&StagingRecordDTO{}).
		Where("id = ? AND lock_state = ?", id.Bytes(), staging.Processing.String()).
		Update("lock_state", staging.Processed.String())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("staging record in processing", id.String())
	}

	return nil
}

// ResetStuck moves Processing records whose lock claim predates the cutoff
// back to PendingPayment and returns their ids. The predicate is on
// locked_at, not created_at: how long the lock has been held is what marks
// a materialization as stalled. Uses a RETURNING clause so the sweep reads
// and writes in one statement.
func (r *GormStagingRepository) ResetStuck(
	ctx context.Context,
	lockedBefore time.Time,
) ([]kernel.UUID, error) {
	var rawIDs []uuid.UUID
	err := r.db.WithContext(ctx).Raw(`
		UPDATE staging_records
		SET lock_state = ?, locked_at = NULL
		WHERE lock_state = ? AND locked_at < ?
		RETURNING id
	`, staging.PendingPayment.String(), staging.Processing.String(), lockedBefore).
		Scan(&rawIDs).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	return ids, nil
}
