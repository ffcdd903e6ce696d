package shipmentrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// pqUniqueViolation is the Postgres error class for unique constraint hits.
const pqUniqueViolation = "23505"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment header to the database. A unique violation on
// the payment reference means another materialization got there first and
// is reported as a value-is-invalid error rather than a raw driver error.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := shipmentFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("shipment", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// AddVolume saves one new volume to the database.
func (r *GormShipmentRepository) AddVolume(ctx context.Context, volume *shipment.Volume) error {
	if err := volume.Validate(); err != nil {
		return err
	}

	dto := volumeFromDomain(volume)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("volume", err)
		}
		return err
	}

	return nil
}

// Get retrieves a shipment with all its volumes ordered by sequence.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", id.String())
		}
		return nil, err
	}

	return r.loadAggregate(ctx, dto)
}

// GetByPaymentReference retrieves the shipment materialized for a payment
// reference.
func (r *GormShipmentRepository) GetByPaymentReference(
	ctx context.Context,
	paymentReference string,
) (*shipment.Shipment, error) {
	if paymentReference == "" {
		return nil, errs.NewValueIsRequiredError("paymentReference")
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).First(&dto, "payment_reference = ?", paymentReference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", paymentReference)
		}
		return nil, err
	}

	return r.loadAggregate(ctx, dto)
}

// GetVolume retrieves a single volume by ID.
func (r *GormShipmentRepository) GetVolume(ctx context.Context, id kernel.UUID) (*shipment.Volume, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto VolumeDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("volume", id.String())
		}
		return nil, err
	}

	return volumeToDomain(dto)
}

// UpdateVolumeStatus performs the conditioned status move. The precondition
// on the current status is part of the WHERE clause, so a concurrent move
// makes this write affect zero rows instead of overwriting it.
func (r *GormShipmentRepository) UpdateVolumeStatus(
	ctx context.Context,
	id kernel.UUID,
	from, to shipment.Status,
) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&VolumeDTO{}).
		Where("id = ? AND status = ?", id.Bytes(), int(from)).
		Update("status", int(to))
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrStatusConflict
	}

	return nil
}

// ClaimVolume performs the exclusive claim: status move plus actor
// assignment in one conditioned write. The assigned_actor_id IS NULL
// predicate is what makes the claim exclusive under concurrency.
func (r *GormShipmentRepository) ClaimVolume(
	ctx context.Context,
	id kernel.UUID,
	driverID kernel.UUID,
) error {
	if err := errors.Join(id.Validate(), driverID.Validate()); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&VolumeDTO{}).
		Where(
			"id = ? AND status = ? AND assigned_actor_id IS NULL",
			id.Bytes(), int(shipment.AvailableForDelivery),
		).
		Updates(map[string]any{
			"status":            int(shipment.DeliveryClaimed),
			"assigned_actor_id": driverID.Bytes(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrClaimConflict
	}

	return nil
}

// SearchAvailable finds unclaimed available volumes carrying the given
// 4-digit code.
func (r *GormShipmentRepository) SearchAvailable(
	ctx context.Context,
	digits string,
) ([]*shipment.Volume, error) {
	var dtos []VolumeDTO
	err := r.db.WithContext(ctx).
		Where(
			"parcel_code = ? AND status = ? AND assigned_actor_id IS NULL",
			kernel.ParcelCodePrefix+digits, int(shipment.AvailableForDelivery),
		).
		Order("sequence").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	volumes := make([]*shipment.Volume, 0, len(dtos))
	for _, dto := range dtos {
		volume, volumeErr := volumeToDomain(dto)
		if volumeErr != nil {
			return nil, volumeErr
		}
		volumes = append(volumes, volume)
	}

	return volumes, nil
}

func (r *GormShipmentRepository) loadAggregate(
	ctx context.Context,
	dto ShipmentDTO,
) (*shipment.Shipment, error) {
	var volumeDTOs []VolumeDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", dto.ID).
		Order("sequence").
		Find(&volumeDTOs).Error
	if err != nil {
		return nil, err
	}

	return shipmentToDomain(dto, volumeDTOs)
}

// isUniqueViolation reports whether the error is a Postgres unique
// constraint violation, either as a raw driver error or as GORM's
// translated form.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
