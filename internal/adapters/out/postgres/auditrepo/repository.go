package auditrepo

import (
	"context"

	"freight/internal/core/domain/model/audit"
	"freight/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormAuditRepository implements AuditRepository using GORM.
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GORM audit repository.
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Append inserts one audit entry. Entries are immutable once written.
func (r *GormAuditRepository) Append(ctx context.Context, entry *audit.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetTimeline retrieves every entry for the shipment ordered by creation
// time, insertion order breaking ties.
func (r *GormAuditRepository) GetTimeline(
	ctx context.Context,
	shipmentID kernel.UUID,
) ([]*audit.Entry, error) {
	if err := shipmentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []EntryDTO
	err := r.db.WithContext(ctx).
		Where("shipment_id = ?", shipmentID.Bytes()).
		Order("created_at, insertion_order").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*audit.Entry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := toDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
