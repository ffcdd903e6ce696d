// Package stagingrepo provides data transfer objects and mapping functions
// for staging record persistence. Staging records hold pre-payment shipment
// drafts and the three-state materialization lock.
package stagingrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/model/staging"

	"github.com/google/uuid"
)

// StagingRecordDTO represents the database structure for persisting staging
// records. The payment reference is indexed together with the lock state
// because lookup always filters on both.
type StagingRecordDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClientID              uuid.UUID `gorm:"type:uuid;index"`
	PaymentReference      string    `gorm:"index:idx_staging_payment_lookup"`
	SenderName            string
	SenderDocument        string
	QuotedPriceCents      int64
	PickupPointRef        string
	RequestedDeliveryDate time.Time
	LockState             string `gorm:"index:idx_staging_payment_lookup"`
	// LockedAt is stamped when the materialization lock is claimed. The
	// stuck-record sweep measures from here, never from CreatedAt: a record
	// can sit in PendingPayment for days before its payment arrives.
	LockedAt  *time.Time
	CreatedAt time.Time

	Drafts []VolumeDraftDTO `gorm:"foreignKey:StagingRecordID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for staging records.
func (StagingRecordDTO) TableName() string {
	return "staging_records"
}

// VolumeDraftDTO represents one declared future volume within a staging
// record: the weight and the recipient address snapshot.
type VolumeDraftDTO struct {
	ID              int64     `gorm:"primaryKey;autoIncrement"`
	StagingRecordID uuid.UUID `gorm:"type:uuid;index"`
	Sequence        int
	WeightGrams     int
	Recipient       AddressDTO `gorm:"embedded;embeddedPrefix:recipient_"`
}

// TableName specifies the database table name for volume drafts.
func (VolumeDraftDTO) TableName() string {
	return "staging_volume_drafts"
}

// AddressDTO represents the embedded recipient address snapshot within the
// draft table.
type AddressDTO struct {
	Name       string
	Phone      string
	Document   string
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	PostalCode string
}

// fromDomain converts a staging record to its database representation.
func fromDomain(record *staging.StagingRecord) StagingRecordDTO {
	drafts := make([]VolumeDraftDTO, 0, len(record.Drafts()))
	for i, draft := range record.Drafts() {
		recipient := draft.Recipient
		drafts = append(drafts, VolumeDraftDTO{
			StagingRecordID: record.ID().Bytes(),
			Sequence:        i + 1,
			WeightGrams:     draft.WeightGrams,
			Recipient: AddressDTO{
				Name:       recipient.Name(),
				Phone:      recipient.Phone(),
				Document:   recipient.Document(),
				Street:     recipient.Street(),
				Number:     recipient.Number(),
				Complement: recipient.Complement(),
				District:   recipient.District(),
				City:       recipient.City(),
				State:      recipient.State(),
				PostalCode: recipient.PostalCode(),
			},
		})
	}

	return StagingRecordDTO{
		ID:                    record.ID().Bytes(),
		ClientID:              record.ClientID().Bytes(),
		PaymentReference:      record.PaymentReference(),
		SenderName:            record.SenderName(),
		SenderDocument:        record.SenderDocument(),
		QuotedPriceCents:      record.QuotedPriceCents(),
		PickupPointRef:        record.PickupPointRef(),
		RequestedDeliveryDate: record.RequestedDeliveryDate(),
		LockState:             record.LockState().String(),
		CreatedAt:             record.CreatedAt(),
		Drafts:                drafts,
	}
}

// toDomain converts a database DTO to a staging record using
// RestoreStagingRecord.
func toDomain(dto StagingRecordDTO) (*staging.StagingRecord, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	lockState, err := staging.LockStateFromString(dto.LockState)
	if err != nil {
		return nil, err
	}

	drafts := make([]staging.VolumeDraft, 0, len(dto.Drafts))
	for _, draftDTO := range dto.Drafts {
		recipient, addrErr := shipment.NewAddress(
			draftDTO.Recipient.Name,
			draftDTO.Recipient.Phone,
			draftDTO.Recipient.Document,
			draftDTO.Recipient.Street,
			draftDTO.Recipient.Number,
			draftDTO.Recipient.Complement,
			draftDTO.Recipient.District,
			draftDTO.Recipient.City,
			draftDTO.Recipient.State,
			draftDTO.Recipient.PostalCode,
		)
		if addrErr != nil {
			return nil, addrErr
		}
		drafts = append(drafts, staging.VolumeDraft{
			WeightGrams: draftDTO.WeightGrams,
			Recipient:   recipient,
		})
	}

	return staging.RestoreStagingRecord(
		id,
		clientID,
		dto.PaymentReference,
		dto.SenderName,
		dto.SenderDocument,
		drafts,
		dto.QuotedPriceCents,
		dto.PickupPointRef,
		dto.RequestedDeliveryDate,
		lockState,
		dto.CreatedAt,
	)
}
