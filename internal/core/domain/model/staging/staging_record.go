// Package staging contains the pre-payment draft order and its
// materialization lock. A staging record is created when a quote is
// accepted, sits in PendingPayment until the gateway confirms payment, is
// claimed by exactly one payment-confirmation invocation and then marked
// Processed. Records past the expiry horizon are invisible to the
// processor, which bounds the lookup window for stale drafts.
package staging

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
)

// ExpiryHorizon is how long a draft stays visible to the payment
// confirmation processor. Older drafts are ignored, never deleted.
const ExpiryHorizon = 72 * time.Hour

var (
	// ErrStagingRecordIsNotConstructed is returned when a StagingRecord was
	// not created through NewStagingRecord or RestoreStagingRecord.
	ErrStagingRecordIsNotConstructed = errors.New(
		"StagingRecord must be created via NewStagingRecord or RestoreStagingRecord constructor")

	// ErrNoVolumeDrafts is returned when a draft declares no volumes.
	ErrNoVolumeDrafts = errors.New("staging record must declare at least one volume")
)

// VolumeDraft is the declared shape of one future volume: its weight and the
// recipient address snapshot captured at staging time. The snapshot is copied
// onto the volume at materialization and never re-fetched.
type VolumeDraft struct {
	WeightGrams int
	Recipient   shipment.Address
}

// Validate checks the draft's weight and address snapshot.
func (d VolumeDraft) Validate() error {
	if d.WeightGrams <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"draft weight", fmt.Errorf("%d is not greater than 0", d.WeightGrams))
	}
	return d.Recipient.Validate()
}

// StagingRecord is the pre-payment draft of a B2B order. It owns the
// three-state materialization lock; all lock moves happen at the store as
// conditioned writes, the domain object only models the legal states.
type StagingRecord struct {
	id kernel.UUID

	// clientID is the B2B client that accepted the quote.
	clientID kernel.UUID

	// paymentReference is the external gateway reference, unique per draft.
	paymentReference string

	senderName     string
	senderDocument string

	drafts []VolumeDraft

	quotedPriceCents int64

	pickupPointRef        string
	requestedDeliveryDate time.Time

	lockState LockState
	createdAt time.Time

	isConstructed bool
}

// NewStagingRecord creates a draft in PendingPayment.
// Called when a quote is accepted, before any payment exists.
func NewStagingRecord(
	id kernel.UUID,
	clientID kernel.UUID,
	paymentReference string,
	senderName string,
	senderDocument string,
	drafts []VolumeDraft,
	quotedPriceCents int64,
	pickupPointRef string,
	requestedDeliveryDate time.Time,
) (*StagingRecord, error) {
	r := &StagingRecord{
		senderDocument: senderDocument,
		lockState:      PendingPayment,
		createdAt:      time.Now().UTC(),
		isConstructed:  true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setClientID(clientID),
		r.setPaymentReference(paymentReference),
		r.setSenderName(senderName),
		r.setDrafts(drafts),
		r.setQuotedPriceCents(quotedPriceCents),
		r.setPickupPointRef(pickupPointRef),
		r.setRequestedDeliveryDate(requestedDeliveryDate),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreStagingRecord reconstructs a draft from persistence.
func RestoreStagingRecord(
	id kernel.UUID,
	clientID kernel.UUID,
	paymentReference string,
	senderName string,
	senderDocument string,
	drafts []VolumeDraft,
	quotedPriceCents int64,
	pickupPointRef string,
	requestedDeliveryDate time.Time,
	lockState LockState,
	createdAt time.Time,
) (*StagingRecord, error) {
	r, err := NewStagingRecord(id, clientID, paymentReference, senderName, senderDocument,
		drafts, quotedPriceCents, pickupPointRef, requestedDeliveryDate)
	if err != nil {
		return nil, err
	}

	if err = lockState.Validate(); err != nil {
		return nil, err
	}
	r.lockState = lockState
	r.createdAt = createdAt
	return r, nil
}

// Validate ensures the record was created through a constructor.
func (r *StagingRecord) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStagingRecordIsNotConstructed
	}
	return nil
}

// ID returns the record's unique identifier.
func (r *StagingRecord) ID() kernel.UUID { return r.id }

// ClientID returns the B2B client that accepted the quote.
func (r *StagingRecord) ClientID() kernel.UUID { return r.clientID }

// PaymentReference returns the external payment reference.
func (r *StagingRecord) PaymentReference() string { return r.paymentReference }

// SenderName returns the sender's name.
func (r *StagingRecord) SenderName() string { return r.senderName }

// SenderDocument returns the sender's identity document, possibly empty.
func (r *StagingRecord) SenderDocument() string { return r.senderDocument }

// Drafts returns the declared volume drafts, one per future volume.
func (r *StagingRecord) Drafts() []VolumeDraft { return r.drafts }

// VolumeCount returns the number of declared volumes.
func (r *StagingRecord) VolumeCount() int { return len(r.drafts) }

// TotalWeightGrams sums the declared weights of all drafts.
func (r *StagingRecord) TotalWeightGrams() int {
	total := 0
	for _, d := range r.drafts {
		total += d.WeightGrams
	}
	return total
}

// QuotedPriceCents returns the quoted price of the order.
func (r *StagingRecord) QuotedPriceCents() int64 { return r.quotedPriceCents }

// PickupPointRef returns the pickup point reference.
func (r *StagingRecord) PickupPointRef() string { return r.pickupPointRef }

// RequestedDeliveryDate returns the delivery date requested at quoting time.
func (r *StagingRecord) RequestedDeliveryDate() time.Time { return r.requestedDeliveryDate }

// LockState returns the current materialization lock state.
func (r *StagingRecord) LockState() LockState { return r.lockState }

// CreatedAt returns the creation timestamp.
func (r *StagingRecord) CreatedAt() time.Time { return r.createdAt }

// IsExpired reports whether the draft fell out of the processor's lookup
// window at the given instant.
func (r *StagingRecord) IsExpired(now time.Time) bool {
	return now.Sub(r.createdAt) > ExpiryHorizon
}

func (r *StagingRecord) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *StagingRecord) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.clientID = id
	return nil
}

func (r *StagingRecord) setPaymentReference(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	r.paymentReference = ref
	return nil
}

func (r *StagingRecord) setSenderName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("sender name")
	}
	r.senderName = name
	return nil
}

func (r *StagingRecord) setDrafts(drafts []VolumeDraft) error {
	if len(drafts) == 0 {
		return ErrNoVolumeDrafts
	}
	for i, d := range drafts {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("draft %d: %w", i+1, err)
		}
	}
	r.drafts = drafts
	return nil
}

func (r *StagingRecord) setQuotedPriceCents(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quoted price", fmt.Errorf("%d is negative", price))
	}
	r.quotedPriceCents = price
	return nil
}

func (r *StagingRecord) setPickupPointRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("pickup point reference")
	}
	r.pickupPointRef = ref
	return nil
}

func (r *StagingRecord) setRequestedDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("requested delivery date")
	}
	r.requestedDeliveryDate = date
	return nil
}
