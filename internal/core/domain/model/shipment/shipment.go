package shipment

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

var (
	// ErrShipmentIsNotConstructed is returned when a Shipment instance was
	// not created through NewShipment or RestoreShipment.
	ErrShipmentIsNotConstructed = errors.New(
		"Shipment must be created via NewShipment or RestoreShipment constructor")

	// ErrVolumeBelongsToOtherShipment is returned when a volume attached to
	// the aggregate references a different shipment id.
	ErrVolumeBelongsToOtherShipment = errors.New("volume belongs to another shipment")
)

// Shipment is the aggregate header for a paid B2B order: totals, pickup
// point, requested delivery date and the payment reference that produced it.
// It is created exactly once per paid order by the payment confirmation
// processor and never re-created; afterwards only aggregate summary fields
// may be recomputed. Per-volume custody state lives on Volume, not here.
type Shipment struct {
	id           kernel.UUID
	clientID     kernel.UUID
	trackingCode kernel.TrackingCode

	// volumeCount is the number of declared volumes. Once materialization
	// completes it equals the number of child volume records.
	volumeCount int

	totalWeightGrams int
	totalPriceCents  int64

	// pickupPointRef identifies where the collection driver picks the
	// shipment up. Owned by the quoting subsystem, referenced here only.
	pickupPointRef string

	requestedDeliveryDate time.Time

	// paymentReference is the external gateway reference of the paid order.
	paymentReference string

	createdAt time.Time

	// volumes holds the child volumes when the aggregate is loaded in full.
	volumes []*Volume

	isConstructed bool
}

// NewShipment creates the aggregate header for a freshly paid order.
// The tracking code is derived from the shipment id.
func NewShipment(
	id kernel.UUID,
	clientID kernel.UUID,
	volumeCount int,
	totalWeightGrams int,
	totalPriceCents int64,
	pickupPointRef string,
	requestedDeliveryDate time.Time,
	paymentReference string,
) (*Shipment, error) {
	s := &Shipment{
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setClientID(clientID),
		s.setVolumeCount(volumeCount),
		s.setTotalWeightGrams(totalWeightGrams),
		s.setTotalPriceCents(totalPriceCents),
		s.setPickupPointRef(pickupPointRef),
		s.setRequestedDeliveryDate(requestedDeliveryDate),
		s.setPaymentReference(paymentReference),
	); err != nil {
		return nil, err
	}

	trackingCode, err := kernel.NewTrackingCode(id)
	if err != nil {
		return nil, err
	}
	s.trackingCode = trackingCode

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence, optionally with
// its loaded volumes.
func RestoreShipment(
	id kernel.UUID,
	clientID kernel.UUID,
	trackingCode kernel.TrackingCode,
	volumeCount int,
	totalWeightGrams int,
	totalPriceCents int64,
	pickupPointRef string,
	requestedDeliveryDate time.Time,
	paymentReference string,
	createdAt time.Time,
	volumes []*Volume,
) (*Shipment, error) {
	s, err := NewShipment(id, clientID, volumeCount, totalWeightGrams, totalPriceCents,
		pickupPointRef, requestedDeliveryDate, paymentReference)
	if err != nil {
		return nil, err
	}

	if err = trackingCode.Validate(); err != nil {
		return nil, err
	}
	s.trackingCode = trackingCode
	s.createdAt = createdAt

	for _, v := range volumes {
		if err = s.attachVolume(v); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Validate ensures the Shipment was created through a constructor.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID { return s.id }

// ClientID returns the owning client's identifier.
func (s *Shipment) ClientID() kernel.UUID { return s.clientID }

// TrackingCode returns the human-readable tracking reference.
func (s *Shipment) TrackingCode() kernel.TrackingCode { return s.trackingCode }

// VolumeCount returns the declared number of volumes.
func (s *Shipment) VolumeCount() int { return s.volumeCount }

// TotalWeightGrams returns the declared total weight.
func (s *Shipment) TotalWeightGrams() int { return s.totalWeightGrams }

// TotalPriceCents returns the quoted price of the shipment.
func (s *Shipment) TotalPriceCents() int64 { return s.totalPriceCents }

// PickupPointRef returns the pickup point reference.
func (s *Shipment) PickupPointRef() string { return s.pickupPointRef }

// RequestedDeliveryDate returns the delivery date requested at quoting time.
func (s *Shipment) RequestedDeliveryDate() time.Time { return s.requestedDeliveryDate }

// PaymentReference returns the external payment reference that produced
// this shipment.
func (s *Shipment) PaymentReference() string { return s.paymentReference }

// CreatedAt returns the creation timestamp.
func (s *Shipment) CreatedAt() time.Time { return s.createdAt }

// Volumes returns the loaded child volumes, ordered as attached.
// Empty when the aggregate header was loaded without its volumes.
func (s *Shipment) Volumes() []*Volume { return s.volumes }

// AllVolumesVerified reports whether every loaded volume has independently
// passed its code verification, i.e. reached at least CollectionAccepted.
// This is the whole-shipment gate behind collection finalization: it is the
// one invariant that looks across sibling volumes.
//
// Returns false when no volumes are loaded, so a partially loaded aggregate
// can never satisfy the gate by accident.
func (s *Shipment) AllVolumesVerified() bool {
	if len(s.volumes) == 0 {
		return false
	}
	for _, v := range s.volumes {
		if v.Status() < CollectionAccepted {
			return false
		}
	}
	return true
}

// UnverifiedSequences returns the sequence numbers of loaded volumes that
// have not yet passed code verification. Used to tell the collection driver
// exactly which volumes still block finalization.
func (s *Shipment) UnverifiedSequences() []int {
	var seqs []int
	for _, v := range s.volumes {
		if v.Status() < CollectionAccepted {
			seqs = append(seqs, v.Sequence())
		}
	}
	return seqs
}

// RecomputeTotals refreshes the aggregate summary fields from the loaded
// volumes. Volume count and total weight are the only mutable aggregate
// fields after creation; price never changes once quoted.
func (s *Shipment) RecomputeTotals() {
	weight := 0
	for _, v := range s.volumes {
		weight += v.WeightGrams()
	}
	s.volumeCount = len(s.volumes)
	s.totalWeightGrams = weight
}

func (s *Shipment) attachVolume(v *Volume) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if !v.ShipmentID().IsEqual(s.id) {
		return fmt.Errorf("%w: volume %s", ErrVolumeBelongsToOtherShipment, v.ID())
	}
	s.volumes = append(s.volumes, v)
	return nil
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.clientID = id
	return nil
}

func (s *Shipment) setVolumeCount(count int) error {
	if count < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"volume count", fmt.Errorf("%d is not greater than 0", count))
	}
	s.volumeCount = count
	return nil
}

func (s *Shipment) setTotalWeightGrams(weight int) error {
	if weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total weight", fmt.Errorf("%d is not greater than 0", weight))
	}
	s.totalWeightGrams = weight
	return nil
}

func (s *Shipment) setTotalPriceCents(price int64) error {
	if price < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"total price", fmt.Errorf("%d is negative", price))
	}
	s.totalPriceCents = price
	return nil
}

func (s *Shipment) setPickupPointRef(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("pickup point reference")
	}
	s.pickupPointRef = ref
	return nil
}

func (s *Shipment) setRequestedDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return errs.NewValueIsRequiredError("requested delivery date")
	}
	s.requestedDeliveryDate = date
	return nil
}

func (s *Shipment) setPaymentReference(ref string) error {
	if ref == "" {
		return errs.NewValueIsRequiredError("payment reference")
	}
	s.paymentReference = ref
	return nil
}
