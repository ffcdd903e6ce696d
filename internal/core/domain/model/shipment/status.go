package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Status represents the custody state of a volume.
// It implements the parcel handoff state machine as an explicit directed
// graph with a successor table, rather than free-form status strings.
//
// State graph (initial to terminal):
//
//	AwaitingCollectionAccept
//	  -> CollectionAccepted     (collection driver, per-volume code verification)
//	  -> CollectionFinalized    (collection driver, every sibling verified)
//	  -> AtDepot                (depot staff, per-volume code verification)
//	  -> AvailableForDelivery   (system, automatic on depot arrival)
//	  -> DeliveryClaimed        (delivery driver, exclusive claim)
//	  -> DeliveryAccepted       (same delivery driver)
//	  -> Delivered              (terminal)
//
// Occurrences are not part of the graph: they are audit metadata recorded
// against the current state without moving the volume, so a failed attempt
// keeps its progress and assignment and can be retried.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// AwaitingCollectionAccept is the initial status of every volume,
	// set when the paid order is materialized.
	AwaitingCollectionAccept

	// CollectionAccepted means a collection driver verified this volume's
	// parcel code and took custody of it.
	CollectionAccepted

	// CollectionFinalized means every volume of the shipment was verified
	// and the collection run is closed.
	CollectionFinalized

	// AtDepot means depot staff verified the volume's code on arrival.
	AtDepot

	// AvailableForDelivery means the volume can be claimed by a delivery
	// driver. Entered automatically right after AtDepot.
	AvailableForDelivery

	// DeliveryClaimed means exactly one delivery driver holds an exclusive
	// claim on the volume.
	DeliveryClaimed

	// DeliveryAccepted means the claiming driver confirmed the volume is
	// physically loaded for the delivery run.
	DeliveryAccepted

	// Delivered is the terminal status: the recipient received the volume.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:            "UNKNOWN",
		AwaitingCollectionAccept: "AWAITING_COLLECTION_ACCEPT",
		CollectionAccepted:       "COLLECTION_ACCEPTED",
		CollectionFinalized:      "COLLECTION_FINALIZED",
		AtDepot:                  "AT_DEPOT",
		AvailableForDelivery:     "AVAILABLE_FOR_DELIVERY",
		DeliveryClaimed:          "DELIVERY_CLAIMED",
		DeliveryAccepted:         "DELIVERY_ACCEPTED",
		Delivered:                "DELIVERED",
	}
}

// successor returns the only legal next status in the custody graph.
// The graph is linear: every non-terminal status has exactly one successor.
func (s Status) successor() (Status, bool) {
	if s < AwaitingCollectionAccept || s >= Delivered {
		return StatusUnknown, false
	}
	return s + 1, true
}

// Validate checks that the Status is one of the defined graph states.
func (s Status) Validate() error {
	if s < AwaitingCollectionAccept || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the canonical name of the status, e.g. "AT_DEPOT".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a canonical status name as produced by String.
// Used when reconstructing volumes from persistence.
func StatusFromString(v string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == v && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status", fmt.Errorf("%q is not a valid status", v))
}

// IsTerminal reports whether the status admits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// CanAdvanceTo reports whether moving from s to next is a legal step in the
// custody graph. Only single forward steps are legal: no skipping and no
// backward moves.
func (s Status) CanAdvanceTo(next Status) bool {
	succ, ok := s.successor()
	return ok && succ == next
}

// AllowsOccurrenceBy reports whether an actor with the given role may record
// an occurrence against a volume in this status. Collection drivers report
// against volumes still in the collection phase; delivery drivers against
// volumes they are actively working.
func (s Status) AllowsOccurrenceBy(role Role) bool {
	switch role {
	case RoleCollectionDriver:
		return s == AwaitingCollectionAccept || s == CollectionAccepted || s == CollectionFinalized
	case RoleDeliveryDriver:
		return s == DeliveryClaimed || s == DeliveryAccepted
	default:
		return false
	}
}
