package services

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/shipment"
)

var (
	// ErrPreconditionFailed is returned when the volume is not in the state
	// the event requires. Callers must re-read and report "already advanced"
	// rather than retry blindly.
	ErrPreconditionFailed = errors.New("volume is not in the required state")

	// ErrRoleNotAllowed is returned when the event was raised by an actor
	// whose role does not own the transition.
	ErrRoleNotAllowed = errors.New("role is not allowed to perform this transition")

	// ErrVerificationRequired is returned when a code-gated transition was
	// requested without the operator's digits.
	ErrVerificationRequired = errors.New("code verification is required for this transition")

	// ErrVerificationFailed is returned when the entered digits do not match
	// the volume's parcel code. Surfaced directly to the operator for
	// re-entry; no system-level action is taken.
	ErrVerificationFailed = errors.New("entered digits do not match the parcel code")

	// ErrCollectionGateNotSatisfied is returned by the collection finalize
	// decision when at least one sibling volume has not passed its own code
	// verification yet.
	ErrCollectionGateNotSatisfied = errors.New("not all volumes of the shipment are verified")

	// ErrUnknownEvent is returned for events outside the transition table.
	ErrUnknownEvent = errors.New("unknown transition event")
)

// Event names one requested move in the parcel custody graph.
type Event int

const (
	// EventUnknown represents an invalid or undefined event.
	EventUnknown Event = iota

	// EventAcceptCollection - collection driver takes custody of one volume.
	EventAcceptCollection

	// EventFinalizeCollection - collection driver closes the collection run.
	EventFinalizeCollection

	// EventRegisterDepotArrival - depot staff books the volume in.
	EventRegisterDepotArrival

	// EventReleaseForDelivery - automatic release after depot arrival.
	EventReleaseForDelivery

	// EventClaimDelivery - delivery driver takes an exclusive claim.
	EventClaimDelivery

	// EventAcceptDelivery - the claiming driver confirms the volume is loaded.
	EventAcceptDelivery

	// EventFinalizeDelivery - the claiming driver hands the volume to the recipient.
	EventFinalizeDelivery
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:              "UNKNOWN",
		EventAcceptCollection:     "ACCEPT_COLLECTION",
		EventFinalizeCollection:   "FINALIZE_COLLECTION",
		EventRegisterDepotArrival: "REGISTER_DEPOT_ARRIVAL",
		EventReleaseForDelivery:   "RELEASE_FOR_DELIVERY",
		EventClaimDelivery:        "CLAIM_DELIVERY",
		EventAcceptDelivery:       "ACCEPT_DELIVERY",
		EventFinalizeDelivery:     "FINALIZE_DELIVERY",
	}
}

// String returns the canonical name of the event.
func (e Event) String() string {
	if s, ok := getEventStrings()[e]; ok {
		return s
	}
	return "UNKNOWN"
}

// VerificationProof carries the digits a human operator entered at a
// verification gate. Use NoProof for transitions without a gate.
type VerificationProof struct {
	digits   string
	supplied bool
}

// NewVerificationProof wraps the operator's entered digits.
func NewVerificationProof(digits string) VerificationProof {
	return VerificationProof{digits: digits, supplied: true}
}

// NoProof represents the absence of operator input.
func NoProof() VerificationProof {
	return VerificationProof{}
}

// transitionRule is one row of the custody transition table.
type transitionRule struct {
	from         shipment.Status
	to           shipment.Status
	role         shipment.Role
	requiresCode bool
}

func getTransitionTable() map[Event]transitionRule {
	return map[Event]transitionRule{
		EventAcceptCollection: {
			from:         shipment.AwaitingCollectionAccept,
			to:           shipment.CollectionAccepted,
			role:         shipment.RoleCollectionDriver,
			requiresCode: true,
		},
		EventFinalizeCollection: {
			from: shipment.CollectionAccepted,
			to:   shipment.CollectionFinalized,
			role: shipment.RoleCollectionDriver,
		},
		EventRegisterDepotArrival: {
			from:         shipment.CollectionFinalized,
			to:           shipment.AtDepot,
			role:         shipment.RoleDepotStaff,
			requiresCode: true,
		},
		EventReleaseForDelivery: {
			from: shipment.AtDepot,
			to:   shipment.AvailableForDelivery,
			role: shipment.RoleSystem,
		},
		EventClaimDelivery: {
			from: shipment.AvailableForDelivery,
			to:   shipment.DeliveryClaimed,
			role: shipment.RoleDeliveryDriver,
		},
		EventAcceptDelivery: {
			from: shipment.DeliveryClaimed,
			to:   shipment.DeliveryAccepted,
			role: shipment.RoleDeliveryDriver,
		},
		EventFinalizeDelivery: {
			from: shipment.DeliveryAccepted,
			to:   shipment.Delivered,
			role: shipment.RoleDeliveryDriver,
		},
	}
}

// TransitionEngine validates one requested custody transition and returns
// the decision. It is a pure domain service: it never mutates the volume or
// external state. The caller (a handoff command handler) is responsible for
// executing the decision as a conditioned write plus an audit append inside
// one transaction.
//
// Example:
//
//	engine := services.NewTransitionEngine()
//	next, err := engine.Decide(volume, services.EventAcceptCollection,
//	    shipment.RoleCollectionDriver, services.NewVerificationProof("0042"))
//	switch {
//	case errors.Is(err, services.ErrVerificationFailed):
//	    // ask the operator to re-enter the digits
//	case errors.Is(err, services.ErrPreconditionFailed):
//	    // re-read the volume; someone else moved it first
//	case err != nil:
//	    // other rejection
//	default:
//	    // persist status = next with a conditioned write
//	}
type TransitionEngine struct{}

// NewTransitionEngine creates a new TransitionEngine instance.
func NewTransitionEngine() TransitionEngine {
	return TransitionEngine{}
}

// Decide validates the requested event against the volume's current state,
// the actor's role and, for gated transitions, the verification proof.
// It returns the target status on success and a typed rejection otherwise.
func (TransitionEngine) Decide(
	volume *shipment.Volume,
	event Event,
	role shipment.Role,
	proof VerificationProof,
) (shipment.Status, error) {
	if err := volume.Validate(); err != nil {
		return shipment.StatusUnknown, err
	}

	rule, ok := getTransitionTable()[event]
	if !ok {
		return shipment.StatusUnknown, fmt.Errorf("%w: %s", ErrUnknownEvent, event)
	}

	if role != rule.role {
		return shipment.StatusUnknown, fmt.Errorf("%w: %s requires %s, got %s",
			ErrRoleNotAllowed, event, rule.role, role)
	}

	if volume.Status() != rule.from {
		return shipment.StatusUnknown, fmt.Errorf("%w: %s requires %s, volume is %s",
			ErrPreconditionFailed, event, rule.from, volume.Status())
	}

	if rule.requiresCode {
		if !proof.supplied {
			return shipment.StatusUnknown, fmt.Errorf("%w: %s", ErrVerificationRequired, event)
		}
		if !volume.VerifyCode(proof.digits) {
			return shipment.StatusUnknown, ErrVerificationFailed
		}
	}

	return rule.to, nil
}

// DecideFinalizeCollection validates the whole-shipment collection gate:
// every volume of the shipment must have independently passed its own code
// verification before any of them may move to CollectionFinalized. This is
// the one decision that looks beyond a single volume.
//
// On success it returns CollectionFinalized, to be applied to every volume
// of the shipment by the caller.
func (TransitionEngine) DecideFinalizeCollection(
	aggregate *shipment.Shipment,
	role shipment.Role,
) (shipment.Status, error) {
	if err := aggregate.Validate(); err != nil {
		return shipment.StatusUnknown, err
	}

	if role != shipment.RoleCollectionDriver {
		return shipment.StatusUnknown, fmt.Errorf("%w: %s requires %s, got %s",
			ErrRoleNotAllowed, EventFinalizeCollection, shipment.RoleCollectionDriver, role)
	}

	if !aggregate.AllVolumesVerified() {
		return shipment.StatusUnknown, fmt.Errorf("%w: volumes %v are not verified",
			ErrCollectionGateNotSatisfied, aggregate.UnverifiedSequences())
	}

	for _, v := range aggregate.Volumes() {
		if v.Status() != shipment.CollectionAccepted {
			return shipment.StatusUnknown, fmt.Errorf("%w: volume %d is %s",
				ErrPreconditionFailed, v.Sequence(), v.Status())
		}
	}

	return shipment.CollectionFinalized, nil
}
