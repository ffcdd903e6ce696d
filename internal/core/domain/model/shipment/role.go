package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// Role identifies the kind of actor invoking a handoff operation.
// Transitions in the custody graph are each owned by exactly one role;
// the transition engine rejects an event raised by the wrong role.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCollectionDriver picks volumes up at the client and brings them to the depot.
	RoleCollectionDriver

	// RoleDepotStaff receives volumes at the depot and releases them for delivery.
	RoleDepotStaff

	// RoleDeliveryDriver claims available volumes and delivers them to recipients.
	RoleDeliveryDriver

	// RoleSystem is used for automatic transitions and system-generated audit entries.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:          "UNKNOWN",
		RoleCollectionDriver: "COLLECTION_DRIVER",
		RoleDepotStaff:       "DEPOT_STAFF",
		RoleDeliveryDriver:   "DELIVERY_DRIVER",
		RoleSystem:           "SYSTEM",
	}
}

// Validate checks that the role is one of the defined actor kinds.
func (r Role) Validate() error {
	switch r {
	case RoleCollectionDriver, RoleDepotStaff, RoleDeliveryDriver, RoleSystem:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the canonical name of the role.
func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// RoleFromString parses a canonical role name as produced by String.
func RoleFromString(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if name == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// IsDriver reports whether the role is one of the two driver kinds,
// the only roles allowed to record occurrences.
func (r Role) IsDriver() bool {
	return r == RoleCollectionDriver || r == RoleDeliveryDriver
}
