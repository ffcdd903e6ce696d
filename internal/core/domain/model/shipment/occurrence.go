package shipment

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// OccurrenceReason is the fixed enumeration of exception causes a driver may
// record against a volume. An occurrence never destroys the volume's custody
// progress; it is metadata on top of the current working state so a later
// retry remains possible.
type OccurrenceReason int

const (
	// OccurrenceReasonUnknown represents an invalid or undefined reason.
	OccurrenceReasonUnknown OccurrenceReason = iota

	// OccurrenceRecipientAbsent - nobody was present at the delivery address.
	OccurrenceRecipientAbsent

	// OccurrenceAddressNotFound - the driver could not locate the address.
	OccurrenceAddressNotFound

	// OccurrenceIncompleteAddress - the address snapshot lacks data needed to deliver.
	OccurrenceIncompleteAddress

	// OccurrenceRecipientRefusal - the recipient refused to accept the volume.
	OccurrenceRecipientRefusal

	// OccurrenceDamagedProduct - the product arrived damaged or diverges from the order.
	OccurrenceDamagedProduct

	// OccurrenceUnspecifiedFailure - the attempt failed for a reason not covered above.
	OccurrenceUnspecifiedFailure

	// OccurrenceVehicleDelay - a vehicle problem or collection delay.
	OccurrenceVehicleDelay
)

func getOccurrenceReasonStrings() map[OccurrenceReason]string {
	return map[OccurrenceReason]string{
		OccurrenceReasonUnknown:      "UNKNOWN",
		OccurrenceRecipientAbsent:    "RECIPIENT_ABSENT",
		OccurrenceAddressNotFound:    "ADDRESS_NOT_FOUND",
		OccurrenceIncompleteAddress:  "INCOMPLETE_ADDRESS",
		OccurrenceRecipientRefusal:   "RECIPIENT_REFUSAL",
		OccurrenceDamagedProduct:     "DAMAGED_PRODUCT",
		OccurrenceUnspecifiedFailure: "UNSPECIFIED_FAILURE",
		OccurrenceVehicleDelay:       "VEHICLE_DELAY",
	}
}

// Validate checks that the reason is one of the fixed enumeration values.
func (r OccurrenceReason) Validate() error {
	if r <= OccurrenceReasonUnknown || r > OccurrenceVehicleDelay {
		return errs.NewValueIsInvalidErrorWithCause(
			"occurrence reason", fmt.Errorf("%d is not a valid occurrence reason", r))
	}
	return nil
}

// String returns the canonical name of the reason.
func (r OccurrenceReason) String() string {
	if s, ok := getOccurrenceReasonStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// OccurrenceReasonFromString parses a canonical reason name as produced by String.
func OccurrenceReasonFromString(s string) (OccurrenceReason, error) {
	for reason, name := range getOccurrenceReasonStrings() {
		if name == s && reason != OccurrenceReasonUnknown {
			return reason, nil
		}
	}
	return OccurrenceReasonUnknown, errs.NewValueIsInvalidErrorWithCause(
		"occurrence reason", fmt.Errorf("%q is not a valid occurrence reason", s))
}
