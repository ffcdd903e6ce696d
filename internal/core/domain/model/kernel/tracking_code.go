package kernel

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// TrackingCodePrefix is the fixed prefix of every shipment tracking code.
const TrackingCodePrefix = "FRT-"

// ErrTrackingCodeIsNotConstructed indicates a TrackingCode was not created
// through NewTrackingCode or TrackingCodeFromString.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking code must be created via NewTrackingCode or TrackingCodeFromString")

// TrackingCode is the human-readable, globally unique reference printed on
// shipment paperwork and shown in tracking UIs. Unlike ParcelCode it is never
// typed back by an operator, so it trades brevity for uniqueness: the code is
// derived from the shipment's UUID.
type TrackingCode struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode derives a tracking code from the shipment's identifier.
// The result is "FRT-" plus the first UUID group, upper-cased, e.g.
// "FRT-550E8400".
func NewTrackingCode(shipmentID UUID) (TrackingCode, error) {
	if err := shipmentID.Validate(); err != nil {
		return TrackingCode{}, err
	}

	head := strings.SplitN(shipmentID.String(), "-", 2)[0]
	return TrackingCode{
		value: TrackingCodePrefix + strings.ToUpper(head),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// TrackingCodeFromString restores a tracking code from its persisted form.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	if !strings.HasPrefix(s, TrackingCodePrefix) || len(s) <= len(TrackingCodePrefix) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"tracking code", fmt.Errorf("%q does not start with %s", s, TrackingCodePrefix))
	}

	return TrackingCode{
		value: s,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// String returns the rendered code, e.g. "FRT-550E8400".
func (t TrackingCode) String() string {
	return t.value
}

// IsEqual compares two tracking codes by value.
func (t TrackingCode) IsEqual(other TrackingCode) bool {
	return t.value == other.value
}

// Validate ensures the code was created through a constructor.
func (t TrackingCode) Validate() error {
	return t.guard.Validate(ErrTrackingCodeIsNotConstructed)
}
