package kernel

import (
	"fmt"
	"regexp"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ParcelCodePrefix is the fixed prefix of every rendered parcel code.
const ParcelCodePrefix = "ETI-"

// ParcelCodeSpace is the number of codes available in the 4-digit space.
// Counter values at or beyond this bound mean the space is exhausted.
const ParcelCodeSpace = 10000

// ErrParcelCodeSpaceExhausted is returned when the global code counter has
// consumed the whole 4-digit space. Exhaustion is a fatal configuration
// condition: callers must not retry, the code space itself needs operator
// attention.
var ErrParcelCodeSpaceExhausted = errs.NewValueIsOutOfRangeError(
	"parcel code counter", ParcelCodeSpace, 0, ParcelCodeSpace-1)

// ErrParcelCodeIsNotConstructed indicates a ParcelCode was not created through
// NewParcelCode or ParcelCodeFromString.
var ErrParcelCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"parcel code must be created via NewParcelCode or ParcelCodeFromString")

var parcelCodePattern = regexp.MustCompile(`^ETI-(\d{4})$`)

// ParcelCode is the short human-entered code printed on a volume's label and
// typed back by drivers and depot staff to prove physical possession at each
// handoff. It renders as "ETI-" followed by 4 zero-padded digits drawn from a
// single global counter, so codes never collide across concurrently created
// shipments.
//
// ParcelCode is immutable once assigned to a volume.
//
// Example:
//
//	code, err := kernel.NewParcelCode(42)
//	if err != nil {
//	    // counter space exhausted
//	}
//	fmt.Println(code.String()) // Output: ETI-0042
//	code.Matches("0042")       // true
type ParcelCode struct { //nolint:recvcheck //using for validation
	digits string
	guard  guard.ConstructorGuard
}

// NewParcelCode builds a parcel code from a global counter value.
// The counter must lie in [0, ParcelCodeSpace). A value outside the space
// returns ErrParcelCodeSpaceExhausted, which callers must treat as fatal
// rather than retrying.
func NewParcelCode(counter int64) (ParcelCode, error) {
	if counter < 0 || counter >= ParcelCodeSpace {
		return ParcelCode{}, ErrParcelCodeSpaceExhausted
	}

	return ParcelCode{
		digits: fmt.Sprintf("%04d", counter),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// ParcelCodeFromString parses the rendered form "ETI-####".
// Used when reconstructing volumes from persistence.
func ParcelCodeFromString(s string) (ParcelCode, error) {
	m := parcelCodePattern.FindStringSubmatch(s)
	if m == nil {
		return ParcelCode{}, errs.NewValueIsInvalidErrorWithCause(
			"parcel code", fmt.Errorf("%q does not match %s####", s, ParcelCodePrefix))
	}

	return ParcelCode{
		digits: m[1],
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// String returns the rendered code, e.g. "ETI-0042".
func (c ParcelCode) String() string {
	return ParcelCodePrefix + c.digits
}

// Digits returns the 4-digit part of the code, the portion a human operator
// types at a verification gate.
func (c ParcelCode) Digits() string {
	return c.digits
}

// Matches reports whether the digits entered by an operator are exactly the
// code's digits. All four digits must match; partial or loose matching is
// disallowed.
func (c ParcelCode) Matches(entered string) bool {
	return c.guard.Validate(nil) == nil && entered == c.digits
}

// IsEqual compares two parcel codes by their digit value.
func (c ParcelCode) IsEqual(other ParcelCode) bool {
	return c.digits == other.digits
}

// Validate ensures the code was created through a constructor.
func (c ParcelCode) Validate() error {
	return c.guard.Validate(ErrParcelCodeIsNotConstructed)
}
