package staging

import (
	"fmt"

	"freight/internal/pkg/errs"
)

// LockState is the three-state lock that guarantees at-most-one
// materialization per paid order. The only legal moves are
// PendingPayment -> Processing (claimed by exactly one payment-confirmation
// invocation, via a compare-and-swap write) and Processing -> Processed
// (after materialization). A record is never reused.
type LockState int

const (
	// LockStateUnknown represents an invalid or undefined lock state.
	LockStateUnknown LockState = iota

	// PendingPayment means the draft is waiting for its payment event.
	PendingPayment

	// Processing means one invocation holds the materialization lock.
	Processing

	// Processed means materialization finished (possibly partially) and the
	// record must never be picked up again.
	Processed
)

func getLockStateStrings() map[LockState]string {
	return map[LockState]string{
		LockStateUnknown: "UNKNOWN",
		PendingPayment:   "PENDING_PAYMENT",
		Processing:       "PROCESSING",
		Processed:        "PROCESSED",
	}
}

// Validate checks that the lock state is one of the defined values.
func (s LockState) Validate() error {
	switch s {
	case PendingPayment, Processing, Processed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"lock state", fmt.Errorf("%d is not a valid lock state", s))
	}
}

// String returns the canonical name of the lock state.
func (s LockState) String() string {
	if str, ok := getLockStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// LockStateFromString parses a canonical lock state name as produced by String.
func LockStateFromString(v string) (LockState, error) {
	for state, name := range getLockStateStrings() {
		if name == v && state != LockStateUnknown {
			return state, nil
		}
	}
	return LockStateUnknown, errs.NewValueIsInvalidErrorWithCause(
		"lock state", fmt.Errorf("%q is not a valid lock state", v))
}
