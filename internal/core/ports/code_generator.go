package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
)

// CodeGenerator produces globally unique parcel codes from a single
// monotonically increasing counter shared by all shipments.
//
// Implementations must be safe under concurrent callers: the increment has
// to happen atomically at the backing store (e.g. a database sequence),
// never as a read-then-write from the application tier, which would let two
// concurrent volume creations read the same "next" value.
type CodeGenerator interface {
	// NextParcelCode returns the next code. Exhaustion of the 4-digit code
	// space returns kernel.ErrParcelCodeSpaceExhausted, which callers must
	// treat as fatal rather than retrying.
	NextParcelCode(ctx context.Context) (kernel.ParcelCode, error)
}
