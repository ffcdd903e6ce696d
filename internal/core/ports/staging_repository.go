package ports

import (
	"context"
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/staging"
)

// ErrLockNotAcquired is returned by TryLock when the conditioned
// PendingPayment -> Processing write affected zero rows: another invocation
// already claimed the record. Treated as success-no-op by the payment
// confirmation processor, not as an error condition.
var ErrLockNotAcquired = errors.New("staging record lock was not acquired")

// StagingRepository is the persistence contract for pre-payment drafts and
// their materialization lock.
type StagingRepository interface {
	// Add persists a new staging record in PendingPayment.
	Add(ctx context.Context, record *staging.StagingRecord) error

	// Get retrieves a staging record by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*staging.StagingRecord, error)

	// GetPendingByPaymentReference retrieves the most recent record in
	// PendingPayment matching the payment reference, restricted to the
	// expiry horizon. Not-found is reported via errs.ErrObjectNotFound.
	GetPendingByPaymentReference(ctx context.Context, paymentReference string) (*staging.StagingRecord, error)

	// TryLock performs the conditioned write
	// "set lock_state = PROCESSING where id = ? and lock_state = PENDING_PAYMENT",
	// stamping the lock claim time. Zero rows affected returns
	// ErrLockNotAcquired. This single atomic write is the whole idempotency
	// mechanism of materialization.
	TryLock(ctx context.Context, id kernel.UUID) error

	// MarkProcessed moves a locked record to Processed. Called after
	// materialization even when some volumes failed: retries of the same
	// payment event must not re-materialize.
	MarkProcessed(ctx context.Context, id kernel.UUID) error

	// ResetStuck moves Processing records whose lock was claimed before the
	// given instant back to PendingPayment so operators can reprocess them
	// manually. The age of the record itself is irrelevant: only how long
	// it has held the lock. Returns the ids of the records it reset.
	ResetStuck(ctx context.Context, lockedBefore time.Time) ([]kernel.UUID, error)
}
