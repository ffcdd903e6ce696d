// Package codegen implements parcel code generation on top of a Postgres
// sequence. The sequence increment is the only place where concurrent
// volume creations serialize, which is what makes codes globally unique
// without application-level locking.
package codegen

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SequenceName is the Postgres sequence backing the shared parcel code
// counter. Created at startup; nextval on a sequence never rolls back, so
// failed materializations burn codes instead of reusing them.
const SequenceName = "parcel_code_counter"

// pqUndefinedTable is the Postgres error class for a missing relation,
// which is what a missing sequence reports as.
const pqUndefinedTable = "42P01"

// ErrSequenceNotInitialized is returned when the backing sequence does not
// exist. This is a deployment fault, not a runtime condition.
var ErrSequenceNotInitialized = errors.New("parcel code sequence does not exist")

// SequenceCodeGenerator implements ports.CodeGenerator using a Postgres
// sequence.
type SequenceCodeGenerator struct {
	db *gorm.DB
}

// NewSequenceCodeGenerator creates a generator bound to the given database.
func NewSequenceCodeGenerator(db *gorm.DB) *SequenceCodeGenerator {
	return &SequenceCodeGenerator{db: db}
}

// EnsureSequence creates the backing sequence if it does not exist yet.
// Called once at startup alongside schema migration.
func (g *SequenceCodeGenerator) EnsureSequence(ctx context.Context) error {
	return g.db.WithContext(ctx).
		Exec("CREATE SEQUENCE IF NOT EXISTS " + SequenceName + " START 1").Error
}

// NextParcelCode atomically draws the next counter value and renders it as
// a parcel code. Counter values past the 4-digit space surface
// kernel.ErrParcelCodeSpaceExhausted from the code constructor; callers
// treat that as fatal.
func (g *SequenceCodeGenerator) NextParcelCode(ctx context.Context) (kernel.ParcelCode, error) {
	var counter int64
	err := g.db.WithContext(ctx).
		Raw("SELECT nextval('" + SequenceName + "')").
		Scan(&counter).Error
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable {
			return kernel.ParcelCode{}, ErrSequenceNotInitialized
		}
		return kernel.ParcelCode{}, err
	}

	return kernel.NewParcelCode(counter)
}
