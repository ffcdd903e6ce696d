package queries

import (
	"errors"
	"regexp"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrSearchAvailableVolumesQueryIsNotConstructed = errors.New(
		"SearchAvailableVolumesQuery must be created via NewSearchAvailableVolumesQuery constructor",
	)

	searchDigitsPattern = regexp.MustCompile(`^\d{4}$`)
)

// SearchAvailableVolumesQuery looks up claimable volumes by the 4-digit
// suffix of their parcel code. Delivery drivers type the digits printed on
// the physical label; the search is restricted to volumes that are
// available for delivery and not yet claimed, so the result set stays small
// despite the 4-digit code space.
//
// Example:
//
//	query, err := NewSearchAvailableVolumesQuery("0042")
//	if err != nil {
//	    return err
//	}
//
//	volumes, err := handler.Handle(ctx, query)
//	for _, v := range volumes {
//	    fmt.Printf("%s: %s, %s\n", v.ParcelCode, v.RecipientCity, v.RecipientState)
//	}
type SearchAvailableVolumesQuery struct {
	digits string

	guard guard.ConstructorGuard
}

// NewSearchAvailableVolumesQuery creates a code search query.
// Digits must be exactly four decimal digits, matching the printed suffix.
func NewSearchAvailableVolumesQuery(digits string) (SearchAvailableVolumesQuery, error) {
	if digits == "" {
		return SearchAvailableVolumesQuery{}, errs.NewValueIsRequiredError("digits")
	}
	if !searchDigitsPattern.MatchString(digits) {
		return SearchAvailableVolumesQuery{}, errs.NewValueIsInvalidErrorWithCause(
			"digits", errors.New("must be exactly 4 decimal digits"))
	}

	return SearchAvailableVolumesQuery{
		digits: digits,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Digits returns the 4-digit code suffix being searched.
func (q SearchAvailableVolumesQuery) Digits() string {
	return q.digits
}

// Validate ensures the query was created through the constructor.
// Returns ErrSearchAvailableVolumesQueryIsNotConstructed if validation fails.
func (q SearchAvailableVolumesQuery) Validate() error {
	return q.guard.Validate(ErrSearchAvailableVolumesQueryIsNotConstructed)
}

// SearchAvailableVolumesQueryResponse is one claimable volume in the search
// result. Carries enough recipient context for the driver to pick the right
// volume when several share the same code suffix.
type SearchAvailableVolumesQueryResponse struct {
	VolumeID              kernel.UUID
	ShipmentID            kernel.UUID
	ParcelCode            string
	WeightGrams           int
	RecipientName         string
	RecipientCity         string
	RecipientState        string
	RequestedDeliveryDate time.Time
}
