package shipment

import (
	"fmt"
	"strings"

	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// ErrAddressIsNotConstructed indicates an Address was not created through
// NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is the recipient address snapshot copied onto a volume at creation
// time. It is deliberately a copy, not a reference to the client's saved
// address book: a label printed today must keep matching the physical parcel
// even if the client edits their saved address tomorrow.
//
// Address is an immutable value object.
type Address struct { //nolint:recvcheck //using for validation
	name       string
	phone      string
	document   string
	street     string
	number     string
	complement string
	district   string
	city       string
	state      string
	postalCode string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated recipient address snapshot.
// Name, street, city, state and postal code are required; phone, document,
// number, complement and district are optional capture-time extras.
func NewAddress(name, phone, document, street, number, complement, district, city, state, postalCode string) (Address, error) {
	a := Address{
		phone:      phone,
		document:   document,
		number:     number,
		complement: complement,
		district:   district,
		guard:      guard.NewConstructorGuard(),
	}

	set := func(dst *string, value, param string) error {
		if strings.TrimSpace(value) == "" {
			return errs.NewValueIsRequiredError(param)
		}
		*dst = value
		return nil
	}

	for _, err := range []error{
		set(&a.name, name, "recipient name"),
		set(&a.street, street, "street"),
		set(&a.city, city, "city"),
		set(&a.state, state, "state"),
		set(&a.postalCode, postalCode, "postal code"),
	} {
		if err != nil {
			return Address{}, err
		}
	}

	return a, nil
}

// Name returns the recipient's name.
func (a Address) Name() string { return a.name }

// Phone returns the recipient's phone number, possibly empty.
func (a Address) Phone() string { return a.phone }

// Document returns the recipient's identity document, possibly empty.
func (a Address) Document() string { return a.document }

// Street returns the street name.
func (a Address) Street() string { return a.street }

// Number returns the street number, possibly empty.
func (a Address) Number() string { return a.number }

// Complement returns the address complement, possibly empty.
func (a Address) Complement() string { return a.complement }

// District returns the district, possibly empty.
func (a Address) District() string { return a.district }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state.
func (a Address) State() string { return a.state }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// String renders a single-line form of the address for labels and logs.
func (a Address) String() string {
	parts := []string{a.street}
	if a.number != "" {
		parts = append(parts, a.number)
	}
	if a.district != "" {
		parts = append(parts, a.district)
	}
	parts = append(parts, fmt.Sprintf("%s/%s", a.city, a.state), a.postalCode)
	return strings.Join(parts, ", ")
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}
