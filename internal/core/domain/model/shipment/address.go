package shipment

import (
	"fmt"
	"strings"

	"skybroker/internal/pkg/errs"
	"skybroker/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created via NewAddress.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError("Address must be created via NewAddress constructor")

// Address is an immutable value object describing one side of a shipment
// (sender or receiver). Name, phone, street, city, postal code and a
// two-letter ISO country code are required; email, building number and
// apartment number are optional.
type Address struct { //nolint:recvcheck //using for validation
	name            string
	phone           string
	email           string
	street          string
	buildingNumber  string
	apartmentNumber string
	city            string
	postalCode      string
	countryCode     string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated Address. The country code is normalized to
// upper case. Optional fields may be empty.
func NewAddress(name, phone, email, street, buildingNumber, apartmentNumber,
	city, postalCode, countryCode string) (Address, error) {
	if name == "" {
		return Address{}, errs.NewValueIsRequiredError("address name")
	}
	if phone == "" {
		return Address{}, errs.NewValueIsRequiredError("address phone")
	}
	if street == "" {
		return Address{}, errs.NewValueIsRequiredError("address street")
	}
	if city == "" {
		return Address{}, errs.NewValueIsRequiredError("address city")
	}
	if postalCode == "" {
		return Address{}, errs.NewValueIsRequiredError("address postal code")
	}
	if len(countryCode) != 2 {
		return Address{}, errs.NewValueIsInvalidErrorWithCause("address country code",
			fmt.Errorf("%q is not a two-letter ISO country code", countryCode))
	}

	return Address{
		name:            name,
		phone:           phone,
		email:           email,
		street:          street,
		buildingNumber:  buildingNumber,
		apartmentNumber: apartmentNumber,
		city:            city,
		postalCode:      postalCode,
		countryCode:     strings.ToUpper(countryCode),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through the constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Name returns the contact name.
func (a Address) Name() string { return a.name }

// Phone returns the contact phone number.
func (a Address) Phone() string { return a.phone }

// Email returns the optional contact email.
func (a Address) Email() string { return a.email }

// Street returns the street name.
func (a Address) Street() string { return a.street }

// BuildingNumber returns the optional building number.
func (a Address) BuildingNumber() string { return a.buildingNumber }

// ApartmentNumber returns the optional apartment number.
func (a Address) ApartmentNumber() string { return a.apartmentNumber }

// City returns the city.
func (a Address) City() string { return a.city }

// PostalCode returns the postal code.
func (a Address) PostalCode() string { return a.postalCode }

// CountryCode returns the upper-case two-letter ISO country code.
func (a Address) CountryCode() string { return a.countryCode }
