package shipment

import (
	"fmt"

	"skybroker/internal/pkg/errs"
	"skybroker/internal/pkg/guard"
)

// ErrParcelIsNotConstructed is returned when a Parcel was not created via NewParcel.
var ErrParcelIsNotConstructed = errs.NewValueIsRequiredError("Parcel must be created via NewParcel constructor")

// Parcel describes the physical package of a shipment. Weight is required;
// dimensions are optional because many locker services price by template
// size rather than measured dimensions. When dimensions are absent the
// carrier gateway substitutes its fixed minimum packaging.
type Parcel struct { //nolint:recvcheck //using for validation
	lengthCm *float64
	widthCm  *float64
	heightCm *float64
	weightKg float64

	guard guard.ConstructorGuard
}

// NewParcel creates a validated Parcel. Weight must be positive; any provided
// dimension must be positive as well.
func NewParcel(lengthCm, widthCm, heightCm *float64, weightKg float64) (Parcel, error) {
	if weightKg <= 0 {
		return Parcel{}, errs.NewValueIsInvalidErrorWithCause("parcel weight",
			fmt.Errorf("%v kg is not greater than 0", weightKg))
	}
	for name, dim := range map[string]*float64{
		"parcel length": lengthCm,
		"parcel width":  widthCm,
		"parcel height": heightCm,
	} {
		if dim != nil && *dim <= 0 {
			return Parcel{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%v cm is not greater than 0", *dim))
		}
	}

	return Parcel{
		lengthCm: lengthCm,
		widthCm:  widthCm,
		heightCm: heightCm,
		weightKg: weightKg,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the parcel was created through the constructor.
func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

// HasDimensions reports whether all three dimensions were supplied.
func (p Parcel) HasDimensions() bool {
	return p.lengthCm != nil && p.widthCm != nil && p.heightCm != nil
}

// LengthCm returns the optional length in centimeters.
func (p Parcel) LengthCm() *float64 { return p.lengthCm }

// WidthCm returns the optional width in centimeters.
func (p Parcel) WidthCm() *float64 { return p.widthCm }

// HeightCm returns the optional height in centimeters.
func (p Parcel) HeightCm() *float64 { return p.heightCm }

// WeightKg returns the weight in kilograms.
func (p Parcel) WeightKg() float64 { return p.weightKg }
