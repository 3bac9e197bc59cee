package shipment

import (
	"fmt"
	"strings"

	"skybroker/internal/pkg/errs"
)

// CarrierCode identifies a third-party carrier network. It is an enumerated
// type rather than a free string so that an unknown carrier is a parse
// failure at the boundary, not a silent default branch deep in the flow.
type CarrierCode string

const (
	// CarrierInPost is the reference carrier integration (InPost ShipX API).
	CarrierInPost CarrierCode = "INPOST"
)

// knownCarrierCodes lists every carrier the domain model accepts.
// The registry additionally fails closed for codes that parse but have no
// gateway implementation wired at startup.
func knownCarrierCodes() []CarrierCode {
	return []CarrierCode{CarrierInPost}
}

// ParseCarrierCode converts a request-supplied carrier code into a CarrierCode.
// Matching is case-insensitive; anything outside the known set is rejected.
func ParseCarrierCode(s string) (CarrierCode, error) {
	normalized := CarrierCode(strings.ToUpper(strings.TrimSpace(s)))
	for _, code := range knownCarrierCodes() {
		if code == normalized {
			return code, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("carrier code",
		fmt.Errorf("%q is not a known carrier", s))
}

// String returns the canonical upper-case representation of the carrier code.
func (c CarrierCode) String() string {
	return string(c)
}

// Validate checks that the code is a member of the known carrier set.
func (c CarrierCode) Validate() error {
	_, err := ParseCarrierCode(string(c))
	return err
}
