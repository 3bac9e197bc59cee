package payment

import (
	"errors"
	"fmt"

	"skybroker/internal/pkg/errs"
)

// ErrInvalidStatusTransition is returned when a payment is moved along an
// edge that does not exist. Payments only ever leave Pending.
var ErrInvalidStatusTransition = errors.New("invalid payment status transition")

// Status represents the lifecycle state of a payment attempt.
//
// State transitions:
//
//	Pending ──┬──> Paid
//	          ├──> Failed
//	          └──> Cancelled
//
// Paid, Failed and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status of every payment attempt.
	Pending

	// Paid indicates the provider confirmed the payment.
	Paid

	// Failed indicates the provider reported a failure.
	Failed

	// Cancelled indicates the attempt was abandoned before settlement.
	Cancelled
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Pending:   "PENDING",
		Paid:      "PAID",
		Failed:    "FAILED",
		Cancelled: "CANCELLED",
	}
}

// ParseStatus converts a wire representation back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("payment status",
		fmt.Errorf("%q is not a valid payment status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Status value is a member of the defined enum.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("payment status",
			fmt.Errorf("%d is not a valid payment status", int(s)))
	}
	return nil
}

// IsTerminal reports whether the status admits no further change.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Failed || s == Cancelled
}

// TransitionTo returns the new status when the edge exists. A same-state
// transition is a no-op success so duplicate provider callbacks are harmless.
func (s Status) TransitionTo(to Status) (Status, error) {
	if s == to {
		if err := s.Validate(); err != nil {
			return Unknown, err
		}
		return s, nil
	}
	if s != Pending || to.Validate() != nil {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, s, to)
	}
	return to, nil
}
