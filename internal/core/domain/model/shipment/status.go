package shipment

import (
	"errors"
	"fmt"
	"slices"

	"skybroker/internal/pkg/errs"
)

// ErrInvalidStatusTransition is the sentinel wrapped by every StatusTransitionError.
// Use errors.Is to classify a transition violation regardless of the edge involved.
var ErrInvalidStatusTransition = errors.New("invalid shipment status transition")

// StatusTransitionError reports an attempt to move a shipment along an edge
// that does not exist in the transition table. It indicates a programming
// error or a race between concurrent writers, never a user mistake.
type StatusTransitionError struct {
	From Status
	To   Status
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidStatusTransition, e.From, e.To)
}

func (e *StatusTransitionError) Unwrap() error {
	return ErrInvalidStatusTransition
}

// Status represents the lifecycle state of a shipment.
// It implements a state machine with a single, centrally defined transition
// table so that every legal edge is visible in one place and everything else
// is forbidden by construction.
//
// State transitions:
//
//	Draft ──┬──> Created ──┬──> PendingPayment ──> Paid ──> LabelReady ──> Manifested ──> Shipped ──┬──> Delivered
//	        │              │                                                                        └──> Returned
//	        └──────────────┴──> PendingPayment
//	(Draft, Created, PendingPayment and Paid may also be Cancelled)
//
// Delivered, Cancelled and Returned are terminal: they have no outgoing edges.
//
// Status is a value object; transition checks are pure queries with no side
// effects. Mutation happens only on the Shipment aggregate, which routes every
// status write through TransitionTo.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of every shipment. A Draft shipment exists
	// only in this system; the carrier knows nothing about it yet.
	Draft

	// Created indicates the carrier accepted the shipment: carrier identifiers
	// are persisted and an offer has been selected.
	Created

	// PendingPayment indicates a payment attempt has been initiated.
	PendingPayment

	// Paid indicates payment was confirmed. Label retrieval becomes eligible.
	Paid

	// LabelReady indicates a printable label artifact has been stored.
	LabelReady

	// Manifested indicates the shipment is part of a carrier handover manifest.
	Manifested

	// Shipped indicates the carrier reported physical pickup.
	Shipped

	// Delivered is a terminal status: the parcel reached the receiver.
	Delivered

	// Cancelled is a terminal status. Cancellation is a status, not deletion.
	Cancelled

	// Returned is a terminal status: the parcel came back to the sender.
	Returned
)

// allowedTransitions is the single source of truth for the lifecycle.
// Every valid status appears as a key, terminal statuses with an empty list,
// so an exhaustiveness test can diff the keys against the full enum.
func allowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Draft:          {Created, PendingPayment, Cancelled},
		Created:        {PendingPayment, Cancelled},
		PendingPayment: {Paid, Cancelled},
		Paid:           {LabelReady, Cancelled},
		LabelReady:     {Manifested},
		Manifested:     {Shipped},
		Shipped:        {Delivered, Returned},
		Delivered:      {},
		Cancelled:      {},
		Returned:       {},
	}
}

// statusStrings maps every Status, including Unknown, to its wire representation.
func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "UNKNOWN",
		Draft:          "DRAFT",
		Created:        "CREATED",
		PendingPayment: "PENDING_PAYMENT",
		Paid:           "PAID",
		LabelReady:     "LABEL_READY",
		Manifested:     "MANIFESTED",
		Shipped:        "SHIPPED",
		Delivered:      "DELIVERED",
		Cancelled:      "CANCELLED",
		Returned:       "RETURNED",
	}
}

// AllStatuses returns every valid lifecycle status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Draft, Created, PendingPayment, Paid, LabelReady,
		Manifested, Shipped, Delivered, Cancelled, Returned}
}

// ParseStatus converts a wire representation ("DRAFT", "PAID", ...) back into
// a Status. Used when reconstructing shipments from persistence and when
// interpreting inbound webhook payloads.
func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid shipment status", s))
}

// String returns the wire representation of the status ("DRAFT", "PAID", ...).
// Invalid values render as "UNKNOWN".
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks that the Status value is a member of the defined enum.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := allowedTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", int(s)))
	}
	return nil
}

// IsTerminal reports whether the status has no outgoing transitions.
// The terminal statuses are Delivered, Cancelled and Returned.
func (s Status) IsTerminal() bool {
	edges, ok := allowedTransitions()[s]
	return ok && len(edges) == 0
}

// CanTransitionTo is a pure, side-effect-free query: it reports whether the
// transition table contains the edge s -> to. A same-state check on a valid
// status also reports true, so callers guarding against duplicate delivery of
// webhooks and jobs can treat an already-satisfied transition as permitted.
func (s Status) CanTransitionTo(to Status) bool {
	if s == to {
		return s.Validate() == nil
	}
	return slices.Contains(allowedTransitions()[s], to)
}

// TransitionTo returns the new status when the edge s -> to exists.
// A same-state transition is an idempotent no-op success, tolerating
// at-least-once delivery of payment webhooks and label jobs. A missing edge
// yields a StatusTransitionError and the status is left untouched.
func (s Status) TransitionTo(to Status) (Status, error) {
	if s == to {
		if err := s.Validate(); err != nil {
			return Unknown, err
		}
		return s, nil
	}
	if !slices.Contains(allowedTransitions()[s], to) {
		return Unknown, &StatusTransitionError{From: s, To: to}
	}
	return to, nil
}
