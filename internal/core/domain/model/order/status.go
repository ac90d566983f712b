package order

import (
	"errors"
	"fmt"

	"restaurant/internal/pkg/errs"
)

// ErrIllegalTransition is the sentinel matched by every IllegalTransitionError.
var ErrIllegalTransition = errors.New("illegal order status transition")

// IllegalTransitionError reports a requested transition that the graph does not allow.
// From carries the status the order actually had, so callers can report it back.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> Served ──> Completed
//	   │            │           │
//	   └────────────┴───────────┴──> Cancelled
//
// Pending, Preparing and Ready are active: they keep the owning table occupied.
// Served, Completed and Cancelled are released.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the kitchen has not started the order.
	Pending

	// Preparing means the kitchen is cooking the order.
	Preparing

	// Ready means the order waits at the pass to be carried to the table.
	Ready

	// Served means the order reached the table. The order stops holding the table.
	Served

	// Completed means the served order has been paid out.
	Completed

	// Cancelled means the order was abandoned before being served.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Preparing: "preparing",
		Ready:     "ready",
		Served:    "served",
		Completed: "completed",
		Cancelled: "cancelled",
	}
}

// getTransitions lists, for every status, the statuses reachable in one step.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Completed, Cancelled and Unknown have no outgoing edges
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Served, Cancelled},
		Served:    {Completed},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Preparing, Ready, Served, Completed, Cancelled}
}

// ActiveStatuses returns the statuses that keep a table occupied.
func ActiveStatuses() []Status {
	return []Status{Pending, Preparing, Ready}
}

// ReleasedStatuses returns the statuses that no longer hold a table.
func ReleasedStatuses() []Status {
	return []Status{Served, Completed, Cancelled}
}

// RevenueStatuses returns the statuses whose totals count as revenue.
func RevenueStatuses() []Status {
	return []Status{Served, Completed}
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted and wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus maps a wire or persisted name to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("order status", fmt.Errorf("%q is not a valid status", s))
}

// IsActive reports whether an order in this status keeps its table occupied.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing || s == Ready
}

// IsReleased reports whether an order in this status no longer holds its table.
func (s Status) IsReleased() bool {
	return s == Served || s == Completed || s == Cancelled
}

// CanTransitionTo reports whether target is reachable from s in one step.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target if the graph allows s -> target.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (Unknown, ValueIsInvalidError) if target is not a valid status
//   - (Unknown, *IllegalTransitionError) if target is not reachable from s
//
// Example:
//
//	next, err := order.Pending.TransitionTo(order.Ready)
//	// err is *IllegalTransitionError: Pending must go through Preparing first
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(target) {
		return Unknown, &IllegalTransitionError{From: s, To: target}
	}
	return target, nil
}
