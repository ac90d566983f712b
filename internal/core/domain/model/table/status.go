package table

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status is the occupancy state of a table.
//
//	Available <──> Occupied
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	// Available means no active order is hosted by the table.
	Available
	// Occupied means at least one active order is hosted by the table.
	Occupied
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Available: "available",
		Occupied:  "occupied",
	}
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if s != Available && s != Occupied {
		return errs.NewValueIsInvalidErrorWithCause("table status", fmt.Errorf("%d is not a valid status", s))
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

// ParseStatus maps a persisted name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("table status", fmt.Errorf("%q is not a valid status", s))
}
