package order

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// Priority represents the ordinal severity of a service order.
// It is informational to the execution workflow: no transition is gated on it.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// PriorityLow marks routine work with no urgency.
	PriorityLow

	// PriorityMedium marks standard scheduled work.
	PriorityMedium

	// PriorityHigh marks work that should be handled before routine orders.
	PriorityHigh

	// PriorityUrgent marks work requiring immediate attention.
	PriorityUrgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "Unknown",
		PriorityLow:     "Low",
		PriorityMedium:  "Medium",
		PriorityHigh:    "High",
		PriorityUrgent:  "Urgent",
	}
}

// Validate checks if the Priority value is valid.
// PriorityUnknown (0) and any other values are invalid.
func (p Priority) Validate() error {
	if p < PriorityLow || p > PriorityUrgent {
		return errs.NewValueIsInvalidErrorWithCause("priority is invalid", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String returns the human-readable name of the priority.
// This method implements the fmt.Stringer interface and is safe to call on
// any Priority value, including invalid ones.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "Unknown"
}
