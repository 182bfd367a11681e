package order

import (
	"fmt"

	"fieldservice/internal/pkg/errs"
)

// Status represents the lifecycle state of a service order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct field execution workflow.
//
// State transitions:
//
//	New/Pending ──> InProgress ──> Completed
//
// New and Pending are treated identically by the execution workflow: both
// mean the technician has not yet checked in. Cancelled is a terminal state
// reachable from any other state, but it is only ever written by an external
// collaborator (office-side cancellation), never by a guarded transition in
// this workflow.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status when an order is first created.
	New

	// Pending marks an order scheduled but not yet started.
	// The execution workflow treats Pending exactly like New.
	Pending

	// InProgress indicates the technician has checked in and is executing
	// the order in the field.
	InProgress

	// Completed indicates the order has been finished with all evidence
	// captured. This is a final state for this workflow.
	Completed

	// Cancelled is a terminal state written only by external collaborators.
	// No guarded transition in this workflow produces it.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		New:        "New",
		Pending:    "Pending",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		New:        "New",
		Pending:    "Pending",
		InProgress: "InProgress",
		Completed:  "Completed",
		Cancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: New, Pending, InProgress, Completed, Cancelled.
// Unknown (0) and any other values are invalid.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateStart checks if the status allows starting field execution without
// performing the transition.
//
// Valid statuses for starting:
//   - New (not yet started)
//   - Pending (scheduled, not yet started)
//
// Invalid statuses for starting:
//   - InProgress (already started)
//   - Completed, Cancelled (terminal)
//   - Unknown (invalid status)
//
// Returns:
//   - nil if starting is allowed from the current status
//   - error with details if starting is not allowed
func (s Status) ValidateStart() error {
	if s != New && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start", s.String()),
		)
	}
	return nil
}

// Start transitions the status to InProgress.
//
// Valid transitions:
//   - New -> InProgress
//   - Pending -> InProgress
//
// Returns:
//   - (InProgress, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
//
// This method is used by Order.Start() to enforce state transitions.
func (s Status) Start() (Status, error) {
	if err := s.ValidateStart(); err != nil {
		return 0, err
	}

	return InProgress, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - InProgress -> Completed
//
// Invalid transitions:
//   - New/Pending -> Completed (technician must check in first)
//   - Cancelled -> Completed (terminal)
//   - Unknown -> Completed (invalid initial state)
//
// Completing an already Completed order is not a valid transition at the
// Status level; Order.Complete treats that case as an idempotent no-op
// before consulting this method.
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if the transition is not allowed from the current status
func (s Status) Complete() (Status, error) {
	if s != InProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}
