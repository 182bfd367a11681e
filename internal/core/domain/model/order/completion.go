package order

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCompletionPreconditions is the unwrap target for CompletionError, so
// callers can classify completion-gating failures with errors.Is.
var ErrCompletionPreconditions = errors.New("completion preconditions are not met")

// UnmetCondition names a single completion precondition that does not hold.
// The values are human-readable and surface directly to the technician.
type UnmetCondition string

const (
	// UnmetCheckIn means the technician never checked in (order was not started).
	UnmetCheckIn UnmetCondition = "check-in has not been recorded"

	// UnmetEvidencePhotos means no evidence photo has been attached.
	UnmetEvidencePhotos UnmetCondition = "at least one evidence photo is required"

	// UnmetServiceNotes means the service notes are empty or whitespace.
	UnmetServiceNotes UnmetCondition = "service notes are empty"

	// UnmetCustomerSignature means no customer signature has been captured.
	UnmetCustomerSignature UnmetCondition = "customer signature has not been captured"
)

// CompletionError reports every completion precondition that failed, not just
// the first. The full list lets the UI show the technician everything still
// missing in one pass, and SignatureOnly lets it shortcut straight into
// signature capture when that is the sole blocker.
//
// CompletionError never accompanies a state change: the order that produced
// it is left exactly as it was, with all captured evidence and items intact.
type CompletionError struct {
	Unmet []UnmetCondition
}

// NewCompletionError creates a CompletionError from the unmet condition list.
// The list must be non-empty; callers only construct this error after a
// failed checklist evaluation.
func NewCompletionError(unmet []UnmetCondition) *CompletionError {
	return &CompletionError{Unmet: unmet}
}

func (e *CompletionError) Error() string {
	parts := make([]string, len(e.Unmet))
	for i, condition := range e.Unmet {
		parts[i] = string(condition)
	}
	return fmt.Sprintf("%s: %s", ErrCompletionPreconditions, strings.Join(parts, "; "))
}

func (e *CompletionError) Unwrap() error {
	return ErrCompletionPreconditions
}

// SignatureOnly reports whether the customer signature is the only unmet
// condition. The UI uses this to offer the signature-capture shortcut instead
// of a plain failure message.
func (e *CompletionError) SignatureOnly() bool {
	return len(e.Unmet) == 1 && e.Unmet[0] == UnmetCustomerSignature
}
