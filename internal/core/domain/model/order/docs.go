// Package order provides domain entities and business logic for the service
// order execution workflow. It implements the Order aggregate root with
// lifecycle management, evidence capture, and guarded state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, evidence, and lifecycle
//   - Status: A state machine that enforces valid execution transitions
//   - GeoEvent: A timestamped geolocation capture (check-in / check-out)
//   - Photo: An evidence photo already persisted in blob storage
//   - LineItem: A billable quantity x unit price entry with a derived total
//   - CompletionError: The full set of unmet completion preconditions
//
// Key business rules:
//   - Execution follows New/Pending -> InProgress -> Completed; Cancelled is
//     written only by external collaborators
//   - Starting requires a geolocation check-in; an existing check-in is never
//     overwritten
//   - Completion requires check-in, at least one photo, non-blank notes, and
//     a customer signature, evaluated as a set and reported together
//   - The order's monetary value is always derived from line-item totals
//   - Failed transitions never discard captured evidence or items
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
