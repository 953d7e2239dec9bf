/*
errors.go - Centralized error taxonomy for the staffing engine

PURPOSE:
  Every constraint the engine enforces fails with a distinct, typed error.
  The engine never logs or swallows a violation; callers branch on the kind
  and decide what to tell the user.

ERROR CATEGORIES:
  1. Conflict errors   - constraint violations (recoverable by the caller
                         with a different staff member, date, or range)
  2. Not-found errors  - referenced event/staff/position/rule is unknown
  3. Validation errors - malformed administrative input

USAGE:
  err := eng.AssignStaff(ctx, eventID, pos, staffID)
  var db *engine.DoubleBookedError
  if errors.As(err, &db) {
      // db.ConflictingEventID names the other booking
  }

SEE ALSO:
  - conflict.go: produces the assignment conflicts
  - capacity.go: produces LimitReachedError
  - rules.go:    produces RangeOverlapError
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNotQualified is returned when a staff member lacks the position in
	// their capability set.
	ErrNotQualified = errors.New("staff not qualified for position")

	// ErrAlreadyAssigned is returned when a staff member already holds a
	// different position on the same event.
	ErrAlreadyAssigned = errors.New("staff already assigned to another position on this event")

	// ErrDoubleBooked is returned when a staff member is already working
	// another event on the same calendar day.
	ErrDoubleBooked = errors.New("staff already booked on this day")

	// ErrSlotOccupied is returned when the target assignment slot already
	// holds a different staff member and the position has no open slot.
	ErrSlotOccupied = errors.New("assignment slot occupied")

	// ErrLimitReached is returned when creating an event would exceed the
	// daily event limit.
	ErrLimitReached = errors.New("daily event limit reached")

	// ErrRuleRangeOverlap is returned when a new rule's guest-count range
	// overlaps an existing rule.
	ErrRuleRangeOverlap = errors.New("rule guest-count range overlaps existing rule")

	// ErrUnknownEntity is returned when a referenced event, staff member,
	// position, or rule does not exist.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrInvalidInput is returned for malformed administrative writes
	// (inverted ranges, non-positive counts or limits).
	ErrInvalidInput = errors.New("invalid input")
)

// =============================================================================
// STRUCTURED ERRORS - Carry the context the caller needs to act
// =============================================================================

// NotQualifiedError identifies which capability was missing.
type NotQualifiedError struct {
	StaffID  StaffID
	Position Position
}

func (e *NotQualifiedError) Error() string {
	return fmt.Sprintf("staff %s is not qualified for position %s", e.StaffID, e.Position)
}

func (e *NotQualifiedError) Unwrap() error { return ErrNotQualified }

// AlreadyAssignedError identifies the position the staff member already holds
// on the target event.
type AlreadyAssignedError struct {
	StaffID  StaffID
	EventID  EventID
	Existing Position
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("staff %s already holds position %s on event %s", e.StaffID, e.Existing, e.EventID)
}

func (e *AlreadyAssignedError) Unwrap() error { return ErrAlreadyAssigned }

// DoubleBookedError identifies the other booking on the same day.
type DoubleBookedError struct {
	StaffID            StaffID
	Day                Day
	ConflictingEventID EventID
}

func (e *DoubleBookedError) Error() string {
	return fmt.Sprintf("staff %s is already booked on %s (event %s)", e.StaffID, e.Day, e.ConflictingEventID)
}

func (e *DoubleBookedError) Unwrap() error { return ErrDoubleBooked }

// LimitReachedError reports the current count against the configured limit.
type LimitReachedError struct {
	Day     Day
	Current int
	Limit   int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("daily event limit reached on %s: %d of %d", e.Day, e.Current, e.Limit)
}

func (e *LimitReachedError) Unwrap() error { return ErrLimitReached }

// RangeOverlapError identifies the existing rule the candidate collides with.
type RangeOverlapError struct {
	ExistingRuleID RuleID
	Min, Max       int
}

func (e *RangeOverlapError) Error() string {
	return fmt.Sprintf("guest-count range %d-%d overlaps rule %s", e.Min, e.Max, e.ExistingRuleID)
}

func (e *RangeOverlapError) Unwrap() error { return ErrRuleRangeOverlap }

// UnknownEntityError names the kind and id that failed to resolve.
type UnknownEntityError struct {
	Kind string // "event", "staff", "position", "rule", "add-on"
	ID   string
}

func (e *UnknownEntityError) Error() string {
	return fmt.Sprintf("unknown %s: %s", e.Kind, e.ID)
}

func (e *UnknownEntityError) Unwrap() error { return ErrUnknownEntity }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConflict returns true for constraint violations a caller can resolve by
// changing the request (different staff, date, slot, or range).
func IsConflict(err error) bool {
	return errors.Is(err, ErrNotQualified) ||
		errors.Is(err, ErrAlreadyAssigned) ||
		errors.Is(err, ErrDoubleBooked) ||
		errors.Is(err, ErrSlotOccupied) ||
		errors.Is(err, ErrLimitReached) ||
		errors.Is(err, ErrRuleRangeOverlap)
}

// IsNotFound returns true if the error indicates a missing entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownEntity)
}

// IsInvalid returns true for malformed administrative input.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
