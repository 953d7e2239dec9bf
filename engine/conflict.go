/*
conflict.go - Staff assignment validation

PURPOSE:
  Validates a proposed staff assignment against the target event and the
  booking ledger. Checks run in a fixed order and the first failing check
  wins:

    1. Capability          -> NotQualifiedError
    2. Intra-event         -> AlreadyAssignedError (one position per event)
    3. Slot occupancy      -> ErrSlotOccupied (idempotent re-assign is OK)
    4. Day exclusivity     -> DoubleBookedError (one event per day)

EXCLUSIVITY STRATEGY:
  Day granularity is deliberate: two events at different hours on the same
  date still conflict. The predicate is behind ExclusivityPolicy so a
  time-window strategy can be substituted later without changing the call
  contract. Candidate events are still fetched through the day index; a
  finer policy narrows within the day.

SEE ALSO:
  - engine.go: holds the mutation lock around check-then-assign
*/
package engine

import (
	"context"
	"time"
)

// =============================================================================
// EXCLUSIVITY POLICY - Pluggable booking-window predicate
// =============================================================================

// ExclusivityPolicy decides whether two event timestamps contend for the
// same staff member.
type ExclusivityPolicy interface {
	// SharesWindow reports whether events at a and b conflict.
	SharesWindow(a, b time.Time) bool
}

// DayExclusivity treats any two events on the same calendar day as
// conflicting. This is the product's default granularity.
type DayExclusivity struct{}

func (DayExclusivity) SharesWindow(a, b time.Time) bool { return SameDay(a, b) }

// =============================================================================
// CONFLICT CHECKER
// =============================================================================

// ConflictChecker validates assignments against an event and the ledger.
// It does not mutate anything; the Engine facade applies the assignment
// after a successful check, under its mutation lock.
type ConflictChecker struct {
	Events      EventStore
	Exclusivity ExclusivityPolicy
}

func NewConflictChecker(events EventStore) *ConflictChecker {
	return &ConflictChecker{Events: events, Exclusivity: DayExclusivity{}}
}

// CanAssign validates assigning staffID to the given slot of a position on
// the event. A negative slot means "first open slot"; the resolved slot
// index is returned. A person already holding a slot of the position keeps
// it: the re-assign resolves to that slot as a no-op success.
func (c *ConflictChecker) CanAssign(ctx context.Context, catalog CapabilityCatalog, ev *Event, label Position, slot int, staffID StaffID) (int, error) {
	pos := ev.PositionByLabel(label)
	if pos == nil {
		return -1, &UnknownEntityError{Kind: "position", ID: string(label)}
	}

	// 1. Capability
	if !catalog.Qualified(staffID, label) {
		return -1, &NotQualifiedError{StaffID: staffID, Position: label}
	}

	// 2. Intra-event exclusivity: one position per person per event
	for i := range ev.Positions {
		other := &ev.Positions[i]
		if other.Position == label {
			continue
		}
		if other.SlotOf(staffID) >= 0 {
			return -1, &AlreadyAssignedError{StaffID: staffID, EventID: ev.ID, Existing: other.Position}
		}
	}

	// 3. Slot occupancy. A person holds at most one slot of the position:
	// any re-assign resolves to the slot they already hold.
	if existing := pos.SlotOf(staffID); existing >= 0 {
		return existing, nil // idempotent re-assign
	}
	if slot < 0 {
		slot = pos.OpenSlot()
		if slot < 0 {
			return -1, ErrSlotOccupied
		}
	} else {
		if slot >= len(pos.Slots) {
			return -1, &UnknownEntityError{Kind: "position", ID: string(label)}
		}
		if pos.Slots[slot] != "" {
			return -1, ErrSlotOccupied
		}
	}

	// 4. Day exclusivity across the ledger
	sameDay, err := c.Events.ListEventsOnDay(ctx, DayOf(ev.Date))
	if err != nil {
		return -1, err
	}
	for i := range sameDay {
		other := &sameDay[i]
		if other.ID == ev.ID || !c.Exclusivity.SharesWindow(ev.Date, other.Date) {
			continue
		}
		for j := range other.Positions {
			if other.Positions[j].SlotOf(staffID) >= 0 {
				return -1, &DoubleBookedError{
					StaffID:            staffID,
					Day:                DayOf(ev.Date),
					ConflictingEventID: other.ID,
				}
			}
		}
	}

	return slot, nil
}

// Remove clears staffID from the position's slots. Removing someone who is
// not assigned is a no-op success; the only failure is an unknown position.
func Remove(ev *Event, label Position, staffID StaffID) error {
	pos := ev.PositionByLabel(label)
	if pos == nil {
		return &UnknownEntityError{Kind: "position", ID: string(label)}
	}
	if i := pos.SlotOf(staffID); i >= 0 {
		pos.Slots[i] = ""
	}
	return nil
}
