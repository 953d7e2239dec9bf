/*
Package engine provides the core staffing and booking conflict engine.

PURPOSE:
  This package contains the types and algorithms that decide how many staff
  of each position a catering event needs, and whether a proposed staff
  assignment or event booking is allowed. Contact-record management (clients,
  venues, menus, email templates) lives outside this package; the engine only
  sees the entities it needs to enforce its constraints.

KEY CONCEPTS IN THIS FILE (types.go):
  - StaffingRule: A guest-count range mapped to required positions
  - AddOn: A bookable extra that pulls in additional positions
  - EventPosition: A position on an event with slot-indexed assignments
  - Event: A booking with date, guest count, add-ons, and positions
  - CapabilityCatalog: Which positions each staff member is qualified to fill

DESIGN PRINCIPLES:
  1. Snapshot semantics: positions are copied onto the event when resolved,
     never re-derived retroactively for historical events
  2. Typed failures: every constraint violation is a distinct error kind the
     caller branches on (see errors.go)
  3. Explicit dependencies: capability data is passed in as a value, the
     engine reads no ambient state

SEE ALSO:
  - resolver.go: guest count + add-ons -> required positions
  - conflict.go: double-booking and cross-position checks
  - engine.go:   single-writer facade serializing all mutations
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EventID string
type StaffID string
type AddOnID string
type RuleID string
type VenueID string
type ClientID string

// Position is a named staffing role, e.g. "Server" or "Bartender".
// Positions are compared by exact label.
type Position string

// =============================================================================
// STAFFING RULES - Guest-count ranges mapped to baseline staffing
// =============================================================================

// PositionCount is a position label with a required headcount.
type PositionCount struct {
	Position Position
	Count    int
}

// ExtraCondition boosts a position's count when a specific add-on is selected.
type ExtraCondition struct {
	AddOnID  AddOnID
	Position Position
	Count    int
}

// StaffingRule maps an inclusive guest-count range to baseline positions.
// Ranges across all rules in the store are pairwise non-overlapping; the
// overlap invariant is enforced at write time (see rules.go).
type StaffingRule struct {
	ID                RuleID
	MinGuests         int
	MaxGuests         int
	RequiredPositions []PositionCount
	ExtraConditions   []ExtraCondition
}

// Contains reports whether the rule's range covers the guest count.
func (r StaffingRule) Contains(guests int) bool {
	return guests >= r.MinGuests && guests <= r.MaxGuests
}

// Overlaps reports whether two rules' ranges share any guest count.
func (r StaffingRule) Overlaps(other StaffingRule) bool {
	return r.MinGuests <= other.MaxGuests && other.MinGuests <= r.MaxGuests
}

// =============================================================================
// ADD-ONS
// =============================================================================

// AddOn is a bookable extra (bar service, carving station, ...). Selecting it
// adds one of each associated position to the event, on top of any
// extra-condition boosts rules define for it.
type AddOn struct {
	ID                  AddOnID
	Name                string
	AssociatedPositions []Position
}

// =============================================================================
// EVENT POSITIONS - Slot-indexed staff assignments
// =============================================================================

// EventPosition is one position on an event with its assignment slots.
// Slots has length RequiredCount; an empty StaffID marks an open slot.
// A staff member appears in at most one slot of at most one position per
// event (enforced by the conflict checker, not by this type).
type EventPosition struct {
	Position      Position
	RequiredCount int
	Slots         []StaffID
}

// NewEventPosition returns an unassigned position with count open slots.
func NewEventPosition(label Position, count int) EventPosition {
	return EventPosition{
		Position:      label,
		RequiredCount: count,
		Slots:         make([]StaffID, count),
	}
}

// SlotOf returns the slot index holding staffID, or -1.
func (p EventPosition) SlotOf(staffID StaffID) int {
	for i, s := range p.Slots {
		if s == staffID {
			return i
		}
	}
	return -1
}

// OpenSlot returns the first empty slot index, or -1 if the position is full.
func (p EventPosition) OpenSlot() int {
	for i, s := range p.Slots {
		if s == "" {
			return i
		}
	}
	return -1
}

// Assigned returns the non-empty slot values in slot order.
func (p EventPosition) Assigned() []StaffID {
	var out []StaffID
	for _, s := range p.Slots {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Clone returns a deep copy. Positions are mutated in place by assignment;
// stores hand out copies so readers never observe a half-applied write.
func (p EventPosition) Clone() EventPosition {
	slots := make([]StaffID, len(p.Slots))
	copy(slots, p.Slots)
	return EventPosition{Position: p.Position, RequiredCount: p.RequiredCount, Slots: slots}
}

// =============================================================================
// EVENT - A booking in the ledger
// =============================================================================

// Event is a catering booking. Positions are a snapshot produced by the
// resolver; changing GuestCount or AddOnIDs regenerates them (see regen.go).
// IsArchived flips exactly once, Active -> Archived, when the date passes.
type Event struct {
	ID         EventID
	Date       time.Time
	VenueID    VenueID
	ClientID   ClientID
	GuestCount int
	AddOnIDs   []AddOnID
	Positions  []EventPosition
	IsArchived bool
	CreatedAt  time.Time
}

// PositionByLabel returns a pointer into Positions, or nil.
func (e *Event) PositionByLabel(label Position) *EventPosition {
	for i := range e.Positions {
		if e.Positions[i].Position == label {
			return &e.Positions[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	out := *e
	out.AddOnIDs = append([]AddOnID(nil), e.AddOnIDs...)
	out.Positions = make([]EventPosition, len(e.Positions))
	for i, p := range e.Positions {
		out.Positions[i] = p.Clone()
	}
	return &out
}

// =============================================================================
// STAFF & CAPABILITIES
// =============================================================================

// Staff is a staff record as the engine sees it: an id and the set of
// position labels the person is qualified to fill. Owned by staff-management;
// read-only here.
type Staff struct {
	ID        StaffID
	Name      string
	Positions []Position
}

// CanFill reports whether the staff member is qualified for the position.
func (s Staff) CanFill(label Position) bool {
	for _, p := range s.Positions {
		if p == label {
			return true
		}
	}
	return false
}

// CapabilityCatalog maps staff ids to their qualified positions. It is built
// from the staff store and passed into the conflict checker explicitly so the
// engine has no hidden dependency on ambient staff state.
type CapabilityCatalog map[StaffID][]Position

// Qualified reports whether staffID may fill the position. Unknown staff are
// not qualified for anything.
func (c CapabilityCatalog) Qualified(staffID StaffID, label Position) bool {
	for _, p := range c[staffID] {
		if p == label {
			return true
		}
	}
	return false
}

// Knows reports whether the catalog has an entry for staffID at all.
func (c CapabilityCatalog) Knows(staffID StaffID) bool {
	_, ok := c[staffID]
	return ok
}

// =============================================================================
// DROPPED ASSIGNMENTS - Regeneration side effect
// =============================================================================

// DroppedAssignment records a staff assignment that position regeneration
// could not carry forward. Surfaced to the caller as information, never as
// an error; the UI decides how to warn the user.
type DroppedAssignment struct {
	Position Position
	StaffID  StaffID
}

// =============================================================================
// RATE CARD - Hourly rates per position (estimation only)
// =============================================================================

// RateCard maps position labels to hourly rates. Positions without an entry
// estimate at zero.
type RateCard map[Position]decimal.Decimal

// DefaultDailyEventLimit is the daily capacity cap until an administrator
// changes it.
const DefaultDailyEventLimit = 3
