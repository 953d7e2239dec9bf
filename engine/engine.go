/*
engine.go - Single-writer facade over the booking ledger

PURPOSE:
  Every mutation of the booking ledger goes through this facade: event
  creation, event edits (position regeneration), staff assignment and
  removal, archival, rule writes, and the daily-limit setter. The facade
  holds one mutex around each evaluate-constraint-then-mutate sequence.

WHY ONE LOCK:
  Day-exclusivity and the daily capacity count are read-then-write checks
  over shared state. Two concurrent creations on the same day, or two
  assignments of the same person, would otherwise both pass their check and
  both commit. Reads (dashboard, calendar) do not take the lock and must
  tolerate a ledger that changes between read and a later write; writes
  always re-validate under the lock.

ERROR CONTRACT:
  Constraint violations are terminal for the request and surface as typed
  errors (see errors.go). There is no retry logic and the engine never logs
  a violation.

SEE ALSO:
  - conflict.go: the assignment checks
  - capacity.go: the per-day event cap
  - archive.go:  the lazy Active -> Archived sweep
*/
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Engine coordinates all booking-ledger mutations.
type Engine struct {
	mu    sync.Mutex
	store Store

	checker *ConflictChecker
	guard   *DailyCapacityGuard
}

// New creates an engine with day-granularity exclusivity.
func New(store Store) *Engine {
	return &Engine{
		store:   store,
		checker: NewConflictChecker(store),
		guard:   &DailyCapacityGuard{Events: store, Settings: store},
	}
}

// SetExclusivity swaps the booking-window predicate. Call before serving
// traffic; the checker is not swapped under concurrent assignments.
func (e *Engine) SetExclusivity(p ExclusivityPolicy) {
	e.checker.Exclusivity = p
}

// Store exposes the underlying store for read paths (dashboard, catalogs).
func (e *Engine) Store() Store { return e.store }

// =============================================================================
// EVENT CREATION
// =============================================================================

// CreateEventRequest carries the booking input from the request layer.
type CreateEventRequest struct {
	ID         EventID
	Date       time.Time
	VenueID    VenueID
	ClientID   ClientID
	GuestCount int
	AddOnIDs   []AddOnID
}

// CreateEvent checks the daily capacity guard, resolves positions from the
// current rules and add-ons, and persists the event. The capacity check
// happens under the mutation lock, at the moment of creation.
func (e *Engine) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	if req.ID == "" || req.GuestCount < 1 {
		return nil, ErrInvalidInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.guard.CanCreateEvent(ctx, req.Date); err != nil {
		return nil, err
	}

	positions, err := e.resolve(ctx, req.GuestCount, req.AddOnIDs)
	if err != nil {
		return nil, err
	}

	ev := Event{
		ID:         req.ID,
		Date:       req.Date,
		VenueID:    req.VenueID,
		ClientID:   req.ClientID,
		GuestCount: req.GuestCount,
		AddOnIDs:   append([]AddOnID(nil), req.AddOnIDs...),
		Positions:  positions,
		CreatedAt:  time.Now().UTC(),
	}
	if err := e.store.SaveEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev.Clone(), nil
}

// =============================================================================
// EVENT EDITS - Regenerate positions, preserve assignments
// =============================================================================

// UpdateEvent changes an event's guest count and add-on selection,
// regenerating its positions. Assignments carry forward by position label;
// the returned DroppedAssignment list names every assignment that could not
// be preserved, so the caller can warn the user.
func (e *Engine) UpdateEvent(ctx context.Context, id EventID, guestCount int, addOnIDs []AddOnID) (*Event, []DroppedAssignment, error) {
	if guestCount < 1 {
		return nil, nil, ErrInvalidInput
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.GetEvent(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if ev == nil {
		return nil, nil, &UnknownEntityError{Kind: "event", ID: string(id)}
	}
	if ev.IsArchived {
		return nil, nil, fmt.Errorf("event %s is archived: %w", id, ErrInvalidInput)
	}

	resolved, err := e.resolve(ctx, guestCount, addOnIDs)
	if err != nil {
		return nil, nil, err
	}

	merged, dropped := Regenerate(ev.Positions, resolved)
	ev.GuestCount = guestCount
	ev.AddOnIDs = append([]AddOnID(nil), addOnIDs...)
	ev.Positions = merged

	if err := e.store.SaveEvent(ctx, *ev); err != nil {
		return nil, nil, err
	}
	return ev.Clone(), dropped, nil
}

// =============================================================================
// STAFF ASSIGNMENT / REMOVAL
// =============================================================================

// AssignStaff places staffID into the first open slot of the position.
func (e *Engine) AssignStaff(ctx context.Context, eventID EventID, label Position, staffID StaffID) error {
	return e.assign(ctx, eventID, label, -1, staffID)
}

// AssignStaffSlot places staffID into an explicit slot index.
func (e *Engine) AssignStaffSlot(ctx context.Context, eventID EventID, label Position, slot int, staffID StaffID) error {
	if slot < 0 {
		return ErrInvalidInput
	}
	return e.assign(ctx, eventID, label, slot, staffID)
}

func (e *Engine) assign(ctx context.Context, eventID EventID, label Position, slot int, staffID StaffID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return &UnknownEntityError{Kind: "event", ID: string(eventID)}
	}
	if ev.IsArchived {
		return fmt.Errorf("event %s is archived: %w", eventID, ErrInvalidInput)
	}

	st, err := e.store.GetStaff(ctx, staffID)
	if err != nil {
		return err
	}
	if st == nil {
		return &UnknownEntityError{Kind: "staff", ID: string(staffID)}
	}

	staff, err := e.store.ListStaff(ctx)
	if err != nil {
		return err
	}
	catalog := CatalogFromStaff(staff)

	resolved, err := e.checker.CanAssign(ctx, catalog, ev, label, slot, staffID)
	if err != nil {
		return err
	}

	pos := ev.PositionByLabel(label)
	pos.Slots[resolved] = staffID
	return e.store.SaveEvent(ctx, *ev)
}

// RemoveStaff clears staffID from a position. Removing an unassigned staff
// member is a no-op success.
func (e *Engine) RemoveStaff(ctx context.Context, eventID EventID, label Position, staffID StaffID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ev, err := e.store.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if ev == nil {
		return &UnknownEntityError{Kind: "event", ID: string(eventID)}
	}

	if err := Remove(ev, label, staffID); err != nil {
		return err
	}
	return e.store.SaveEvent(ctx, *ev)
}

// =============================================================================
// READS - No lock; re-validated on any later write
// =============================================================================

// ResolvePositions previews the roster for a guest count and add-on
// selection without creating anything.
func (e *Engine) ResolvePositions(ctx context.Context, guestCount int, addOnIDs []AddOnID) ([]EventPosition, error) {
	return e.resolve(ctx, guestCount, addOnIDs)
}

func (e *Engine) resolve(ctx context.Context, guestCount int, addOnIDs []AddOnID) ([]EventPosition, error) {
	rules, err := e.store.ListRules(ctx)
	if err != nil {
		return nil, err
	}
	addOns, err := e.store.ListAddOns(ctx)
	if err != nil {
		return nil, err
	}
	return Resolve(guestCount, addOnIDs, rules, addOns), nil
}

// DailyCount returns the current non-archived count and limit for a day.
func (e *Engine) DailyCount(ctx context.Context, date time.Time) (current, limit int, err error) {
	return e.guard.DailyCount(ctx, date)
}

// Dashboard sweeps archival, then returns the active events. Archival is
// triggered lazily by this read; there is no background timer.
func (e *Engine) Dashboard(ctx context.Context, now time.Time) ([]Event, error) {
	if _, err := e.SweepArchived(ctx, now); err != nil {
		return nil, err
	}
	return e.store.ListEvents(ctx, false)
}

// =============================================================================
// ARCHIVAL
// =============================================================================

// SweepArchived runs the Active -> Archived sweep under the mutation lock.
func (e *Engine) SweepArchived(ctx context.Context, now time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return SweepArchived(ctx, e.store, now)
}

// =============================================================================
// ADMINISTRATION - Rules and the daily limit
// =============================================================================

// CreateRule validates the rule (shape and range overlap) against the
// stored rule set and persists it.
func (e *Engine) CreateRule(ctx context.Context, rule StaffingRule) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return createRule(ctx, e.store, rule)
}

// DeleteRule removes a rule. Historical events keep their snapshotted
// positions; nothing is re-derived.
func (e *Engine) DeleteRule(ctx context.Context, id RuleID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.DeleteRule(ctx, id)
}

// SetDailyLimit updates the process-wide daily event limit.
func (e *Engine) SetDailyLimit(ctx context.Context, limit int) error {
	if limit < 1 {
		return ErrInvalidInput
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.SetDailyEventLimit(ctx, limit)
}
