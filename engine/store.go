/*
store.go - Persistence interfaces for the booking ledger and catalogs

PURPOSE:
  Defines the boundary between the engine and the database. The booking
  ledger is the set of all non-archived events; the catalogs (rules,
  add-ons, staff) are administrative data the engine reads to enforce its
  constraints.

KEY INTERFACES:
  EventStore:    Booking ledger persistence with day-indexed lookup
  RuleStore:     Staffing rule persistence
  AddOnStore:    Add-on definitions
  StaffStore:    Staff capability records (read-mostly from here)
  SettingsStore: Process-wide daily event limit

CONCURRENCY CONTRACT:
  Implementations must be safe for concurrent readers. Write serialization
  is NOT their job: the Engine facade holds a single mutex around every
  evaluate-constraint-then-mutate sequence, because day-exclusivity and the
  daily capacity count are check-then-act reads over shared state.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: production SQLite
  - engine/store/memory.go: in-memory for tests
*/
package engine

import "context"

// =============================================================================
// EVENT STORE - The booking ledger
// =============================================================================

// EventStore persists events. Get/List return deep copies; mutations go
// through SaveEvent so a reader never observes a half-applied write.
type EventStore interface {
	// SaveEvent inserts or replaces an event.
	SaveEvent(ctx context.Context, ev Event) error

	// GetEvent returns the event or nil if absent.
	GetEvent(ctx context.Context, id EventID) (*Event, error)

	// ListEvents returns all events, optionally including archived ones,
	// ordered by date ascending.
	ListEvents(ctx context.Context, includeArchived bool) ([]Event, error)

	// ListEventsOnDay returns the non-archived events on a calendar day.
	ListEventsOnDay(ctx context.Context, day Day) ([]Event, error)

	// DeleteEvent removes an event entirely (administrative cleanup only;
	// normal lifecycle ends at archived).
	DeleteEvent(ctx context.Context, id EventID) error
}

// =============================================================================
// CATALOG STORES
// =============================================================================

type RuleStore interface {
	SaveRule(ctx context.Context, rule StaffingRule) error
	GetRule(ctx context.Context, id RuleID) (*StaffingRule, error)
	ListRules(ctx context.Context) ([]StaffingRule, error)
	DeleteRule(ctx context.Context, id RuleID) error
}

type AddOnStore interface {
	SaveAddOn(ctx context.Context, addOn AddOn) error
	GetAddOn(ctx context.Context, id AddOnID) (*AddOn, error)
	ListAddOns(ctx context.Context) ([]AddOn, error)
	DeleteAddOn(ctx context.Context, id AddOnID) error
}

type StaffStore interface {
	SaveStaff(ctx context.Context, st Staff) error
	GetStaff(ctx context.Context, id StaffID) (*Staff, error)
	ListStaff(ctx context.Context) ([]Staff, error)
	DeleteStaff(ctx context.Context, id StaffID) error
}

// SettingsStore holds the process-wide daily event limit.
type SettingsStore interface {
	// DailyEventLimit returns the configured limit, or
	// DefaultDailyEventLimit if never set.
	DailyEventLimit(ctx context.Context) (int, error)

	SetDailyEventLimit(ctx context.Context, limit int) error
}

// Store is the full persistence surface the Engine facade needs.
type Store interface {
	EventStore
	RuleStore
	AddOnStore
	StaffStore
	SettingsStore
}

// CatalogFromStaff builds a CapabilityCatalog from staff records.
func CatalogFromStaff(staff []Staff) CapabilityCatalog {
	catalog := make(CapabilityCatalog, len(staff))
	for _, s := range staff {
		catalog[s.ID] = append([]Position(nil), s.Positions...)
	}
	return catalog
}
