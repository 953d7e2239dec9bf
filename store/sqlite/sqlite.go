/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements engine.Store (booking ledger + catalogs + settings) plus the
  contact-record tables the surrounding product needs (clients, venues) and
  the position rate card used for labor estimates.

KEY TABLES:
  events:          The booking ledger. Positions are stored as a JSON
                   snapshot; a derived day column backs same-day lookups.
  staffing_rules:  Guest-count ranges with required positions and
                   extra conditions (JSON columns).
  add_ons:         Add-on definitions with associated positions.
  staff:           Capability records.
  clients, venues: Plain contact records.
  position_rates:  Hourly rate per position label.
  settings:        Key/value; holds the daily event limit.

DAY INDEX:
  idx_events_day on (day, is_archived) is the hot path: the conflict
  checker and the capacity guard both scan same-day non-archived events.

CONCURRENCY:
  A sync.RWMutex guards the connection. Write serialization across
  check-then-act sequences is the engine facade's job, not this package's.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so dashboard reads
  don't block writes.

USAGE:
  store, err := sqlite.New("./data/catering.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  eng := engine.New(store)

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - engine/store.go: Interface definitions
  - engine/store/memory.go: In-memory implementation for tests
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/mise/staffing-engine/engine"
)

// Store implements engine.Store plus the contact-record surface.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Booking ledger
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		day TEXT NOT NULL,
		venue_id TEXT,
		client_id TEXT,
		guest_count INTEGER NOT NULL,
		add_on_ids TEXT NOT NULL,
		positions_json TEXT NOT NULL,
		is_archived BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL
	);

	-- Hot path: same-day non-archived scans (conflict checker, capacity guard)
	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day, is_archived);
	CREATE INDEX IF NOT EXISTS idx_events_archived ON events(is_archived, date);

	-- Staffing rules (ranges validated non-overlapping at write time)
	CREATE TABLE IF NOT EXISTS staffing_rules (
		id TEXT PRIMARY KEY,
		min_guests INTEGER NOT NULL,
		max_guests INTEGER NOT NULL,
		required_json TEXT NOT NULL,
		extras_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rules_range ON staffing_rules(min_guests, max_guests);

	-- Add-ons
	CREATE TABLE IF NOT EXISTS add_ons (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		positions_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Staff capability records
	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		positions_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Contact records
	CREATE TABLE IF NOT EXISTS clients (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS venues (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		capacity INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	-- Hourly rates per position (labor estimates only)
	CREATE TABLE IF NOT EXISTS position_rates (
		position TEXT PRIMARY KEY,
		hourly_rate TEXT NOT NULL
	);

	-- Process-wide settings (daily event limit)
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

const settingDailyLimit = "daily_event_limit"

// =============================================================================
// EVENT STORE (engine.EventStore interface)
// =============================================================================

type positionJSON struct {
	Position      string   `json:"position"`
	RequiredCount int      `json:"required_count"`
	Slots         []string `json:"slots"`
}

func marshalPositions(positions []engine.EventPosition) (string, error) {
	out := make([]positionJSON, len(positions))
	for i, p := range positions {
		slots := make([]string, len(p.Slots))
		for j, s := range p.Slots {
			slots[j] = string(s)
		}
		out[i] = positionJSON{Position: string(p.Position), RequiredCount: p.RequiredCount, Slots: slots}
	}
	b, err := json.Marshal(out)
	return string(b), err
}

func unmarshalPositions(raw string) ([]engine.EventPosition, error) {
	var in []positionJSON
	if err := json.Unmarshal([]byte(raw), &in); err != nil {
		return nil, err
	}
	out := make([]engine.EventPosition, len(in))
	for i, p := range in {
		slots := make([]engine.StaffID, len(p.Slots))
		for j, s := range p.Slots {
			slots[j] = engine.StaffID(s)
		}
		if len(slots) < p.RequiredCount {
			grown := make([]engine.StaffID, p.RequiredCount)
			copy(grown, slots)
			slots = grown
		}
		out[i] = engine.EventPosition{
			Position:      engine.Position(p.Position),
			RequiredCount: p.RequiredCount,
			Slots:         slots,
		}
	}
	return out, nil
}

// SaveEvent inserts or replaces an event.
func (s *Store) SaveEvent(ctx context.Context, ev engine.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions, err := marshalPositions(ev.Positions)
	if err != nil {
		return fmt.Errorf("failed to encode positions: %w", err)
	}
	addOns, err := json.Marshal(ev.AddOnIDs)
	if err != nil {
		return fmt.Errorf("failed to encode add-ons: %w", err)
	}

	createdAt := ev.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO events
		(id, date, day, venue_id, client_id, guest_count, add_on_ids, positions_json, is_archived, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			day = excluded.day,
			venue_id = excluded.venue_id,
			client_id = excluded.client_id,
			guest_count = excluded.guest_count,
			add_on_ids = excluded.add_on_ids,
			positions_json = excluded.positions_json,
			is_archived = excluded.is_archived
	`

	_, err = s.db.ExecContext(ctx, query,
		ev.ID,
		ev.Date.UTC().Format(time.RFC3339),
		engine.DayOf(ev.Date).String(),
		ev.VenueID,
		ev.ClientID,
		ev.GuestCount,
		string(addOns),
		positions,
		ev.IsArchived,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}
	return nil
}

const eventColumns = `id, date, venue_id, client_id, guest_count, add_on_ids, positions_json, is_archived, created_at`

// GetEvent returns the event or nil if absent.
func (s *Store) GetEvent(ctx context.Context, id engine.EventID) (*engine.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events, err := s.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, nil
	}
	return &events[0], nil
}

// ListEvents returns events ordered by date ascending.
func (s *Store) ListEvents(ctx context.Context, includeArchived bool) ([]engine.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date ASC, id ASC`
	if !includeArchived {
		query = `SELECT ` + eventColumns + ` FROM events WHERE is_archived = FALSE ORDER BY date ASC, id ASC`
	}
	return s.queryEvents(ctx, query)
}

// ListEventsOnDay returns non-archived events on a calendar day.
func (s *Store) ListEventsOnDay(ctx context.Context, day engine.Day) ([]engine.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEvents(ctx,
		`SELECT `+eventColumns+` FROM events WHERE day = ? AND is_archived = FALSE ORDER BY id ASC`,
		day.String())
}

// DeleteEvent removes an event.
func (s *Store) DeleteEvent(ctx context.Context, id engine.EventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	return err
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]engine.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []engine.Event
	for rows.Next() {
		var (
			ev        engine.Event
			date      string
			addOns    string
			positions string
			createdAt string
		)
		if err := rows.Scan(&ev.ID, &date, &ev.VenueID, &ev.ClientID, &ev.GuestCount,
			&addOns, &positions, &ev.IsArchived, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}

		ev.Date, _ = time.Parse(time.RFC3339, date)
		ev.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if err := json.Unmarshal([]byte(addOns), &ev.AddOnIDs); err != nil {
			return nil, fmt.Errorf("failed to decode add-ons for event %s: %w", ev.ID, err)
		}
		if ev.Positions, err = unmarshalPositions(positions); err != nil {
			return nil, fmt.Errorf("failed to decode positions for event %s: %w", ev.ID, err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// =============================================================================
// RULE STORE (engine.RuleStore interface)
// =============================================================================

// SaveRule persists a rule. Overlap validation happens in the engine
// before the write; the store writes what it is given.
func (s *Store) SaveRule(ctx context.Context, rule engine.StaffingRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	required, err := json.Marshal(rule.RequiredPositions)
	if err != nil {
		return err
	}
	extras, err := json.Marshal(rule.ExtraConditions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO staffing_rules (id, min_guests, max_guests, required_json, extras_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			min_guests = excluded.min_guests,
			max_guests = excluded.max_guests,
			required_json = excluded.required_json,
			extras_json = excluded.extras_json
	`
	_, err = s.db.ExecContext(ctx, query,
		rule.ID, rule.MinGuests, rule.MaxGuests,
		string(required), string(extras),
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetRule returns the rule or nil if absent.
func (s *Store) GetRule(ctx context.Context, id engine.RuleID) (*engine.StaffingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules, err := s.queryRules(ctx,
		`SELECT id, min_guests, max_guests, required_json, extras_json FROM staffing_rules WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, nil
	}
	return &rules[0], nil
}

// ListRules returns all rules ordered by range start.
func (s *Store) ListRules(ctx context.Context) ([]engine.StaffingRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRules(ctx,
		`SELECT id, min_guests, max_guests, required_json, extras_json FROM staffing_rules ORDER BY min_guests ASC`)
}

// DeleteRule removes a rule. Existing events keep their snapshotted positions.
func (s *Store) DeleteRule(ctx context.Context, id engine.RuleID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM staffing_rules WHERE id = ?", id)
	return err
}

func (s *Store) queryRules(ctx context.Context, query string, args ...any) ([]engine.StaffingRule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []engine.StaffingRule
	for rows.Next() {
		var r engine.StaffingRule
		var required, extras string
		if err := rows.Scan(&r.ID, &r.MinGuests, &r.MaxGuests, &required, &extras); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(required), &r.RequiredPositions); err != nil {
			return nil, fmt.Errorf("failed to decode rule %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(extras), &r.ExtraConditions); err != nil {
			return nil, fmt.Errorf("failed to decode rule %s: %w", r.ID, err)
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}

// =============================================================================
// ADD-ON STORE (engine.AddOnStore interface)
// =============================================================================

func (s *Store) SaveAddOn(ctx context.Context, a engine.AddOn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions, err := json.Marshal(a.AssociatedPositions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO add_ons (id, name, positions_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			positions_json = excluded.positions_json
	`
	_, err = s.db.ExecContext(ctx, query, a.ID, a.Name, string(positions),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetAddOn(ctx context.Context, id engine.AddOnID) (*engine.AddOn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	addOns, err := s.queryAddOns(ctx,
		`SELECT id, name, positions_json FROM add_ons WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(addOns) == 0 {
		return nil, nil
	}
	return &addOns[0], nil
}

func (s *Store) ListAddOns(ctx context.Context) ([]engine.AddOn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryAddOns(ctx, `SELECT id, name, positions_json FROM add_ons ORDER BY name ASC`)
}

func (s *Store) DeleteAddOn(ctx context.Context, id engine.AddOnID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM add_ons WHERE id = ?", id)
	return err
}

func (s *Store) queryAddOns(ctx context.Context, query string, args ...any) ([]engine.AddOn, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var addOns []engine.AddOn
	for rows.Next() {
		var a engine.AddOn
		var positions string
		if err := rows.Scan(&a.ID, &a.Name, &positions); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(positions), &a.AssociatedPositions); err != nil {
			return nil, fmt.Errorf("failed to decode add-on %s: %w", a.ID, err)
		}
		addOns = append(addOns, a)
	}
	return addOns, rows.Err()
}

// =============================================================================
// STAFF STORE (engine.StaffStore interface)
// =============================================================================

func (s *Store) SaveStaff(ctx context.Context, st engine.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positions, err := json.Marshal(st.Positions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO staff (id, name, positions_json, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			positions_json = excluded.positions_json
	`
	_, err = s.db.ExecContext(ctx, query, st.ID, st.Name, string(positions),
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetStaff(ctx context.Context, id engine.StaffID) (*engine.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	staff, err := s.queryStaff(ctx, `SELECT id, name, positions_json FROM staff WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(staff) == 0 {
		return nil, nil
	}
	return &staff[0], nil
}

func (s *Store) ListStaff(ctx context.Context) ([]engine.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryStaff(ctx, `SELECT id, name, positions_json FROM staff ORDER BY name ASC`)
}

func (s *Store) DeleteStaff(ctx context.Context, id engine.StaffID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM staff WHERE id = ?", id)
	return err
}

func (s *Store) queryStaff(ctx context.Context, query string, args ...any) ([]engine.Staff, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []engine.Staff
	for rows.Next() {
		var st engine.Staff
		var positions string
		if err := rows.Scan(&st.ID, &st.Name, &positions); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(positions), &st.Positions); err != nil {
			return nil, fmt.Errorf("failed to decode staff %s: %w", st.ID, err)
		}
		staff = append(staff, st)
	}
	return staff, rows.Err()
}

// =============================================================================
// SETTINGS STORE (engine.SettingsStore interface)
// =============================================================================

// DailyEventLimit returns the configured limit, defaulting when unset.
func (s *Store) DailyEventLimit(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM settings WHERE key = ?", settingDailyLimit).Scan(&value)
	if err == sql.ErrNoRows {
		return engine.DefaultDailyEventLimit, nil
	}
	if err != nil {
		return 0, err
	}

	limit, err := strconv.Atoi(value)
	if err != nil || limit < 1 {
		return engine.DefaultDailyEventLimit, nil
	}
	return limit, nil
}

func (s *Store) SetDailyEventLimit(ctx context.Context, limit int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`
	_, err := s.db.ExecContext(ctx, query, settingDailyLimit, strconv.Itoa(limit))
	return err
}

// =============================================================================
// CONTACT RECORDS - Clients and venues
// =============================================================================

// Client is a client contact record.
type Client struct {
	ID        engine.ClientID
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}

// Venue is a venue record.
type Venue struct {
	ID        engine.VenueID
	Name      string
	Address   string
	Capacity  int
	CreatedAt time.Time
}

func (s *Store) SaveClient(ctx context.Context, c Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO clients (id, name, email, phone, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			phone = excluded.phone
	`
	_, err := s.db.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetClient(ctx context.Context, id engine.ClientID) (*Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var c Client
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, phone, created_at FROM clients WHERE id = ?", id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &c, nil
}

func (s *Store) ListClients(ctx context.Context) ([]Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, phone, created_at FROM clients ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		var c Client
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) DeleteClient(ctx context.Context, id engine.ClientID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", id)
	return err
}

func (s *Store) SaveVenue(ctx context.Context, v Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO venues (id, name, address, capacity, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			address = excluded.address,
			capacity = excluded.capacity
	`
	_, err := s.db.ExecContext(ctx, query, v.ID, v.Name, v.Address, v.Capacity,
		time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *Store) GetVenue(ctx context.Context, id engine.VenueID) (*Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var v Venue
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, address, capacity, created_at FROM venues WHERE id = ?", id,
	).Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &v, nil
}

func (s *Store) ListVenues(ctx context.Context) ([]Venue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, address, capacity, created_at FROM venues ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		var v Venue
		var createdAt string
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &createdAt); err != nil {
			return nil, err
		}
		v.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (s *Store) DeleteVenue(ctx context.Context, id engine.VenueID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM venues WHERE id = ?", id)
	return err
}

// =============================================================================
// POSITION RATES - Rate card for labor estimates
// =============================================================================

// SavePositionRate sets the hourly rate for a position label.
func (s *Store) SavePositionRate(ctx context.Context, position engine.Position, rate decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO position_rates (position, hourly_rate) VALUES (?, ?)
		ON CONFLICT(position) DO UPDATE SET hourly_rate = excluded.hourly_rate
	`
	_, err := s.db.ExecContext(ctx, query, position, rate.String())
	return err
}

// RateCard loads all position rates.
func (s *Store) RateCard(ctx context.Context) (engine.RateCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT position, hourly_rate FROM position_rates")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	card := make(engine.RateCard)
	for rows.Next() {
		var position, rate string
		if err := rows.Scan(&position, &rate); err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(rate)
		if err != nil {
			continue // skip unparseable rows rather than failing the whole read
		}
		card[engine.Position(position)] = d
	}
	return card, rows.Err()
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"events", "staffing_rules", "add_ons", "staff", "clients", "venues", "position_rates", "settings"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
