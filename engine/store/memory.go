// Package store provides engine.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mise/staffing-engine/engine"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements engine.Store with maps guarded by a RWMutex. Events are
// deep-copied on the way in and out; a day index keeps same-day lookups
// cheap.
type Memory struct {
	mu       sync.RWMutex
	events   map[engine.EventID]*engine.Event
	dayIndex map[engine.Day]map[engine.EventID]struct{}
	rules    map[engine.RuleID]engine.StaffingRule
	addOns   map[engine.AddOnID]engine.AddOn
	staff    map[engine.StaffID]engine.Staff
	limit    int
}

func NewMemory() *Memory {
	return &Memory{
		events:   make(map[engine.EventID]*engine.Event),
		dayIndex: make(map[engine.Day]map[engine.EventID]struct{}),
		rules:    make(map[engine.RuleID]engine.StaffingRule),
		addOns:   make(map[engine.AddOnID]engine.AddOn),
		staff:    make(map[engine.StaffID]engine.Staff),
		limit:    engine.DefaultDailyEventLimit,
	}
}

// =============================================================================
// EVENT STORE
// =============================================================================

func (m *Memory) SaveEvent(_ context.Context, ev engine.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.events[ev.ID]; ok {
		m.unindex(old)
	}
	cp := ev.Clone()
	m.events[ev.ID] = cp
	m.index(cp)
	return nil
}

func (m *Memory) GetEvent(_ context.Context, id engine.EventID) (*engine.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return ev.Clone(), nil
}

func (m *Memory) ListEvents(_ context.Context, includeArchived bool) ([]engine.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.Event
	for _, ev := range m.events {
		if ev.IsArchived && !includeArchived {
			continue
		}
		out = append(out, *ev.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) ListEventsOnDay(_ context.Context, day engine.Day) ([]engine.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []engine.Event
	for id := range m.dayIndex[day] {
		ev := m.events[id]
		if ev == nil || ev.IsArchived {
			continue
		}
		out = append(out, *ev.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteEvent(_ context.Context, id engine.EventID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev, ok := m.events[id]; ok {
		m.unindex(ev)
		delete(m.events, id)
	}
	return nil
}

func (m *Memory) index(ev *engine.Event) {
	day := engine.DayOf(ev.Date)
	if m.dayIndex[day] == nil {
		m.dayIndex[day] = make(map[engine.EventID]struct{})
	}
	m.dayIndex[day][ev.ID] = struct{}{}
}

func (m *Memory) unindex(ev *engine.Event) {
	day := engine.DayOf(ev.Date)
	delete(m.dayIndex[day], ev.ID)
	if len(m.dayIndex[day]) == 0 {
		delete(m.dayIndex, day)
	}
}

// =============================================================================
// CATALOG STORES
// =============================================================================

func (m *Memory) SaveRule(_ context.Context, rule engine.StaffingRule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rules[rule.ID] = cloneRule(rule)
	return nil
}

func (m *Memory) GetRule(_ context.Context, id engine.RuleID) (*engine.StaffingRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.rules[id]; ok {
		cp := cloneRule(r)
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) ListRules(_ context.Context) ([]engine.StaffingRule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.StaffingRule, 0, len(m.rules))
	for _, r := range m.rules {
		out = append(out, cloneRule(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MinGuests < out[j].MinGuests })
	return out, nil
}

func (m *Memory) DeleteRule(_ context.Context, id engine.RuleID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rules, id)
	return nil
}

func (m *Memory) SaveAddOn(_ context.Context, a engine.AddOn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addOns[a.ID] = cloneAddOn(a)
	return nil
}

func (m *Memory) GetAddOn(_ context.Context, id engine.AddOnID) (*engine.AddOn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.addOns[id]; ok {
		cp := cloneAddOn(a)
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) ListAddOns(_ context.Context) ([]engine.AddOn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.AddOn, 0, len(m.addOns))
	for _, a := range m.addOns {
		out = append(out, cloneAddOn(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteAddOn(_ context.Context, id engine.AddOnID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.addOns, id)
	return nil
}

func (m *Memory) SaveStaff(_ context.Context, s engine.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.staff[s.ID] = cloneStaff(s)
	return nil
}

func (m *Memory) GetStaff(_ context.Context, id engine.StaffID) (*engine.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.staff[id]; ok {
		cp := cloneStaff(s)
		return &cp, nil
	}
	return nil, nil
}

func (m *Memory) ListStaff(_ context.Context) ([]engine.Staff, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]engine.Staff, 0, len(m.staff))
	for _, s := range m.staff {
		out = append(out, cloneStaff(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) DeleteStaff(_ context.Context, id engine.StaffID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.staff, id)
	return nil
}

// Catalog values are cloned both ways so callers never share slices with
// the store, matching the event copy semantics above.

func cloneRule(r engine.StaffingRule) engine.StaffingRule {
	r.RequiredPositions = append([]engine.PositionCount(nil), r.RequiredPositions...)
	r.ExtraConditions = append([]engine.ExtraCondition(nil), r.ExtraConditions...)
	return r
}

func cloneAddOn(a engine.AddOn) engine.AddOn {
	a.AssociatedPositions = append([]engine.Position(nil), a.AssociatedPositions...)
	return a
}

func cloneStaff(s engine.Staff) engine.Staff {
	s.Positions = append([]engine.Position(nil), s.Positions...)
	return s
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m *Memory) DailyEventLimit(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.limit, nil
}

func (m *Memory) SetDailyEventLimit(_ context.Context, limit int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.limit = limit
	return nil
}
