/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates rules, add-ons, staff,
	and events that demonstrate specific features.

AVAILABLE SCENARIOS:

	wedding-season:  Rules, add-ons, staff, and three bookings on one weekend
	busy-saturday:   A day at the capacity limit with partial staffing
	corporate-week:  Weekday corporate events with the carving station add-on

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create rules and add-ons via the factory
 3. Create staff capability records
 4. Book events and assign staff

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "wedding-season"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared handler context and helpers
  - factory/rules.go: Rule JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mise/staffing-engine/engine"
	"github.com/mise/staffing-engine/factory"
	"github.com/mise/staffing-engine/store/sqlite"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "wedding-season",
		Name:        "Wedding Season",
		Description: "Rules, add-ons, staff, and three bookings across one June weekend",
	},
	{
		ID:          "busy-saturday",
		Name:        "Busy Saturday",
		Description: "A single day booked to the daily limit with partially staffed rosters",
	},
	{
		ID:          "corporate-week",
		Name:        "Corporate Week",
		Description: "Weekday corporate events featuring the carving station add-on",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	if h.currentScenario == "" {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	for _, s := range scenarios {
		if s.ID == h.currentScenario {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}

	writeJSON(w, http.StatusOK, ScenarioDTO{
		ID:          h.currentScenario,
		Name:        h.currentScenario,
		Description: "Currently loaded scenario",
	})
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var err error
	switch req.ScenarioID {
	case "wedding-season":
		err = h.loadWeddingSeason(ctx)
	case "busy-saturday":
		err = h.loadBusySaturday(ctx)
	case "corporate-week":
		err = h.loadCorporateWeek(ctx)
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown scenario: %s", req.ScenarioID), nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.currentScenario = req.ScenarioID
	h.Log.Info().Str("scenario", req.ScenarioID).Msg("scenario loaded")
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "scenario_id": req.ScenarioID})
}

// ResetDatabase wipes all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.currentScenario = ""
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SHARED SEED DATA
// =============================================================================

// SeedBaseline installs the standard rule set, add-ons, staff, and rates.
// Used by the scenario loaders and the --seed-demo startup flag.
func (h *Handler) SeedBaseline(ctx context.Context) error {
	ruleJSONs := []string{
		factory.BanquetRuleJSON("intimate", 1, 49, 2),
		factory.BanquetRuleJSON("banquet", 50, 150, 4),
		factory.BanquetRuleJSON("gala", 151, 400, 8),
	}
	f := factory.NewRuleFactory()
	for i, js := range ruleJSONs {
		rule, err := f.ParseRule(js)
		if err != nil {
			return fmt.Errorf("seed rule %d: %w", i, err)
		}
		if i == 1 {
			// The banquet tier needs an extra server when the bar is open.
			rule.ExtraConditions = []engine.ExtraCondition{
				{AddOnID: "bar", Position: "Server", Count: 1},
			}
			rule.RequiredPositions = append(rule.RequiredPositions,
				engine.PositionCount{Position: "Chef", Count: 1})
		}
		if err := h.Engine.CreateRule(ctx, *rule); err != nil {
			return fmt.Errorf("seed rule %s: %w", rule.ID, err)
		}
	}

	addOns := []engine.AddOn{
		{ID: "bar", Name: "Bar Service", AssociatedPositions: []engine.Position{"Bartender"}},
		{ID: "carving", Name: "Carving Station", AssociatedPositions: []engine.Position{"Chef"}},
		{ID: "coat-check", Name: "Coat Check", AssociatedPositions: []engine.Position{"Attendant"}},
	}
	for _, a := range addOns {
		if err := h.Store.SaveAddOn(ctx, a); err != nil {
			return err
		}
	}

	staff := []engine.Staff{
		{ID: "alice", Name: "Alice Moreau", Positions: []engine.Position{"Server", "Bartender"}},
		{ID: "bob", Name: "Bob Tran", Positions: []engine.Position{"Server"}},
		{ID: "carol", Name: "Carol Okafor", Positions: []engine.Position{"Bartender"}},
		{ID: "dmitri", Name: "Dmitri Volkov", Positions: []engine.Position{"Chef"}},
		{ID: "elena", Name: "Elena Ruiz", Positions: []engine.Position{"Server", "Attendant"}},
		{ID: "farid", Name: "Farid Haddad", Positions: []engine.Position{"Server"}},
	}
	for _, st := range staff {
		if err := h.Store.SaveStaff(ctx, st); err != nil {
			return err
		}
	}

	rates := map[engine.Position]string{
		"Server":    "22.50",
		"Bartender": "28.00",
		"Chef":      "35.00",
		"Attendant": "18.00",
	}
	for pos, rate := range rates {
		if err := h.Store.SavePositionRate(ctx, pos, decimal.RequireFromString(rate)); err != nil {
			return err
		}
	}

	clients := []sqlite.Client{
		{ID: "client-laurent", Name: "Laurent Family", Email: "laurent@example.com"},
		{ID: "client-initech", Name: "Initech Corp", Email: "events@initech.example"},
	}
	for _, c := range clients {
		if err := h.Store.SaveClient(ctx, c); err != nil {
			return err
		}
	}

	venues := []sqlite.Venue{
		{ID: "venue-grand", Name: "Grand Ballroom", Address: "1 Harbor Way", Capacity: 400},
		{ID: "venue-terrace", Name: "Garden Terrace", Address: "12 Vine St", Capacity: 120},
	}
	for _, v := range venues {
		if err := h.Store.SaveVenue(ctx, v); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// nextSaturday returns the upcoming Saturday so demo bookings are always in
// the future and survive the archival sweep.
func nextSaturday(from time.Time) time.Time {
	d := from
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (h *Handler) loadWeddingSeason(ctx context.Context) error {
	if err := h.SeedBaseline(ctx); err != nil {
		return err
	}

	sat := nextSaturday(h.clock().AddDate(0, 0, 1))
	sun := sat.AddDate(0, 0, 1)

	bookings := []engine.CreateEventRequest{
		{ID: "laurent-wedding", Date: sat, VenueID: "venue-grand", ClientID: "client-laurent",
			GuestCount: 120, AddOnIDs: []engine.AddOnID{"bar"}},
		{ID: "garden-reception", Date: sat, VenueID: "venue-terrace",
			GuestCount: 45, AddOnIDs: []engine.AddOnID{"coat-check"}},
		{ID: "sunday-brunch", Date: sun, VenueID: "venue-terrace",
			GuestCount: 60},
	}
	for _, b := range bookings {
		if _, err := h.Engine.CreateEvent(ctx, b); err != nil {
			return fmt.Errorf("create %s: %w", b.ID, err)
		}
	}

	// Partially staff the wedding.
	if err := h.Engine.AssignStaff(ctx, "laurent-wedding", "Server", "bob"); err != nil {
		return err
	}
	if err := h.Engine.AssignStaff(ctx, "laurent-wedding", "Bartender", "carol"); err != nil {
		return err
	}
	return h.Engine.AssignStaff(ctx, "laurent-wedding", "Chef", "dmitri")
}

func (h *Handler) loadBusySaturday(ctx context.Context) error {
	if err := h.SeedBaseline(ctx); err != nil {
		return err
	}

	sat := nextSaturday(h.clock().AddDate(0, 0, 1))
	for i, guests := range []int{30, 80, 200} {
		req := engine.CreateEventRequest{
			ID:         engine.EventID(fmt.Sprintf("saturday-%d", i+1)),
			Date:       sat,
			GuestCount: guests,
		}
		if _, err := h.Engine.CreateEvent(ctx, req); err != nil {
			return err
		}
	}

	// One server spread thin: alice takes the first event only; the other
	// rosters stay open so the demo can show conflict rejections.
	return h.Engine.AssignStaff(ctx, "saturday-1", "Server", "alice")
}

func (h *Handler) loadCorporateWeek(ctx context.Context) error {
	if err := h.SeedBaseline(ctx); err != nil {
		return err
	}

	monday := h.clock().AddDate(0, 0, 1)
	for monday.Weekday() != time.Monday {
		monday = monday.AddDate(0, 0, 1)
	}
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		req := engine.CreateEventRequest{
			ID:         engine.EventID(fmt.Sprintf("initech-day-%d", i+1)),
			Date:       monday.AddDate(0, 0, i),
			ClientID:   "client-initech",
			VenueID:    "venue-grand",
			GuestCount: 75,
			AddOnIDs:   []engine.AddOnID{"carving"},
		}
		if _, err := h.Engine.CreateEvent(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
