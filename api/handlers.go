/*
handlers.go - HTTP API handlers for the staffing engine

PURPOSE:
  Exposes the booking engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Events:
    GET    /api/events                   Dashboard (sweeps archival first)
    POST   /api/events                   Create event (capacity-checked)
    GET    /api/events/{id}              Get event details
    PUT    /api/events/{id}              Edit guests/add-ons (regenerates positions)
    DELETE /api/events/{id}              Delete event
    GET    /api/events/{id}/estimate     Labor cost estimate (?hours=6)
    POST   /api/events/{id}/assignments  Assign staff to a position
    DELETE /api/events/{id}/assignments  Remove staff from a position

  Positions:
    POST   /api/positions/resolve        Preview roster for guests + add-ons

  Catalogs:
    GET/POST        /api/rules           Staffing rules (overlap-checked)
    DELETE          /api/rules/{id}
    GET/POST        /api/addons          Add-on definitions
    DELETE          /api/addons/{id}
    GET/POST        /api/staff           Staff capability records
    GET/DELETE      /api/staff/{id}
    GET/POST        /api/clients         Client contacts
    GET/PUT/DELETE  /api/clients/{id}
    GET/POST        /api/venues          Venue records
    GET/PUT/DELETE  /api/venues/{id}
    GET/PUT         /api/rates           Position rate card

  Admin:
    GET/PUT /api/admin/daily-limit       Per-day event cap
    POST    /api/admin/sweep             Force the archival sweep
    GET     /api/calendar?day=YYYY-MM-DD Day view with remaining capacity

  Scenarios:
    GET    /api/scenarios                List demo scenarios
    POST   /api/scenarios/load           Load a demo scenario
    POST   /api/scenarios/reset          Wipe the database

ERROR HANDLING:
  Engine errors map to HTTP status by classification:
  - 400: invalid input
  - 404: unknown event/staff/position
  - 409: booking conflicts (double-booked, capacity, rule overlap, ...)
  - 500: storage errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mise/staffing-engine/engine"
	"github.com/mise/staffing-engine/factory"
	"github.com/mise/staffing-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Engine *engine.Engine
	Rules  *factory.RuleFactory
	Log    zerolog.Logger

	// Track currently loaded scenario
	currentScenario string

	// Injected clock for tests; nil means time.Now.
	now func() time.Time
}

// NewHandler creates a new handler over the given store.
func NewHandler(store *sqlite.Store, log zerolog.Logger) *Handler {
	return &Handler{
		Store:  store,
		Engine: engine.New(store),
		Rules:  factory.NewRuleFactory(),
		Log:    log,
	}
}

func (h *Handler) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now().UTC()
}

// =============================================================================
// EVENT HANDLERS
// =============================================================================

// ListEvents returns the dashboard: active events, after the archival sweep.
// Pass ?include_archived=true for the full ledger (no sweep side effect
// difference; the sweep always runs first).
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := h.Engine.SweepArchived(ctx, h.clock()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sweep archived events", err)
		return
	}

	includeArchived := r.URL.Query().Get("include_archived") == "true"
	events, err := h.Store.ListEvents(ctx, includeArchived)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, ev := range events {
		dtos[i] = toEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEvent books a new event. The daily capacity check and position
// resolution happen inside the engine, atomically.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	ev, err := h.Engine.CreateEvent(r.Context(), engine.CreateEventRequest{
		ID:         engine.EventID(id),
		Date:       date,
		VenueID:    engine.VenueID(req.VenueID),
		ClientID:   engine.ClientID(req.ClientID),
		GuestCount: req.GuestCount,
		AddOnIDs:   toAddOnIDs(req.AddOnIDs),
	})
	if err != nil {
		writeEngineError(w, "Failed to create event", err)
		return
	}

	h.Log.Info().Str("event_id", id).Int("guests", req.GuestCount).Msg("event created")
	writeJSON(w, http.StatusCreated, toEventDTO(*ev))
}

// GetEvent returns a single event.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := engine.EventID(chi.URLParam(r, "id"))

	ev, err := h.Store.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(*ev))
}

// UpdateEvent changes guest count and add-ons, regenerating positions.
// The response names every assignment that could not be carried forward.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := engine.EventID(chi.URLParam(r, "id"))

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ev, dropped, err := h.Engine.UpdateEvent(r.Context(), id, req.GuestCount, toAddOnIDs(req.AddOnIDs))
	if err != nil {
		writeEngineError(w, "Failed to update event", err)
		return
	}

	resp := UpdateEventResponse{
		Event:   toEventDTO(*ev),
		Dropped: make([]DroppedAssignmentDTO, len(dropped)),
	}
	for i, d := range dropped {
		resp.Dropped[i] = DroppedAssignmentDTO{
			Position: string(d.Position),
			StaffID:  string(d.StaffID),
		}
	}
	if len(dropped) > 0 {
		h.Log.Warn().Str("event_id", string(id)).Int("dropped", len(dropped)).
			Msg("assignments dropped during regeneration")
	}
	writeJSON(w, http.StatusOK, resp)
}

// DeleteEvent removes an event from the ledger.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := engine.EventID(chi.URLParam(r, "id"))

	ev, err := h.Store.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}

	if err := h.Store.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

// AssignStaff places a staff member into a position slot. Without an
// explicit slot index the first open slot is used.
func (h *Handler) AssignStaff(w http.ResponseWriter, r *http.Request) {
	eventID := engine.EventID(chi.URLParam(r, "id"))

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Position == "" || req.StaffID == "" {
		writeError(w, http.StatusBadRequest, "position and staff_id are required", nil)
		return
	}

	var err error
	if req.Slot != nil {
		err = h.Engine.AssignStaffSlot(r.Context(), eventID, engine.Position(req.Position), *req.Slot, engine.StaffID(req.StaffID))
	} else {
		err = h.Engine.AssignStaff(r.Context(), eventID, engine.Position(req.Position), engine.StaffID(req.StaffID))
	}
	if err != nil {
		writeEngineError(w, "Failed to assign staff", err)
		return
	}

	ev, err := h.Store.GetEvent(r.Context(), eventID)
	if err != nil || ev == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload event", err)
		return
	}

	h.Log.Info().Str("event_id", string(eventID)).Str("staff_id", req.StaffID).
		Str("position", req.Position).Msg("staff assigned")
	writeJSON(w, http.StatusOK, toEventDTO(*ev))
}

// RemoveStaff clears a staff member from a position. Removing someone who
// is not assigned succeeds silently.
func (h *Handler) RemoveStaff(w http.ResponseWriter, r *http.Request) {
	eventID := engine.EventID(chi.URLParam(r, "id"))

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	err := h.Engine.RemoveStaff(r.Context(), eventID, engine.Position(req.Position), engine.StaffID(req.StaffID))
	if err != nil {
		writeEngineError(w, "Failed to remove staff", err)
		return
	}

	ev, err := h.Store.GetEvent(r.Context(), eventID)
	if err != nil || ev == nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload event", err)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTO(*ev))
}

// =============================================================================
// POSITION RESOLUTION PREVIEW
// =============================================================================

// ResolvePositions previews the roster for a guest count and add-on
// selection without creating an event.
func (h *Handler) ResolvePositions(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.GuestCount < 1 {
		writeError(w, http.StatusBadRequest, "guest_count must be >= 1", nil)
		return
	}

	positions, err := h.Engine.ResolvePositions(r.Context(), req.GuestCount, toAddOnIDs(req.AddOnIDs))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to resolve positions", err)
		return
	}

	resp := ResolveResponse{Positions: make([]PositionDTO, len(positions))}
	for i, p := range positions {
		resp.Positions[i] = toPositionDTO(p)
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// RULE HANDLERS
// =============================================================================

// ListRules returns all staffing rules as factory JSON.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := h.Store.ListRules(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rules", err)
		return
	}

	dtos := make([]factory.RuleJSON, len(rules))
	for i, rule := range rules {
		dtos[i] = h.Rules.RuleToJSON(rule)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRule parses a factory-schema rule and persists it. Range overlap
// against existing rules is rejected with 409.
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var rj factory.RuleJSON
	if err := json.NewDecoder(r.Body).Decode(&rj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rule, err := h.Rules.RuleFromJSON(rj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid rule definition", err)
		return
	}

	if err := h.Engine.CreateRule(r.Context(), *rule); err != nil {
		writeEngineError(w, "Failed to create rule", err)
		return
	}

	h.Log.Info().Str("rule_id", rj.ID).Int("min", rj.MinGuests).Int("max", rj.MaxGuests).Msg("rule created")
	writeJSON(w, http.StatusCreated, h.Rules.RuleToJSON(*rule))
}

// DeleteRule removes a rule. Existing events keep their snapshotted positions.
func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	id := engine.RuleID(chi.URLParam(r, "id"))
	if err := h.Engine.DeleteRule(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete rule", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ADD-ON HANDLERS
// =============================================================================

func (h *Handler) ListAddOns(w http.ResponseWriter, r *http.Request) {
	addOns, err := h.Store.ListAddOns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list add-ons", err)
		return
	}

	dtos := make([]factory.AddOnJSON, len(addOns))
	for i, a := range addOns {
		dtos[i] = h.Rules.AddOnToJSON(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) CreateAddOn(w http.ResponseWriter, r *http.Request) {
	var aj factory.AddOnJSON
	if err := json.NewDecoder(r.Body).Decode(&aj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	addOn, err := h.Rules.AddOnFromJSON(aj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid add-on definition", err)
		return
	}

	if err := h.Store.SaveAddOn(r.Context(), *addOn); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save add-on", err)
		return
	}
	writeJSON(w, http.StatusCreated, h.Rules.AddOnToJSON(*addOn))
}

func (h *Handler) DeleteAddOn(w http.ResponseWriter, r *http.Request) {
	id := engine.AddOnID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteAddOn(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete add-on", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// STAFF HANDLERS
// =============================================================================

func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Store.ListStaff(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}

	dtos := make([]StaffDTO, len(staff))
	for i, st := range staff {
		dtos[i] = toStaffDTO(st)
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	id := engine.StaffID(chi.URLParam(r, "id"))

	st, err := h.Store.GetStaff(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get staff", err)
		return
	}
	if st == nil {
		writeError(w, http.StatusNotFound, "Staff not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toStaffDTO(*st))
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req StaffDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	st := engine.Staff{
		ID:   engine.StaffID(req.ID),
		Name: req.Name,
	}
	for _, p := range req.Positions {
		st.Positions = append(st.Positions, engine.Position(p))
	}

	if err := h.Store.SaveStaff(r.Context(), st); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save staff", err)
		return
	}
	writeJSON(w, http.StatusCreated, toStaffDTO(st))
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	id := engine.StaffID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteStaff(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete staff", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CLIENT HANDLERS
// =============================================================================

func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.Store.ListClients(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list clients", err)
		return
	}

	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ClientDTO{ID: string(c.ID), Name: c.Name, Email: c.Email, Phone: c.Phone}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := engine.ClientID(chi.URLParam(r, "id"))

	c, err := h.Store.GetClient(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get client", err)
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "Client not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, ClientDTO{ID: string(c.ID), Name: c.Name, Email: c.Email, Phone: c.Phone})
}

func (h *Handler) SaveClient(w http.ResponseWriter, r *http.Request) {
	var req ClientDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	c := sqlite.Client{ID: engine.ClientID(req.ID), Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := h.Store.SaveClient(r.Context(), c); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save client", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := engine.ClientID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteClient(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete client", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// VENUE HANDLERS
// =============================================================================

func (h *Handler) ListVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := h.Store.ListVenues(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list venues", err)
		return
	}

	dtos := make([]VenueDTO, len(venues))
	for i, v := range venues {
		dtos[i] = VenueDTO{ID: string(v.ID), Name: v.Name, Address: v.Address, Capacity: v.Capacity}
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) GetVenue(w http.ResponseWriter, r *http.Request) {
	id := engine.VenueID(chi.URLParam(r, "id"))

	v, err := h.Store.GetVenue(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get venue", err)
		return
	}
	if v == nil {
		writeError(w, http.StatusNotFound, "Venue not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, VenueDTO{ID: string(v.ID), Name: v.Name, Address: v.Address, Capacity: v.Capacity})
}

func (h *Handler) SaveVenue(w http.ResponseWriter, r *http.Request) {
	var req VenueDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	v := sqlite.Venue{ID: engine.VenueID(req.ID), Name: req.Name, Address: req.Address, Capacity: req.Capacity}
	if err := h.Store.SaveVenue(r.Context(), v); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save venue", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (h *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	id := engine.VenueID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteVenue(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete venue", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RATE CARD AND ESTIMATES
// =============================================================================

// ListRates returns the full position rate card.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	card, err := h.Store.RateCard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rates", err)
		return
	}

	dtos := make([]RateDTO, 0, len(card))
	for pos, rate := range card {
		dtos = append(dtos, RateDTO{Position: string(pos), HourlyRate: rate.String()})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetRate sets the hourly rate for one position label.
func (h *Handler) SetRate(w http.ResponseWriter, r *http.Request) {
	var req RateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Position == "" {
		writeError(w, http.StatusBadRequest, "position is required", nil)
		return
	}

	rate, err := decimal.NewFromString(req.HourlyRate)
	if err != nil || rate.IsNegative() {
		writeError(w, http.StatusBadRequest, "hourly_rate must be a non-negative decimal string", err)
		return
	}

	if err := h.Store.SavePositionRate(r.Context(), engine.Position(req.Position), rate); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save rate", err)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// GetEstimate prices an event's roster against the rate card. Shift length
// comes from ?hours= and defaults to 6.
func (h *Handler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	id := engine.EventID(chi.URLParam(r, "id"))

	ev, err := h.Store.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get event", err)
		return
	}
	if ev == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}

	hours := decimal.NewFromInt(6)
	if v := r.URL.Query().Get("hours"); v != "" {
		hours, err = decimal.NewFromString(v)
		if err != nil || hours.IsNegative() {
			writeError(w, http.StatusBadRequest, "hours must be a non-negative decimal", err)
			return
		}
	}

	card, err := h.Store.RateCard(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load rates", err)
		return
	}

	est := engine.EstimateLaborCost(ev.Positions, card, hours)
	dto := EstimateDTO{
		EventID:    string(ev.ID),
		ShiftHours: hours.String(),
		Total:      est.Total.String(),
		Lines:      make([]EstimateLineDTO, len(est.Lines)),
	}
	for i, line := range est.Lines {
		dto.Lines[i] = EstimateLineDTO{
			Position:   string(line.Position),
			Count:      line.Count,
			HourlyRate: line.HourlyRate.String(),
			Cost:       line.Cost.String(),
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// =============================================================================
// ADMIN - Daily limit, calendar, archival sweep
// =============================================================================

// GetDailyLimit returns the per-day event cap.
func (h *Handler) GetDailyLimit(w http.ResponseWriter, r *http.Request) {
	limit, err := h.Store.DailyEventLimit(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get daily limit", err)
		return
	}
	writeJSON(w, http.StatusOK, DailyLimitDTO{Limit: limit})
}

// SetDailyLimit updates the per-day event cap. Existing over-limit days
// keep their events; the new limit applies to future creations.
func (h *Handler) SetDailyLimit(w http.ResponseWriter, r *http.Request) {
	var req DailyLimitDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Engine.SetDailyLimit(r.Context(), req.Limit); err != nil {
		writeEngineError(w, "Failed to set daily limit", err)
		return
	}
	h.Log.Info().Int("limit", req.Limit).Msg("daily limit updated")
	writeJSON(w, http.StatusOK, req)
}

// GetCalendarDay returns the events and remaining capacity for one day.
func (h *Handler) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	dayStr := r.URL.Query().Get("day")
	day, err := engine.ParseDay(dayStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day (use YYYY-MM-DD)", err)
		return
	}

	ctx := r.Context()
	events, err := h.Store.ListEventsOnDay(ctx, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	limit, err := h.Store.DailyEventLimit(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get daily limit", err)
		return
	}

	dto := CalendarDayDTO{
		Day:      day.String(),
		Events:   make([]EventDTO, len(events)),
		Booked:   len(events),
		Limit:    limit,
		HasSpace: len(events) < limit,
	}
	for i, ev := range events {
		dto.Events[i] = toEventDTO(ev)
	}
	writeJSON(w, http.StatusOK, dto)
}

// TriggerSweep forces the Active -> Archived sweep.
func (h *Handler) TriggerSweep(w http.ResponseWriter, r *http.Request) {
	n, err := h.Engine.SweepArchived(r.Context(), h.clock())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to sweep archived events", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"archived": n})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeEngineError maps engine error classes to HTTP status codes.
func writeEngineError(w http.ResponseWriter, message string, err error) {
	switch {
	case engine.IsNotFound(err):
		writeError(w, http.StatusNotFound, message, err)
	case engine.IsConflict(err):
		writeError(w, http.StatusConflict, message, err)
	case engine.IsInvalid(err):
		writeError(w, http.StatusBadRequest, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func toAddOnIDs(ids []string) []engine.AddOnID {
	out := make([]engine.AddOnID, len(ids))
	for i, id := range ids {
		out[i] = engine.AddOnID(id)
	}
	return out
}

func toEventDTO(ev engine.Event) EventDTO {
	dto := EventDTO{
		ID:         string(ev.ID),
		Date:       ev.Date.Format("2006-01-02"),
		VenueID:    string(ev.VenueID),
		ClientID:   string(ev.ClientID),
		GuestCount: ev.GuestCount,
		AddOnIDs:   make([]string, len(ev.AddOnIDs)),
		Positions:  make([]PositionDTO, len(ev.Positions)),
		IsArchived: ev.IsArchived,
	}
	if !ev.CreatedAt.IsZero() {
		dto.CreatedAt = ev.CreatedAt.Format(time.RFC3339)
	}
	for i, id := range ev.AddOnIDs {
		dto.AddOnIDs[i] = string(id)
	}
	for i, p := range ev.Positions {
		dto.Positions[i] = toPositionDTO(p)
	}
	return dto
}

func toPositionDTO(p engine.EventPosition) PositionDTO {
	dto := PositionDTO{
		Position:      string(p.Position),
		RequiredCount: p.RequiredCount,
		Slots:         make([]string, len(p.Slots)),
	}
	for i, s := range p.Slots {
		dto.Slots[i] = string(s)
		if s == "" {
			dto.OpenCount++
		}
	}
	return dto
}

func toStaffDTO(st engine.Staff) StaffDTO {
	dto := StaffDTO{ID: string(st.ID), Name: st.Name, Positions: make([]string, len(st.Positions))}
	for i, p := range st.Positions {
		dto.Positions[i] = string(p)
	}
	return dto
}
