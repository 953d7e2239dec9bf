/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

CONVENTIONS:
  - Dates: "2006-01-02" for calendar days, RFC3339 for instants
  - Money: decimal strings, never floats
  - Open slot: empty string in the slots array

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

// =============================================================================
// ERROR RESPONSE
// =============================================================================

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// EVENTS
// =============================================================================

// CreateEventRequest is the booking input.
type CreateEventRequest struct {
	ID         string   `json:"id,omitempty"` // generated when empty
	Date       string   `json:"date"`         // YYYY-MM-DD
	VenueID    string   `json:"venue_id,omitempty"`
	ClientID   string   `json:"client_id,omitempty"`
	GuestCount int      `json:"guest_count"`
	AddOnIDs   []string `json:"add_on_ids,omitempty"`
}

// UpdateEventRequest changes the inputs that drive position resolution.
type UpdateEventRequest struct {
	GuestCount int      `json:"guest_count"`
	AddOnIDs   []string `json:"add_on_ids,omitempty"`
}

// EventDTO is the full event representation.
type EventDTO struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	VenueID    string        `json:"venue_id,omitempty"`
	ClientID   string        `json:"client_id,omitempty"`
	GuestCount int           `json:"guest_count"`
	AddOnIDs   []string      `json:"add_on_ids"`
	Positions  []PositionDTO `json:"positions"`
	IsArchived bool          `json:"is_archived"`
	CreatedAt  string        `json:"created_at,omitempty"`
}

// PositionDTO is one staffed position on an event.
type PositionDTO struct {
	Position      string   `json:"position"`
	RequiredCount int      `json:"required_count"`
	Slots         []string `json:"slots"` // "" = open
	OpenCount     int      `json:"open_count"`
}

// UpdateEventResponse returns the regenerated event plus any assignments
// that could not be carried forward.
type UpdateEventResponse struct {
	Event   EventDTO               `json:"event"`
	Dropped []DroppedAssignmentDTO `json:"dropped_assignments"`
}

// DroppedAssignmentDTO names one assignment lost in a regeneration.
type DroppedAssignmentDTO struct {
	Position string `json:"position"`
	StaffID  string `json:"staff_id"`
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// AssignRequest places a staff member into a position.
type AssignRequest struct {
	Position string `json:"position"`
	StaffID  string `json:"staff_id"`
	Slot     *int   `json:"slot,omitempty"` // nil = first open slot
}

// =============================================================================
// POSITION RESOLUTION PREVIEW
// =============================================================================

// ResolveRequest previews the roster for a hypothetical booking.
type ResolveRequest struct {
	GuestCount int      `json:"guest_count"`
	AddOnIDs   []string `json:"add_on_ids,omitempty"`
}

// ResolveResponse lists the derived positions.
type ResolveResponse struct {
	Positions []PositionDTO `json:"positions"`
}

// =============================================================================
// STAFF
// =============================================================================

// StaffDTO is a staff capability record.
type StaffDTO struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Positions []string `json:"positions"`
}

// =============================================================================
// RULES AND ADD-ONS
// =============================================================================
// Rule and add-on request/response bodies reuse factory.RuleJSON and
// factory.AddOnJSON directly; the factory owns that schema.

// =============================================================================
// CONTACTS
// =============================================================================

// ClientDTO is a client contact record.
type ClientDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// VenueDTO is a venue record.
type VenueDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
}

// =============================================================================
// CAPACITY AND CALENDAR
// =============================================================================

// DailyLimitDTO carries the process-wide daily event limit.
type DailyLimitDTO struct {
	Limit int `json:"limit"`
}

// CalendarDayDTO summarizes one calendar day.
type CalendarDayDTO struct {
	Day      string     `json:"day"`
	Events   []EventDTO `json:"events"`
	Booked   int        `json:"booked"`
	Limit    int        `json:"limit"`
	HasSpace bool       `json:"has_space"`
}

// =============================================================================
// RATES AND ESTIMATES
// =============================================================================

// RateDTO is an hourly rate for a position label.
type RateDTO struct {
	Position   string `json:"position"`
	HourlyRate string `json:"hourly_rate"` // decimal string
}

// EstimateDTO is a labor cost estimate for an event.
type EstimateDTO struct {
	EventID    string            `json:"event_id"`
	ShiftHours string            `json:"shift_hours"`
	Lines      []EstimateLineDTO `json:"lines"`
	Total      string            `json:"total"`
}

// EstimateLineDTO is one position's share of the estimate.
type EstimateLineDTO struct {
	Position   string `json:"position"`
	Count      int    `json:"count"`
	HourlyRate string `json:"hourly_rate"`
	Cost       string `json:"cost"`
}

// =============================================================================
// SCENARIOS
// =============================================================================

// ScenarioDTO describes a loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}
