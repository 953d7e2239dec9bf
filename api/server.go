/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/events/*      Booking ledger and assignments
  /api/positions/*   Roster resolution preview
  /api/rules/*       Staffing rule management
  /api/addons/*      Add-on management
  /api/staff/*       Staff capability records
  /api/clients/*     Client contacts
  /api/venues/*      Venue records
  /api/rates         Position rate card
  /api/admin/*       Daily limit, archival sweep
  /api/calendar      Day view with remaining capacity
  /api/scenarios/*   Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured. corsOrigins
// lists the allowed origins; use []string{"*"} to allow any.
func NewRouter(h *Handler, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Booking ledger
		r.Route("/events", func(r chi.Router) {
			r.Get("/", h.ListEvents)
			r.Post("/", h.CreateEvent)
			r.Get("/{id}", h.GetEvent)
			r.Put("/{id}", h.UpdateEvent)
			r.Delete("/{id}", h.DeleteEvent)
			r.Get("/{id}/estimate", h.GetEstimate)
			r.Post("/{id}/assignments", h.AssignStaff)
			r.Delete("/{id}/assignments", h.RemoveStaff)
		})

		// Roster preview
		r.Post("/positions/resolve", h.ResolvePositions)

		// Staffing rules
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", h.ListRules)
			r.Post("/", h.CreateRule)
			r.Delete("/{id}", h.DeleteRule)
		})

		// Add-ons
		r.Route("/addons", func(r chi.Router) {
			r.Get("/", h.ListAddOns)
			r.Post("/", h.CreateAddOn)
			r.Delete("/{id}", h.DeleteAddOn)
		})

		// Staff
		r.Route("/staff", func(r chi.Router) {
			r.Get("/", h.ListStaff)
			r.Post("/", h.CreateStaff)
			r.Get("/{id}", h.GetStaff)
			r.Delete("/{id}", h.DeleteStaff)
		})

		// Contacts
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListClients)
			r.Post("/", h.SaveClient)
			r.Get("/{id}", h.GetClient)
			r.Put("/{id}", h.SaveClient)
			r.Delete("/{id}", h.DeleteClient)
		})
		r.Route("/venues", func(r chi.Router) {
			r.Get("/", h.ListVenues)
			r.Post("/", h.SaveVenue)
			r.Get("/{id}", h.GetVenue)
			r.Put("/{id}", h.SaveVenue)
			r.Delete("/{id}", h.DeleteVenue)
		})

		// Rate card
		r.Get("/rates", h.ListRates)
		r.Put("/rates", h.SetRate)

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Get("/daily-limit", h.GetDailyLimit)
			r.Put("/daily-limit", h.SetDailyLimit)
			r.Post("/sweep", h.TriggerSweep)
		})

		// Calendar
		r.Get("/calendar", h.GetCalendarDay)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	return r
}
