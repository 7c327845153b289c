/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontends

ROUTE GROUPS:
  /api/now, /api/units   Current moment, unit names
  /api/moments/*         Stateless moment evaluation
  /api/leap-years/*      Leap year checks
  /api/marks/*           Timeline of named marks

SECURITY NOTE:
  No authentication middleware. All endpoints are public.

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

// NewRouter creates a new router with all routes configured. An empty
// allowedOrigins list disables cross-origin access.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/now", h.Now)
		r.Get("/units", h.ListUnits)
		r.Get("/leap-years/{year}", h.LeapYear)

		r.Route("/moments", func(r chi.Router) {
			r.Post("/evaluate", h.Evaluate)
			r.Post("/compare", h.Compare)
			r.Post("/diff", h.Diff)
		})

		r.Route("/marks", func(r chi.Router) {
			r.Get("/", h.ListMarks)
			r.Post("/", h.CreateMark)
			r.Post("/import", h.ImportMarks)
			r.Get("/groups", h.GroupMarks)
			r.Get("/window", h.WindowMarks)
			r.Get("/{id}", h.GetMark)
			r.Delete("/{id}", h.DeleteMark)
		})
	})

	return r
}
