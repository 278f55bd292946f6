package router

import (
	"github.com/go-chi/chi/v5"
	chi_middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/readroom-dev/readroom/internal/middleware"
	"github.com/readroom-dev/readroom/internal/middleware/metrics"
	"github.com/readroom-dev/readroom/internal/setup"
)

// New creates and configures the chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chi_middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// JSON API only, no scripts/styles needed
	csp := "default-src 'none'; frame-ancestors 'none'"
	r.Use(middleware.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, csp))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		// Read pages stay viewable while logged out
		r.Group(func(r chi.Router) {
			r.Use(authMw.OptionalAuth())
			r.Get("/me", h.Me)
			r.Get("/authors", h.ListAuthors)
			r.Get("/books", h.ListBooks)
			r.Get("/threads", h.ListThreads)
			r.Get("/threads/{thread}", h.GetThread)
		})

		// Replying requires a session
		r.Group(func(r chi.Router) {
			r.Use(authMw.NeedAuth())
			r.Post("/threads/{thread}/posts", h.CreatePost)
		})
	})

	return r
}
