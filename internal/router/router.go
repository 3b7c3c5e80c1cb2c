// Package router sets up all HTTP routes and middleware chains for the
// Inkwell API. It organizes routes into public and authenticated groups
// with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/handlers"
	"inkwell/internal/identity"
	"inkwell/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(
	tokens *identity.TokenStore,
	corsOrigins []string,
	auth *handlers.Auth,
	categories *handlers.Categories,
	posts *handlers.Posts,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Cors(corsOrigins))
	r.Use(middleware.Authenticate(tokens))

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Get("/me", auth.Me)
				r.Post("/logout", auth.Logout)
			})
		})

		// Categories — reads are public, mutations are admin only.
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categories.List)
			r.Get("/{idOrSlug}", categories.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Use(middleware.RequireRole(identity.RoleAdmin))
				r.Post("/", categories.Create)
				r.Put("/{id}", categories.Update)
				r.Delete("/{id}", categories.Delete)
			})
		})

		// Posts — reads are public, writes require authentication.
		// Author-only rules are enforced in the content service.
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", posts.List)
			r.Get("/{idOrSlug}", posts.Get)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/", posts.Create)
				r.Put("/{id}", posts.Update)
				r.Delete("/{id}", posts.Delete)
				r.Post("/{id}/comments", posts.AddComment)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
