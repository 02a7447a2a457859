package server

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/devlink/devlink/internal/handler"
	"github.com/devlink/devlink/internal/middleware"
	"github.com/devlink/devlink/internal/token"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Logger   *slog.Logger
	Codec    *token.Codec
	Accounts *handler.AccountHandler
	Posts    *handler.PostHandler
	Profiles *handler.ProfileHandler
	Health   *handler.HealthHandler
	Metrics  *handler.MetricsHandler

	// MaxBodyBytes caps request bodies; zero means the default 1MB.
	MaxBodyBytes int64
}

// NewRouter configures the chi router with all routes and middleware.
// Registration, login and the public profile reads skip the identity
// gate; every mutation and the current-account reads sit behind it.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.MaxBodySize(deps.MaxBodyBytes))

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)
	if deps.Metrics != nil {
		r.Get("/metricsz", deps.Metrics.Metrics)
	}

	r.Get("/", handler.Root)

	gate := middleware.Auth(middleware.AuthConfig{
		Logger: deps.Logger,
		Codec:  deps.Codec,
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/accounts", deps.Accounts.Register)
		r.Post("/auth", deps.Accounts.Login)
		r.With(gate).Get("/auth", deps.Accounts.Current)
		r.With(gate).Delete("/account", deps.Accounts.Delete)

		r.Route("/posts", func(r chi.Router) {
			r.Use(gate)
			r.Post("/", deps.Posts.Create)
			r.Get("/", deps.Posts.List)
			r.Get("/{id}", deps.Posts.Get)
			r.Delete("/{id}", deps.Posts.Delete)
			r.Put("/{id}/like", deps.Posts.Like)
			r.Put("/{id}/unlike", deps.Posts.Unlike)
			r.Post("/{id}/comments", deps.Posts.AddComment)
			r.Delete("/{id}/comments/{commentID}", deps.Posts.DeleteComment)
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Get("/", deps.Profiles.List)
			r.Get("/user/{userID}", deps.Profiles.ByUser)
			r.Get("/github/{username}", deps.Profiles.GithubRepos)
			r.With(gate).Get("/me", deps.Profiles.Me)
			r.With(gate).Post("/", deps.Profiles.Upsert)
			r.With(gate).Put("/experience", deps.Profiles.AddExperience)
			r.With(gate).Delete("/experience/{expID}", deps.Profiles.RemoveExperience)
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}
