package router

import (
	"net/http"

	"hrms/audit"
	"hrms/auth"
	"hrms/handlers"
	"hrms/metrics"
	"hrms/middleware"
	"hrms/store"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps carries everything the router needs; main constructs it once at
// startup.
type Deps struct {
	Store    store.Store
	Tokens   *auth.TokenService
	Recorder *audit.Recorder
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

func New(deps Deps) http.Handler {
	authHandler := handlers.NewAuthHandler(deps.Store, deps.Tokens, deps.Recorder, deps.Logger)
	employeeHandler := handlers.NewEmployeeHandler(deps.Store, deps.Recorder, deps.Logger)
	teamHandler := handlers.NewTeamHandler(deps.Store, deps.Recorder, deps.Logger)
	logHandler := handlers.NewLogHandler(deps.Store, deps.Logger)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Registry != nil {
		m := metrics.New(deps.Registry)
		r.Use(m.Middleware)
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	// Public routes
	r.Get("/health", handlers.Health)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(deps.Tokens))

		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)

		r.Get("/employees", employeeHandler.List)
		r.Post("/employees", employeeHandler.Create)
		r.Get("/employees/{id}", employeeHandler.Get)
		r.Put("/employees/{id}", employeeHandler.Update)
		r.Delete("/employees/{id}", employeeHandler.Delete)

		r.Get("/teams", teamHandler.List)
		r.Post("/teams", teamHandler.Create)
		r.Get("/teams/{id}", teamHandler.Get)
		r.Put("/teams/{id}", teamHandler.Update)
		r.Delete("/teams/{id}", teamHandler.Delete)
		r.Post("/teams/{id}/assign", teamHandler.Assign)
		r.Post("/teams/{id}/unassign", teamHandler.Unassign)

		r.Get("/logs", logHandler.List)
	})

	return r
}
