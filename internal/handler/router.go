package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Navneet-kaur7/todo-app/internal/middleware"
	"github.com/Navneet-kaur7/todo-app/internal/service"
)

// RouterConfig holds the dependencies of the HTTP API.
type RouterConfig struct {
	AuthService *service.AuthService
	TaskService *service.TaskService
	Verifier    middleware.TokenVerifier
	Users       middleware.UserLookup
	DB          Pinger

	// Registry collects the HTTP metrics served on /metrics. A nil Registry gets a
	// fresh one with the Go runtime and process collectors.
	Registry *prometheus.Registry
}

// NewRouter builds the chi router with all API routes mounted under /api.
func NewRouter(cfg RouterConfig) http.Handler {
	reg := cfg.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	authHandler := NewAuthHandler(cfg.AuthService)
	taskHandler := NewTaskHandler(cfg.TaskService)
	healthHandler := NewHealthHandler(cfg.DB)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewMetrics(reg).Handler)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse("not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse("method not allowed"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.HandleHealth)

		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(cfg.Verifier, cfg.Users))

			r.Get("/auth/profile", authHandler.HandleProfile)
			r.Put("/auth/profile", authHandler.HandleUpdateProfile)
			r.Post("/auth/logout", authHandler.HandleLogout)

			r.Get("/tasks", taskHandler.HandleListTasks)
			r.Post("/tasks", taskHandler.HandleCreateTask)
			r.Delete("/tasks/completed", taskHandler.HandleDeleteCompleted)
			r.Get("/tasks/{id}", taskHandler.HandleGetTask)
			r.Put("/tasks/{id}", taskHandler.HandleUpdateTask)
			r.Delete("/tasks/{id}", taskHandler.HandleDeleteTask)
		})
	})

	return r
}
