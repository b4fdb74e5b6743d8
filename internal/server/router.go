package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helpbeacon/helpbeacon/internal/api"
	"github.com/helpbeacon/helpbeacon/internal/api/handlers"
	"github.com/helpbeacon/helpbeacon/internal/api/middleware"
)

type RouterConfig struct {
	SessionValidator middleware.SessionValidator
	SearchHandler    *handlers.SearchHandler
	SettingsHandler  *handlers.SettingsHandler
	StatsHandler     *handlers.StatsHandler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 64 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// The log call is a beacon fired as the page unloads: it answers
	// 204 with an empty body whatever happens, so it cannot sit behind
	// the 401-ing auth middleware. Session resolution is best-effort
	// and the handler drops events it cannot attribute.
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuthOptional(cfg.SessionValidator))
		r.Post("/log", cfg.SearchHandler.Log)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(cfg.SessionValidator))

		r.Get("/searchbox", cfg.SearchHandler.Searchbox)
		r.Get("/resolve", cfg.SearchHandler.Resolve)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireManager)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", cfg.SettingsHandler.Get)
				r.Put("/", cfg.SettingsHandler.Update)
				r.Post("/notice/dismiss", cfg.SettingsHandler.DismissNotice)
			})

			r.Get("/stats", cfg.StatsHandler.List)
		})
	})

	return r
}
