package api

import (
	"fmt"
	"net/http"

	"creativehands_server/api/middleware"
	"creativehands_server/config"
	"creativehands_server/services"
	"creativehands_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	chiware "github.com/go-chi/chi/v5/middleware"
)

// App assembles the HTTP surface: infrastructure middleware, CORS and
// every route area, wired to the given services.
func App(cfg *structs.Config, logger *gecho.Logger, sm *services.ServiceManager) chi.Router {
	r := chi.NewRouter()

	// middleware gets its own caller-less logger to keep request lines short
	logLevel := gecho.ParseLogLevel(config.LogLevel(cfg))
	mwLogger := gecho.NewLogger(gecho.NewConfig(gecho.WithShowCaller(false), gecho.WithLogLevel(logLevel)))

	mw := middleware.NewMiddleware(cfg, mwLogger)

	// Core infra
	r.Use(chiware.RequestID)
	r.Use(chiware.RealIP)
	r.Use(chiware.Recoverer)

	// Limits & security
	r.Use(mw.BodyLimit(256 * 1024 * 1024))
	r.Use(mw.SecurityHeaders())

	// Observability
	r.Use(gecho.Handlers.CreateLoggingMiddleware(mwLogger))

	// CORS (must run before auth)
	r.Use(mw.SetupCORS().Handler)

	NewRouterManager(logger, sm, mw).RegisterRoutes(r)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		gecho.Success(w,
			gecho.WithMessage(fmt.Sprintf("Welcome to the %s API", cfg.Server.AppName)),
			gecho.Send(),
		)
	})

	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
		gecho.NotFound(w,
			gecho.Send(),
		)
	})

	return r
}
