package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mcp-gateway/internal/handlers"
	"mcp-gateway/internal/middleware"
)

func New(
	gatewayHandler *handlers.GatewayHandler,
	limiter *middleware.RateLimiter,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		if limiter != nil {
			r.Use(limiter.Middleware)
		}

		r.Post("/chat", gatewayHandler.Chat)

		// ──── File-system Routes ────
		r.Route("/fs", func(r chi.Router) {
			r.Post("/list", gatewayHandler.FsList)
			r.Post("/read", gatewayHandler.FsRead)
			r.Post("/write", gatewayHandler.FsWrite)
		})

		// ──── Weather Routes ────
		r.Route("/weather", func(r chi.Router) {
			r.Post("/alerts", gatewayHandler.WeatherAlerts)
			r.Post("/forecast", gatewayHandler.WeatherForecast)
		})
	})

	return r
}
