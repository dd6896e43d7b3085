package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gharfix/gharfix-ai-platform/internal/chat"
	httpmiddleware "github.com/gharfix/gharfix-ai-platform/internal/http/middleware"
	"github.com/gharfix/gharfix-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// ChatRatePerSecond limits /chat per client IP. Zero disables limiting.
	ChatRatePerSecond float64
	ChatRateBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.ChatHandler.Health)

	r.Group(func(g chi.Router) {
		if cfg.ChatRatePerSecond > 0 {
			g.Use(httpmiddleware.RateLimit(cfg.ChatRatePerSecond, cfg.ChatRateBurst))
		}
		g.Post("/chat", cfg.ChatHandler.Chat)
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
