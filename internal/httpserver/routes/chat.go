package routes

import (
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/httpserver/handlers"
	"github.com/toolhub/toolhub/internal/httpserver/mw"
)

func init() { Register(registerChat) }

func registerChat(r chi.Router, d deps.Deps) {
	sub := r.With(
		mw.EnforceHost(d.AllowedHosts, d.Logger),
		mw.RateLimit(mw.RateLimitConfig{
			Burst:             10,
			RefillPerIPPerMin: 30,
			MaxEntries:        10_000,
			SweepInterval:     time.Minute,
			IdleTTL:           15 * time.Minute,
			TrustProxy:        d.TrustProxy,
		}),
	)
	sub.Post("/api/chat/open", handlers.ChatOpen(d))
	sub.Post("/api/chat/close", handlers.ChatClose(d))
	sub.Post("/api/chat/{session}/send", handlers.ChatSend(d))
}
