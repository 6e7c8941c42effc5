package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/toolhub/toolhub/internal/httpserver/deps"
	"github.com/toolhub/toolhub/internal/httpserver/handlers"
	"github.com/toolhub/toolhub/internal/httpserver/mw"
)

func init() { Register(registerTools) }

func registerTools(r chi.Router, d deps.Deps) {
	sub := r.With(mw.EnforceHost(d.AllowedHosts, d.Logger))
	sub.Get("/api/tools", handlers.Tools(d))
	sub.Get("/api/tools/partition", handlers.Partition(d))
	sub.Post("/api/tools/select-category", handlers.SelectCategory(d))
}
